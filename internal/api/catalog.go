package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"teamforge/internal/types"
)

// Decoder converts one entry of a catalog items object into a record.
// name is the entry's key.
type Decoder[T types.Record] func(op, name string, body gjson.Result) (T, error)

// FetchList retrieves one catalog page. Items are returned in the order the
// server wrote them.
func FetchList[T types.Record](ctx context.Context, c *Client, query types.CatalogQuery, decode Decoder[T]) (types.CatalogPage[T], error) {
	op := "list " + query.Kind.Path()
	var page types.CatalogPage[T]

	root, err := c.do(ctx, op, http.MethodGet, query.Kind.Path(), query.Values(), nil)
	if err != nil {
		return page, err
	}

	itemsField := query.Kind.Path()
	items, err := requireObject(op, root, itemsField)
	if err != nil {
		return page, err
	}

	if page.Page, err = requireInt(op, root, "page"); err != nil {
		return page, err
	}
	if page.PageSize, err = requireInt(op, root, "size"); err != nil {
		return page, err
	}
	if page.TotalPages, err = requireInt(op, root, "total_pages"); err != nil {
		return page, err
	}
	if page.TotalCount, err = requireInt(op, root, "count"); err != nil {
		return page, err
	}

	page.Items = make([]T, 0)
	items.ForEach(func(key, value gjson.Result) bool {
		var rec T
		rec, err = decode(op, key.String(), value)
		if err != nil {
			return false
		}
		page.Items = append(page.Items, rec)
		return true
	})
	if err != nil {
		return types.CatalogPage[T]{}, err
	}

	return page, nil
}

// FetchCharacters retrieves one page of the hero catalog.
func (c *Client) FetchCharacters(ctx context.Context, query types.CatalogQuery) (types.CatalogPage[types.CharacterRecord], error) {
	query.Kind = types.KindCharacters
	return FetchList(ctx, c, query, DecodeCharacter)
}

// FetchAbilities retrieves one page of the skill catalog.
func (c *Client) FetchAbilities(ctx context.Context, query types.CatalogQuery) (types.CatalogPage[types.AbilityRecord], error) {
	query.Kind = types.KindAbilities
	return FetchList(ctx, c, query, DecodeAbility)
}

// DecodeCharacter decodes a hero entry. Only the object shape is required;
// absent display fields stay zero and are rendered by the UI fallback.
func DecodeCharacter(op, name string, body gjson.Result) (types.CharacterRecord, error) {
	field := "heroes." + name
	if !body.IsObject() {
		return types.CharacterRecord{}, wrongType(op, field, "an object")
	}
	rec := types.CharacterRecord{
		Name:    name,
		Faction: body.Get("阵营").String(),
	}
	if v := body.Get("统御"); v.Exists() && v.Type != gjson.Null {
		if v.Type != gjson.Number {
			return rec, wrongType(op, field+".统御", "a number")
		}
		rec.CommandValue = v.Num
	}
	if v := body.Get("标签"); v.Exists() && v.Type != gjson.Null {
		if !v.IsArray() {
			return rec, wrongType(op, field+".标签", "an array")
		}
		for _, tag := range v.Array() {
			rec.Tags = append(rec.Tags, tag.String())
		}
	}
	return rec, nil
}

// DecodeAbility decodes a skill entry. The trigger probability is kept as
// text because the service sends both numbers and strings such as "35%".
func DecodeAbility(op, name string, body gjson.Result) (types.AbilityRecord, error) {
	field := "skills." + name
	if !body.IsObject() {
		return types.AbilityRecord{}, wrongType(op, field, "an object")
	}
	return types.AbilityRecord{
		Name:               name,
		Kind:               body.Get("类型").String(),
		Rarity:             body.Get("品质").String(),
		TriggerProbability: body.Get("发动概率").String(),
		Description:        body.Get("描述").String(),
	}, nil
}

// UpdateAbility replaces the skill stored under originalName. The record's
// Name may differ from originalName to rename it.
func (c *Client) UpdateAbility(ctx context.Context, originalName string, record types.AbilityRecord) (string, error) {
	op := "update skill"
	if originalName == "" {
		return "", fmt.Errorf("%s: original name required", op)
	}
	root, err := c.do(ctx, op, http.MethodPut, "skills/"+url.PathEscape(originalName), nil, record)
	if err != nil {
		return "", err
	}
	return messageOf(op, root)
}

// RemoveRecord deletes one hero or skill by name.
func (c *Client) RemoveRecord(ctx context.Context, kind types.ResourceKind, name string) (string, error) {
	op := "remove " + kind.String()
	if name == "" {
		return "", fmt.Errorf("%s: name required", op)
	}
	root, err := c.do(ctx, op, http.MethodDelete, kind.Path()+"/"+url.PathEscape(name), nil, nil)
	if err != nil {
		return "", err
	}
	return messageOf(op, root)
}
