package types

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// =============================================================================
// RESOURCE KINDS
// =============================================================================

// ResourceKind identifies which catalog a query or page belongs to.
type ResourceKind int

const (
	KindCharacters ResourceKind = iota
	KindAbilities
)

// String returns the display name of the kind.
func (k ResourceKind) String() string {
	switch k {
	case KindCharacters:
		return "characters"
	case KindAbilities:
		return "abilities"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Path returns the API collection segment ("heroes" or "skills").
// The same name is used as the items field of the list response.
func (k ResourceKind) Path() string {
	switch k {
	case KindCharacters:
		return "heroes"
	case KindAbilities:
		return "skills"
	default:
		return ""
	}
}

// FilterParam returns the query parameter carrying the filter tag.
func (k ResourceKind) FilterParam() string {
	switch k {
	case KindCharacters:
		return "camp"
	case KindAbilities:
		return "type"
	default:
		return ""
	}
}

// ParseResourceKind maps "heroes"/"characters" and "skills"/"abilities" to a kind.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heroes", "hero", "characters", "character":
		return KindCharacters, nil
	case "skills", "skill", "abilities", "ability":
		return KindAbilities, nil
	}
	return 0, fmt.Errorf("unknown resource kind %q", s)
}

// =============================================================================
// CATALOG QUERY
// =============================================================================

// DefaultPageSize matches the page size the service uses when none is sent.
const DefaultPageSize = 20

// CatalogQuery is the complete input of a catalog fetch. Values are never
// mutated in place; every browse action derives a new query.
type CatalogQuery struct {
	Kind       ResourceKind
	Page       int
	PageSize   int
	SearchText string
	FilterTag  string
}

// NewCatalogQuery returns the first page of an unfiltered catalog.
func NewCatalogQuery(kind ResourceKind, pageSize int) CatalogQuery {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return CatalogQuery{Kind: kind, Page: 1, PageSize: pageSize}
}

// WithSearch returns a query for the given search text, starting at page 1.
func (q CatalogQuery) WithSearch(text string) CatalogQuery {
	q.SearchText = strings.TrimSpace(text)
	q.Page = 1
	return q
}

// WithFilter returns a query for the given filter tag, starting at page 1.
func (q CatalogQuery) WithFilter(tag string) CatalogQuery {
	q.FilterTag = strings.TrimSpace(tag)
	q.Page = 1
	return q
}

// WithPage returns the same search and filter at another page. Pages below 1
// are raised to 1; the upper bound is the server's to enforce.
func (q CatalogQuery) WithPage(page int) CatalogQuery {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// Values encodes the query string. Empty search and filter dimensions are
// omitted rather than sent blank.
func (q CatalogQuery) Values() url.Values {
	v := url.Values{}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	if q.SearchText != "" {
		v.Set("search", q.SearchText)
	}
	if q.FilterTag != "" {
		v.Set(q.Kind.FilterParam(), q.FilterTag)
	}
	return v
}

// =============================================================================
// CATALOG PAGE
// =============================================================================

// CatalogPage is one server page of records. Items keep server order.
type CatalogPage[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
}

// HasPrev reports whether a previous page exists.
func (p CatalogPage[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p CatalogPage[T]) HasNext() bool {
	return p.Page < p.TotalPages
}
