package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"teamforge/internal/types"
)

// =============================================================================
// RECOMMENDATIONS
// =============================================================================

type recommendRequest struct {
	Count              int    `json:"count"`
	Level              int    `json:"level"`
	TroopCount         int    `json:"troop_count,omitempty"`
	RequiredHero       string `json:"required_hero,omitempty"`
	ExcludedHero       string `json:"excluded_hero,omitempty"`
	DamageVerification bool   `json:"damage_verification"`
}

func newRecommendRequest(tc types.TeamConstraints) recommendRequest {
	return recommendRequest{
		Count:              tc.TargetCount,
		Level:              tc.TargetLevel,
		TroopCount:         tc.TroopStrength,
		RequiredHero:       tc.RequiredMember,
		ExcludedHero:       tc.ExcludedMember,
		DamageVerification: tc.RequireDamageVerification,
	}
}

// FetchRecommendations asks the service for ranked team candidates.
// An empty list is a valid answer.
func (c *Client) FetchRecommendations(ctx context.Context, constraints types.TeamConstraints) ([]types.TeamCandidate, error) {
	op := "recommend"
	root, err := c.do(ctx, op, http.MethodPost, "recommend", nil, newRecommendRequest(constraints))
	if err != nil {
		return nil, err
	}

	teams, err := requireArray(op, root, "teams")
	if err != nil {
		return nil, err
	}

	items := teams.Array()
	out := make([]types.TeamCandidate, 0, len(items))
	for i, team := range items {
		prefix := fmt.Sprintf("teams.%d", i)
		if !team.IsObject() {
			return nil, wrongType(op, prefix, "an object")
		}

		scoreKey, _ := firstOf(team, "score", "评分")
		score, err := requireNumber(op, team, scoreKey)
		if err != nil {
			return nil, &MalformedResponseError{Op: op, Field: prefix + "." + scoreKey, Reason: reasonOf(err)}
		}

		membersKey, _ := firstOf(team, "members", "队伍")
		members, err := requireStrings(op, team, membersKey)
		if err != nil {
			return nil, &MalformedResponseError{Op: op, Field: prefix + "." + membersKey, Reason: reasonOf(err)}
		}

		out = append(out, types.TeamCandidate{Score: score, Members: members})
	}
	return out, nil
}

func reasonOf(err error) string {
	var m *MalformedResponseError
	if errors.As(err, &m) {
		return m.Reason
	}
	return err.Error()
}

// =============================================================================
// SYNERGY
// =============================================================================

type synergyRequest struct {
	Members []string `json:"members"`
	Level   int      `json:"level"`
}

// axisKeys maps each axis to its wire key followed by accepted aliases.
var axisKeys = map[types.AnalysisAxis][]string{
	types.AxisTagSynergy:       {"tag_synergy"},
	types.AxisTroopTypeSynergy: {"troop_type_synergy"},
	types.AxisFactionBonus:     {"faction_bonus"},
	types.AxisAbilitySynergy:   {"skill_synergy", "战法分析"},
	types.AxisRoleBalance:      {"role_balance", "角色分析"},
}

// FetchSynergy requests the compatibility breakdown of a team at a level.
func (c *Client) FetchSynergy(ctx context.Context, members []string, level int) (types.SynergyReport, error) {
	op := "synergy"
	var report types.SynergyReport
	if len(members) == 0 {
		return report, fmt.Errorf("%s: at least one member required", op)
	}

	root, err := c.do(ctx, op, http.MethodPost, "synergy", nil, synergyRequest{Members: members, Level: level})
	if err != nil {
		return report, err
	}

	if report.OverallScore, err = requireNumber(op, root, "synergy_score"); err != nil {
		return report, err
	}
	analysis, err := requireObject(op, root, "synergy_analysis")
	if err != nil {
		return report, err
	}

	report.Sections = make(map[types.AnalysisAxis]json.RawMessage)
	for _, axis := range types.AxisOrder {
		_, v := firstOf(analysis, axisKeys[axis]...)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		report.Sections[axis] = json.RawMessage(v.Raw)
	}
	return report, nil
}

// =============================================================================
// METADATA & HEALTH
// =============================================================================

// FetchMetadata retrieves the hero and camp name lists.
func (c *Client) FetchMetadata(ctx context.Context) (types.Metadata, error) {
	op := "metadata"
	root, err := c.do(ctx, op, http.MethodGet, "metadata", nil, nil)
	if err != nil {
		return types.Metadata{}, err
	}

	heroes, err := requireStrings(op, root, "heroes")
	if err != nil {
		return types.Metadata{}, err
	}
	camps, err := requireStrings(op, root, "camps")
	if err != nil {
		return types.Metadata{}, err
	}
	return types.Metadata{Characters: heroes, Factions: camps}, nil
}

// HealthStatus is the service's self-reported state.
type HealthStatus struct {
	Status  string
	Message string
}

// Health probes the service. A status other than "ok" is an ApplicationError.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	op := "health"
	root, err := c.do(ctx, op, http.MethodGet, "health", nil, nil)
	if err != nil {
		return HealthStatus{}, err
	}

	status := root.Get("status")
	if !status.Exists() || status.Type == gjson.Null {
		return HealthStatus{}, missing(op, "status")
	}
	hs := HealthStatus{Status: status.String(), Message: root.Get("message").String()}
	if hs.Status != "ok" {
		return hs, &ApplicationError{Op: op, Message: fmt.Sprintf("service status %q: %s", hs.Status, hs.Message)}
	}
	return hs, nil
}
