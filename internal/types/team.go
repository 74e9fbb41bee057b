package types

import (
	"encoding/json"
	"strings"
)

// =============================================================================
// TEAM CONSTRAINTS
// =============================================================================

// Fixed constraint defaults restored by the recommendation form reset.
const (
	DefaultTargetCount   = 10
	DefaultTargetLevel   = 50
	DefaultTroopStrength = 10000
)

// TeamConstraints are the user-supplied inputs of a recommendation request.
// Empty member names mean "no constraint" and are left out of the request.
type TeamConstraints struct {
	RequiredMember            string
	ExcludedMember            string
	TargetCount               int
	TargetLevel               int
	TroopStrength             int
	RequireDamageVerification bool
}

// DefaultTeamConstraints returns the form defaults.
func DefaultTeamConstraints() TeamConstraints {
	return TeamConstraints{
		TargetCount:               DefaultTargetCount,
		TargetLevel:               DefaultTargetLevel,
		TroopStrength:             DefaultTroopStrength,
		RequireDamageVerification: true,
	}
}

// TeamCandidate is one ranked team returned by the recommendation service.
type TeamCandidate struct {
	Score   float64
	Members []string
}

// MemberList joins the members for display.
func (c TeamCandidate) MemberList() string {
	return strings.Join(c.Members, ", ")
}

// =============================================================================
// SYNERGY
// =============================================================================

// AnalysisAxis names one section of a synergy breakdown.
type AnalysisAxis string

const (
	AxisTagSynergy       AnalysisAxis = "tagSynergy"
	AxisTroopTypeSynergy AnalysisAxis = "troopTypeSynergy"
	AxisFactionBonus     AnalysisAxis = "factionBonus"
	AxisAbilitySynergy   AnalysisAxis = "abilitySynergy"
	AxisRoleBalance      AnalysisAxis = "roleBalance"
)

// AxisOrder is the fixed display order of synergy sections.
var AxisOrder = []AnalysisAxis{
	AxisTagSynergy,
	AxisTroopTypeSynergy,
	AxisFactionBonus,
	AxisAbilitySynergy,
	AxisRoleBalance,
}

// Title returns the section heading for the axis.
func (a AnalysisAxis) Title() string {
	switch a {
	case AxisTagSynergy:
		return "Tag synergy"
	case AxisTroopTypeSynergy:
		return "Troop type synergy"
	case AxisFactionBonus:
		return "Faction bonus"
	case AxisAbilitySynergy:
		return "Ability synergy"
	case AxisRoleBalance:
		return "Role balance"
	default:
		return string(a)
	}
}

// SynergyReport is the server's compatibility breakdown for one team.
// Section bodies are opaque JSON and are displayed without interpretation.
type SynergyReport struct {
	OverallScore float64
	Sections     map[AnalysisAxis]json.RawMessage
}

// PopulatedAxes returns the axes present in the report, in display order.
func (r SynergyReport) PopulatedAxes() []AnalysisAxis {
	var axes []AnalysisAxis
	for _, axis := range AxisOrder {
		if _, ok := r.Sections[axis]; ok {
			axes = append(axes, axis)
		}
	}
	return axes
}
