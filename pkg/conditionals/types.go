package conditionals

import "time"

// TriggerConditions gates a random event. Every non-nil field is an independent
// threshold and all of them must hold. Probability is not a gate: it is the
// percent chance (0-100) rolled once the gates pass.
type TriggerConditions struct {
	MinHeat         *int    `json:"minHeat,omitempty" yaml:"minHeat,omitempty"`
	MaxHeat         *int    `json:"maxHeat,omitempty" yaml:"maxHeat,omitempty"`
	MinCash         *int64  `json:"minCash,omitempty" yaml:"minCash,omitempty"`
	MaxCash         *int64  `json:"maxCash,omitempty" yaml:"maxCash,omitempty"`
	MinRespekt      *int    `json:"minRespekt,omitempty" yaml:"minRespekt,omitempty"`
	MaxRespekt      *int    `json:"maxRespekt,omitempty" yaml:"maxRespekt,omitempty"`
	MinInfluence    *int64  `json:"minInfluence,omitempty" yaml:"minInfluence,omitempty"`
	MaxInfluence    *int64  `json:"maxInfluence,omitempty" yaml:"maxInfluence,omitempty"`
	MinTerritories  *int    `json:"minTerritories,omitempty" yaml:"minTerritories,omitempty"`
	MinBusinesses   *int    `json:"minBusinesses,omitempty" yaml:"minBusinesses,omitempty"`
	MinOperations   *int    `json:"minOperations,omitempty" yaml:"minOperations,omitempty"`
	MinMembers      *int    `json:"minMembers,omitempty" yaml:"minMembers,omitempty"`
	MinLevel        *int    `json:"minLevel,omitempty" yaml:"minLevel,omitempty"`
	MaxLevel        *int    `json:"maxLevel,omitempty" yaml:"maxLevel,omitempty"`
	CooldownMinutes *int    `json:"cooldown,omitempty" yaml:"cooldown,omitempty"`
	Probability     float64 `json:"probability" yaml:"probability"`
}

// HasGates reports whether any threshold is set.
func (tc TriggerConditions) HasGates() bool {
	return tc.MinHeat != nil || tc.MaxHeat != nil ||
		tc.MinCash != nil || tc.MaxCash != nil ||
		tc.MinRespekt != nil || tc.MaxRespekt != nil ||
		tc.MinInfluence != nil || tc.MaxInfluence != nil ||
		tc.MinTerritories != nil || tc.MinBusinesses != nil ||
		tc.MinOperations != nil || tc.MinMembers != nil ||
		tc.MinLevel != nil || tc.MaxLevel != nil ||
		tc.CooldownMinutes != nil
}

// GameStateView provides the minimal interface needed to evaluate trigger conditions.
// This avoids an import cycle with the state package.
type GameStateView interface {
	GetHeat() int
	GetCash() int64
	GetRespekt() int
	GetInfluence() int64
	GetLevel() int
	GetControlledTerritories() int
	GetOwnedBusinesses() int
	GetActiveOperations() int
	GetMemberCount() int
}

// Evaluate checks every threshold in tc against the view. lastTriggered is the
// last time the event fired, nil if never; the cooldown only applies when it is set.
// Conditions without any gates always pass.
func Evaluate(tc TriggerConditions, gsView GameStateView, lastTriggered *time.Time, now time.Time) bool {
	if tc.MinHeat != nil && gsView.GetHeat() < *tc.MinHeat {
		return false
	}
	if tc.MaxHeat != nil && gsView.GetHeat() > *tc.MaxHeat {
		return false
	}

	if tc.MinCash != nil && gsView.GetCash() < *tc.MinCash {
		return false
	}
	if tc.MaxCash != nil && gsView.GetCash() > *tc.MaxCash {
		return false
	}

	if tc.MinRespekt != nil && gsView.GetRespekt() < *tc.MinRespekt {
		return false
	}
	if tc.MaxRespekt != nil && gsView.GetRespekt() > *tc.MaxRespekt {
		return false
	}

	if tc.MinInfluence != nil && gsView.GetInfluence() < *tc.MinInfluence {
		return false
	}
	if tc.MaxInfluence != nil && gsView.GetInfluence() > *tc.MaxInfluence {
		return false
	}

	// Counts
	if tc.MinTerritories != nil && gsView.GetControlledTerritories() < *tc.MinTerritories {
		return false
	}
	if tc.MinBusinesses != nil && gsView.GetOwnedBusinesses() < *tc.MinBusinesses {
		return false
	}
	if tc.MinOperations != nil && gsView.GetActiveOperations() < *tc.MinOperations {
		return false
	}
	if tc.MinMembers != nil && gsView.GetMemberCount() < *tc.MinMembers {
		return false
	}

	if tc.MinLevel != nil && gsView.GetLevel() < *tc.MinLevel {
		return false
	}
	if tc.MaxLevel != nil && gsView.GetLevel() > *tc.MaxLevel {
		return false
	}

	if tc.CooldownMinutes != nil && lastTriggered != nil {
		cooldown := time.Duration(*tc.CooldownMinutes) * time.Minute
		if now.Sub(*lastTriggered) < cooldown {
			return false
		}
	}

	return true
}

// CooledDown reports whether a repeatable event may fire again.
func CooledDown(tc TriggerConditions, lastTriggered *time.Time, now time.Time) bool {
	if lastTriggered == nil || tc.CooldownMinutes == nil {
		return true
	}
	return now.Sub(*lastTriggered) >= time.Duration(*tc.CooldownMinutes)*time.Minute
}
