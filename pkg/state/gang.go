package state

import "time"

const (
	HostilityMin = -100.0
	HostilityMax = 100.0

	GangStrengthMin = 1
	GangStrengthMax = 100
)

// RivalGang is a competing organisation. RelationStatus follows RelationFor(Hostility)
// except right after a successful negotiation, which may force it.
type RivalGang struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Strength       int            `json:"strength" yaml:"strength"`
	Hostility      float64        `json:"hostility" yaml:"hostility"`
	RelationStatus RelationStatus `json:"relationStatus" yaml:"relationStatus"`
	MemberCount    int            `json:"memberCount" yaml:"memberCount"`
	Wealth         int64          `json:"wealth" yaml:"wealth"`
	Aggressiveness int            `json:"aggressiveness" yaml:"aggressiveness"`
	LastAttack     *time.Time     `json:"lastAttack,omitempty" yaml:"lastAttack,omitempty"`
}

// AdjustHostility moves hostility within [-100,100] and re-derives the relation status.
func (g *RivalGang) AdjustHostility(delta float64) {
	g.Hostility = Clamp(g.Hostility+delta, HostilityMin, HostilityMax)
	g.RelationStatus = RelationFor(g.Hostility)
}

func (g *RivalGang) AdjustStrength(delta int) {
	g.Strength = Clamp(g.Strength+delta, GangStrengthMin, GangStrengthMax)
}

// GangEvent is something a rival gang did or proposed. Events are never deleted,
// only marked resolved.
type GangEvent struct {
	ID                string            `json:"id" yaml:"id"`
	Type              GangEventType     `json:"type" yaml:"type"`
	GangID            string            `json:"gangId" yaml:"gangId"`
	Timestamp         time.Time         `json:"timestamp" yaml:"timestamp"`
	TargetTerritoryID *string           `json:"targetTerritoryId,omitempty" yaml:"targetTerritoryId,omitempty"`
	Resolved          bool              `json:"resolved" yaml:"resolved"`
	Outcome           *GangEventOutcome `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	RespektChange     int               `json:"respektChange" yaml:"respektChange"`
	KontanterChange   int64             `json:"kontanterChange" yaml:"kontanterChange"`
	HostilityChange   float64           `json:"hostilityChange" yaml:"hostilityChange"`
	CashDemand        int64             `json:"cashDemand,omitempty" yaml:"cashDemand,omitempty"`
	OfferAmount       int64             `json:"offerAmount,omitempty" yaml:"offerAmount,omitempty"`
	Title             string            `json:"title" yaml:"title"`
	Description       string            `json:"description" yaml:"description"`
}

// GangStats must always equal RecomputeGangStats over the gang and gang event lists.
type GangStats struct {
	Hostile          int `json:"hostile" yaml:"hostile"`
	Neutral          int `json:"neutral" yaml:"neutral"`
	Truce            int `json:"truce" yaml:"truce"`
	Allied           int `json:"allied" yaml:"allied"`
	UnresolvedEvents int `json:"unresolvedEvents" yaml:"unresolvedEvents"`
}

func RecomputeGangStats(gangs []RivalGang, events []GangEvent) GangStats {
	var st GangStats
	for _, g := range gangs {
		switch g.RelationStatus {
		case RelationHostile:
			st.Hostile++
		case RelationNeutral:
			st.Neutral++
		case RelationTruce:
			st.Truce++
		case RelationAllied:
			st.Allied++
		}
	}
	for _, e := range events {
		if !e.Resolved {
			st.UnresolvedEvents++
		}
	}
	return st
}
