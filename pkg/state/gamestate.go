package state

import (
	"maps"
	"slices"
	"time"
)

// SchemaVersion is bumped whenever a field is added to GameState. Normalize
// must give every new field a safe default for older saves.
const SchemaVersion = 3

// GameState is the whole game: the single aggregate the store commits and persists.
type GameState struct {
	Version        int                  `json:"version"`
	Player         Player               `json:"player"`
	Chapter        Chapter              `json:"chapter"`
	Territories    []Territory          `json:"territories"`
	TerritoryStats TerritoryStats       `json:"territoryStats"`
	Businesses     []Business           `json:"businesses"`
	BusinessStats  BusinessStats        `json:"businessStats"`
	Operations     []Operation          `json:"operations"`
	OperationStats OperationStats       `json:"operationStats"`
	RivalGangs     []RivalGang          `json:"rivalGangs"`
	GangEvents     []GangEvent          `json:"gangEvents"`
	GangStats      GangStats            `json:"gangStats"`
	Events         []GameEvent          `json:"events"`
	ActiveEvents   []string             `json:"activeEvents"`
	EventHistory   []EventRecord        `json:"eventHistory"`
	CrimeCooldowns map[string]time.Time `json:"crimeCooldowns"`
	LastSaved      time.Time            `json:"lastSaved"`
	PlayTime       int64                `json:"playTime"`
}

// NewGameState returns an empty, normalized game for the named player.
func NewGameState(playerName string) GameState {
	gs := GameState{
		Player: NewPlayer(playerName),
	}
	gs.Normalize()
	return gs
}

// Normalize fills defaults for anything an older save may be missing and
// recomputes every derived block. It is safe to call on a fresh state.
func (gs *GameState) Normalize() {
	if gs.Player.Level < 1 {
		gs.Player.Level = 1
	}
	if gs.Player.ExperienceToNext <= 0 {
		gs.Player.ExperienceToNext = ExperienceForLevel(gs.Player.Level)
	}
	gs.Player.Respekt = ClampPercent(gs.Player.Respekt)
	gs.Player.Heat = ClampPercent(gs.Player.Heat)
	if gs.Player.Cash < 0 {
		gs.Player.Cash = 0
	}

	if gs.Chapter.Members == nil {
		gs.Chapter.Members = []Member{}
	}
	if gs.Territories == nil {
		gs.Territories = []Territory{}
	}
	if gs.Businesses == nil {
		gs.Businesses = []Business{}
	}
	if gs.Operations == nil {
		gs.Operations = []Operation{}
	}
	for i := range gs.Operations {
		if gs.Operations[i].AssignedMemberIDs == nil {
			gs.Operations[i].AssignedMemberIDs = []string{}
		}
	}
	if gs.RivalGangs == nil {
		gs.RivalGangs = []RivalGang{}
	}
	for i := range gs.RivalGangs {
		if !gs.RivalGangs[i].RelationStatus.Valid() {
			gs.RivalGangs[i].RelationStatus = RelationFor(gs.RivalGangs[i].Hostility)
		}
	}
	if gs.GangEvents == nil {
		gs.GangEvents = []GangEvent{}
	}
	if gs.Events == nil {
		gs.Events = []GameEvent{}
	}
	if gs.ActiveEvents == nil {
		gs.ActiveEvents = []string{}
	}
	if gs.EventHistory == nil {
		gs.EventHistory = []EventRecord{}
	}
	if gs.CrimeCooldowns == nil {
		gs.CrimeCooldowns = map[string]time.Time{}
	}
	if gs.Version < SchemaVersion {
		gs.Version = SchemaVersion
	}

	UnlockBusinesses(gs.Businesses)
	gs.RecomputeAll()
}

// RecomputeAll rebuilds every derived stats block from its source list.
func (gs *GameState) RecomputeAll() {
	gs.Chapter.Stats = RecomputeChapterStats(gs.Chapter.Members)
	gs.TerritoryStats = RecomputeTerritoryStats(gs.Territories)
	gs.BusinessStats = RecomputeBusinessStats(gs.Businesses)
	gs.OperationStats = RecomputeOperationStats(gs.Operations)
	gs.GangStats = RecomputeGangStats(gs.RivalGangs, gs.GangEvents)
}

// Clone returns a deep copy that shares no slices, maps or pointers with gs.
func (gs GameState) Clone() GameState {
	out := gs

	out.Chapter.Members = slices.Clone(gs.Chapter.Members)
	out.Territories = slices.Clone(gs.Territories)

	out.Businesses = make([]Business, len(gs.Businesses))
	for i, b := range gs.Businesses {
		b.LaunderingCapacity = clonePtr(b.LaunderingCapacity)
		b.LaunderingFee = clonePtr(b.LaunderingFee)
		b.ManagerID = clonePtr(b.ManagerID)
		b.PrerequisiteBusinesses = slices.Clone(b.PrerequisiteBusinesses)
		out.Businesses[i] = b
	}

	out.Operations = make([]Operation, len(gs.Operations))
	for i, o := range gs.Operations {
		o.IncomePerTick = clonePtr(o.IncomePerTick)
		o.HeatReductionPerTick = clonePtr(o.HeatReductionPerTick)
		o.AssignedMemberIDs = slices.Clone(o.AssignedMemberIDs)
		out.Operations[i] = o
	}

	out.RivalGangs = make([]RivalGang, len(gs.RivalGangs))
	for i, g := range gs.RivalGangs {
		g.LastAttack = clonePtr(g.LastAttack)
		out.RivalGangs[i] = g
	}

	out.GangEvents = make([]GangEvent, len(gs.GangEvents))
	for i, e := range gs.GangEvents {
		e.TargetTerritoryID = clonePtr(e.TargetTerritoryID)
		e.Outcome = clonePtr(e.Outcome)
		out.GangEvents[i] = e
	}

	out.Events = make([]GameEvent, len(gs.Events))
	for i, e := range gs.Events {
		out.Events[i] = e.clone()
	}

	out.ActiveEvents = slices.Clone(gs.ActiveEvents)
	out.EventHistory = slices.Clone(gs.EventHistory)
	out.CrimeCooldowns = maps.Clone(gs.CrimeCooldowns)
	return out
}

func (e GameEvent) clone() GameEvent {
	tc := &e.TriggerConditions
	tc.MinHeat = clonePtr(tc.MinHeat)
	tc.MaxHeat = clonePtr(tc.MaxHeat)
	tc.MinCash = clonePtr(tc.MinCash)
	tc.MaxCash = clonePtr(tc.MaxCash)
	tc.MinRespekt = clonePtr(tc.MinRespekt)
	tc.MaxRespekt = clonePtr(tc.MaxRespekt)
	tc.MinInfluence = clonePtr(tc.MinInfluence)
	tc.MaxInfluence = clonePtr(tc.MaxInfluence)
	tc.MinTerritories = clonePtr(tc.MinTerritories)
	tc.MinBusinesses = clonePtr(tc.MinBusinesses)
	tc.MinOperations = clonePtr(tc.MinOperations)
	tc.MinMembers = clonePtr(tc.MinMembers)
	tc.MinLevel = clonePtr(tc.MinLevel)
	tc.MaxLevel = clonePtr(tc.MaxLevel)
	tc.CooldownMinutes = clonePtr(tc.CooldownMinutes)

	choices := make([]Choice, len(e.Choices))
	for i, c := range e.Choices {
		c.Requirements = clonePtr(c.Requirements)
		c.SuccessChance = clonePtr(c.SuccessChance)
		c.FailureConsequences = clonePtr(c.FailureConsequences)
		choices[i] = c
	}
	e.Choices = choices

	e.TriggeredAt = clonePtr(e.TriggeredAt)
	e.LastTriggered = clonePtr(e.LastTriggered)
	e.ResolvedAt = clonePtr(e.ResolvedAt)
	e.ChosenChoiceID = clonePtr(e.ChosenChoiceID)
	e.Outcome = clonePtr(e.Outcome)
	return e
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Lookups return the index of the element with the given id, or -1.

func (gs *GameState) Territory(id string) int {
	return slices.IndexFunc(gs.Territories, func(t Territory) bool { return t.ID == id })
}

func (gs *GameState) Business(id string) int {
	return slices.IndexFunc(gs.Businesses, func(b Business) bool { return b.ID == id })
}

func (gs *GameState) Operation(id string) int {
	return slices.IndexFunc(gs.Operations, func(o Operation) bool { return o.ID == id })
}

func (gs *GameState) Gang(id string) int {
	return slices.IndexFunc(gs.RivalGangs, func(g RivalGang) bool { return g.ID == id })
}

func (gs *GameState) GangEvent(id string) int {
	return slices.IndexFunc(gs.GangEvents, func(e GangEvent) bool { return e.ID == id })
}

func (gs *GameState) Event(id string) int {
	return slices.IndexFunc(gs.Events, func(e GameEvent) bool { return e.ID == id })
}

// ManagedBusiness returns the id of the business the member manages, if any.
func (gs *GameState) ManagedBusiness(memberID string) (string, bool) {
	for _, b := range gs.Businesses {
		if b.ManagerID != nil && *b.ManagerID == memberID {
			return b.ID, true
		}
	}
	return "", false
}

// PlayerStrength is respekt plus five per living member; used by every fight roll.
func (gs *GameState) PlayerStrength() int {
	return gs.Player.Respekt + 5*gs.Chapter.LivingMembers()
}

// RecordEvent appends a history record, keeping only the newest EventHistoryLimit.
func (gs *GameState) RecordEvent(r EventRecord) {
	gs.EventHistory = append(gs.EventHistory, r)
	if n := len(gs.EventHistory); n > EventHistoryLimit {
		gs.EventHistory = slices.Clone(gs.EventHistory[n-EventHistoryLimit:])
	}
}

// DeactivateEvent removes id from the active-events list.
func (gs *GameState) DeactivateEvent(id string) {
	gs.ActiveEvents = slices.DeleteFunc(gs.ActiveEvents, func(a string) bool { return a == id })
}

// GameStateView implementation for trigger evaluation.

func (gs *GameState) GetHeat() int                  { return gs.Player.Heat }
func (gs *GameState) GetCash() int64                { return gs.Player.Cash }
func (gs *GameState) GetRespekt() int               { return gs.Player.Respekt }
func (gs *GameState) GetInfluence() int64           { return gs.Player.Influence }
func (gs *GameState) GetLevel() int                 { return gs.Player.Level }
func (gs *GameState) GetControlledTerritories() int { return gs.TerritoryStats.Controlled }
func (gs *GameState) GetOwnedBusinesses() int       { return gs.BusinessStats.Owned }
func (gs *GameState) GetActiveOperations() int      { return gs.OperationStats.Active }
func (gs *GameState) GetMemberCount() int           { return gs.Chapter.Stats.TotalMembers }
