package state

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/mafios/pkg/conditionals"
)

func ptr[T any](v T) *T { return &v }

func TestNormalize_ZeroValue(t *testing.T) {
	var gs GameState
	gs.Player.Respekt = 140
	gs.Player.Heat = -3
	gs.Player.Cash = -50
	gs.Normalize()

	assert.Equal(t, SchemaVersion, gs.Version)
	assert.Equal(t, 1, gs.Player.Level)
	assert.Equal(t, int64(1000), gs.Player.ExperienceToNext)
	assert.Equal(t, 100, gs.Player.Respekt)
	assert.Equal(t, 0, gs.Player.Heat)
	assert.Equal(t, int64(0), gs.Player.Cash)

	assert.NotNil(t, gs.Chapter.Members)
	assert.NotNil(t, gs.Territories)
	assert.NotNil(t, gs.Businesses)
	assert.NotNil(t, gs.Operations)
	assert.NotNil(t, gs.RivalGangs)
	assert.NotNil(t, gs.GangEvents)
	assert.NotNil(t, gs.Events)
	assert.NotNil(t, gs.ActiveEvents)
	assert.NotNil(t, gs.EventHistory)
	assert.NotNil(t, gs.CrimeCooldowns)
}

func TestNormalize_OlderSave(t *testing.T) {
	gs := GameState{
		Version: 1,
		Player:  Player{Level: 3},
		Businesses: []Business{
			{ID: "bar", Status: BusinessOwned, IncomePerTick: 100},
			{ID: "club", Status: BusinessLocked, PrerequisiteBusinesses: []string{"bar"}},
			{ID: "casino", Status: BusinessLocked, PrerequisiteBusinesses: []string{"club"}},
		},
		Operations: []Operation{{ID: "patrol", Status: OperationReady}},
		RivalGangs: []RivalGang{{ID: "wolves", Hostility: -80}},
	}
	gs.Normalize()

	assert.Equal(t, SchemaVersion, gs.Version)
	assert.Equal(t, ExperienceForLevel(3), gs.Player.ExperienceToNext)
	assert.Equal(t, BusinessAvailable, gs.Businesses[1].Status)
	assert.Equal(t, BusinessLocked, gs.Businesses[2].Status)
	assert.Equal(t, []string{}, gs.Operations[0].AssignedMemberIDs)
	assert.Equal(t, RelationHostile, gs.RivalGangs[0].RelationStatus)
	assert.Equal(t, BusinessStats{Owned: 1, Available: 1, Locked: 1, TotalIncome: 100}, gs.BusinessStats)
	assert.Equal(t, 1, gs.GangStats.Hostile)
}

func TestNormalize_KeepsNegotiatedRelation(t *testing.T) {
	gs := GameState{RivalGangs: []RivalGang{{ID: "syndikat", Hostility: -10, RelationStatus: RelationAllied}}}
	gs.Normalize()
	assert.Equal(t, RelationAllied, gs.RivalGangs[0].RelationStatus)
}

func TestClone_SharesNothing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	outcome := OutcomeSuccess
	gs := NewGameState("Kungen")
	gs.Chapter.Members = []Member{{ID: "erik", Name: "Erik", Loyalty: 80}}
	gs.Businesses = []Business{{ID: "bar", ManagerID: ptr("erik"), LaunderingCapacity: ptr(int64(100))}}
	gs.Operations = []Operation{{ID: "patrol", AssignedMemberIDs: []string{"erik"}, IncomePerTick: ptr(int64(5))}}
	gs.RivalGangs = []RivalGang{{ID: "wolves", LastAttack: &now}}
	gs.GangEvents = []GangEvent{{ID: "g1", Outcome: &outcome, TargetTerritoryID: ptr("sodermalm")}}
	gs.Events = []GameEvent{{
		ID:                "raid",
		TriggerConditions: conditionals.TriggerConditions{MinHeat: ptr(50)},
		Choices:           []Choice{{ID: "bribe", SuccessChance: ptr(60)}},
		ChosenChoiceID:    ptr("bribe"),
	}}
	gs.ActiveEvents = []string{"raid"}
	gs.CrimeCooldowns["pickpocket"] = now

	c := gs.Clone()
	c.Chapter.Members[0].Loyalty = 1
	*c.Businesses[0].ManagerID = "lasse"
	*c.Businesses[0].LaunderingCapacity = 1
	c.Operations[0].AssignedMemberIDs[0] = "lasse"
	*c.Operations[0].IncomePerTick = 1
	*c.RivalGangs[0].LastAttack = now.Add(time.Hour)
	*c.GangEvents[0].Outcome = OutcomeFailure
	*c.GangEvents[0].TargetTerritoryID = "rinkeby"
	*c.Events[0].TriggerConditions.MinHeat = 1
	*c.Events[0].Choices[0].SuccessChance = 1
	*c.Events[0].ChosenChoiceID = "run"
	c.ActiveEvents[0] = "other"
	c.CrimeCooldowns["pickpocket"] = now.Add(time.Hour)

	assert.Equal(t, 80, gs.Chapter.Members[0].Loyalty)
	assert.Equal(t, "erik", *gs.Businesses[0].ManagerID)
	assert.Equal(t, int64(100), *gs.Businesses[0].LaunderingCapacity)
	assert.Equal(t, "erik", gs.Operations[0].AssignedMemberIDs[0])
	assert.Equal(t, int64(5), *gs.Operations[0].IncomePerTick)
	assert.Equal(t, now, *gs.RivalGangs[0].LastAttack)
	assert.Equal(t, OutcomeSuccess, *gs.GangEvents[0].Outcome)
	assert.Equal(t, "sodermalm", *gs.GangEvents[0].TargetTerritoryID)
	assert.Equal(t, 50, *gs.Events[0].TriggerConditions.MinHeat)
	assert.Equal(t, 60, *gs.Events[0].Choices[0].SuccessChance)
	assert.Equal(t, "bribe", *gs.Events[0].ChosenChoiceID)
	assert.Equal(t, "raid", gs.ActiveEvents[0])
	assert.Equal(t, now, gs.CrimeCooldowns["pickpocket"])
}

func TestGameState_JSONFieldNames(t *testing.T) {
	gs := NewGameState("Kungen")
	gs.Player.Cash = 1200
	gs.Player.Heat = 7

	data, err := json.Marshal(gs)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "version")

	var player map[string]any
	require.NoError(t, json.Unmarshal(raw["player"], &player))
	assert.EqualValues(t, 1200, player["kontanter"])
	assert.EqualValues(t, 7, player["polisbevakning"])
}

func TestGainExperience(t *testing.T) {
	tests := []struct {
		name       string
		amount     int64
		wantLevel  int
		wantExp    int64
		wantGained int
	}{
		{"nothing", 0, 1, 0, 0},
		{"negative", -50, 1, 0, 0},
		{"partial", 400, 1, 400, 0},
		{"exact", 1000, 2, 0, 1},
		{"carry", 1200, 2, 200, 1},
		{"two levels", 1000 + 1500 + 10, 3, 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Kungen")
			gained := p.GainExperience(tt.amount)
			assert.Equal(t, tt.wantGained, gained)
			assert.Equal(t, tt.wantLevel, p.Level)
			assert.Equal(t, tt.wantExp, p.Experience)
			assert.Equal(t, ExperienceForLevel(tt.wantLevel), p.ExperienceToNext)
		})
	}
}

func TestExperienceForLevel(t *testing.T) {
	assert.Equal(t, int64(1000), ExperienceForLevel(0))
	assert.Equal(t, int64(1000), ExperienceForLevel(1))
	assert.Equal(t, int64(1500), ExperienceForLevel(2))
	assert.Equal(t, int64(2250), ExperienceForLevel(3))
}

func TestPlayerBounds(t *testing.T) {
	p := NewPlayer("Kungen")
	p.Credit(100)
	p.Debit(250)
	assert.Equal(t, int64(0), p.Cash)

	p.AdjustRespekt(130)
	assert.Equal(t, 100, p.Respekt)
	p.AdjustHeat(-5)
	assert.Equal(t, 0, p.Heat)
	p.AdjustInfluence(-10)
	assert.Equal(t, int64(0), p.Influence)
}

func TestRelationFor(t *testing.T) {
	tests := []struct {
		hostility float64
		want      RelationStatus
	}{
		{-100, RelationHostile},
		{-60, RelationHostile},
		{-59.5, RelationNeutral},
		{-20, RelationNeutral},
		{-19, RelationTruce},
		{0, RelationTruce},
		{40, RelationTruce},
		{41, RelationAllied},
		{100, RelationAllied},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.1f", tt.hostility), func(t *testing.T) {
			assert.Equal(t, tt.want, RelationFor(tt.hostility))
		})
	}
}

func TestRivalGang_Adjust(t *testing.T) {
	g := RivalGang{Hostility: -50, Strength: 5}
	g.AdjustHostility(-80)
	assert.Equal(t, HostilityMin, g.Hostility)
	assert.Equal(t, RelationHostile, g.RelationStatus)

	g.AdjustStrength(-10)
	assert.Equal(t, GangStrengthMin, g.Strength)
	g.AdjustStrength(500)
	assert.Equal(t, GangStrengthMax, g.Strength)
}

func TestRecomputeChapterStats(t *testing.T) {
	members := []Member{
		{ID: "a", Status: MemberActive, Power: 10, Loyalty: 80},
		{ID: "b", Status: MemberOnMission, Power: 6, Loyalty: 60},
		{ID: "c", Status: MemberInactive, Power: 4, Loyalty: 41},
		{ID: "d", Status: MemberDeceased, Power: 99, Loyalty: 100},
	}
	st := RecomputeChapterStats(members)
	assert.Equal(t, ChapterStats{
		TotalMembers:   3,
		ActiveMembers:  1,
		OnMission:      1,
		TotalPower:     20,
		AverageLoyalty: 60,
	}, st)

	c := Chapter{Members: members}
	assert.Equal(t, 3, c.LivingMembers())
	assert.Equal(t, 2, c.Member("c"))
	assert.Equal(t, -1, c.Member("z"))

	assert.Equal(t, ChapterStats{}, RecomputeChapterStats(nil))
}

func TestRecomputeStats(t *testing.T) {
	territories := []Territory{
		{Status: TerritoryControlled, Income: 400},
		{Status: TerritoryControlled, Income: 100},
		{Status: TerritoryContested, Income: 900},
		{Status: TerritoryEnemy},
		{Status: TerritoryNeutral},
	}
	assert.Equal(t, TerritoryStats{Controlled: 2, Contested: 1, Enemy: 1, Neutral: 1, TotalIncome: 500},
		RecomputeTerritoryStats(territories))

	ops := []Operation{
		{Status: OperationActive, IncomePerTick: ptr(int64(300))},
		{Status: OperationActive, HeatReductionPerTick: ptr(2)},
		{Status: OperationReady, IncomePerTick: ptr(int64(999))},
	}
	assert.Equal(t, OperationStats{Active: 2, TotalIncome: 300, TotalHeatReduction: 2},
		RecomputeOperationStats(ops))

	gangs := []RivalGang{
		{RelationStatus: RelationHostile},
		{RelationStatus: RelationTruce},
		{RelationStatus: RelationTruce},
	}
	events := []GangEvent{{Resolved: true}, {}, {}}
	assert.Equal(t, GangStats{Hostile: 1, Truce: 2, UnresolvedEvents: 2}, RecomputeGangStats(gangs, events))
}

func TestBusiness_EffectiveIncome(t *testing.T) {
	assert.Equal(t, int64(750), Business{IncomePerTick: 1000, Efficiency: 75}.EffectiveIncome())
	assert.Equal(t, int64(1000), Business{IncomePerTick: 1000, Efficiency: 150}.EffectiveIncome())
	assert.Equal(t, int64(0), Business{IncomePerTick: 1000}.EffectiveIncome())
}

func TestUnlockBusinesses(t *testing.T) {
	bs := []Business{
		{ID: "bar", Status: BusinessOwned},
		{ID: "shop", Status: BusinessAvailable},
		{ID: "club", Status: BusinessLocked, PrerequisiteBusinesses: []string{"bar", "shop"}},
		{ID: "free", Status: BusinessLocked},
	}
	assert.True(t, UnlockBusinesses(bs))
	assert.Equal(t, BusinessLocked, bs[2].Status)
	assert.Equal(t, BusinessAvailable, bs[3].Status)

	bs[1].Status = BusinessOwned
	assert.True(t, UnlockBusinesses(bs))
	assert.Equal(t, BusinessAvailable, bs[2].Status)
	assert.False(t, UnlockBusinesses(bs))
}

func TestRecordEvent_KeepsNewest(t *testing.T) {
	gs := NewGameState("Kungen")
	for i := range EventHistoryLimit + 3 {
		gs.RecordEvent(EventRecord{EventID: fmt.Sprintf("e%d", i)})
	}
	require.Len(t, gs.EventHistory, EventHistoryLimit)
	assert.Equal(t, "e3", gs.EventHistory[0].EventID)
	assert.Equal(t, fmt.Sprintf("e%d", EventHistoryLimit+2), gs.EventHistory[EventHistoryLimit-1].EventID)
}

func TestDeactivateEvent(t *testing.T) {
	gs := NewGameState("Kungen")
	gs.ActiveEvents = []string{"raid", "windfall"}
	gs.DeactivateEvent("raid")
	gs.DeactivateEvent("missing")
	assert.Equal(t, []string{"windfall"}, gs.ActiveEvents)
}

func TestCrimeReady(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gs := NewGameState("Kungen")
	assert.True(t, gs.CrimeReady("pickpocket", now))

	gs.CrimeCooldowns["pickpocket"] = now.Add(time.Minute)
	assert.False(t, gs.CrimeReady("pickpocket", now))
	assert.True(t, gs.CrimeReady("pickpocket", now.Add(time.Minute)))
}

func TestRequirementsMet(t *testing.T) {
	gs := NewGameState("Kungen")
	gs.Player.Cash = 5000
	gs.Player.Respekt = 30
	gs.Player.Level = 2
	gs.Chapter.Members = []Member{{ID: "a", Status: MemberActive}, {ID: "b", Status: MemberDeceased}}

	tests := []struct {
		name string
		req  Requirements
		want bool
	}{
		{"empty", Requirements{}, true},
		{"cash ok", Requirements{Cash: 5000}, true},
		{"cash short", Requirements{Cash: 5001}, false},
		{"respekt short", Requirements{Respekt: 31}, false},
		{"influence short", Requirements{Influence: 1}, false},
		{"dead members do not count", Requirements{Members: 2}, false},
		{"level ok", Requirements{Level: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Met(&gs))
		})
	}
}

func TestGameEvent_Choice(t *testing.T) {
	e := GameEvent{Choices: []Choice{{ID: "pay"}, {ID: "run"}}}
	c, ok := e.Choice("run")
	assert.True(t, ok)
	assert.Equal(t, "run", c.ID)
	_, ok = e.Choice("fight")
	assert.False(t, ok)
}

func TestPlayerStrength(t *testing.T) {
	gs := NewGameState("Kungen")
	gs.Player.Respekt = 40
	gs.Chapter.Members = []Member{{Status: MemberActive}, {Status: MemberInactive}, {Status: MemberDeceased}}
	assert.Equal(t, 50, gs.PlayerStrength())
}
