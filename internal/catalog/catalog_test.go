package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/mafios/pkg/state"
)

func TestDefault_IsValid(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.NotEmpty(t, c.Members)
	assert.NotEmpty(t, c.Territories)
	assert.NotEmpty(t, c.Businesses)
	assert.NotEmpty(t, c.Operations)
	assert.NotEmpty(t, c.Gangs)
	assert.NotEmpty(t, c.Crimes)

	types := map[state.EventType]bool{}
	for _, e := range c.Events {
		types[e.Type] = true
	}
	assert.Len(t, types, 10, "one event per event type")
}

func TestNewGameState(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	gs := NewGameState(c, "Kungen")

	assert.Equal(t, "Kungen", gs.Player.Name)
	assert.Equal(t, 1, gs.Player.Level)
	assert.Equal(t, c.StartingCash, gs.Player.Cash)
	assert.Equal(t, c.StartingRespekt, gs.Player.Respekt)
	assert.Equal(t, state.SchemaVersion, gs.Version)
	assert.Equal(t, len(c.Members), gs.Chapter.Stats.TotalMembers)
	assert.Equal(t, 1, gs.TerritoryStats.Controlled)
	assert.Equal(t, int64(400), gs.TerritoryStats.TotalIncome)
	assert.Empty(t, gs.ActiveEvents)
	assert.NotNil(t, gs.CrimeCooldowns)

	for _, g := range gs.RivalGangs {
		assert.Equal(t, state.RelationFor(g.Hostility), g.RelationStatus, g.ID)
	}
	for _, op := range gs.Operations {
		assert.NotNil(t, op.AssignedMemberIDs, op.ID)
	}
}

func TestNewGameState_SharesNothingWithCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	gs := NewGameState(c, "Boss")
	gs.Territories[0].Status = state.TerritoryNeutral
	gs.Businesses[1].PrerequisiteBusinesses[0] = "changed"
	*gs.Events[0].TriggerConditions.MinHeat = 1

	assert.Equal(t, state.TerritoryControlled, c.Territories[0].Status)
	assert.Equal(t, "bar_hornet", c.Businesses[1].PrerequisiteBusinesses[0])
	assert.Equal(t, 50, *c.Events[0].TriggerConditions.MinHeat)
}

func TestCrime(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	cr, ok := c.Crime("pickpocket")
	require.True(t, ok)
	assert.Equal(t, 80, cr.SuccessChance)

	_, ok = c.Crime("tax_fraud")
	assert.False(t, ok)
}

func TestParse_Strict(t *testing.T) {
	_, err := Parse([]byte("chapter: X\nbogus: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed strict YAML unmarshaling")

	_, err = Parse(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chapter: Göteborg Chapter
startingCash: 500
crimes:
  - {id: shoplift, name: Snatteri, requiredLevel: 1, successChance: 90, minReward: 10, maxReward: 50}
`), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Göteborg Chapter", c.Chapter)
	require.NoError(t, c.Validate())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := &Catalog{
		Chapter: "Test",
		Members: []state.Member{
			{ID: "Erik", Role: "Boss", Loyalty: 150},
			{ID: "lasse", Role: state.RoleEnforcer, Status: state.MemberOnMission},
		},
		Territories: []state.Territory{
			{ID: "a", Status: "Owned"},
			{ID: "a", Status: state.TerritoryNeutral, DefenseLevel: 11},
		},
		Businesses: []state.Business{
			{ID: "bar", Status: state.BusinessAvailable, Level: 1, MaxLevel: 3, PrerequisiteBusinesses: []string{"club"}},
			{ID: "shop", Status: state.BusinessOwned, Level: 0, MaxLevel: 3},
		},
		Operations: []state.Operation{
			{ID: "ops", Type: "Heist", Status: state.OperationReady},
		},
		Gangs: []state.RivalGang{
			{ID: "wolves", Hostility: -150, Strength: 0},
		},
		Events: []state.GameEvent{
			{ID: "raid", Type: "earthquake", Repeatable: true},
		},
		Crimes: []state.Crime{
			{ID: "heist", SuccessChance: 120, MinReward: 10, MaxReward: 5},
		},
	}

	err := c.Validate()
	require.Error(t, err)
	msg := err.Error()

	for _, want := range []string{
		"member id 'Erik' should be lowercase snake_case",
		"member 'Erik' has unknown role 'Boss'",
		"member 'Erik' loyalty is 150",
		"member 'lasse' cannot start on a mission",
		"territory 'a' has unknown status 'Owned'",
		"duplicate territory id 'a'",
		"territory 'a' defenseLevel is 11",
		"business 'bar' requires unknown business 'club'",
		"business 'bar' has prerequisites and should start locked",
		"business 'shop' cannot start owned",
		"business 'shop' level 0 is outside 1..3",
		"operation 'ops' has unknown type 'Heist'",
		"operation 'ops' maxMembers must be at least 1",
		"operation 'ops' produces neither income nor heat reduction",
		"gang 'wolves' hostility -150",
		"gang 'wolves' strength must be at least 1",
		"event 'raid' has unknown type 'earthquake'",
		"event 'raid' has no title",
		"event 'raid' probability 0.0",
		"repeatable event 'raid' has no cooldown",
		"event 'raid' has no choices",
		"crime 'heist' successChance is 120",
		"crime 'heist' minReward exceeds maxReward",
		"crime 'heist' requiredLevel must be at least 1",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"a", true},
		{"bar_hornet", true},
		{"gamla_stan2", true},
		{"Bar", false},
		{"bar-1", false},
		{"_bar", false},
		{"bar_", false},
		{"1bar", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, isValidID(tt.id))
		})
	}
}
