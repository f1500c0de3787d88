package conditionals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type view struct {
	heat, respekt, level                       int
	cash, influence                            int64
	territories, businesses, operations, crews int
}

func (v view) GetHeat() int                  { return v.heat }
func (v view) GetCash() int64                { return v.cash }
func (v view) GetRespekt() int               { return v.respekt }
func (v view) GetInfluence() int64           { return v.influence }
func (v view) GetLevel() int                 { return v.level }
func (v view) GetControlledTerritories() int { return v.territories }
func (v view) GetOwnedBusinesses() int       { return v.businesses }
func (v view) GetActiveOperations() int      { return v.operations }
func (v view) GetMemberCount() int           { return v.crews }

func ptr[T any](v T) *T { return &v }

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gs := view{
		heat: 55, respekt: 30, level: 4,
		cash: 20000, influence: 10,
		territories: 2, businesses: 1, operations: 1, crews: 3,
	}

	tests := []struct {
		name string
		tc   TriggerConditions
		last *time.Time
		want bool
	}{
		{"no gates", TriggerConditions{Probability: 10}, nil, true},
		{"min heat met", TriggerConditions{MinHeat: ptr(55)}, nil, true},
		{"min heat missed", TriggerConditions{MinHeat: ptr(56)}, nil, false},
		{"max heat missed", TriggerConditions{MaxHeat: ptr(54)}, nil, false},
		{"min cash missed", TriggerConditions{MinCash: ptr(int64(20001))}, nil, false},
		{"max cash met", TriggerConditions{MaxCash: ptr(int64(20000))}, nil, true},
		{"min respekt missed", TriggerConditions{MinRespekt: ptr(31)}, nil, false},
		{"max respekt missed", TriggerConditions{MaxRespekt: ptr(29)}, nil, false},
		{"min influence missed", TriggerConditions{MinInfluence: ptr(int64(11))}, nil, false},
		{"max influence missed", TriggerConditions{MaxInfluence: ptr(int64(9))}, nil, false},
		{"territories missed", TriggerConditions{MinTerritories: ptr(3)}, nil, false},
		{"businesses met", TriggerConditions{MinBusinesses: ptr(1)}, nil, true},
		{"operations missed", TriggerConditions{MinOperations: ptr(2)}, nil, false},
		{"members missed", TriggerConditions{MinMembers: ptr(4)}, nil, false},
		{"level window met", TriggerConditions{MinLevel: ptr(3), MaxLevel: ptr(4)}, nil, true},
		{"max level missed", TriggerConditions{MaxLevel: ptr(3)}, nil, false},
		{"every gate must hold", TriggerConditions{MinHeat: ptr(10), MinMembers: ptr(9)}, nil, false},
		{"cooldown never fired", TriggerConditions{CooldownMinutes: ptr(30)}, nil, true},
		{"cooldown running", TriggerConditions{CooldownMinutes: ptr(30)}, ptr(now.Add(-29 * time.Minute)), false},
		{"cooldown over", TriggerConditions{CooldownMinutes: ptr(30)}, ptr(now.Add(-30 * time.Minute)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.tc, gs, tt.last, now))
		})
	}
}

func TestHasGates(t *testing.T) {
	assert.False(t, TriggerConditions{}.HasGates())
	assert.False(t, TriggerConditions{Probability: 50}.HasGates())
	assert.True(t, TriggerConditions{MaxLevel: ptr(2)}.HasGates())
	assert.True(t, TriggerConditions{CooldownMinutes: ptr(5)}.HasGates())
}

func TestCooledDown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tc := TriggerConditions{CooldownMinutes: ptr(60)}

	assert.True(t, CooledDown(tc, nil, now))
	assert.True(t, CooledDown(TriggerConditions{}, ptr(now), now))
	assert.False(t, CooledDown(tc, ptr(now.Add(-59*time.Minute)), now))
	assert.True(t, CooledDown(tc, ptr(now.Add(-time.Hour)), now))
}
