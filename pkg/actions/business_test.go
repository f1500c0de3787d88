package actions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/mafios/pkg/state"
)

func TestPurchaseBusiness_Scenario(t *testing.T) {
	a := newTestActions(t, testState())

	assert.True(t, a.PurchaseBusiness("bar-1"))

	gs := a.State()
	assert.Equal(t, int64(5000), gs.Player.Cash)
	assert.Equal(t, state.BusinessOwned, gs.Businesses[gs.Business("bar-1")].Status)
	assert.Equal(t, 1, gs.BusinessStats.Owned)
	assert.Equal(t, int64(400), gs.BusinessStats.TotalIncome)
	assertStatsConsistent(t, gs)
}

func TestPurchaseBusiness_SecondCallIsNoOp(t *testing.T) {
	a := newTestActions(t, testState())
	require.True(t, a.PurchaseBusiness("bar-1"))

	first, err := json.Marshal(a.State())
	require.NoError(t, err)

	assert.False(t, a.PurchaseBusiness("bar-1"))

	second, err := json.Marshal(a.State())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestPurchaseBusiness_UnlocksDependents(t *testing.T) {
	gs := testState()
	gs.Player.Cash = 200000
	a := newTestActions(t, gs)

	assert.False(t, a.PurchaseBusiness("tvatt"), "prerequisite not owned")
	require.True(t, a.PurchaseBusiness("bar-1"))
	assert.Equal(t, state.BusinessAvailable, a.State().Businesses[1].Status)
	assert.True(t, a.PurchaseBusiness("tvatt"))

	after := a.State()
	assert.Equal(t, int64(50000), after.BusinessStats.TotalLaunderingCapacity)
	assertStatsConsistent(t, after)
}

func TestPurchaseBusiness_Preconditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gs *state.GameState)
	}{
		{"level too low", func(gs *state.GameState) { gs.Player.Level = 2 }},
		{"respekt too low", func(gs *state.GameState) { gs.Player.Respekt = 10 }},
		{"not enough cash", func(gs *state.GameState) { gs.Player.Cash = 24999 }},
		{"missing prerequisite", func(gs *state.GameState) {
			gs.Businesses[0].PrerequisiteBusinesses = []string{"ghost"}
		}},
		{"already owned", func(gs *state.GameState) { gs.Businesses[0].Status = state.BusinessOwned }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := testState()
			tt.mutate(&gs)
			a := newTestActions(t, gs)
			before := a.State()

			assert.False(t, a.PurchaseBusiness("bar-1"))
			assert.Equal(t, before, a.State())
		})
	}
}

func TestUpgradeBusiness(t *testing.T) {
	gs := testState()
	gs.Businesses[0].Status = state.BusinessOwned
	a := newTestActions(t, gs)

	assert.True(t, a.UpgradeBusiness("bar-1"))
	after := a.State()
	bar := after.Businesses[0]
	assert.Equal(t, 2, bar.Level)
	assert.Equal(t, int64(500), bar.IncomePerTick)
	assert.Equal(t, 85, bar.Efficiency)
	assert.Equal(t, int64(25000), after.Player.Cash)

	// level 2 costs 10000
	assert.True(t, a.UpgradeBusiness("bar-1"))
	assert.Equal(t, int64(15000), a.State().Player.Cash)
	assert.False(t, a.UpgradeBusiness("bar-1"), "max level")
	assertStatsConsistent(t, a.State())
}

func TestSellBusiness(t *testing.T) {
	a := newTestActions(t, testState())
	require.True(t, a.PurchaseBusiness("bar-1"))
	require.True(t, a.AssignManager("bar-1", "m1"))

	assert.True(t, a.SellBusiness("bar-1"))
	gs := a.State()
	bar := gs.Businesses[0]
	assert.Equal(t, state.BusinessAvailable, bar.Status)
	assert.Nil(t, bar.ManagerID)
	assert.Equal(t, 80, bar.Efficiency)
	assert.Equal(t, int64(17500), gs.Player.Cash)
	assert.False(t, a.SellBusiness("bar-1"))
	assertStatsConsistent(t, gs)
}

func TestManagers(t *testing.T) {
	gs := testState()
	gs.Player.Cash = 200000
	a := newTestActions(t, gs)
	require.True(t, a.PurchaseBusiness("bar-1"))
	require.True(t, a.PurchaseBusiness("tvatt"))

	snap := a.State()
	assert.Len(t, AvailableManagers(&snap), 3)

	assert.True(t, a.AssignManager("bar-1", "m1"))
	assert.False(t, a.AssignManager("bar-1", "m2"), "business already managed")
	assert.False(t, a.AssignManager("tvatt", "m1"), "member already manages a business")
	assert.True(t, a.AssignManager("tvatt", "m2"))

	snap = a.State()
	available := AvailableManagers(&snap)
	require.Len(t, available, 1)
	assert.Equal(t, "m3", available[0].ID)
	assert.Equal(t, 90, snap.Businesses[0].Efficiency)

	assert.True(t, a.RemoveManager("bar-1"))
	assert.False(t, a.RemoveManager("bar-1"))
	assert.Equal(t, 80, a.State().Businesses[0].Efficiency)
}

func TestLaunderMoney(t *testing.T) {
	gs := testState()
	gs.Businesses[1].Status = state.BusinessOwned
	gs.Player.Heat = 30
	a := newTestActions(t, gs)

	assert.True(t, a.LaunderMoney("tvatt", 25000))
	after := a.State()
	// fee 10% of 25000, heat -2
	assert.Equal(t, int64(27500), after.Player.Cash)
	assert.Equal(t, 28, after.Player.Heat)

	assert.False(t, a.LaunderMoney("tvatt", 60000), "over capacity")
	assert.False(t, a.LaunderMoney("tvatt", 0))
	assert.False(t, a.LaunderMoney("bar-1", 1000), "not owned")
}

func TestLaunderingFee_RoundsUp(t *testing.T) {
	b := state.Business{LaunderingFee: ptr(7.5)}
	assert.Equal(t, int64(1), LaunderingFee(b, 1))
	assert.Equal(t, int64(75), LaunderingFee(b, 1000))
	assert.Equal(t, int64(0), LaunderingFee(state.Business{}, 1000))
}
