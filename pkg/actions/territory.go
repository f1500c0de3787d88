package actions

import (
	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
)

const (
	maxDefenseLevel     = 10
	claimIncomeMultiple = 10
	fortifyBaseCost     = 5000
)

// ClaimTerritory takes a neutral territory for ten times its income.
func (a *Actions) ClaimTerritory(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Territory(id)
		if i < 0 {
			return false
		}
		t := &gs.Territories[i]
		cost := t.Income * claimIncomeMultiple
		if t.Status != state.TerritoryNeutral || gs.Player.Cash < cost {
			return false
		}
		gs.Player.Debit(cost)
		gs.Player.AdjustHeat(5)
		t.Status = state.TerritoryControlled
		t.Control = 50
		gs.TerritoryStats = state.RecomputeTerritoryStats(gs.Territories)
		return true
	})
}

// TerritoryAttackChance is the win probability against a territory's defense.
func TerritoryAttackChance(gs *state.GameState, t state.Territory) float64 {
	ps := float64(gs.PlayerStrength())
	defense := float64(t.DefenseLevel * 10)
	if ps+defense <= 0 {
		return 0
	}
	return ps / (ps + defense)
}

// AttackTerritory assaults an enemy or contested territory and returns whether
// it was taken. A territory that cannot be attacked returns false unchanged.
func (a *Actions) AttackTerritory(id string) bool {
	won := false
	a.update(func(gs *state.GameState) bool {
		i := gs.Territory(id)
		if i < 0 {
			return false
		}
		t := &gs.Territories[i]
		switch t.Status {
		case state.TerritoryEnemy, state.TerritoryContested:
		case state.TerritoryControlled, state.TerritoryNeutral:
			return false
		default:
			return false
		}

		won = dice.Probability(a.roller, TerritoryAttackChance(gs, *t))
		if won {
			t.Status = state.TerritoryControlled
			t.Control = 40
			gs.Player.AdjustRespekt(5)
			gs.Player.AdjustHeat(15)
		} else {
			t.Control = state.ClampPercent(t.Control - 10)
			gs.Player.AdjustRespekt(-3)
			gs.Player.AdjustHeat(10)
		}
		gs.TerritoryStats = state.RecomputeTerritoryStats(gs.Territories)
		return true
	})
	return won
}

// FortifyCost is the price of the next defense level.
func FortifyCost(t state.Territory) int64 {
	return int64(fortifyBaseCost * (t.DefenseLevel + 1))
}

// FortifyTerritory raises defense and control of a controlled territory.
func (a *Actions) FortifyTerritory(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Territory(id)
		if i < 0 {
			return false
		}
		t := &gs.Territories[i]
		cost := FortifyCost(*t)
		if t.Status != state.TerritoryControlled || t.DefenseLevel >= maxDefenseLevel || gs.Player.Cash < cost {
			return false
		}
		gs.Player.Debit(cost)
		t.DefenseLevel++
		t.Control = state.ClampPercent(t.Control + 10)
		return true
	})
}

// AbandonTerritory gives a controlled territory back to nobody.
func (a *Actions) AbandonTerritory(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Territory(id)
		if i < 0 || gs.Territories[i].Status != state.TerritoryControlled {
			return false
		}
		gs.Territories[i].Status = state.TerritoryNeutral
		gs.Territories[i].Control = 0
		gs.TerritoryStats = state.RecomputeTerritoryStats(gs.Territories)
		return true
	})
}
