package actions

import "github.com/jwebster45206/mafios/pkg/state"

// AddCash credits (or, for a negative amount, debits) kontanter.
func (a *Actions) AddCash(amount int64) bool {
	return a.update(func(gs *state.GameState) bool {
		before := gs.Player.Cash
		gs.Player.Credit(amount)
		return gs.Player.Cash != before
	})
}

// SpendCash debits amount if the player can afford it.
func (a *Actions) SpendCash(amount int64) bool {
	return a.update(func(gs *state.GameState) bool {
		if amount <= 0 || gs.Player.Cash < amount {
			return false
		}
		gs.Player.Debit(amount)
		return true
	})
}

func (a *Actions) AddRespekt(delta int) bool {
	return a.update(func(gs *state.GameState) bool {
		before := gs.Player.Respekt
		gs.Player.AdjustRespekt(delta)
		return gs.Player.Respekt != before
	})
}

func (a *Actions) AddHeat(delta int) bool {
	return a.update(func(gs *state.GameState) bool {
		before := gs.Player.Heat
		gs.Player.AdjustHeat(delta)
		return gs.Player.Heat != before
	})
}

func (a *Actions) ReduceHeat(amount int) bool {
	if amount <= 0 {
		return false
	}
	return a.AddHeat(-amount)
}

func (a *Actions) AddInfluence(delta int64) bool {
	return a.update(func(gs *state.GameState) bool {
		before := gs.Player.Influence
		gs.Player.AdjustInfluence(delta)
		return gs.Player.Influence != before
	})
}

// AddExperience grants experience and applies level-ups.
func (a *Actions) AddExperience(amount int64) bool {
	levelled := 0
	ok := a.update(func(gs *state.GameState) bool {
		if amount <= 0 {
			return false
		}
		levelled = gs.Player.GainExperience(amount)
		return true
	})
	if levelled > 0 {
		a.logger.Info("Player levelled up", "levels", levelled)
	}
	return ok
}

// BribePolice pays amount to cool heat by one point per 2000 kronor, at least one.
func (a *Actions) BribePolice(amount int64) bool {
	return a.update(func(gs *state.GameState) bool {
		if amount <= 0 || gs.Player.Cash < amount || gs.Player.Heat == 0 {
			return false
		}
		gs.Player.Debit(amount)
		gs.Player.AdjustHeat(-int(max(1, amount/bribeHeatPerKronor)))
		return true
	})
}
