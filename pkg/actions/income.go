package actions

import "github.com/jwebster45206/mafios/pkg/state"

// Income is one passive tick's worth of cash and heat.
type Income struct {
	Territories int64
	Operations  int64
	Businesses  int64
	Heat        int
}

func (i Income) Cash() int64 {
	return i.Territories + i.Operations + i.Businesses
}

func (i Income) Zero() bool {
	return i.Cash() == 0 && i.Heat == 0
}

// ComputeIncome sums territory income from the cached stats, active operation
// income and heat reduction, and efficiency-weighted business income minus
// business heat generation.
func ComputeIncome(gs *state.GameState) Income {
	inc := Income{Territories: gs.TerritoryStats.TotalIncome}
	for _, op := range gs.Operations {
		if op.Status != state.OperationActive {
			continue
		}
		if op.IncomePerTick != nil {
			inc.Operations += *op.IncomePerTick
		}
		if op.HeatReductionPerTick != nil {
			inc.Heat -= *op.HeatReductionPerTick
		}
	}
	for _, b := range gs.Businesses {
		if b.Status != state.BusinessOwned {
			continue
		}
		inc.Businesses += b.EffectiveIncome()
		inc.Heat += b.HeatGeneration
	}
	return inc
}

// ApplyPassiveIncome commits one tick of income. Nothing is committed when
// both totals are zero.
func (a *Actions) ApplyPassiveIncome() (Income, bool) {
	var inc Income
	ok := a.update(func(gs *state.GameState) bool {
		inc = ComputeIncome(gs)
		if inc.Zero() {
			return false
		}
		cash, heat := gs.Player.Cash, gs.Player.Heat
		gs.Player.Credit(inc.Cash())
		gs.Player.AdjustHeat(inc.Heat)
		return gs.Player.Cash != cash || gs.Player.Heat != heat
	})
	if ok {
		a.logger.Debug("Passive income applied", "cash", inc.Cash(), "heat", inc.Heat)
	}
	return inc, ok
}
