package actions

import (
	"math"

	"github.com/jwebster45206/mafios/pkg/state"
)

const (
	managerEfficiency     = 10
	upgradeEfficiency     = 5
	upgradeIncomeFactor   = 1.25
	launderHeatPerKronor  = 10000
	bribeHeatPerKronor    = 2000
	businessResaleDivisor = 2
)

// CanPurchase reports whether the player meets every purchase precondition for b.
func CanPurchase(gs *state.GameState, b state.Business) bool {
	switch b.Status {
	case state.BusinessOwned, state.BusinessLocked:
		return false
	case state.BusinessAvailable:
	default:
		return false
	}
	if gs.Player.Level < b.RequiredLevel ||
		gs.Player.Respekt < b.RequiredRespekt ||
		gs.Player.Cash < b.PurchasePrice {
		return false
	}
	for _, pre := range b.PrerequisiteBusinesses {
		j := gs.Business(pre)
		if j < 0 || gs.Businesses[j].Status != state.BusinessOwned {
			return false
		}
	}
	return true
}

// PurchaseBusiness buys an available business whose level, respekt, price and
// prerequisite gates are all met.
func (a *Actions) PurchaseBusiness(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Business(id)
		if i < 0 || !CanPurchase(gs, gs.Businesses[i]) {
			return false
		}
		gs.Player.Debit(gs.Businesses[i].PurchasePrice)
		gs.Businesses[i].Status = state.BusinessOwned
		state.UnlockBusinesses(gs.Businesses)
		gs.BusinessStats = state.RecomputeBusinessStats(gs.Businesses)
		return true
	})
}

// BusinessUpgradeCost scales linearly with the current level.
func BusinessUpgradeCost(b state.Business) int64 {
	return b.UpgradeCost * int64(b.Level)
}

// UpgradeBusiness raises an owned business one level.
func (a *Actions) UpgradeBusiness(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Business(id)
		if i < 0 {
			return false
		}
		b := &gs.Businesses[i]
		cost := BusinessUpgradeCost(*b)
		if b.Status != state.BusinessOwned || b.Level >= b.MaxLevel || gs.Player.Cash < cost {
			return false
		}
		gs.Player.Debit(cost)
		b.Level++
		b.IncomePerTick = int64(math.Floor(float64(b.IncomePerTick) * upgradeIncomeFactor))
		b.Efficiency = min(state.PercentMax, b.Efficiency+upgradeEfficiency)
		gs.BusinessStats = state.RecomputeBusinessStats(gs.Businesses)
		return true
	})
}

// SellBusiness returns an owned business to the market for half its price.
func (a *Actions) SellBusiness(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Business(id)
		if i < 0 || gs.Businesses[i].Status != state.BusinessOwned {
			return false
		}
		b := &gs.Businesses[i]
		gs.Player.Credit(b.PurchasePrice / businessResaleDivisor)
		b.Status = state.BusinessAvailable
		if b.ManagerID != nil {
			b.ManagerID = nil
			b.Efficiency = max(0, b.Efficiency-managerEfficiency)
		}
		gs.BusinessStats = state.RecomputeBusinessStats(gs.Businesses)
		return true
	})
}

// AvailableManagers lists active members who manage nothing yet. Callers use it
// to keep one business per manager.
func AvailableManagers(gs *state.GameState) []state.Member {
	var out []state.Member
	for _, m := range gs.Chapter.Members {
		if m.Status != state.MemberActive {
			continue
		}
		if _, busy := gs.ManagedBusiness(m.ID); busy {
			continue
		}
		out = append(out, m)
	}
	return out
}

// AssignManager puts an available member in charge of an owned business.
func (a *Actions) AssignManager(businessID, memberID string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Business(businessID)
		j := gs.Chapter.Member(memberID)
		if i < 0 || j < 0 {
			return false
		}
		b := &gs.Businesses[i]
		if b.Status != state.BusinessOwned || b.ManagerID != nil {
			return false
		}
		if gs.Chapter.Members[j].Status != state.MemberActive {
			return false
		}
		if _, busy := gs.ManagedBusiness(memberID); busy {
			return false
		}
		id := memberID
		b.ManagerID = &id
		b.Efficiency = min(state.PercentMax, b.Efficiency+managerEfficiency)
		return true
	})
}

func (a *Actions) RemoveManager(businessID string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Business(businessID)
		if i < 0 || gs.Businesses[i].ManagerID == nil {
			return false
		}
		b := &gs.Businesses[i]
		b.ManagerID = nil
		b.Efficiency = max(0, b.Efficiency-managerEfficiency)
		return true
	})
}

// LaunderingFee is the fee charged for washing amount through b, rounded up.
func LaunderingFee(b state.Business, amount int64) int64 {
	if b.LaunderingFee == nil {
		return 0
	}
	return int64(math.Ceil(float64(amount) * *b.LaunderingFee / 100))
}

// LaunderMoney runs amount through an owned front, paying its fee and cooling
// heat by one point per 10000 kronor, at least one.
func (a *Actions) LaunderMoney(businessID string, amount int64) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Business(businessID)
		if i < 0 || amount <= 0 {
			return false
		}
		b := gs.Businesses[i]
		if b.Status != state.BusinessOwned || b.LaunderingCapacity == nil || *b.LaunderingCapacity < amount {
			return false
		}
		fee := LaunderingFee(b, amount)
		if gs.Player.Cash < fee {
			return false
		}
		gs.Player.Debit(fee)
		gs.Player.AdjustHeat(-int(max(1, amount/launderHeatPerKronor)))
		return true
	})
}
