package actions

import (
	"math"
	"slices"

	"github.com/jwebster45206/mafios/pkg/state"
)

// StartOperation activates a ready operation for its activation cost.
func (a *Actions) StartOperation(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Operation(id)
		if i < 0 {
			return false
		}
		op := &gs.Operations[i]
		switch op.Status {
		case state.OperationReady:
		case state.OperationActive, state.OperationCooldown:
			return false
		default:
			return false
		}
		if gs.Player.Cash < op.ActivationCost {
			return false
		}
		gs.Player.Debit(op.ActivationCost)
		op.Status = state.OperationActive
		gs.OperationStats = state.RecomputeOperationStats(gs.Operations)
		return true
	})
}

// StopOperation returns an active operation to ready and sends its crew home.
func (a *Actions) StopOperation(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Operation(id)
		if i < 0 || gs.Operations[i].Status != state.OperationActive {
			return false
		}
		op := &gs.Operations[i]
		for _, memberID := range op.AssignedMemberIDs {
			if j := gs.Chapter.Member(memberID); j >= 0 && gs.Chapter.Members[j].Status == state.MemberOnMission {
				gs.Chapter.Members[j].Status = state.MemberActive
			}
		}
		op.AssignedMemberIDs = []string{}
		op.Status = state.OperationReady
		gs.OperationStats = state.RecomputeOperationStats(gs.Operations)
		gs.Chapter.Stats = state.RecomputeChapterStats(gs.Chapter.Members)
		return true
	})
}

// OperationUpgradeCost scales linearly with the current level.
func OperationUpgradeCost(op state.Operation) int64 {
	return op.UpgradeCost * int64(op.Level)
}

// UpgradeOperation raises an operation one level: efficiency +5 (max 100),
// income x1.25 rounded down, heat reduction +1.
func (a *Actions) UpgradeOperation(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Operation(id)
		if i < 0 {
			return false
		}
		op := &gs.Operations[i]
		cost := OperationUpgradeCost(*op)
		if op.Level >= op.MaxLevel || gs.Player.Cash < cost {
			return false
		}
		gs.Player.Debit(cost)
		op.Level++
		op.Efficiency = min(state.PercentMax, op.Efficiency+upgradeEfficiency)
		if op.IncomePerTick != nil {
			income := int64(math.Floor(float64(*op.IncomePerTick) * upgradeIncomeFactor))
			op.IncomePerTick = &income
		}
		if op.HeatReductionPerTick != nil {
			reduction := *op.HeatReductionPerTick + 1
			op.HeatReductionPerTick = &reduction
		}
		gs.OperationStats = state.RecomputeOperationStats(gs.Operations)
		return true
	})
}

// AssignMember sends an active member on an operation with a free slot.
func (a *Actions) AssignMember(operationID, memberID string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Operation(operationID)
		j := gs.Chapter.Member(memberID)
		if i < 0 || j < 0 {
			return false
		}
		op := &gs.Operations[i]
		if op.HasMember(memberID) || len(op.AssignedMemberIDs) >= op.MaxMembers {
			return false
		}
		if gs.Chapter.Members[j].Status != state.MemberActive {
			return false
		}
		op.AssignedMemberIDs = append(op.AssignedMemberIDs, memberID)
		gs.Chapter.Members[j].Status = state.MemberOnMission
		gs.Chapter.Stats = state.RecomputeChapterStats(gs.Chapter.Members)
		return true
	})
}

func (a *Actions) UnassignMember(operationID, memberID string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Operation(operationID)
		if i < 0 || !gs.Operations[i].HasMember(memberID) {
			return false
		}
		op := &gs.Operations[i]
		op.AssignedMemberIDs = slices.DeleteFunc(op.AssignedMemberIDs, func(m string) bool { return m == memberID })
		if j := gs.Chapter.Member(memberID); j >= 0 && gs.Chapter.Members[j].Status == state.MemberOnMission {
			gs.Chapter.Members[j].Status = state.MemberActive
		}
		gs.Chapter.Stats = state.RecomputeChapterStats(gs.Chapter.Members)
		return true
	})
}
