package actions

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/mafios/pkg/state"
)

const (
	trainingBaseCost = 2000
	trainingGain     = 5
	trainingPower    = 2
)

// RecruitMember adds candidate to the roster for cost kontanter. An empty id
// is replaced with a fresh one.
func (a *Actions) RecruitMember(candidate state.Member, cost int64) bool {
	return a.update(func(gs *state.GameState) bool {
		if cost < 0 || gs.Player.Cash < cost || strings.TrimSpace(candidate.Name) == "" {
			return false
		}
		m := candidate
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if gs.Chapter.Member(m.ID) >= 0 {
			return false
		}
		if !m.Role.Valid() {
			m.Role = state.RoleProspect
		}
		m.Status = state.MemberActive
		m.Loyalty = state.ClampPercent(m.Loyalty)
		m.Skills.Set(state.SkillCombat, m.Skills.Combat)
		m.Skills.Set(state.SkillStealth, m.Skills.Stealth)
		m.Skills.Set(state.SkillCharisma, m.Skills.Charisma)

		gs.Player.Debit(cost)
		gs.Chapter.Members = append(gs.Chapter.Members, m)
		gs.Chapter.Stats = state.RecomputeChapterStats(gs.Chapter.Members)
		return true
	})
}

// DismissMember removes a member, releasing any operation slot or business
// they held.
func (a *Actions) DismissMember(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Chapter.Member(id)
		if i < 0 {
			return false
		}
		releaseMember(gs, id, true)
		gs.Chapter.Members = slices.Delete(gs.Chapter.Members, i, i+1)
		gs.RecomputeAll()
		return true
	})
}

// SetMemberStatus moves a member to status. Leaving OnMission releases the
// operation slot; Inactive and Deceased also release management.
func (a *Actions) SetMemberStatus(id string, status state.MemberStatus) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Chapter.Member(id)
		if i < 0 || !status.Valid() || gs.Chapter.Members[i].Status == status {
			return false
		}
		switch status {
		case state.MemberOnMission:
			// only AssignMember puts someone on a mission
			return false
		case state.MemberActive:
			releaseMember(gs, id, false)
		case state.MemberInactive, state.MemberDeceased:
			releaseMember(gs, id, true)
		}
		gs.Chapter.Members[i].Status = status
		gs.RecomputeAll()
		return true
	})
}

// AdjustMemberLoyalty moves loyalty within [0,100].
func (a *Actions) AdjustMemberLoyalty(id string, delta int) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Chapter.Member(id)
		if i < 0 {
			return false
		}
		m := &gs.Chapter.Members[i]
		next := state.ClampPercent(m.Loyalty + delta)
		if next == m.Loyalty {
			return false
		}
		m.Loyalty = next
		gs.Chapter.Stats = state.RecomputeChapterStats(gs.Chapter.Members)
		return true
	})
}

// TrainingCost is what the next training session in skill costs for m.
func TrainingCost(m state.Member, skill state.Skill) int64 {
	return int64(trainingBaseCost * (m.Skills.Get(skill)/10 + 1))
}

// TrainMember raises one skill by five and power by two.
func (a *Actions) TrainMember(id string, skill state.Skill) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Chapter.Member(id)
		if i < 0 || !skill.Valid() {
			return false
		}
		m := &gs.Chapter.Members[i]
		if m.Status != state.MemberActive || m.Skills.Get(skill) >= state.PercentMax {
			return false
		}
		cost := TrainingCost(*m, skill)
		if gs.Player.Cash < cost {
			return false
		}
		gs.Player.Debit(cost)
		m.Skills.Set(skill, m.Skills.Get(skill)+trainingGain)
		m.Power += trainingPower
		gs.Chapter.Stats = state.RecomputeChapterStats(gs.Chapter.Members)
		return true
	})
}

// releaseMember unassigns id from every operation and, if management is set,
// from the business they run.
func releaseMember(gs *state.GameState, id string, management bool) {
	for i := range gs.Operations {
		op := &gs.Operations[i]
		op.AssignedMemberIDs = slices.DeleteFunc(op.AssignedMemberIDs, func(m string) bool { return m == id })
	}
	if !management {
		return
	}
	for i := range gs.Businesses {
		b := &gs.Businesses[i]
		if b.ManagerID != nil && *b.ManagerID == id {
			b.ManagerID = nil
			b.Efficiency = max(0, b.Efficiency-managerEfficiency)
		}
	}
}
