package actions

import (
	"slices"
	"time"

	"github.com/jwebster45206/mafios/pkg/conditionals"
	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
)

// Resolution is the result of answering a random event.
type Resolution struct {
	Success      bool
	Consequences state.Consequences
}

func isActive(e state.GameEvent) bool {
	return e.Triggered && !e.Resolved
}

// eligible reports whether e may be rolled for: never triggered, or resolved,
// repeatable and past its cooldown.
func eligible(e state.GameEvent, now time.Time) bool {
	if !e.Triggered {
		return true
	}
	return e.Resolved && e.Repeatable && conditionals.CooledDown(e.TriggerConditions, e.LastTriggered, now)
}

func activate(gs *state.GameState, e *state.GameEvent, now time.Time) {
	at := now
	e.Triggered = true
	e.TriggeredAt = &at
	e.LastTriggered = &at
	e.Resolved = false
	e.ResolvedAt = nil
	e.ChosenChoiceID = nil
	e.Outcome = nil
	if !slices.Contains(gs.ActiveEvents, e.ID) {
		gs.ActiveEvents = append(gs.ActiveEvents, e.ID)
	}
}

// CheckEventTriggers evaluates every eligible event's trigger conditions and
// rolls its probability. Events that pass become active. It returns their ids.
func (a *Actions) CheckEventTriggers() []string {
	var triggered []string
	a.update(func(gs *state.GameState) bool {
		triggered = nil
		now := a.now()
		for i := range gs.Events {
			e := &gs.Events[i]
			if !eligible(*e, now) {
				continue
			}
			if !conditionals.Evaluate(e.TriggerConditions, gs, e.LastTriggered, now) {
				continue
			}
			if !dice.Chance(a.roller, e.TriggerConditions.Probability) {
				continue
			}
			activate(gs, e, now)
			triggered = append(triggered, e.ID)
		}
		return len(triggered) > 0
	})
	for _, id := range triggered {
		a.logger.Info("Event triggered", "event_id", id)
	}
	return triggered
}

// TriggerEvent activates an event regardless of its conditions.
func (a *Actions) TriggerEvent(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Event(id)
		if i < 0 || isActive(gs.Events[i]) {
			return false
		}
		activate(gs, &gs.Events[i], a.now())
		return true
	})
}

// ChoiceSucceeds rolls a choice's success chance; no chance means certain success.
func ChoiceSucceeds(r dice.Roller, c state.Choice) bool {
	if c.SuccessChance == nil {
		return true
	}
	return dice.Check(r, *c.SuccessChance)
}

// ResolveEvent answers an active event with one of its choices. The choice's
// requirements must be met. On failure the failure bundle applies, or the
// success bundle when there is none.
func (a *Actions) ResolveEvent(eventID, choiceID string) (Resolution, bool) {
	var res Resolution
	ok := a.update(func(gs *state.GameState) bool {
		i := gs.Event(eventID)
		if i < 0 || !isActive(gs.Events[i]) {
			return false
		}
		e := &gs.Events[i]
		choice, found := e.Choice(choiceID)
		if !found {
			return false
		}
		if choice.Requirements != nil && !choice.Requirements.Met(gs) {
			return false
		}

		res.Success = ChoiceSucceeds(a.roller, choice)
		res.Consequences = choice.SuccessConsequences
		if !res.Success && choice.FailureConsequences != nil {
			res.Consequences = *choice.FailureConsequences
		}
		applyConsequences(gs, res.Consequences)

		now := a.now()
		chosen := choiceID
		success := res.Success
		e.Resolved = true
		e.ResolvedAt = &now
		e.ChosenChoiceID = &chosen
		e.Outcome = &success
		gs.DeactivateEvent(eventID)
		gs.RecordEvent(state.EventRecord{
			EventID:   eventID,
			Title:     e.Title,
			ChoiceID:  choiceID,
			Success:   success,
			Message:   res.Consequences.Message,
			Timestamp: now,
		})
		gs.RecomputeAll()
		return true
	})
	return res, ok
}

// DismissEvent closes an active event without choosing.
func (a *Actions) DismissEvent(id string) bool {
	return a.update(func(gs *state.GameState) bool {
		i := gs.Event(id)
		if i < 0 || !isActive(gs.Events[i]) {
			return false
		}
		now := a.now()
		e := &gs.Events[i]
		e.Resolved = true
		e.ResolvedAt = &now
		gs.DeactivateEvent(id)
		gs.RecordEvent(state.EventRecord{
			EventID:   id,
			Title:     e.Title,
			Message:   "dismissed",
			Timestamp: now,
		})
		return true
	})
}

func applyConsequences(gs *state.GameState, c state.Consequences) {
	gs.Player.Credit(c.Cash)
	gs.Player.AdjustRespekt(c.Respekt)
	gs.Player.AdjustHeat(c.Heat)
	gs.Player.AdjustInfluence(c.Influence)
	gs.Player.GainExperience(c.Experience)
	if c.Loyalty == 0 {
		return
	}
	for i := range gs.Chapter.Members {
		m := &gs.Chapter.Members[i]
		if m.Status == state.MemberDeceased {
			continue
		}
		m.Loyalty = state.ClampPercent(m.Loyalty + c.Loyalty)
	}
}
