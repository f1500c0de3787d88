package actions

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
)

const (
	// GangAttackCooldown keeps a gang quiet after it last acted.
	GangAttackCooldown = 5 * time.Minute

	raidDemandShare    = 0.3
	offerWealthShare   = 0.2
	betrayalCashLoss   = 50000
	attackCashPerPower = 500
)

// GangEventProbability is the percent chance g acts this cycle:
// aggressiveness plus half the hostility magnitude when negative, minus a
// quarter of it when positive.
func GangEventProbability(g state.RivalGang) float64 {
	var mod float64
	if g.Hostility < 0 {
		mod = math.Abs(g.Hostility) / 2
	} else {
		mod = -g.Hostility / 4
	}
	return state.Clamp(float64(g.Aggressiveness)+mod, 0, 100)
}

// SelectGangEvent maps a relation and a roll in [0,100) to an event type. It
// reports false when the gang does nothing.
func SelectGangEvent(g state.RivalGang, roll float64) (state.GangEventType, bool) {
	switch g.RelationStatus {
	case state.RelationHostile:
		switch {
		case roll < 50:
			return state.GangEventAttack, true
		case roll < 80:
			return state.GangEventRaid, true
		default:
			return state.GangEventChallenge, true
		}
	case state.RelationAllied:
		switch {
		case roll < 70:
			return state.GangEventOffer, true
		case roll < 80 && g.Hostility < 50:
			return state.GangEventBetrayal, true
		default:
			return "", false
		}
	case state.RelationTruce:
		switch {
		case roll < 40:
			return state.GangEventPeaceOffer, true
		case roll < 80 && g.Hostility < -10:
			return state.GangEventAttack, true
		default:
			return "", false
		}
	case state.RelationNeutral:
		fallthrough
	default:
		switch {
		case roll < 30:
			return state.GangEventChallenge, true
		case roll < 60:
			return state.GangEventOffer, true
		default:
			return state.GangEventAttack, true
		}
	}
}

// BuildGangEvent materialises an event of type t from g with its consequence
// fields filled in. targetID is only used by attacks.
func BuildGangEvent(t state.GangEventType, g state.RivalGang, targetID *string, now time.Time) state.GangEvent {
	ev := state.GangEvent{
		ID:        uuid.New().String(),
		Type:      t,
		GangID:    g.ID,
		Timestamp: now,
	}
	switch t {
	case state.GangEventAttack:
		ev.RespektChange = -5
		ev.KontanterChange = -int64(math.Floor(float64(g.Strength) * attackCashPerPower))
		ev.HostilityChange = -10
		ev.TargetTerritoryID = targetID
		ev.Title = fmt.Sprintf("%s attacks", g.Name)
		ev.Description = fmt.Sprintf("%s hit our people on the street.", g.Name)
	case state.GangEventRaid:
		ev.CashDemand = int64(math.Floor(float64(g.Wealth) * raidDemandShare))
		ev.KontanterChange = -ev.CashDemand
		ev.RespektChange = -5
		ev.HostilityChange = -5
		ev.Title = fmt.Sprintf("%s demands tribute", g.Name)
		ev.Description = fmt.Sprintf("%s wants %d kronor or there will be trouble.", g.Name, ev.CashDemand)
	case state.GangEventChallenge:
		ev.RespektChange = -10
		ev.HostilityChange = -5
		ev.Title = fmt.Sprintf("%s issues a challenge", g.Name)
		ev.Description = fmt.Sprintf("%s says we are soft. Back down or prove them wrong.", g.Name)
	case state.GangEventOffer:
		ev.OfferAmount = int64(math.Floor(float64(g.Wealth) * offerWealthShare))
		ev.KontanterChange = ev.OfferAmount
		ev.HostilityChange = 10
		ev.Title = fmt.Sprintf("%s proposes a deal", g.Name)
		ev.Description = fmt.Sprintf("%s offers %d kronor for a joint venture.", g.Name, ev.OfferAmount)
	case state.GangEventPeaceOffer:
		ev.HostilityChange = 30
		ev.RespektChange = -2
		ev.Title = fmt.Sprintf("%s wants peace", g.Name)
		ev.Description = fmt.Sprintf("%s sends word they want the fighting to stop.", g.Name)
	case state.GangEventBetrayal:
		ev.KontanterChange = -betrayalCashLoss
		ev.RespektChange = -10
		ev.HostilityChange = -50
		ev.Title = fmt.Sprintf("%s betrays us", g.Name)
		ev.Description = fmt.Sprintf("%s sold us out and ran off with a shipment.", g.Name)
	}
	return ev
}

// GenerateGangEvents gives every gang off cooldown one chance to act and
// commits whatever events came out of it. It returns the new events.
func (a *Actions) GenerateGangEvents() []state.GangEvent {
	var created []state.GangEvent
	a.update(func(gs *state.GameState) bool {
		created = nil
		now := a.now()
		for i := range gs.RivalGangs {
			g := &gs.RivalGangs[i]
			if g.LastAttack != nil && now.Sub(*g.LastAttack) < GangAttackCooldown {
				continue
			}
			if !dice.Chance(a.roller, GangEventProbability(*g)) {
				continue
			}
			t, ok := SelectGangEvent(*g, dice.Percent(a.roller))
			if !ok {
				continue
			}
			var target *string
			if t == state.GangEventAttack {
				target = randomControlledTerritory(gs, a.roller)
			}
			ev := BuildGangEvent(t, *g, target, now)
			stamp := now
			g.LastAttack = &stamp
			gs.GangEvents = append(gs.GangEvents, ev)
			created = append(created, ev)
		}
		if len(created) == 0 {
			return false
		}
		gs.GangStats = state.RecomputeGangStats(gs.RivalGangs, gs.GangEvents)
		return true
	})
	for _, ev := range created {
		a.logger.Info("Gang event generated", "gang_id", ev.GangID, "type", ev.Type, "event_id", ev.ID)
	}
	return created
}

func randomControlledTerritory(gs *state.GameState, r dice.Roller) *string {
	var ids []string
	for _, t := range gs.Territories {
		if t.Status == state.TerritoryControlled {
			ids = append(ids, t.ID)
		}
	}
	i := dice.Pick(r, len(ids))
	if i < 0 {
		return nil
	}
	id := ids[i]
	return &id
}
