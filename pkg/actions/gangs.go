package actions

import (
	"github.com/jwebster45206/mafios/pkg/dice"
	"github.com/jwebster45206/mafios/pkg/state"
)

const (
	// PaymentOfferCost is what a payment negotiation costs when it succeeds.
	PaymentOfferCost int64 = 50000

	negotiationFailureHostility = -10
)

// GangAttackChance is the win probability of the chapter against g.
func GangAttackChance(gs *state.GameState, g state.RivalGang) float64 {
	ps := float64(gs.PlayerStrength())
	if ps+float64(g.Strength) <= 0 {
		return 0
	}
	return ps / (ps + float64(g.Strength))
}

// AttackGang fights a rival and returns whether the chapter won. Either way the
// gang grows more hostile and heat rises.
func (a *Actions) AttackGang(id string) bool {
	won := false
	ok := a.update(func(gs *state.GameState) bool {
		i := gs.Gang(id)
		if i < 0 {
			return false
		}
		g := &gs.RivalGangs[i]
		won = dice.Probability(a.roller, GangAttackChance(gs, *g))
		if won {
			gs.Player.AdjustRespekt(10)
			gs.Player.AdjustHeat(20)
			g.AdjustHostility(-30)
			g.AdjustStrength(-5)
		} else {
			gs.Player.AdjustRespekt(-5)
			gs.Player.AdjustHeat(10)
			g.AdjustHostility(-20)
		}
		gs.GangStats = state.RecomputeGangStats(gs.RivalGangs, gs.GangEvents)
		return true
	})
	if ok {
		a.logger.Debug("Gang attacked", "gang_id", id, "won", won)
	}
	return won
}

// NegotiationChance is the percent chance a negotiation with g succeeds.
func NegotiationChance(g state.RivalGang) float64 {
	return state.Clamp(50+g.Hostility/2, 20, 80)
}

func offerHostility(offer state.NegotiationOffer) float64 {
	switch offer {
	case state.OfferTruce:
		return 40
	case state.OfferAlliance:
		return 60
	case state.OfferPayment:
		return 30
	default:
		return 0
	}
}

// NegotiateWithGang proposes offer to a gang and returns whether it was
// accepted. Success forces the relation to Allied for an alliance and Truce
// otherwise; failure sours hostility. A payment offer the player cannot cover
// fails without touching state.
func (a *Actions) NegotiateWithGang(id string, offer state.NegotiationOffer) bool {
	accepted := false
	a.update(func(gs *state.GameState) bool {
		i := gs.Gang(id)
		if i < 0 || !offer.Valid() {
			return false
		}
		if offer == state.OfferPayment && gs.Player.Cash < PaymentOfferCost {
			return false
		}
		g := &gs.RivalGangs[i]
		accepted = dice.Chance(a.roller, NegotiationChance(*g))
		if !accepted {
			g.AdjustHostility(negotiationFailureHostility)
			gs.GangStats = state.RecomputeGangStats(gs.RivalGangs, gs.GangEvents)
			return true
		}

		if offer == state.OfferPayment {
			gs.Player.Debit(PaymentOfferCost)
		}
		g.AdjustHostility(offerHostility(offer))
		switch offer {
		case state.OfferAlliance:
			g.RelationStatus = state.RelationAllied
		case state.OfferTruce, state.OfferPayment:
			g.RelationStatus = state.RelationTruce
		}
		gs.GangStats = state.RecomputeGangStats(gs.RivalGangs, gs.GangEvents)
		return true
	})
	if accepted {
		a.logger.Info("Negotiation accepted", "gang_id", id, "offer", offer)
	}
	return accepted
}

// GangEventResolution reports how a gang event ended.
type GangEventResolution struct {
	Outcome state.GangEventOutcome
	Fought  bool
	Won     bool
}

// ResolveGangEvent answers an unresolved gang event. Accepting takes the
// event's consequences. Declining a proposal costs hostility; declining a
// threat means fighting it. A fight rolls the chapter's strength against the
// gang's: a win earns respekt and weakens the gang, a loss takes the
// consequences plus extra heat.
func (a *Actions) ResolveGangEvent(eventID string, response state.GangResponse) (GangEventResolution, bool) {
	var res GangEventResolution
	ok := a.update(func(gs *state.GameState) bool {
		i := gs.GangEvent(eventID)
		if i < 0 || gs.GangEvents[i].Resolved || !response.Valid() {
			return false
		}
		ev := &gs.GangEvents[i]
		gi := gs.Gang(ev.GangID)

		answer := response
		if answer == state.ResponseDecline && ev.Type.Hostile() {
			answer = state.ResponseFight
		}

		switch answer {
		case state.ResponseAccept:
			applyGangConsequences(gs, *ev, gi)
			switch ev.Type {
			case state.GangEventOffer:
				res.Outcome = state.OutcomeSuccess
			case state.GangEventBetrayal:
				res.Outcome = state.OutcomeFailure
			case state.GangEventAttack, state.GangEventRaid, state.GangEventChallenge, state.GangEventPeaceOffer:
				res.Outcome = state.OutcomeNegotiated
			default:
				res.Outcome = state.OutcomeNegotiated
			}
		case state.ResponseDecline:
			if gi >= 0 {
				gs.RivalGangs[gi].AdjustHostility(negotiationFailureHostility)
			}
			res.Outcome = state.OutcomeFailure
		case state.ResponseFight:
			res.Fought = true
			var gang state.RivalGang
			if gi >= 0 {
				gang = gs.RivalGangs[gi]
			}
			res.Won = dice.Probability(a.roller, GangAttackChance(gs, gang))
			if res.Won {
				gs.Player.AdjustRespekt(10)
				gs.Player.AdjustHeat(10)
				if gi >= 0 {
					gs.RivalGangs[gi].AdjustHostility(-10)
					gs.RivalGangs[gi].AdjustStrength(-3)
				}
				res.Outcome = state.OutcomeSuccess
			} else {
				applyGangConsequences(gs, *ev, gi)
				gs.Player.AdjustHeat(5)
				res.Outcome = state.OutcomeFailure
			}
		}

		outcome := res.Outcome
		ev.Resolved = true
		ev.Outcome = &outcome
		gs.RecomputeAll()
		return true
	})
	return res, ok
}

// applyGangConsequences applies the deltas carried by ev. An attack also
// erodes control of its target territory; at zero control it becomes contested.
func applyGangConsequences(gs *state.GameState, ev state.GangEvent, gangIndex int) {
	gs.Player.Credit(ev.KontanterChange)
	gs.Player.AdjustRespekt(ev.RespektChange)
	if gangIndex >= 0 {
		gs.RivalGangs[gangIndex].AdjustHostility(ev.HostilityChange)
	}
	if ev.Type != state.GangEventAttack || ev.TargetTerritoryID == nil {
		return
	}
	if t := gs.Territory(*ev.TargetTerritoryID); t >= 0 && gs.Territories[t].Status == state.TerritoryControlled {
		gs.Territories[t].Control = state.ClampPercent(gs.Territories[t].Control - 10)
		if gs.Territories[t].Control == 0 {
			gs.Territories[t].Status = state.TerritoryContested
		}
	}
}
