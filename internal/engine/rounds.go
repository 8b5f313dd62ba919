// Diplomacy rounds — pending responses first, then fresh approaches in
// fixed roster order.
// See design doc Section 6.2.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/economy"
)

// Response policy thresholds, applied to the responder's utility score.
const (
	acceptThreshold = 25.0
	counterFloor    = 0.0
)

// Standing consequences of each outcome.
const (
	acceptRelBump    = 6.0
	acceptTrustBump  = 4.0
	rejectRelPenalty = -5.0
	rejectTrustDip   = -3.0
	expireRelPenalty = -2.0
)

// respondToPending answers every session whose pouch has arrived: a
// proposal made on turn T is answered on turn T+1. Accept at 25 and
// above, counter once in [0, 25), reject below zero. A counter that
// itself scores [0, 25) is rejected rather than countered again.
func (w *World) respondToPending(turn uint64) {
	var countersMade []*diplomacy.Session

	open := w.Open[:0]
	for _, s := range w.Open {
		if turn <= s.CreatedTurn {
			open = append(open, s)
			continue
		}

		responder, okR := w.Index[s.Counterpart]
		proposer, okP := w.Index[s.Proposer]
		if !okR || !okP || !responder.Active || !proposer.Active {
			open = append(open, s) // The expiry sweep will claim it.
			continue
		}

		u := diplomacy.EvaluateUtility(s, responder, proposer,
			w.Led.Relationship(responder.ID, proposer.ID),
			w.Led.Trust(responder.ID, proposer.ID),
			w.Led.FavorBalance(responder.ID, proposer.ID))

		switch {
		case u >= acceptThreshold:
			s.Accept()
			w.Stats.Accepted++
			w.settleDeal(s, turn)

		case u >= counterFloor && s.CounterOf == "":
			next := w.composeCounter(s, turn)
			if next != nil {
				countersMade = append(countersMade, next)
				w.Stats.Countered++
				w.emitEvent(Event{
					Turn:        turn,
					Description: fmt.Sprintf("%s counters the %s proposal from %s", responder.Name, s.Purpose, proposer.Name),
					Category:    "diplomacy",
					Meta:        map[string]any{"session_id": next.ID, "counter_of": s.ID},
				})
			}

		default:
			s.Reject()
			w.Stats.Rejected++
			w.Led.AdjustRelationship(responder.ID, proposer.ID, rejectRelPenalty)
			w.Led.AdjustTrust(responder.ID, proposer.ID, rejectTrustDip)
			w.emitEvent(Event{
				Turn:        turn,
				Description: fmt.Sprintf("%s rejects the %s proposal from %s", responder.Name, s.Purpose, proposer.Name),
				Category:    "diplomacy",
				Meta:        map[string]any{"session_id": s.ID, "utility": u},
			})
		}

		if s.Terminal() {
			w.archive(s)
		} else {
			open = append(open, s)
		}
	}
	w.Open = append(open, countersMade...)
}

// composeCounter mirrors the session and asks one favor on top: the
// responder offers what was requested of them, requests what was
// offered, and names their price for agreeing.
func (w *World) composeCounter(s *diplomacy.Session, turn uint64) *diplomacy.Session {
	offers := append([]diplomacy.Item(nil), s.Requests...)
	requests := append([]diplomacy.Item(nil), s.Offers...)
	requests = append(requests, diplomacy.FavorItem(1))

	next, ok := s.Counter(turn, offers, requests)
	if !ok {
		return nil
	}
	return next
}

// holdDiplomacyRounds lets each nation approach rivals in roster order.
// The arbiter enforces the per-nation cooldown and the global per-turn
// cap; one approach per nation per turn.
func (w *World) holdDiplomacyRounds(turn uint64) {
	proposed := int(0)
	for _, actor := range w.Nations {
		if !actor.Active {
			continue
		}
		for _, counterpart := range w.Nations {
			if counterpart.ID == actor.ID || !counterpart.Active {
				continue
			}

			res := w.Arbiter.CheckAllTriggers(actor, counterpart, w.Nations, turn, proposed)
			if res == nil {
				continue
			}

			s := w.Arbiter.GenerateNegotiationDeal(actor, counterpart, w.Nations, *res, turn)
			if s == nil {
				continue
			}

			proposed++
			w.Open = append(w.Open, s)
			w.Stats.Proposed++

			offered, requested := economy.Appraise(s)
			w.emitEvent(Event{
				Turn:        turn,
				Description: fmt.Sprintf("%s approaches %s with a %s proposal", actor.Name, counterpart.Name, s.Purpose),
				Category:    "diplomacy",
				Meta: map[string]any{
					"session_id": s.ID,
					"urgency":    s.Urgency.String(),
					"reason":     s.Context.Reason,
				},
			})
			slog.Debug("proposal composed",
				"proposer", actor.Name,
				"counterpart", counterpart.Name,
				"purpose", s.Purpose.String(),
				"offered_value", offered,
				"requested_value", requested,
				"affordable", economy.CanAfford(actor, s.Offers),
			)
			break
		}
	}
}
