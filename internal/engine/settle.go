// Settlement — an accepted deal takes effect immediately, both sides at
// once. Offers flow proposer to counterpart, requests flow back.
// See design doc Section 6.3.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/nations"
)

// settleDeal applies every item of an accepted session and records the
// standing improvement. Callers hold the lock and have verified both
// parties are present and active.
func (w *World) settleDeal(s *diplomacy.Session, turn uint64) {
	proposer := w.Index[s.Proposer]
	counterpart := w.Index[s.Counterpart]

	for _, it := range s.Offers {
		w.applyItem(it, proposer, counterpart, turn)
	}
	for _, it := range s.Requests {
		w.applyItem(it, counterpart, proposer, turn)
	}

	w.Led.AdjustRelationship(s.Proposer, s.Counterpart, acceptRelBump)
	w.Led.AdjustTrust(s.Proposer, s.Counterpart, acceptTrustBump)

	w.emitEvent(Event{
		Turn:        turn,
		Description: fmt.Sprintf("%s and %s settle a %s deal", proposer.Name, counterpart.Name, s.Purpose),
		Category:    "deal",
		Meta: map[string]any{
			"session_id": s.ID,
			"purpose":    s.Purpose.String(),
		},
	})
	slog.Info("deal settled",
		"session", s.ID,
		"purpose", s.Purpose.String(),
		"proposer", proposer.Name,
		"counterpart", counterpart.Name,
		"offers", len(s.Offers),
		"requests", len(s.Requests),
	)
}

// applyItem carries out one item, giver to receiver.
func (w *World) applyItem(it diplomacy.Item, giver, receiver *nations.Nation, turn uint64) {
	switch it.Kind {
	case diplomacy.ItemGold, diplomacy.ItemIntel, diplomacy.ItemUranium:
		r, ok := economy.ResourceOfItem(it)
		if !ok {
			return
		}
		moved := economy.Transfer(giver, receiver, r, float64(it.Amount))
		if moved < float64(it.Amount) {
			slog.Debug("transfer came up short",
				"from", giver.Name, "to", receiver.Name,
				"resource", r.String(), "promised", it.Amount, "delivered", moved)
		}

	case diplomacy.ItemAlliance:
		w.Led.FormAlliance(giver.ID, receiver.ID, it.Subtype, turn, it.Duration)
		w.emitEvent(Event{
			Turn:        turn,
			Description: fmt.Sprintf("%s and %s form a %s alliance", giver.Name, receiver.Name, it.Subtype),
			Category:    "pact",
		})

	case diplomacy.ItemTreaty:
		w.Led.SignTreaty(giver.ID, receiver.ID, it.Subtype, turn, it.Duration)
		w.emitEvent(Event{
			Turn:        turn,
			Description: fmt.Sprintf("%s and %s sign a %s treaty", giver.Name, receiver.Name, it.Subtype),
			Category:    "treaty",
		})

	case diplomacy.ItemOpenBorders:
		w.Led.SignTreaty(giver.ID, receiver.ID, diplomacy.TreatyOpenBorders, turn, it.Duration)
		w.emitEvent(Event{
			Turn:        turn,
			Description: fmt.Sprintf("%s opens its borders to %s", giver.Name, receiver.Name),
			Category:    "treaty",
		})

	case diplomacy.ItemFavorExchange:
		w.Led.AddFavor(receiver.ID, giver.ID, float64(it.Amount))

	case diplomacy.ItemJoinWar:
		if it.Target == nil {
			return
		}
		target, ok := w.Index[*it.Target]
		if !ok || !target.Active {
			return
		}
		if level := giver.ThreatOf(target.ID); level < joinWarThreatFloor {
			nations.SetThreat(giver, target.ID, joinWarThreatFloor)
		}
		w.Led.AdjustRelationship(giver.ID, target.ID, joinWarRelPenalty)
		w.emitEvent(Event{
			Turn:        turn,
			Description: fmt.Sprintf("%s commits to the war against %s", giver.Name, target.Name),
			Category:    "deal",
		})

	case diplomacy.ItemPromise:
		// Promises live on the treaty registry so the violation watch
		// sees them.
		w.Led.SignTreaty(giver.ID, receiver.ID, it.Subtype, turn, it.Duration)
		if it.Subtype == diplomacy.PromiseDropGrievances {
			dropped := nations.DropGrievancesAgainst(giver, receiver.ID)
			if dropped > 0 {
				w.emitEvent(Event{
					Turn:        turn,
					Description: fmt.Sprintf("%s lets %d old grievances against %s rest", giver.Name, dropped, receiver.Name),
					Category:    "deal",
				})
			}
		}

	case diplomacy.ItemApology:
		if nations.ResolveGrievance(receiver, it.GrievanceID) {
			w.emitEvent(Event{
				Turn:        turn,
				Description: fmt.Sprintf("%s accepts a formal apology from %s", receiver.Name, giver.Name),
				Category:    "deal",
			})
		}
	}
}

// Join-war commitments harden the joiner's posture toward the target.
const (
	joinWarThreatFloor = 75.0
	joinWarRelPenalty  = -20.0
)
