// Violation watch — fresh grievances checked against the standing pacts.
// A skirmish is one thing; a skirmish under a non-aggression treaty is an
// agenda violation, and the warning evaluator feeds on those.
// See design doc Section 6.5.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/nations"
)

const (
	violationRelPenalty   = -6.0
	violationTrustPenalty = -8.0
)

// detectViolations scans the treaty registry for commitments broken this
// turn. Runs after incident generation so it sees the fresh grievances.
func (w *World) detectViolations(turn uint64) {
	for _, t := range w.Led.Treaties() {
		if !violatable(t.Subtype) {
			continue
		}
		w.checkBreach(t.A, t.B, t.Subtype, turn)
		w.checkBreach(t.B, t.A, t.Subtype, turn)
	}
}

// checkBreach files a violation if offender wronged holder this turn
// while the named commitment stood.
func (w *World) checkBreach(offenderID, holderID nations.NationID, agenda string, turn uint64) {
	offender, okO := w.Index[offenderID]
	holder, okH := w.Index[holderID]
	if !okO || !okH || !offender.Active || !holder.Active {
		return
	}
	if holder.RecentGrievancePoints(offenderID, turn, 0) == 0 {
		return
	}

	nations.AddViolation(holder, offenderID, turn, agenda)
	w.Led.AdjustRelationship(offenderID, holderID, violationRelPenalty)
	w.Led.AdjustTrust(offenderID, holderID, violationTrustPenalty)

	w.emitEvent(Event{
		Turn:        turn,
		Description: fmt.Sprintf("%s breaks its %s commitment to %s", offender.Name, agenda, holder.Name),
		Category:    "treaty",
		Meta: map[string]any{
			"offender": offender.Name,
			"holder":   holder.Name,
			"agenda":   agenda,
		},
	})
	slog.Debug("treaty violation", "offender", offender.Name, "holder", holder.Name, "agenda", agenda, "turn", turn)
}

// violatable reports whether a registry subtype carries conduct terms
// the watch can check. Open borders and drop-grievances are one-shot.
func violatable(subtype string) bool {
	switch subtype {
	case diplomacy.TreatyNonAggression, diplomacy.PromiseCeaseHostility, diplomacy.PromiseNoRetaliation:
		return true
	default:
		return false
	}
}
