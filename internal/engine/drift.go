// Drift — the slow forces: relations decay toward neutral, and each
// nation's threat picture adapts to what its rivals actually field.
// See design doc Section 6.6.
package engine

import (
	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/nations"
)

// threatAdaptRate is how far perceived threat closes on its target each
// turn. Perception lags reality; surprise buildups take a while to sink in.
const threatAdaptRate = 0.2

// applyDrift relaxes the ledger and re-aims every nation's threat map.
func (w *World) applyDrift(turn uint64) {
	w.Led.Drift()

	for _, a := range w.Nations {
		if !a.Active {
			continue
		}
		own := economy.FieldStrength(a.Forces)
		if own < 1 {
			own = 1
		}

		for _, b := range w.Nations {
			if b.ID == a.ID || !b.Active {
				continue
			}

			target := w.threatTarget(a, b, own)
			cur := float64(a.ThreatOf(b.ID))
			next := cur + (target-cur)*threatAdaptRate
			if next < 0.5 {
				next = 0
			}
			nations.SetThreat(a, b.ID, float32(next))
		}
	}
}

// threatTarget is what a's threat reading of b should converge to:
// military imbalance, weighted by proximity and soured relations,
// discounted for allies.
func (w *World) threatTarget(a, b *nations.Nation, ownStrength float64) float64 {
	target := 0.0

	ratio := economy.FieldStrength(b.Forces) / ownStrength
	if ratio > 1 {
		target += (ratio - 1) * 25
	}

	if border := w.Map.SharedBorder(uint64(a.ID), uint64(b.ID)); border > 0 {
		target += float64(border) * 2
	}

	if rel := w.Led.Relationship(a.ID, b.ID); rel < 0 {
		target += -rel * 0.3
	}

	if a.AlliedWith(b.ID) {
		target *= 0.25
	}
	if target > 100 {
		target = 100
	}
	return target
}
