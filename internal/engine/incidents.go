// Incidents — border frictions and espionage between rivals. These are
// the world's friction source: they file grievances, which the
// evaluators turn into warnings, demands, and reconciliations.
// See design doc Section 6.4.
package engine

import (
	"fmt"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/nations"
)

// Standing consequences of an incident, on top of the grievance filed.
const (
	frictionRelPenalty  = -3.0
	espionageRelPenalty = -4.0
	espionageTrustDip   = -2.0
	incidentThreatBump  = 4.0
)

// generateIncidents checks every ordered pair for trouble this turn.
// Border friction needs a shared border and a sour relationship;
// espionage needs an intel apparatus worth the name. Both rolls are
// deterministic in (turn, pair), so a given world state always produces
// the same incidents.
func (w *World) generateIncidents(turn uint64) {
	for _, perp := range w.Nations {
		if !perp.Active {
			continue
		}
		for _, victim := range w.Nations {
			if victim.ID == perp.ID || !victim.Active {
				continue
			}
			if perp.AlliedWith(victim.ID) {
				continue
			}

			rel := w.Led.Relationship(perp.ID, victim.ID)
			w.checkBorderFriction(perp, victim, rel, turn)
			w.checkEspionage(perp, victim, rel, turn)
		}
	}
}

// checkBorderFriction rolls for a skirmish along a shared border. The
// longer the border and the worse the standing, the likelier the clash.
func (w *World) checkBorderFriction(perp, victim *nations.Nation, rel float64, turn uint64) {
	border := w.Map.SharedBorder(uint64(perp.ID), uint64(victim.ID))
	if border == 0 || rel > -10 {
		return
	}

	chance := float64(border) * 0.02
	if rel < -40 {
		chance += 0.06
	}
	if rel < -70 {
		chance += 0.08
	}

	threshold := float64((turn*uint64(perp.ID)*7+uint64(victim.ID)*13)%100) / 100.0
	if chance < threshold {
		return
	}

	sev := nations.SeverityMinor
	cause := "a border skirmish"
	if border >= 3 && rel < -50 {
		sev = nations.SeverityModerate
		cause = "an armed incursion across the border"
	}

	nations.AddGrievance(victim, perp.ID, sev, turn, cause)
	w.Led.AdjustRelationship(perp.ID, victim.ID, frictionRelPenalty)
	nations.SetThreat(victim, perp.ID, victim.ThreatOf(perp.ID)+incidentThreatBump)

	w.emitEvent(Event{
		Turn:        turn,
		Description: fmt.Sprintf("%s forces clash with %s patrols along the frontier", perp.Name, victim.Name),
		Category:    "incident",
		Meta: map[string]any{
			"perpetrator": perp.Name,
			"victim":      victim.Name,
			"severity":    sev.String(),
		},
	})
}

// checkEspionage rolls for a spy ring being uncovered. Needs no border;
// needs an intel stockpile to run and a rival worth watching.
func (w *World) checkEspionage(perp, victim *nations.Nation, rel float64, turn uint64) {
	intel := economy.StockOf(perp, diplomacy.ResourceIntel)
	if intel < 25 || rel > 20 {
		return
	}

	chance := 0.02 + intel/2000
	if rel < -40 {
		chance += 0.03
	}

	threshold := float64((turn*uint64(perp.ID)*31+uint64(victim.ID)*17)%100) / 100.0
	if chance < threshold {
		return
	}

	sev := nations.SeverityModerate
	if rel < -60 {
		sev = nations.SeverityMajor
	}

	nations.AddGrievance(victim, perp.ID, sev, turn, "a spy ring uncovered in the capital")
	w.Led.AdjustRelationship(perp.ID, victim.ID, espionageRelPenalty)
	w.Led.AdjustTrust(perp.ID, victim.ID, espionageTrustDip)
	nations.SetThreat(victim, perp.ID, victim.ThreatOf(perp.ID)+incidentThreatBump)

	w.emitEvent(Event{
		Turn:        turn,
		Description: fmt.Sprintf("%s counterintelligence exposes a %s spy ring", victim.Name, perp.Name),
		Category:    "incident",
		Meta: map[string]any{
			"perpetrator": perp.Name,
			"victim":      victim.Name,
			"severity":    sev.String(),
		},
	})
}
