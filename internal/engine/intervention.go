// Admin interventions — the levers the API exposes for steering a world
// that has wedged itself: stage an incident, pin a relationship, or tear
// it all down and start over.
// See design doc Section 6.7.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/statecraft/internal/nations"
)

// InjectIncident files a grievance by perpetrator against victim as if
// an incident had occurred, with the usual standing fallout.
func (w *World) InjectIncident(perpName, victimName, severity, cause string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	perp := w.findNationByName(perpName)
	if perp == nil {
		return "", fmt.Errorf("nation %q not found", perpName)
	}
	victim := w.findNationByName(victimName)
	if victim == nil {
		return "", fmt.Errorf("nation %q not found", victimName)
	}
	if perp.ID == victim.ID {
		return "", fmt.Errorf("nation %q cannot wrong itself", perpName)
	}

	sev := nations.SeverityModerate
	if severity != "" {
		parsed, ok := nations.ParseSeverity(severity)
		if !ok {
			return "", fmt.Errorf("unknown severity %q", severity)
		}
		sev = parsed
	}
	if cause == "" {
		cause = "a staged provocation"
	}

	nations.AddGrievance(victim, perp.ID, sev, w.Turn, cause)
	w.Led.AdjustRelationship(perp.ID, victim.ID, float64(sev.Points())*-2.0)
	nations.SetThreat(victim, perp.ID, victim.ThreatOf(perp.ID)+incidentThreatBump)

	desc := fmt.Sprintf("Word spreads of %s by %s against %s", cause, perp.Name, victim.Name)
	w.emitEvent(Event{
		Turn:        w.Turn,
		Description: desc,
		Category:    "admin",
		Meta: map[string]any{
			"perpetrator": perp.Name,
			"victim":      victim.Name,
			"severity":    sev.String(),
		},
	})

	slog.Info("incident intervention", "perpetrator", perp.Name, "victim", victim.Name, "severity", sev.String())
	return desc, nil
}

// SetRelations pins the relationship between two nations to a value in
// [-100, 100]. Trust and favors are left alone.
func (w *World) SetRelations(aName, bName string, value float64) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	a := w.findNationByName(aName)
	if a == nil {
		return "", fmt.Errorf("nation %q not found", aName)
	}
	b := w.findNationByName(bName)
	if b == nil {
		return "", fmt.Errorf("nation %q not found", bName)
	}
	if a.ID == b.ID {
		return "", fmt.Errorf("need two distinct nations")
	}
	if value < -100 || value > 100 {
		return "", fmt.Errorf("relationship %v out of range [-100, 100]", value)
	}

	before := w.Led.Relationship(a.ID, b.ID)
	w.Led.SetRelationship(a.ID, b.ID, value)

	var desc string
	if value > before {
		desc = fmt.Sprintf("A quiet thaw settles between %s and %s", a.Name, b.Name)
	} else {
		desc = fmt.Sprintf("A chill descends between %s and %s", a.Name, b.Name)
	}
	w.emitEvent(Event{
		Turn:        w.Turn,
		Description: desc,
		Category:    "admin",
		Meta: map[string]any{
			"a":      a.Name,
			"b":      b.Name,
			"before": before,
			"after":  value,
		},
	})

	slog.Info("relations intervention", "a", a.Name, "b", b.Name, "before", before, "after", value)
	return desc, nil
}

// Reset rebuilds the world from its scenario. Everything goes: roster,
// map, ledger, sessions, events, the turn counter.
func (w *World) Reset() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sc == nil {
		return "", fmt.Errorf("no scenario to reset from")
	}

	m, roster, led, err := w.sc.Materialize()
	if err != nil {
		return "", fmt.Errorf("rematerialize scenario: %w", err)
	}
	w.install(m, roster, led)

	desc := fmt.Sprintf("The world begins anew with %d nations", len(roster))
	w.emitEvent(Event{
		Turn:        w.Turn,
		Description: desc,
		Category:    "admin",
	})

	slog.Info("world reset", "nations", len(roster))
	return desc, nil
}
