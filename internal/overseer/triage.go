package overseer

// Health holds derived diagnostic signals computed from a Pulse.
// Runs before any decision — deterministic and free.
type Health struct {
	Turn                uint64
	WarRisk             float64
	AvgRelationship     float64
	ActiveNations       int
	OpenSessions        int
	StalledSessions     int      // proposed sessions in the last turn of their window
	GrievancesPerNation float64
	Isolated            []string // active nations with no allies
	WorstPair           *PairStanding
	Quiet               bool   // no diplomatic activity in the recent event window
	CrisisLevel         string // "CRITICAL", "WARNING", "WATCH", "HEALTHY"
}

// PairStanding names the coldest pair of active nations and their mutual
// relationship.
type PairStanding struct {
	A            string
	B            string
	Relationship float64
	Allied       bool
}

// quietWindow is how many turns back the event log is scanned for signs of
// life before the world counts as stagnant.
const quietWindow = 6

// Triage computes a Health from the pulse's data.
func Triage(p *Pulse) *Health {
	h := &Health{
		Turn:            p.Status.Turn,
		WarRisk:         p.Status.WarRisk,
		AvgRelationship: p.Status.AvgRelationship,
		ActiveNations:   p.Status.ActiveNations,
		OpenSessions:    p.Status.OpenSessions,
	}

	if h.ActiveNations > 0 {
		h.GrievancesPerNation = float64(p.Status.OpenGrievances) / float64(h.ActiveNations)
	}

	// Isolation: active nations with no alliance at all.
	for _, n := range p.Nations {
		if n.Active && n.Allies == 0 {
			h.Isolated = append(h.Isolated, n.Name)
		}
	}

	// Stalled negotiations: still proposed, window nearly spent. The engine
	// sweeps expired sessions at turn boundaries, so anything still open is
	// within its window.
	for _, s := range p.Sessions {
		if s.Status == 0 && s.ExpiresAtTurn <= h.Turn+1 {
			h.StalledSessions++
		}
	}

	// Coldest pair among active nations. Standings are symmetric, so each
	// pair is scanned once (With > own id).
	names := make(map[uint64]string, len(p.Nations))
	for _, n := range p.Nations {
		names[n.ID] = n.Name
	}
	for id, rows := range p.Standings {
		for _, row := range rows {
			if row.With <= id {
				continue
			}
			if h.WorstPair == nil || row.Relationship < h.WorstPair.Relationship {
				h.WorstPair = &PairStanding{
					A:            names[id],
					B:            row.Name,
					Relationship: row.Relationship,
					Allied:       row.Allied,
				}
			}
		}
	}

	// Stagnation: nothing diplomatic has happened lately and nothing is in
	// flight.
	h.Quiet = h.OpenSessions == 0
	for _, e := range p.Events {
		if e.Turn+quietWindow < h.Turn {
			continue
		}
		switch e.Category {
		case "diplomacy", "deal", "incident":
			h.Quiet = false
		}
	}

	// Crisis ladder, worst condition first.
	h.CrisisLevel = "HEALTHY"
	isolatedFraction := 0.0
	if h.ActiveNations > 0 {
		isolatedFraction = float64(len(h.Isolated)) / float64(h.ActiveNations)
	}

	switch {
	case h.WarRisk >= 70:
		h.CrisisLevel = "CRITICAL"
	case h.WorstPair != nil && h.WorstPair.Relationship <= -75:
		h.CrisisLevel = "CRITICAL"
	case h.AvgRelationship <= -40:
		h.CrisisLevel = "CRITICAL"
	case h.WarRisk >= 45 || h.AvgRelationship <= -20:
		h.CrisisLevel = "WARNING"
	case h.GrievancesPerNation >= 6:
		h.CrisisLevel = "WARNING"
	case isolatedFraction > 0.5 && h.ActiveNations >= 4:
		h.CrisisLevel = "WARNING"
	case h.WarRisk >= 25 || h.GrievancesPerNation >= 3:
		h.CrisisLevel = "WATCH"
	case h.StalledSessions > 0 && h.StalledSessions == h.OpenSessions:
		h.CrisisLevel = "WATCH"
	}

	return h
}
