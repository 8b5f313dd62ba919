package overseer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fixtures ---

// steadyPulse is a four-nation world on an even keel: modest risk, live
// sessions, one chilly but unremarkable pair down south.
func steadyPulse() *Pulse {
	return &Pulse{
		Status: StatusData{
			Turn:            30,
			WarRisk:         10,
			AvgRelationship: 15,
			ActiveNations:   4,
			OpenSessions:    2,
			OpenGrievances:  2,
		},
		Nations: []NationSummary{
			{ID: 1, Name: "Aldoria", Allies: 1, Active: true},
			{ID: 2, Name: "Borvena", Allies: 1, Active: true},
			{ID: 3, Name: "Cassara", Active: true},
			{ID: 4, Name: "Drellheim", Active: true},
		},
		Sessions: []SessionInfo{
			{ID: "s-1", Proposer: 1, Counterpart: 3, Status: 0, CreatedTurn: 28, ExpiresAtTurn: 40},
			{ID: "s-2", Proposer: 2, Counterpart: 4, Status: 0, CreatedTurn: 29, ExpiresAtTurn: 41},
		},
		Events: []EventInfo{
			{Turn: 28, Description: "Aldoria approaches Cassara with a trade-opportunity proposal", Category: "diplomacy"},
			{Turn: 29, Description: "Stockpiles accrue across the continent", Category: "economy"},
		},
		Standings: map[uint64][]StandingInfo{
			1: {
				{With: 2, Name: "Borvena", Relationship: 40, Trust: 70, Allied: true},
				{With: 3, Name: "Cassara", Relationship: 5, Trust: 50},
				{With: 4, Name: "Drellheim", Relationship: 0, Trust: 50},
			},
			2: {
				{With: 1, Name: "Aldoria", Relationship: 40, Trust: 70, Allied: true},
				{With: 3, Name: "Cassara", Relationship: 10, Trust: 50},
				{With: 4, Name: "Drellheim", Relationship: 8, Trust: 50},
			},
			3: {
				{With: 1, Name: "Aldoria", Relationship: 5, Trust: 50},
				{With: 2, Name: "Borvena", Relationship: 10, Trust: 50},
				{With: 4, Name: "Drellheim", Relationship: -30, Trust: 40},
			},
			4: {
				{With: 1, Name: "Aldoria", Relationship: 0, Trust: 50},
				{With: 2, Name: "Borvena", Relationship: 8, Trust: 50},
				{With: 3, Name: "Cassara", Relationship: -30, Trust: 40},
			},
		},
	}
}

// chill sets the relationship for a pair in both direction rows.
func chill(p *Pulse, a, b uint64, rel float64) {
	for i := range p.Standings[a] {
		if p.Standings[a][i].With == b {
			p.Standings[a][i].Relationship = rel
		}
	}
	for i := range p.Standings[b] {
		if p.Standings[b][i].With == a {
			p.Standings[b][i].Relationship = rel
		}
	}
}

// --- Triage ---

func TestTriageSteadyWorld(t *testing.T) {
	h := Triage(steadyPulse())

	assert.Equal(t, "HEALTHY", h.CrisisLevel)
	assert.Equal(t, uint64(30), h.Turn)
	assert.False(t, h.Quiet)
	assert.Zero(t, h.StalledSessions)
	assert.InDelta(t, 0.5, h.GrievancesPerNation, 1e-9)
	assert.Equal(t, []string{"Cassara", "Drellheim"}, h.Isolated)

	require.NotNil(t, h.WorstPair)
	assert.Equal(t, "Cassara", h.WorstPair.A)
	assert.Equal(t, "Drellheim", h.WorstPair.B)
	assert.Equal(t, -30.0, h.WorstPair.Relationship)
	assert.False(t, h.WorstPair.Allied)
}

func TestTriageCrisisLadder(t *testing.T) {
	t.Run("war risk 25 is a watch", func(t *testing.T) {
		p := steadyPulse()
		p.Status.WarRisk = 25
		assert.Equal(t, "WATCH", Triage(p).CrisisLevel)
	})

	t.Run("war risk 45 is a warning", func(t *testing.T) {
		p := steadyPulse()
		p.Status.WarRisk = 45
		assert.Equal(t, "WARNING", Triage(p).CrisisLevel)
	})

	t.Run("war risk 70 is a crisis", func(t *testing.T) {
		p := steadyPulse()
		p.Status.WarRisk = 70
		assert.Equal(t, "CRITICAL", Triage(p).CrisisLevel)
	})

	t.Run("one pair at -75 is a crisis on its own", func(t *testing.T) {
		p := steadyPulse()
		chill(p, 3, 4, -75)
		h := Triage(p)
		assert.Equal(t, "CRITICAL", h.CrisisLevel)
		assert.Equal(t, -75.0, h.WorstPair.Relationship)
	})

	t.Run("sour average is a warning then a crisis", func(t *testing.T) {
		p := steadyPulse()
		p.Status.AvgRelationship = -20
		assert.Equal(t, "WARNING", Triage(p).CrisisLevel)

		p.Status.AvgRelationship = -40
		assert.Equal(t, "CRITICAL", Triage(p).CrisisLevel)
	})

	t.Run("grievance load climbs the ladder", func(t *testing.T) {
		p := steadyPulse()
		p.Status.OpenGrievances = 12 // 3 per nation
		assert.Equal(t, "WATCH", Triage(p).CrisisLevel)

		p.Status.OpenGrievances = 24 // 6 per nation
		assert.Equal(t, "WARNING", Triage(p).CrisisLevel)
	})

	t.Run("widespread isolation warns in big worlds", func(t *testing.T) {
		p := steadyPulse()
		for i := range p.Nations {
			p.Nations[i].Allies = 0
		}
		h := Triage(p)
		assert.Equal(t, "WARNING", h.CrisisLevel)
		assert.Len(t, h.Isolated, 4)
	})

	t.Run("three-nation worlds are exempt from the isolation rule", func(t *testing.T) {
		p := steadyPulse()
		p.Nations = p.Nations[:3]
		for i := range p.Nations {
			p.Nations[i].Allies = 0
		}
		p.Status.ActiveNations = 3
		assert.Equal(t, "HEALTHY", Triage(p).CrisisLevel)
	})
}

func TestTriageStalledSessions(t *testing.T) {
	t.Run("every open session in its last turn is a watch", func(t *testing.T) {
		p := steadyPulse()
		p.Sessions[0].ExpiresAtTurn = 31
		p.Sessions[1].ExpiresAtTurn = 30
		h := Triage(p)
		assert.Equal(t, 2, h.StalledSessions)
		assert.Equal(t, "WATCH", h.CrisisLevel)
	})

	t.Run("one stalled among fresh ones is fine", func(t *testing.T) {
		p := steadyPulse()
		p.Sessions[0].ExpiresAtTurn = 31
		h := Triage(p)
		assert.Equal(t, 1, h.StalledSessions)
		assert.Equal(t, "HEALTHY", h.CrisisLevel)
	})
}

func TestTriageQuiet(t *testing.T) {
	// Nothing in flight, and the only logged activity is ancient.
	quiet := func() *Pulse {
		p := steadyPulse()
		p.Status.OpenSessions = 0
		p.Sessions = nil
		p.Events = []EventInfo{
			{Turn: 23, Description: "Aldoria and Borvena settle a trade-opportunity deal", Category: "deal"},
		}
		return p
	}

	t.Run("stale log with nothing in flight", func(t *testing.T) {
		assert.True(t, Triage(quiet()).Quiet)
	})

	t.Run("activity on the window edge still counts", func(t *testing.T) {
		p := quiet()
		p.Events = append(p.Events, EventInfo{Turn: 24, Description: "a late flurry", Category: "diplomacy"})
		assert.False(t, Triage(p).Quiet)
	})

	t.Run("recent admin chatter is not diplomacy", func(t *testing.T) {
		p := quiet()
		p.Events = append(p.Events, EventInfo{Turn: 30, Description: "the operator pokes the world", Category: "admin"})
		assert.True(t, Triage(p).Quiet)
	})

	t.Run("sessions in flight are activity", func(t *testing.T) {
		p := quiet()
		p.Status.OpenSessions = 1
		assert.False(t, Triage(p).Quiet)
	})
}

func TestTriageWorstPairScan(t *testing.T) {
	t.Run("reverse rows are not rescanned", func(t *testing.T) {
		p := steadyPulse()
		// Poison the reverse-direction row; only With > id rows are read.
		for i := range p.Standings[4] {
			if p.Standings[4][i].With == 3 {
				p.Standings[4][i].Relationship = -99
			}
		}
		h := Triage(p)
		assert.Equal(t, -30.0, h.WorstPair.Relationship)
	})

	t.Run("allied flag rides along", func(t *testing.T) {
		p := steadyPulse()
		chill(p, 1, 2, -35)
		h := Triage(p)
		assert.Equal(t, "Aldoria", h.WorstPair.A)
		assert.Equal(t, "Borvena", h.WorstPair.B)
		assert.True(t, h.WorstPair.Allied)
	})
}

func TestTriageEmptyWorld(t *testing.T) {
	h := Triage(&Pulse{})

	assert.Equal(t, "HEALTHY", h.CrisisLevel)
	assert.Nil(t, h.WorstPair)
	assert.Zero(t, h.GrievancesPerNation)
	assert.True(t, h.Quiet)
}
