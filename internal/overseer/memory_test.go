package overseer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestMemory(t *testing.T) (*Memory, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overseer.db")
	mem, err := OpenMemory(path)
	require.NoError(t, err)
	t.Cleanup(func() { mem.Close() })
	return mem, path
}

func TestMemoryRoundTrip(t *testing.T) {
	mem, _ := openTestMemory(t)

	observed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, mem.Record(CycleRecord{
		ObservedAt:      observed,
		Turn:            45,
		Crisis:          "CRITICAL",
		WarRisk:         72.5,
		AvgRelationship: -33,
		OpenSessions:    1,
		Action:          "ease",
		PairA:           "Aldoria",
		PairB:           "Borvena",
		Details:         "eased to -60",
	}))
	require.NoError(t, mem.Record(CycleRecord{
		Turn:            46,
		Crisis:          "WARNING",
		WarRisk:         48,
		AvgRelationship: -21,
		Action:          "none",
		Details:         "cooldown held",
	}))

	recs, err := mem.Recent(10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Newest first.
	assert.Equal(t, uint64(46), recs[0].Turn)
	assert.Equal(t, "none", recs[0].Action)
	assert.False(t, recs[0].ObservedAt.IsZero(), "a zero observation time is stamped on write")

	assert.Equal(t, uint64(45), recs[1].Turn)
	assert.Equal(t, "CRITICAL", recs[1].Crisis)
	assert.Equal(t, 72.5, recs[1].WarRisk)
	assert.Equal(t, -33.0, recs[1].AvgRelationship)
	assert.Equal(t, 1, recs[1].OpenSessions)
	assert.Equal(t, "ease", recs[1].Action)
	assert.Equal(t, "Aldoria", recs[1].PairA)
	assert.Equal(t, "Borvena", recs[1].PairB)
	assert.Equal(t, "eased to -60", recs[1].Details)
	assert.WithinDuration(t, observed, recs[1].ObservedAt, time.Second)
}

func TestMemoryRecentLimit(t *testing.T) {
	mem, _ := openTestMemory(t)

	for turn := uint64(1); turn <= 3; turn++ {
		require.NoError(t, mem.Record(CycleRecord{Turn: turn, Crisis: "HEALTHY", Action: "none"}))
	}

	recs, err := mem.Recent(2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, uint64(3), recs[0].Turn)
	assert.Equal(t, uint64(2), recs[1].Turn)
}

func TestMemoryEmpty(t *testing.T) {
	mem, _ := openTestMemory(t)

	recs, err := mem.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

// Cooldowns are the whole reason memory persists: a restarted overseer must
// not re-intervene on a pair it touched minutes ago.
func TestMemoryCooldownSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overseer.db")

	first, err := OpenMemory(path)
	require.NoError(t, err)
	require.NoError(t, first.Record(CycleRecord{
		Turn:   45,
		Crisis: "CRITICAL",
		Action: "ease",
		PairA:  "Aldoria",
		PairB:  "Borvena",
	}))
	require.NoError(t, first.Close())

	second, err := OpenMemory(path)
	require.NoError(t, err)
	defer second.Close()

	history, err := second.Recent(20)
	require.NoError(t, err)
	require.NotEmpty(t, history)

	d := Decide(criticalHealth(), history)
	assert.Equal(t, "none", d.Action)
	assert.Contains(t, d.Reason, "holding")
}
