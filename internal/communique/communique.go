// Package communique renders negotiations for human eyes: the opening
// line in the proposer's voice, the terms spelled out, the turn report.
// Wording draws on the entropy feed; nothing here feeds back into the
// engine.
// See design doc Section 7.
package communique

import (
	"strings"

	"github.com/talgya/statecraft/internal/diplomacy"
	"github.com/talgya/statecraft/internal/entropy"
	"github.com/talgya/statecraft/internal/nations"
)

// Renderer turns sessions into communiqué text. A nil feed renders
// deterministically from the first line of each pool.
type Renderer struct {
	feed entropy.Feed
}

// NewRenderer creates a renderer drawing variety from feed.
func NewRenderer(feed entropy.Feed) *Renderer {
	return &Renderer{feed: feed}
}

// Compose renders the communiqué for a session: the opening line in the
// proposer's voice, then the terms.
func (r *Renderer) Compose(s *diplomacy.Session, from, to *nations.Nation) string {
	voice := diplomacy.ProfileFor(from.Personality).MessageKey
	pool := linesFor(s.Purpose, voice)
	line := pool[r.pick(len(pool))]

	msg := strings.NewReplacer(
		"{from}", from.Name,
		"{to}", to.Name,
		"{reason}", reasonOr(s.Context.Reason),
	).Replace(line)

	var b strings.Builder
	b.WriteString(msg)
	if len(s.Offers) > 0 {
		b.WriteString(" Offered: ")
		b.WriteString(DescribeItems(s.Offers))
		b.WriteString(".")
	}
	if len(s.Requests) > 0 {
		b.WriteString(" Asked in return: ")
		b.WriteString(DescribeItems(s.Requests))
		b.WriteString(".")
	}
	return b.String()
}

func (r *Renderer) pick(n int) int {
	if n <= 1 || r.feed == nil {
		return 0
	}
	idx := int(r.feed.Float() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func reasonOr(reason string) string {
	if reason == "" {
		return "matters of state"
	}
	return reason
}

// DescribeItems joins item descriptions into prose: "30 gold, 10 intel
// and 1 favor owed".
func DescribeItems(items []diplomacy.Item) string {
	if len(items) == 0 {
		return "nothing"
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Description)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}
