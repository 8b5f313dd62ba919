// Negotiation sessions — the structured proposal exchanged between two
// nations, immutable once composed, with a small terminal lifecycle.
// See design doc Section 4.5.
package diplomacy

import (
	"github.com/google/uuid"

	"github.com/talgya/statecraft/internal/nations"
)

// Status tracks where a session is in its lifecycle. Everything after
// proposed is terminal.
type Status uint8

const (
	StatusProposed  Status = 0
	StatusAccepted  Status = 1
	StatusRejected  Status = 2
	StatusCountered Status = 3
	StatusExpired   Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusProposed:
		return "proposed"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusCountered:
		return "countered"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Session is a structured proposal from one nation to another. Offers and
// Requests are fixed at composition time; counter-offers are brand-new
// sessions, never edits.
type Session struct {
	ID          string           `json:"id"`
	Proposer    nations.NationID `json:"proposer"`
	Counterpart nations.NationID `json:"counterpart"`
	Purpose     Purpose          `json:"purpose"`
	Urgency     Urgency          `json:"urgency"`
	Offers      []Item           `json:"offers"`
	Requests    []Item           `json:"requests"`
	Context     Context          `json:"context"`

	CreatedTurn   uint64 `json:"created_turn"`
	ExpiresAtTurn uint64 `json:"expires_at_turn"`
	Status        Status `json:"status"`

	// CounterOf holds the session this one counters, empty for originals.
	CounterOf string `json:"counter_of,omitempty"`
}

// NewSession creates a proposed session with an expiry derived from its
// urgency window.
func NewSession(proposer, counterpart nations.NationID, purpose Purpose, urgency Urgency, turn uint64) *Session {
	return &Session{
		ID:            uuid.NewString(),
		Proposer:      proposer,
		Counterpart:   counterpart,
		Purpose:       purpose,
		Urgency:       urgency,
		CreatedTurn:   turn,
		ExpiresAtTurn: turn + urgency.Window(),
		Status:        StatusProposed,
	}
}

// Composition-time append. Unexported: sessions are immutable outside
// this package once returned.
func (s *Session) addOffer(it Item)   { s.Offers = append(s.Offers, it) }
func (s *Session) addRequest(it Item) { s.Requests = append(s.Requests, it) }

// Terminal reports whether the session has left the proposed state.
func (s *Session) Terminal() bool {
	return s.Status != StatusProposed
}

// Accept marks the session accepted. Returns false if already terminal.
func (s *Session) Accept() bool {
	if s.Terminal() {
		return false
	}
	s.Status = StatusAccepted
	return true
}

// Reject marks the session rejected. Returns false if already terminal.
func (s *Session) Reject() bool {
	if s.Terminal() {
		return false
	}
	s.Status = StatusRejected
	return true
}

// ExpireIfDue marks the session expired when its window has passed.
// Callers run this at each turn boundary.
func (s *Session) ExpireIfDue(currentTurn uint64) bool {
	if s.Terminal() || currentTurn <= s.ExpiresAtTurn {
		return false
	}
	s.Status = StatusExpired
	return true
}

// Counter closes this session as countered and returns a fresh session
// with the parties swapped, carrying the given items. Returns nil, false
// if this session is already terminal.
func (s *Session) Counter(turn uint64, offers, requests []Item) (*Session, bool) {
	if s.Terminal() {
		return nil, false
	}
	s.Status = StatusCountered

	next := NewSession(s.Counterpart, s.Proposer, s.Purpose, s.Urgency, turn)
	next.Context = s.Context
	next.CounterOf = s.ID
	next.Offers = append(next.Offers, offers...)
	next.Requests = append(next.Requests, requests...)
	return next, true
}
