// Standing ledger — pairwise relations, trust, and favor balances for
// every nation pair, with the slow drift back toward neutrality.
// The negotiation core reads this through its Ledger interface.
// See design doc Section 5.
package ledger

import (
	"sort"
	"sync"

	"github.com/talgya/statecraft/internal/nations"
)

const (
	// driftRate is the per-turn decay of relations toward zero.
	// Grudges fade, friendships cool.
	driftRate = 0.005

	// defaultTrust is the starting trust for a pair with no history.
	defaultTrust = 50
)

// pairKey orders a nation pair so storage stays symmetric.
type pairKey struct {
	lo, hi nations.NationID
}

func keyOf(a, b nations.NationID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Ledger holds every pairwise standing plus the pact registries.
// Safe for concurrent use: the engine writes, the API reads.
type Ledger struct {
	mu        sync.RWMutex
	relations map[pairKey]float64
	trust     map[pairKey]float64
	favors    map[pairKey]float64 // Credit held by lo over hi
	alliances map[pairKey]Alliance
	treaties  map[pairKey][]Treaty
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		relations: make(map[pairKey]float64),
		trust:     make(map[pairKey]float64),
		favors:    make(map[pairKey]float64),
		alliances: make(map[pairKey]Alliance),
		treaties:  make(map[pairKey][]Treaty),
	}
}

// Relationship returns the symmetric standing between a and b, −100..100.
// Unknown pairs are neutral.
func (l *Ledger) Relationship(a, b nations.NationID) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.relations[keyOf(a, b)]
}

// Trust returns the trust between a and b, 0..100. Unknown pairs start
// at the neutral 50.
func (l *Ledger) Trust(a, b nations.NationID) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if v, ok := l.trust[keyOf(a, b)]; ok {
		return v
	}
	return defaultTrust
}

// FavorBalance returns the favor credit a holds over b. Positive means
// b is in a's debt.
func (l *Ledger) FavorBalance(a, b nations.NationID) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	k := keyOf(a, b)
	v := l.favors[k]
	if a != k.lo {
		v = -v
	}
	return v
}

// SetRelationship pins the standing for a pair, clamped to −100..100.
func (l *Ledger) SetRelationship(a, b nations.NationID, value float64) {
	if a == b {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.relations[keyOf(a, b)] = clampRelation(value)
}

// AdjustRelationship shifts the standing for a pair by delta, clamped.
func (l *Ledger) AdjustRelationship(a, b nations.NationID, delta float64) {
	if a == b {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	k := keyOf(a, b)
	l.relations[k] = clampRelation(l.relations[k] + delta)
}

// SetTrust pins the trust for a pair, clamped to 0..100.
func (l *Ledger) SetTrust(a, b nations.NationID, value float64) {
	if a == b {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trust[keyOf(a, b)] = clampTrust(value)
}

// AdjustTrust shifts the trust for a pair by delta, clamped.
func (l *Ledger) AdjustTrust(a, b nations.NationID, delta float64) {
	if a == b {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	k := keyOf(a, b)
	cur, ok := l.trust[k]
	if !ok {
		cur = defaultTrust
	}
	l.trust[k] = clampTrust(cur + delta)
}

// AddFavor credits creditor with n favors owed by debtor. Negative n
// settles debt.
func (l *Ledger) AddFavor(creditor, debtor nations.NationID, n float64) {
	if creditor == debtor {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	k := keyOf(creditor, debtor)
	if creditor != k.lo {
		n = -n
	}
	l.favors[k] += n
	if l.favors[k] == 0 {
		delete(l.favors, k)
	}
}

// Drift decays every relation toward zero by driftRate. Trust and favors
// hold their ground.
func (l *Ledger) Drift() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, rel := range l.relations {
		rel -= rel * driftRate
		if rel > -0.01 && rel < 0.01 {
			delete(l.relations, k)
			continue
		}
		l.relations[k] = rel
	}
}

// RelationRecord flattens one pair's standing for persistence.
type RelationRecord struct {
	A            nations.NationID `json:"a" db:"nation_a"`
	B            nations.NationID `json:"b" db:"nation_b"`
	Relationship float64          `json:"relationship" db:"relationship"`
	Trust        float64          `json:"trust" db:"trust"`
	Favor        float64          `json:"favor" db:"favor"` // Credit held by A over B
}

// Records returns every known pair's standing, sorted for stable output.
func (l *Ledger) Records() []RelationRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make(map[pairKey]struct{})
	for k := range l.relations {
		keys[k] = struct{}{}
	}
	for k := range l.trust {
		keys[k] = struct{}{}
	}
	for k := range l.favors {
		keys[k] = struct{}{}
	}

	out := make([]RelationRecord, 0, len(keys))
	for k := range keys {
		rec := RelationRecord{
			A:            k.lo,
			B:            k.hi,
			Relationship: l.relations[k],
			Trust:        defaultTrust,
			Favor:        l.favors[k],
		}
		if v, ok := l.trust[k]; ok {
			rec.Trust = v
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// RestoreRelations replaces all standings with recs.
func (l *Ledger) RestoreRelations(recs []RelationRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.relations = make(map[pairKey]float64, len(recs))
	l.trust = make(map[pairKey]float64, len(recs))
	l.favors = make(map[pairKey]float64, len(recs))
	for _, r := range recs {
		k := keyOf(r.A, r.B)
		if r.Relationship != 0 {
			l.relations[k] = clampRelation(r.Relationship)
		}
		l.trust[k] = clampTrust(r.Trust)
		if r.Favor != 0 {
			v := r.Favor
			if r.A != k.lo {
				v = -v
			}
			l.favors[k] = v
		}
	}
}

func clampRelation(v float64) float64 {
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampTrust(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
