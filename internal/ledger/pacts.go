// Pacts — the alliance and treaty registries with turn-based expiry.
// Negotiated promises ride the treaty registry under their promise
// subtype so the violation watch covers them too.
// See design doc Section 5.2.
package ledger

import (
	"sort"

	"github.com/talgya/statecraft/internal/nations"
)

// Alliance binds two nations from FormedTurn until ExpiresAtTurn.
// A zero expiry is open-ended.
type Alliance struct {
	A             nations.NationID `json:"a" db:"nation_a"`
	B             nations.NationID `json:"b" db:"nation_b"`
	Subtype       string           `json:"subtype" db:"subtype"`
	FormedTurn    uint64           `json:"formed_turn" db:"formed_turn"`
	ExpiresAtTurn uint64           `json:"expires_at_turn" db:"expires_at_turn"`
}

// Treaty is a pairwise commitment of a given subtype. A zero expiry is
// open-ended.
type Treaty struct {
	A             nations.NationID `json:"a" db:"nation_a"`
	B             nations.NationID `json:"b" db:"nation_b"`
	Subtype       string           `json:"subtype" db:"subtype"`
	FormedTurn    uint64           `json:"formed_turn" db:"formed_turn"`
	ExpiresAtTurn uint64           `json:"expires_at_turn" db:"expires_at_turn"`
}

// FormAlliance records an alliance between a and b. An existing alliance
// for the pair is replaced, terms renegotiated.
func (l *Ledger) FormAlliance(a, b nations.NationID, subtype string, turn, duration uint64) {
	if a == b {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	k := keyOf(a, b)
	al := Alliance{A: k.lo, B: k.hi, Subtype: subtype, FormedTurn: turn}
	if duration > 0 {
		al.ExpiresAtTurn = turn + duration
	}
	l.alliances[k] = al
}

// Allied reports whether a and b hold a standing alliance.
func (l *Ledger) Allied(a, b nations.NationID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.alliances[keyOf(a, b)]
	return ok
}

// AlliesOf returns every nation allied with id, sorted by id.
func (l *Ledger) AlliesOf(id nations.NationID) []nations.NationID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []nations.NationID
	for k := range l.alliances {
		switch id {
		case k.lo:
			out = append(out, k.hi)
		case k.hi:
			out = append(out, k.lo)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BreakAlliance removes the pair's alliance, reporting whether one stood.
func (l *Ledger) BreakAlliance(a, b nations.NationID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := keyOf(a, b)
	if _, ok := l.alliances[k]; !ok {
		return false
	}
	delete(l.alliances, k)
	return true
}

// SignTreaty records a treaty for the pair. Signing the same subtype
// again renews the expiry instead of stacking.
func (l *Ledger) SignTreaty(a, b nations.NationID, subtype string, turn, duration uint64) {
	if a == b {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	k := keyOf(a, b)
	tr := Treaty{A: k.lo, B: k.hi, Subtype: subtype, FormedTurn: turn}
	if duration > 0 {
		tr.ExpiresAtTurn = turn + duration
	}
	for i, existing := range l.treaties[k] {
		if existing.Subtype == subtype {
			l.treaties[k][i] = tr
			return
		}
	}
	l.treaties[k] = append(l.treaties[k], tr)
}

// HasTreaty reports whether the pair holds a treaty of the given subtype.
func (l *Ledger) HasTreaty(a, b nations.NationID, subtype string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, tr := range l.treaties[keyOf(a, b)] {
		if tr.Subtype == subtype {
			return true
		}
	}
	return false
}

// TreatiesBetween returns the pair's standing treaties, for the
// violation watch.
func (l *Ledger) TreatiesBetween(a, b nations.NationID) []Treaty {
	l.mu.RLock()
	defer l.mu.RUnlock()
	src := l.treaties[keyOf(a, b)]
	out := make([]Treaty, len(src))
	copy(out, src)
	return out
}

// ExpirePacts drops every alliance and treaty whose window has passed
// and returns what lapsed, sorted for stable event output.
func (l *Ledger) ExpirePacts(turn uint64) (lapsedAlliances []Alliance, lapsedTreaties []Treaty) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, al := range l.alliances {
		if al.ExpiresAtTurn > 0 && turn > al.ExpiresAtTurn {
			lapsedAlliances = append(lapsedAlliances, al)
			delete(l.alliances, k)
		}
	}
	for k, list := range l.treaties {
		kept := list[:0]
		for _, tr := range list {
			if tr.ExpiresAtTurn > 0 && turn > tr.ExpiresAtTurn {
				lapsedTreaties = append(lapsedTreaties, tr)
				continue
			}
			kept = append(kept, tr)
		}
		if len(kept) == 0 {
			delete(l.treaties, k)
		} else {
			l.treaties[k] = kept
		}
	}

	sortAlliances(lapsedAlliances)
	sortTreaties(lapsedTreaties)
	return lapsedAlliances, lapsedTreaties
}

// Alliances returns every standing alliance, sorted.
func (l *Ledger) Alliances() []Alliance {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Alliance, 0, len(l.alliances))
	for _, al := range l.alliances {
		out = append(out, al)
	}
	sortAlliances(out)
	return out
}

// Treaties returns every standing treaty, sorted.
func (l *Ledger) Treaties() []Treaty {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Treaty
	for _, list := range l.treaties {
		out = append(out, list...)
	}
	sortTreaties(out)
	return out
}

// RestoreAlliances replaces the alliance registry.
func (l *Ledger) RestoreAlliances(als []Alliance) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alliances = make(map[pairKey]Alliance, len(als))
	for _, al := range als {
		k := keyOf(al.A, al.B)
		al.A, al.B = k.lo, k.hi
		l.alliances[k] = al
	}
}

// RestoreTreaties replaces the treaty registry.
func (l *Ledger) RestoreTreaties(trs []Treaty) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.treaties = make(map[pairKey][]Treaty)
	for _, tr := range trs {
		k := keyOf(tr.A, tr.B)
		tr.A, tr.B = k.lo, k.hi
		l.treaties[k] = append(l.treaties[k], tr)
	}
}

func sortAlliances(als []Alliance) {
	sort.Slice(als, func(i, j int) bool {
		if als[i].A != als[j].A {
			return als[i].A < als[j].A
		}
		return als[i].B < als[j].B
	})
}

func sortTreaties(trs []Treaty) {
	sort.Slice(trs, func(i, j int) bool {
		if trs[i].A != trs[j].A {
			return trs[i].A < trs[j].A
		}
		if trs[i].B != trs[j].B {
			return trs[i].B < trs[j].B
		}
		return trs[i].Subtype < trs[j].Subtype
	})
}
