// Package matchindex compiles the term corpus into a multi-pattern automaton
// so a single left-to-right scan finds every occurrence of every term in
// O(len(text) + matches) time, independent of corpus size.
package matchindex

import (
	"sort"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/goliatone/go-keywords/internal/terms"
)

// Match is one accepted occurrence over the normalized text. Start and End
// are byte offsets into the scanned string; TermIndex addresses the term
// slice the index was built from.
type Match struct {
	Start     int
	End       int
	TermIndex int
}

// Index is an immutable compiled automaton over a term corpus. Build once per
// corpus version; FindAll is a pure scan and safe for unbounded concurrent
// use across render requests.
type Index struct {
	automaton aho.AhoCorasick
	terms     []terms.Term
}

// Build compiles the automaton from the supplied corpus. The leftmost-longest
// match kind keeps the longest pattern at any starting position; FindAll then
// runs a greedy left-to-right pass so accepted matches never overlap.
func Build(corpus []terms.Term) *Index {
	patterns := make([]string, len(corpus))
	for i, t := range corpus {
		patterns[i] = t.NormalizedForm
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		MatchKind: aho.LeftMostLongestMatch,
		DFA:       true,
	})

	return &Index{
		automaton: builder.Build(patterns),
		terms:     corpus,
	}
}

// For returns the compiled index for a snapshot, building it on first use.
// Compilation is memoized on the snapshot so concurrent renders after a
// rebuild share one automaton.
func For(snap *terms.Snapshot) *Index {
	if snap == nil || snap.Len() == 0 {
		return nil
	}
	compiled := snap.Compiled(func(corpus []terms.Term) any {
		return Build(corpus)
	})
	idx, _ := compiled.(*Index)
	return idx
}

// FindAll scans normalized text and returns the accepted, non-overlapping
// matches in left-to-right order.
func (ix *Index) FindAll(normalized string) []Match {
	if ix == nil || len(ix.terms) == 0 || normalized == "" {
		return nil
	}

	found := ix.automaton.FindAll(normalized)
	if len(found) == 0 {
		return nil
	}

	candidates := make([]Match, 0, len(found))
	for _, m := range found {
		candidates = append(candidates, Match{
			Start:     m.Start(),
			End:       m.End(),
			TermIndex: m.Pattern(),
		})
	}
	return selectNonOverlapping(candidates)
}

// selectNonOverlapping enforces the conflict rules over the raw automaton
// output, which may contain overlapping candidates: earliest start wins,
// longest match at the same start, and every candidate overlapping an
// accepted span is discarded.
func selectNonOverlapping(candidates []Match) []Match {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		return candidates[i].End > candidates[j].End
	})

	matches := candidates[:0]
	lastEnd := 0
	for _, m := range candidates {
		if m.Start < lastEnd {
			continue
		}
		matches = append(matches, m)
		lastEnd = m.End
	}
	return matches
}

// Term resolves a TermIndex back to its corpus entry.
func (ix *Index) Term(i int) terms.Term {
	return ix.terms[i]
}

// Len reports the number of patterns in the automaton.
func (ix *Index) Len() int {
	return len(ix.terms)
}
