package terms

import (
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/goliatone/go-keywords/pkg/interfaces"
)

// DefaultMinTermLength is the minimum normalized length, in runes, a surface
// form must have to enter the corpus. Single-rune terms over-match badly in
// CJK prose where one character is a complete word.
const DefaultMinTermLength = 2

// Term binds one normalized surface form to its owning keyword page.
type Term struct {
	// SurfaceForm is the exact admin-entered string, kept for reporting.
	SurfaceForm string
	// NormalizedForm is the case- and width-folded matching key. Never empty.
	NormalizedForm string
	// TargetURL is the canonical destination for anchors over this term.
	TargetURL string
	// OwnerEntityID is the keyword page the term resolves to; aliases carry
	// their parent keyword's id.
	OwnerEntityID uuid.UUID
}

// RejectedTerm records a surface form dropped during rebuild, for operator
// visibility rather than silent loss.
type RejectedTerm struct {
	SurfaceForm   string
	OwnerEntityID uuid.UUID
	Reason        string
}

// Conflict records two owners competing for the same normalized form. The
// first-seen owner wins, deterministic by snapshot iteration order.
// SurfaceForm is the losing side's string as entered, so the operator can
// locate the offending title or alias.
type Conflict struct {
	NormalizedForm string
	SurfaceForm    string
	WinnerID       uuid.UUID
	LoserID        uuid.UUID
}

// Report summarizes a rebuild for logging and admin feedback.
type Report struct {
	Version   uint64
	TermCount int
	Rejected  []RejectedTerm
	Conflicts []Conflict
}

// Snapshot is one immutable, versioned term corpus. Readers obtain it from
// Store.Current and may hold it across a whole render; a concurrent rebuild
// never mutates a snapshot already handed out.
type Snapshot struct {
	version uint64
	terms   []Term
	byForm  map[string]int

	compileOnce sync.Once
	compiled    any
}

// Version reports the monotonically increasing corpus version.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Terms returns the corpus in insertion order, index-stable for the life of
// the snapshot. Callers must not mutate the returned slice.
func (s *Snapshot) Terms() []Term {
	return s.terms
}

// Len reports the number of distinct normalized forms in the corpus.
func (s *Snapshot) Len() int {
	return len(s.terms)
}

// Lookup resolves a normalized form to its term.
func (s *Snapshot) Lookup(normalized string) (Term, bool) {
	idx, ok := s.byForm[normalized]
	if !ok {
		return Term{}, false
	}
	return s.terms[idx], true
}

// Compiled memoizes an expensive derived structure (the match automaton) on
// the snapshot. The build function runs at most once per snapshot; every
// caller observes the same value.
func (s *Snapshot) Compiled(build func([]Term) any) any {
	s.compileOnce.Do(func() {
		s.compiled = build(s.terms)
	})
	return s.compiled
}

// Store holds the current Snapshot behind an atomic pointer. Rebuilds
// construct a complete replacement and swap it in one store; readers always
// observe either the fully-old or fully-new corpus.
type Store struct {
	minRunes int
	version  atomic.Uint64
	current  atomic.Pointer[Snapshot]
}

// StoreOption configures a Store at construction time.
type StoreOption func(*Store)

// WithMinTermLength overrides the minimum normalized rune count.
func WithMinTermLength(runes int) StoreOption {
	return func(s *Store) {
		if runes > 0 {
			s.minRunes = runes
		}
	}
}

// NewStore creates an empty store. Current returns nil until the first
// successful rebuild.
func NewStore(opts ...StoreOption) *Store {
	st := &Store{minRunes: DefaultMinTermLength}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Current returns the active snapshot, or nil before the first rebuild.
func (st *Store) Current() *Snapshot {
	return st.current.Load()
}

// Rebuild collects every title and alias from the supplied records,
// normalizes and deduplicates them, and atomically swaps in the new corpus.
// An empty record set is a valid corpus: deleting or unpublishing the last
// keyword swaps in an empty snapshot and linking stops. The returned report
// lists rejected surface forms and cross-owner duplicates.
func (st *Store) Rebuild(records []interfaces.KeywordRecord) (*Snapshot, Report, error) {
	snap := &Snapshot{
		terms:  make([]Term, 0, len(records)*2),
		byForm: make(map[string]int, len(records)*2),
	}
	report := Report{}

	for _, record := range records {
		surfaces := make([]string, 0, len(record.Aliases)+1)
		surfaces = append(surfaces, record.Title)
		surfaces = append(surfaces, record.Aliases...)

		for _, surface := range surfaces {
			surface = strings.TrimSpace(surface)
			if surface == "" {
				continue
			}

			normalized := Normalize(surface)
			if utf8.RuneCountInString(normalized) < st.minRunes {
				report.Rejected = append(report.Rejected, RejectedTerm{
					SurfaceForm:   surface,
					OwnerEntityID: record.OwnerEntityID,
					Reason:        "below minimum term length",
				})
				continue
			}

			if existing, ok := snap.byForm[normalized]; ok {
				if snap.terms[existing].OwnerEntityID != record.OwnerEntityID {
					report.Conflicts = append(report.Conflicts, Conflict{
						NormalizedForm: normalized,
						SurfaceForm:    surface,
						WinnerID:       snap.terms[existing].OwnerEntityID,
						LoserID:        record.OwnerEntityID,
					})
				}
				// Same owner: identical normalized forms collapse silently.
				continue
			}

			snap.byForm[normalized] = len(snap.terms)
			snap.terms = append(snap.terms, Term{
				SurfaceForm:    surface,
				NormalizedForm: normalized,
				TargetURL:      record.TargetURL,
				OwnerEntityID:  record.OwnerEntityID,
			})
		}
	}

	snap.version = st.version.Add(1)
	st.current.Store(snap)

	report.Version = snap.version
	report.TermCount = len(snap.terms)
	return snap, report, nil
}
