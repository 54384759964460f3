// Package linker is the public face of the keyword-linking engine: one call
// per page render, one rebuild per admin mutation.
package linker

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/goliatone/go-keywords/internal/linkcache"
	"github.com/goliatone/go-keywords/internal/logging"
	"github.com/goliatone/go-keywords/internal/matchindex"
	"github.com/goliatone/go-keywords/internal/rewrite"
	"github.com/goliatone/go-keywords/internal/terms"
	"github.com/goliatone/go-keywords/pkg/interfaces"
)

// Service coordinates the term store, match index, rewriter, and link cache
// behind the interfaces.Linker contract. The read path is lock-free: it loads
// the current immutable snapshot and scans; rebuilds swap snapshots
// atomically underneath concurrent renders.
type Service struct {
	source   interfaces.KeywordSource
	store    *terms.Store
	cache    *linkcache.Cache
	rewriter *rewrite.Rewriter
	logger   interfaces.Logger
}

var _ interfaces.Linker = (*Service)(nil)

// Option configures the service at construction time.
type Option func(*Service)

// WithLoggerProvider attaches a module-scoped logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		s.logger = logging.LinkerLogger(provider)
	}
}

// WithMinTermLength overrides the minimum normalized term length.
func WithMinTermLength(runes int) Option {
	return func(s *Service) {
		s.store = terms.NewStore(terms.WithMinTermLength(runes))
	}
}

// WithCacheCapacity bounds the link cache. Zero or negative disables caching.
func WithCacheCapacity(capacity int) Option {
	return func(s *Service) {
		cache, err := linkcache.New(capacity)
		if err == nil {
			s.cache = cache
		}
	}
}

// WithAnchorClass overrides the class attribute on generated anchors.
func WithAnchorClass(class string) Option {
	return func(s *Service) {
		s.rewriter = rewrite.New(rewrite.WithAnchorClass(class))
	}
}

// New constructs a linker over the supplied keyword source. The corpus is
// empty until the first Rebuild; LinkContent passes content through untouched
// meanwhile.
func New(source interfaces.KeywordSource, opts ...Option) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("linker: keyword source is required")
	}

	cache, err := linkcache.New(linkcache.DefaultCapacity)
	if err != nil {
		return nil, err
	}

	s := &Service{
		source:   source,
		store:    terms.NewStore(),
		cache:    cache,
		rewriter: rewrite.New(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LinkContent rewrites html so every recognized keyword mention links to its
// page, skipping mentions owned by currentEntityID. It never fails: any
// internal error leaves the content unchanged.
func (s *Service) LinkContent(ctx context.Context, content string, currentEntityID uuid.UUID) string {
	snap := s.store.Current()
	if snap == nil || snap.Len() == 0 || content == "" {
		return content
	}

	key := linkcache.Key{
		ContentHash: xxhash.Sum64String(content),
		Version:     snap.Version(),
		Exclude:     currentEntityID,
	}

	return s.cache.GetOrCompute(key, func() string {
		linked, err := s.rewriter.Rewrite(content, matchindex.For(snap), currentEntityID)
		if err != nil {
			s.logger.WithContext(ctx).Warn("content left unlinked: rewrite failed",
				"error", err,
				"entity_id", currentEntityID.String(),
			)
			return content
		}
		return linked
	})
}

// Rebuild pulls a fresh keyword snapshot and swaps in a new term corpus. On
// any failure the previous corpus stays in force and the next trigger
// retries. Satisfies interfaces.RebuildTrigger for the admin-edit pathway.
func (s *Service) Rebuild(ctx context.Context) error {
	records, err := s.source.Snapshot(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error("keyword snapshot unavailable, keeping previous corpus", "error", err)
		return fmt.Errorf("linker: keyword snapshot: %w", err)
	}

	_, report, err := s.store.Rebuild(records)
	if err != nil {
		s.logger.WithContext(ctx).Error("term corpus rebuild failed, keeping previous corpus", "error", err)
		return fmt.Errorf("linker: rebuild: %w", err)
	}

	logger := s.logger.WithContext(ctx)
	for _, rejected := range report.Rejected {
		logger.Warn("term rejected from corpus",
			"surface", rejected.SurfaceForm,
			"owner_id", rejected.OwnerEntityID.String(),
			"reason", rejected.Reason,
		)
	}
	for _, conflict := range report.Conflicts {
		logger.Warn("duplicate normalized term across owners",
			"normalized", conflict.NormalizedForm,
			"surface", conflict.SurfaceForm,
			"winner_id", conflict.WinnerID.String(),
			"loser_id", conflict.LoserID.String(),
		)
	}
	logger.Info("term corpus rebuilt",
		"version", report.Version,
		"terms", report.TermCount,
		"rejected", len(report.Rejected),
		"conflicts", len(report.Conflicts),
	)
	return nil
}

// Report returns the current corpus version and size, mainly for admin
// dashboards and tests.
func (s *Service) Report() (version uint64, termCount int) {
	snap := s.store.Current()
	if snap == nil {
		return 0, 0
	}
	return snap.Version(), snap.Len()
}
