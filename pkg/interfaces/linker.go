package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// KeywordRecord is the linker's view of one public keyword: its canonical
// title, alternative surface forms, and the page URL anchors resolve to.
type KeywordRecord struct {
	OwnerEntityID uuid.UUID
	Title         string
	Aliases       []string
	TargetURL     string
}

// KeywordSource supplies the complete set of linkable keywords. Snapshot is
// invoked on every corpus rebuild and must return a consistent, deterministic
// view of the corpus.
type KeywordSource interface {
	Snapshot(ctx context.Context) ([]KeywordRecord, error)
}

// Linker rewrites HTML so keyword mentions link to their pages.
type Linker interface {
	// LinkContent returns html with recognized mentions wrapped in anchors.
	// Mentions owned by currentEntityID stay plain so a page never links to
	// itself. It never fails; on internal errors the content passes through
	// unchanged.
	LinkContent(ctx context.Context, html string, currentEntityID uuid.UUID) string

	// Rebuild refreshes the term corpus from the keyword source. On failure
	// the previous corpus stays in force.
	Rebuild(ctx context.Context) error
}

// RebuildTrigger lets keyword mutations request a corpus refresh without
// depending on the linker implementation.
type RebuildTrigger interface {
	Rebuild(ctx context.Context) error
}
