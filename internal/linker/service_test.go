package linker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-keywords/pkg/interfaces"
)

type stubSource struct {
	mu      sync.Mutex
	records []interfaces.KeywordRecord
	err     error
	calls   int
}

func (s *stubSource) Snapshot(context.Context) ([]interfaces.KeywordRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubSource) set(records []interfaces.KeywordRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.err = err
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestLinkContentPassthroughBeforeFirstRebuild(t *testing.T) {
	svc, err := New(&stubSource{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	content := "<p>photosynthesis</p>"
	if got := svc.LinkContent(context.Background(), content, uuid.Nil); got != content {
		t.Fatalf("expected passthrough before rebuild, got %q", got)
	}
}

func TestRebuildThenLink(t *testing.T) {
	owner := uuid.New()
	source := &stubSource{records: []interfaces.KeywordRecord{
		{
			OwnerEntityID: owner,
			Title:         "Photosynthesis",
			Aliases:       []string{"光合作用"},
			TargetURL:     "/kb/science/photosynthesis",
		},
	}}

	svc, err := New(source)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	version, count := svc.Report()
	if version != 1 || count != 2 {
		t.Fatalf("report = v%d/%d terms, want v1/2", version, count)
	}

	out := svc.LinkContent(context.Background(), "<p>Plants use photosynthesis.</p>", uuid.Nil)
	if !strings.Contains(out, `<a href="/kb/science/photosynthesis" class="keyword-link">photosynthesis</a>`) {
		t.Fatalf("mention not linked: %q", out)
	}

	// The alias resolves to the same page.
	out = svc.LinkContent(context.Background(), "<p>光合作用</p>", uuid.Nil)
	if !strings.Contains(out, `href="/kb/science/photosynthesis"`) {
		t.Fatalf("alias not linked: %q", out)
	}
}

func TestLinkContentExcludesCurrentEntity(t *testing.T) {
	owner := uuid.New()
	source := &stubSource{records: []interfaces.KeywordRecord{
		{OwnerEntityID: owner, Title: "Photosynthesis", TargetURL: "/kb/science/photosynthesis"},
	}}

	svc, err := New(source)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	content := "<p>Photosynthesis overview</p>"
	if got := svc.LinkContent(context.Background(), content, owner); got != content {
		t.Fatalf("own page must not self-link, got %q", got)
	}
	// A different page still links the same content.
	if got := svc.LinkContent(context.Background(), content, uuid.New()); got == content {
		t.Fatal("other pages must link the mention")
	}
}

func TestLinkContentIdempotent(t *testing.T) {
	owner := uuid.New()
	source := &stubSource{records: []interfaces.KeywordRecord{
		{OwnerEntityID: owner, Title: "Photosynthesis", TargetURL: "/kb/science/photosynthesis"},
	}}

	svc, err := New(source)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	first := svc.LinkContent(context.Background(), "<p>photosynthesis</p>", uuid.Nil)
	second := svc.LinkContent(context.Background(), first, uuid.Nil)
	if first != second {
		t.Fatalf("relinking linked output changed it:\n first %q\nsecond %q", first, second)
	}
}

func TestRebuildFailureKeepsServingPreviousCorpus(t *testing.T) {
	owner := uuid.New()
	source := &stubSource{records: []interfaces.KeywordRecord{
		{OwnerEntityID: owner, Title: "Photosynthesis", TargetURL: "/kb/science/photosynthesis"},
	}}

	svc, err := New(source)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	source.set(nil, errors.New("backend down"))
	if err := svc.Rebuild(context.Background()); err == nil {
		t.Fatal("expected rebuild error")
	}

	version, count := svc.Report()
	if version != 1 || count != 1 {
		t.Fatalf("previous corpus lost: v%d/%d terms", version, count)
	}
	out := svc.LinkContent(context.Background(), "<p>photosynthesis</p>", uuid.Nil)
	if !strings.Contains(out, "keyword-link") {
		t.Fatalf("linking stopped after failed rebuild: %q", out)
	}
}

func TestRebuildEmptySnapshotStopsLinking(t *testing.T) {
	owner := uuid.New()
	source := &stubSource{records: []interfaces.KeywordRecord{
		{OwnerEntityID: owner, Title: "Photosynthesis", TargetURL: "/kb/science/photosynthesis"},
	}}

	svc, err := New(source)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	content := "<p>photosynthesis</p>"
	if got := svc.LinkContent(context.Background(), content, uuid.Nil); got == content {
		t.Fatal("expected mention linked before the corpus emptied")
	}

	// The last keyword was removed upstream: the healthy-but-empty snapshot
	// replaces the corpus and anchors to the removed page stop.
	source.set([]interfaces.KeywordRecord{}, nil)
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("empty rebuild: %v", err)
	}

	version, count := svc.Report()
	if version != 2 || count != 0 {
		t.Fatalf("report = v%d/%d terms, want v2/0", version, count)
	}
	if got := svc.LinkContent(context.Background(), content, uuid.Nil); got != content {
		t.Fatalf("removed keyword still linked: %q", got)
	}
}

func TestCacheSurvivesAcrossVersions(t *testing.T) {
	owner := uuid.New()
	source := &stubSource{records: []interfaces.KeywordRecord{
		{OwnerEntityID: owner, Title: "Photosynthesis", TargetURL: "/kb/science/photosynthesis"},
	}}

	svc, err := New(source)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	content := "<p>photosynthesis</p>"
	before := svc.LinkContent(context.Background(), content, uuid.Nil)

	// Retarget the keyword and rebuild: the same content must pick up the new
	// URL because the cache key carries the corpus version.
	source.set([]interfaces.KeywordRecord{
		{OwnerEntityID: owner, Title: "Photosynthesis", TargetURL: "/kb/bio/photosynthesis"},
	}, nil)
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	after := svc.LinkContent(context.Background(), content, uuid.Nil)
	if after == before {
		t.Fatal("stale cached render served after rebuild")
	}
	if !strings.Contains(after, `href="/kb/bio/photosynthesis"`) {
		t.Fatalf("new target not used: %q", after)
	}
}

func TestConcurrentLinkAndRebuild(t *testing.T) {
	owner := uuid.New()
	source := &stubSource{records: []interfaces.KeywordRecord{
		{OwnerEntityID: owner, Title: "Photosynthesis", TargetURL: "/kb/science/photosynthesis"},
	}}

	svc, err := New(source)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	content := "<p>photosynthesis in plants</p>"
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				out := svc.LinkContent(context.Background(), content, uuid.Nil)
				if !strings.Contains(out, "keyword-link") {
					t.Error("content not linked during concurrent rebuilds")
					return
				}
			}
		}()
	}
	for i := 0; i < 10; i++ {
		if err := svc.Rebuild(context.Background()); err != nil {
			t.Fatalf("rebuild: %v", err)
		}
	}
	wg.Wait()
}

func TestOptionsApply(t *testing.T) {
	owner := uuid.New()
	source := &stubSource{records: []interfaces.KeywordRecord{
		{OwnerEntityID: owner, Title: "Photosynthesis", Aliases: []string{"光合"}, TargetURL: "/kb/science/photosynthesis"},
	}}

	svc, err := New(source,
		WithMinTermLength(3),
		WithAnchorClass("kb-ref"),
		WithCacheCapacity(0),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	// The two-rune alias fell below the raised minimum.
	if _, count := svc.Report(); count != 1 {
		t.Fatalf("expected 1 term, got %d", count)
	}

	out := svc.LinkContent(context.Background(), "<p>photosynthesis</p>", uuid.Nil)
	if !strings.Contains(out, `class="kb-ref"`) {
		t.Fatalf("custom anchor class not applied: %q", out)
	}
}
