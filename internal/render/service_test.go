package render

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-keywords/internal/keywords"
	"github.com/goliatone/go-keywords/internal/linker"
	"github.com/goliatone/go-keywords/pkg/interfaces"
)

func newPipeline(t *testing.T) (*Service, keywords.Service, interfaces.Linker) {
	t.Helper()

	keywordSvc := keywords.NewService(
		keywords.NewMemoryCategoryRepository(),
		keywords.NewMemoryKeywordRepository(),
		keywords.NewMemoryAliasRepository(),
		keywords.NewURLBuilder(keywords.DefaultRouteManager(""), "", ""),
	)
	linkerSvc, err := linker.New(keywordSvc)
	if err != nil {
		t.Fatalf("new linker: %v", err)
	}
	keywordSvc.SetRebuildTrigger(linkerSvc)

	renderSvc := NewService(Config{}, keywordSvc, linkerSvc)
	return renderSvc, keywordSvc, linkerSvc
}

func TestRenderHTMLLinksMentions(t *testing.T) {
	renderSvc, keywordSvc, _ := newPipeline(t)
	ctx := context.Background()

	category, err := keywordSvc.CreateCategory(ctx, keywords.CreateCategoryRequest{Name: "Science"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := keywordSvc.Create(ctx, keywords.CreateKeywordRequest{
		CategoryID: category.ID,
		Title:      "Photosynthesis",
		IsPublic:   true,
	}); err != nil {
		t.Fatalf("create keyword: %v", err)
	}

	out, err := renderSvc.RenderHTML(ctx, []byte("Plants rely on photosynthesis daily."), uuid.New())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<a href="/kb/science/photosynthesis" class="keyword-link">photosynthesis</a>`) {
		t.Fatalf("mention not linked: %q", out)
	}
}

func TestRenderKeywordExcludesOwnPage(t *testing.T) {
	renderSvc, keywordSvc, _ := newPipeline(t)
	ctx := context.Background()

	category, err := keywordSvc.CreateCategory(ctx, keywords.CreateCategoryRequest{Name: "Biology"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	photosynthesis, err := keywordSvc.Create(ctx, keywords.CreateKeywordRequest{
		CategoryID:  category.ID,
		Title:       "光合作用",
		Description: "光合作用與光合反應密切相關。",
		IsPublic:    true,
	})
	if err != nil {
		t.Fatalf("create keyword: %v", err)
	}
	if _, err := keywordSvc.Create(ctx, keywords.CreateKeywordRequest{
		CategoryID: category.ID,
		Title:      "光合反應",
		IsPublic:   true,
	}); err != nil {
		t.Fatalf("create keyword: %v", err)
	}

	out, err := renderSvc.RenderKeyword(ctx, photosynthesis)
	if err != nil {
		t.Fatalf("render keyword: %v", err)
	}
	if strings.Contains(out, `>光合作用</a>`) {
		t.Fatalf("keyword page linked its own title: %q", out)
	}
	if !strings.Contains(out, `>光合反應</a>`) {
		t.Fatalf("related keyword not linked: %q", out)
	}
}

func TestImportDocumentCreatesKeyword(t *testing.T) {
	renderSvc, keywordSvc, linkerSvc := newPipeline(t)
	ctx := context.Background()

	if _, err := keywordSvc.CreateCategory(ctx, keywords.CreateCategoryRequest{Name: "Science"}); err != nil {
		t.Fatalf("create category: %v", err)
	}

	created, err := renderSvc.ImportDocument(ctx, []byte(`---
title: Photosynthesis
category: science
aliases:
  - 光合作用
---
How plants convert light.
`))
	if err != nil {
		t.Fatalf("import document: %v", err)
	}
	if created.Slug != "photosynthesis" {
		t.Fatalf("slug = %q", created.Slug)
	}

	// Import runs the mutation path, so the corpus already knows the keyword.
	out := linkerSvc.LinkContent(ctx, "<p>光合作用</p>", uuid.New())
	if !strings.Contains(out, `href="/kb/science/photosynthesis"`) {
		t.Fatalf("imported alias not linked: %q", out)
	}
}

func TestImportDocumentUnknownCategory(t *testing.T) {
	renderSvc, _, _ := newPipeline(t)

	if _, err := renderSvc.ImportDocument(context.Background(), []byte("---\ntitle: Orphan\ncategory: missing\n---\nBody.\n")); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestGoldmarkParserRendersGFM(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.Parse([]byte("A | B\n--- | ---\n1 | 2\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Fatalf("expected GFM table, got %q", out)
	}
}
