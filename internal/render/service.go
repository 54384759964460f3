package render

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-keywords/internal/keywords"
	"github.com/goliatone/go-keywords/internal/logging"
	"github.com/goliatone/go-keywords/pkg/interfaces"
)

// Service turns keyword descriptions into linked HTML: Markdown conversion
// through goldmark, then keyword linking with the page's own id excluded so
// a keyword never links to itself.
type Service struct {
	parser   interfaces.MarkdownParser
	linker   interfaces.Linker
	keywords keywords.Service
	logger   interfaces.Logger
	defaults interfaces.ParseOptions
}

// Config controls the render pipeline.
type Config struct {
	Parser interfaces.ParseOptions
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*Service)

// WithLoggerProvider attaches a module-scoped logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *Service) {
		s.logger = logging.RenderLogger(provider)
	}
}

// WithParser overrides the default goldmark parser.
func WithParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// NewService constructs the render pipeline.
func NewService(cfg Config, keywordSvc keywords.Service, linker interfaces.Linker, opts ...ServiceOption) *Service {
	s := &Service{
		parser:   NewGoldmarkParser(cfg.Parser),
		linker:   linker,
		keywords: keywordSvc,
		logger:   logging.NoOp(),
		defaults: cfg.Parser,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RenderHTML converts Markdown into HTML and links keyword mentions,
// excluding those owned by currentEntityID. Linking failures degrade to
// unlinked HTML rather than failing the render.
func (s *Service) RenderHTML(ctx context.Context, markdown []byte, currentEntityID uuid.UUID) (string, error) {
	converted, err := s.parser.ParseWithOptions(markdown, s.defaults)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	if s.linker == nil {
		return string(converted), nil
	}
	return s.linker.LinkContent(ctx, string(converted), currentEntityID), nil
}

// RenderKeyword renders a keyword's own description page.
func (s *Service) RenderKeyword(ctx context.Context, keyword *keywords.Keyword) (string, error) {
	if keyword == nil {
		return "", fmt.Errorf("render: keyword is nil")
	}
	return s.RenderHTML(ctx, []byte(keyword.Description), keyword.ID)
}

// ImportDocument creates a keyword from a frontmatter Markdown document. The
// category is resolved by slug and must already exist.
func (s *Service) ImportDocument(ctx context.Context, source []byte) (*keywords.Keyword, error) {
	if s.keywords == nil {
		return nil, fmt.Errorf("render: keyword service not configured")
	}

	doc, err := ParseDocument(source)
	if err != nil {
		return nil, err
	}

	categoryID := uuid.Nil
	if doc.Category != "" {
		category, err := lookupCategory(ctx, s.keywords, doc.Category)
		if err != nil {
			return nil, err
		}
		categoryID = category.ID
	}

	created, err := s.keywords.Create(ctx, keywords.CreateKeywordRequest{
		CategoryID:  categoryID,
		Title:       doc.Title,
		Slug:        doc.Slug,
		Description: string(doc.Body),
		IsPublic:    doc.Public,
		Aliases:     doc.Aliases,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).Info("keyword imported from document",
		"title", created.Title,
		"slug", created.Slug,
		"aliases", len(doc.Aliases),
	)
	return created, nil
}

func lookupCategory(ctx context.Context, svc keywords.Service, slug string) (*keywords.Category, error) {
	category, err := svc.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("render: category %q: %w", slug, err)
	}
	return category, nil
}
