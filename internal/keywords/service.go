package keywords

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-keywords/internal/identity"
	"github.com/goliatone/go-keywords/internal/logging"
	"github.com/goliatone/go-keywords/pkg/interfaces"
)

// Service exposes keyword administration use-cases. Every mutation notifies
// the registered rebuild trigger so the linking corpus tracks edits.
type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, req CreateKeywordRequest) (*Keyword, error)
	Update(ctx context.Context, req UpdateKeywordRequest) (*Keyword, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*Keyword, error)
	GetBySlug(ctx context.Context, slug string) (*Keyword, error)
	List(ctx context.Context) ([]*Keyword, error)
	AddAlias(ctx context.Context, req AddAliasRequest) (*KeywordAlias, error)
	RemoveAlias(ctx context.Context, aliasID uuid.UUID) error
	Snapshot(ctx context.Context) ([]interfaces.KeywordRecord, error)
	SetRebuildTrigger(trigger interfaces.RebuildTrigger)
}

var (
	ErrCategoryRequired = errors.New("keywords: category does not exist")
	ErrKeywordRequired  = errors.New("keywords: keyword id required")
	ErrSlugExists       = errors.New("keywords: slug already exists")
	ErrAliasRequired    = errors.New("keywords: alias id required")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// CreateCategoryRequest captures the fields required to create a category.
type CreateCategoryRequest struct {
	Name string
	Slug string
}

// Validate enforces field-level constraints.
func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 120)),
	)
}

// CreateKeywordRequest captures the information required to create a keyword.
type CreateKeywordRequest struct {
	CategoryID  uuid.UUID
	Title       string
	Slug        string
	Description string
	IsPublic    bool
	Aliases     []string
}

// Validate enforces field-level constraints.
func (r CreateKeywordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Slug, validation.RuneLength(0, 200)),
	)
}

// UpdateKeywordRequest applies partial updates; nil fields are untouched.
type UpdateKeywordRequest struct {
	ID          uuid.UUID
	Title       *string
	Slug        *string
	Description *string
	IsPublic    *bool
}

// Validate enforces field-level constraints.
func (r UpdateKeywordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != nil, validation.By(func(any) error {
			if strings.TrimSpace(*r.Title) == "" {
				return errors.New("cannot be blank")
			}
			return nil
		}))),
	)
}

// AddAliasRequest captures a new alias for an existing keyword.
type AddAliasRequest struct {
	KeywordID uuid.UUID
	Title     string
}

// Validate enforces field-level constraints.
func (r AddAliasRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 200)),
	)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

// WithLoggerProvider attaches a module-scoped logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.logger = logging.KeywordsLogger(provider)
	}
}

type service struct {
	categories CategoryRepository
	keywords   KeywordRepository
	aliases    AliasRepository
	urls       *URLBuilder
	trigger    interfaces.RebuildTrigger
	logger     interfaces.Logger
	now        func() time.Time
}

// NewService constructs the keyword admin service.
func NewService(categories CategoryRepository, keywords KeywordRepository, aliases AliasRepository, urls *URLBuilder, opts ...ServiceOption) Service {
	s := &service{
		categories: categories,
		keywords:   keywords,
		aliases:    aliases,
		urls:       urls,
		logger:     logging.NoOp(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRebuildTrigger registers the linker rebuild hook. Registration happens
// after construction because the linker consumes this service as its
// snapshot source.
func (s *service) SetRebuildTrigger(trigger interfaces.RebuildTrigger) {
	s.trigger = trigger
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	categorySlug, err := deriveSlug(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	record := &Category{
		ID:        identity.CategoryUUID(categorySlug),
		Name:      strings.TrimSpace(req.Name),
		Slug:      categorySlug,
		CreatedAt: s.now().UTC(),
	}
	return s.categories.Create(ctx, record)
}

func (s *service) GetCategoryBySlug(ctx context.Context, categorySlug string) (*Category, error) {
	return s.categories.GetBySlug(ctx, strings.TrimSpace(categorySlug))
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

func (s *service) Create(ctx context.Context, req CreateKeywordRequest) (*Keyword, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.CategoryID == uuid.Nil {
		return nil, ErrCategoryRequired
	}
	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		return nil, ErrCategoryRequired
	}

	keywordSlug, err := deriveSlug(req.Slug, req.Title)
	if err != nil {
		return nil, err
	}
	if existing, err := s.keywords.GetBySlug(ctx, keywordSlug); err == nil && existing != nil {
		return nil, ErrSlugExists
	}

	now := s.now().UTC()
	record := &Keyword{
		ID:          identity.KeywordUUID(req.CategoryID, keywordSlug),
		CategoryID:  req.CategoryID,
		Title:       strings.TrimSpace(req.Title),
		Slug:        keywordSlug,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.keywords.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	for _, alias := range req.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		if _, err := s.createAlias(ctx, created.ID, alias); err != nil {
			return nil, err
		}
	}

	s.notifyRebuild(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateKeywordRequest) (*Keyword, error) {
	if req.ID == uuid.Nil {
		return nil, ErrKeywordRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.keywords.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		record.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		updated, err := deriveSlug(*req.Slug, record.Title)
		if err != nil {
			return nil, err
		}
		record.Slug = updated
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.IsPublic != nil {
		record.IsPublic = *req.IsPublic
	}
	record.UpdatedAt = s.now().UTC()

	updated, err := s.keywords.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.notifyRebuild(ctx)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrKeywordRequired
	}

	aliases, err := s.aliases.ListByKeyword(ctx, id)
	if err != nil {
		return err
	}
	for _, alias := range aliases {
		if err := s.aliases.Delete(ctx, alias.ID); err != nil {
			return err
		}
	}

	if err := s.keywords.Delete(ctx, id); err != nil {
		return err
	}

	s.notifyRebuild(ctx)
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Keyword, error) {
	if id == uuid.Nil {
		return nil, ErrKeywordRequired
	}
	return s.keywords.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, keywordSlug string) (*Keyword, error) {
	return s.keywords.GetBySlug(ctx, strings.TrimSpace(keywordSlug))
}

func (s *service) List(ctx context.Context) ([]*Keyword, error) {
	return s.keywords.List(ctx)
}

func (s *service) AddAlias(ctx context.Context, req AddAliasRequest) (*KeywordAlias, error) {
	if req.KeywordID == uuid.Nil {
		return nil, ErrKeywordRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.keywords.GetByID(ctx, req.KeywordID); err != nil {
		return nil, err
	}

	created, err := s.createAlias(ctx, req.KeywordID, req.Title)
	if err != nil {
		return nil, err
	}

	s.notifyRebuild(ctx)
	return created, nil
}

func (s *service) RemoveAlias(ctx context.Context, aliasID uuid.UUID) error {
	if aliasID == uuid.Nil {
		return ErrAliasRequired
	}
	if err := s.aliases.Delete(ctx, aliasID); err != nil {
		return err
	}

	s.notifyRebuild(ctx)
	return nil
}

// Snapshot assembles the linker's view of the corpus: every public keyword
// with its aliases and resolved page URL. Record order is stable (title,
// then id) so duplicate-term precedence is deterministic across rebuilds.
func (s *service) Snapshot(ctx context.Context) ([]interfaces.KeywordRecord, error) {
	publics, err := s.keywords.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("keywords: list public: %w", err)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("keywords: list categories: %w", err)
	}
	categorySlugs := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		categorySlugs[category.ID] = category.Slug
	}

	sort.Slice(publics, func(i, j int) bool {
		if publics[i].Title != publics[j].Title {
			return publics[i].Title < publics[j].Title
		}
		return publics[i].ID.String() < publics[j].ID.String()
	})

	records := make([]interfaces.KeywordRecord, 0, len(publics))
	for _, keyword := range publics {
		aliases, err := s.aliases.ListByKeyword(ctx, keyword.ID)
		if err != nil {
			return nil, fmt.Errorf("keywords: list aliases for %s: %w", keyword.ID, err)
		}
		sort.Slice(aliases, func(i, j int) bool { return aliases[i].Title < aliases[j].Title })

		surfaces := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			surfaces = append(surfaces, alias.Title)
		}

		target, err := s.urls.KeywordURL(categorySlugs[keyword.CategoryID], keyword.Slug)
		if err != nil {
			return nil, fmt.Errorf("keywords: build url for %s: %w", keyword.Slug, err)
		}

		records = append(records, interfaces.KeywordRecord{
			OwnerEntityID: keyword.ID,
			Title:         keyword.Title,
			Aliases:       surfaces,
			TargetURL:     target,
		})
	}
	return records, nil
}

func (s *service) createAlias(ctx context.Context, keywordID uuid.UUID, title string) (*KeywordAlias, error) {
	aliasSlug, err := deriveSlug("", title)
	if err != nil {
		return nil, err
	}
	record := &KeywordAlias{
		ID:        identity.AliasUUID(keywordID, aliasSlug),
		KeywordID: keywordID,
		Title:     strings.TrimSpace(title),
		Slug:      aliasSlug,
		CreatedAt: s.now().UTC(),
	}
	return s.aliases.Create(ctx, record)
}

// notifyRebuild asks the linker to refresh its corpus. Failure is logged but
// never fails the admin mutation: a stale corpus is eventually consistent and
// the next edit retries.
func (s *service) notifyRebuild(ctx context.Context) {
	if s.trigger == nil {
		return
	}
	if err := s.trigger.Rebuild(ctx); err != nil {
		s.logger.WithContext(ctx).Warn("linker rebuild failed after keyword mutation", "error", err)
	}
}

// deriveSlug normalizes the explicit slug when given, otherwise derives one
// from the fallback text. CJK-only titles normalize to an empty slug; those
// fall back to a stable hash of the original text so every keyword still has
// an addressable page.
func deriveSlug(explicit, fallback string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = strings.TrimSpace(fallback)
	}
	if source == "" {
		return "", errors.New("keywords: cannot derive slug from empty value")
	}

	normalized, err := slug.Normalize(source)
	if err != nil || strings.TrimSpace(normalized) == "" {
		fallbackID := identity.UUID("go-keywords:slug:" + source)
		return fallbackID.String(), nil
	}
	return normalized, nil
}
