package keywords

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryCategoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*Category
	slugIndex  map[string]uuid.UUID
}

// NewMemoryCategoryRepository creates an empty in-memory category repository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: make(map[uuid.UUID]*Category),
		slugIndex:  make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied category.
func (m *MemoryCategoryRepository) Create(_ context.Context, record *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.categories[copied.ID] = &copied
	m.slugIndex[copied.Slug] = copied.ID
	out := copied
	return &out, nil
}

// GetByID retrieves a category by identifier.
func (m *MemoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.categories[id]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

// GetBySlug retrieves a category by slug.
func (m *MemoryCategoryRepository) GetBySlug(_ context.Context, slug string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: slug}
	}
	copied := *m.categories[id]
	return &copied, nil
}

// List returns all categories sorted by slug.
func (m *MemoryCategoryRepository) List(_ context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Category, 0, len(m.categories))
	for _, rec := range m.categories {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// MemoryKeywordRepository is an in-memory implementation for scaffolding and tests.
type MemoryKeywordRepository struct {
	mu        sync.RWMutex
	keywords  map[uuid.UUID]*Keyword
	slugIndex map[string]uuid.UUID
}

// NewMemoryKeywordRepository creates an empty in-memory keyword repository.
func NewMemoryKeywordRepository() *MemoryKeywordRepository {
	return &MemoryKeywordRepository{
		keywords:  make(map[uuid.UUID]*Keyword),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied keyword.
func (m *MemoryKeywordRepository) Create(_ context.Context, record *Keyword) (*Keyword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneKeyword(record)
	m.keywords[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneKeyword(copied), nil
}

// GetByID retrieves a keyword by identifier.
func (m *MemoryKeywordRepository) GetByID(_ context.Context, id uuid.UUID) (*Keyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.keywords[id]
	if !ok {
		return nil, &NotFoundError{Resource: "keyword", Key: id.String()}
	}
	return cloneKeyword(rec), nil
}

// GetBySlug retrieves a keyword by slug, returning NotFoundError when absent.
func (m *MemoryKeywordRepository) GetBySlug(_ context.Context, slug string) (*Keyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "keyword", Key: slug}
	}
	return cloneKeyword(m.keywords[id]), nil
}

// List returns all keywords sorted by title.
func (m *MemoryKeywordRepository) List(_ context.Context) ([]*Keyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Keyword, 0, len(m.keywords))
	for _, rec := range m.keywords {
		out = append(out, cloneKeyword(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// ListPublic returns public keywords sorted by title.
func (m *MemoryKeywordRepository) ListPublic(_ context.Context) ([]*Keyword, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Keyword, 0, len(m.keywords))
	for _, rec := range m.keywords {
		if rec.IsPublic {
			out = append(out, cloneKeyword(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Update replaces the stored keyword.
func (m *MemoryKeywordRepository) Update(_ context.Context, record *Keyword) (*Keyword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.keywords[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "keyword", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := cloneKeyword(record)
	m.keywords[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneKeyword(copied), nil
}

// Delete removes a keyword.
func (m *MemoryKeywordRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.keywords[id]
	if !ok {
		return &NotFoundError{Resource: "keyword", Key: id.String()}
	}
	delete(m.slugIndex, existing.Slug)
	delete(m.keywords, id)
	return nil
}

// MemoryAliasRepository is an in-memory implementation for scaffolding and tests.
type MemoryAliasRepository struct {
	mu      sync.RWMutex
	aliases map[uuid.UUID]*KeywordAlias
}

// NewMemoryAliasRepository creates an empty in-memory alias repository.
func NewMemoryAliasRepository() *MemoryAliasRepository {
	return &MemoryAliasRepository{
		aliases: make(map[uuid.UUID]*KeywordAlias),
	}
}

// Create inserts the supplied alias.
func (m *MemoryAliasRepository) Create(_ context.Context, record *KeywordAlias) (*KeywordAlias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.aliases[copied.ID] = &copied
	out := copied
	return &out, nil
}

// ListByKeyword returns the aliases belonging to a keyword, sorted by title.
func (m *MemoryAliasRepository) ListByKeyword(_ context.Context, keywordID uuid.UUID) ([]*KeywordAlias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*KeywordAlias, 0)
	for _, rec := range m.aliases {
		if rec.KeywordID == keywordID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Delete removes an alias.
func (m *MemoryAliasRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.aliases[id]; !ok {
		return &NotFoundError{Resource: "keyword_alias", Key: id.String()}
	}
	delete(m.aliases, id)
	return nil
}

func cloneKeyword(src *Keyword) *Keyword {
	if src == nil {
		return nil
	}

	copied := *src
	if len(src.Aliases) > 0 {
		copied.Aliases = make([]*KeywordAlias, len(src.Aliases))
		for i, alias := range src.Aliases {
			if alias == nil {
				continue
			}
			local := *alias
			copied.Aliases[i] = &local
		}
	}
	return &copied
}
