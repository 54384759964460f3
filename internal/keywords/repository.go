package keywords

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CategoryRepository abstracts storage operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, record *Category) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}

// KeywordRepository abstracts storage operations for keywords.
type KeywordRepository interface {
	Create(ctx context.Context, record *Keyword) (*Keyword, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Keyword, error)
	GetBySlug(ctx context.Context, slug string) (*Keyword, error)
	List(ctx context.Context) ([]*Keyword, error)
	ListPublic(ctx context.Context) ([]*Keyword, error)
	Update(ctx context.Context, record *Keyword) (*Keyword, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AliasRepository abstracts storage operations for keyword aliases.
type AliasRepository interface {
	Create(ctx context.Context, record *KeywordAlias) (*KeywordAlias, error)
	ListByKeyword(ctx context.Context, keywordID uuid.UUID) ([]*KeywordAlias, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewCategoryRepository creates a bun-backed repository for Category entities.
func NewCategoryRepository(db *bun.DB) repository.Repository[*Category] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Category) string {
			return c.Slug
		},
	})
}

// NewKeywordRepository creates a bun-backed repository for Keyword entities.
func NewKeywordRepository(db *bun.DB) repository.Repository[*Keyword] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Keyword]{
		NewRecord: func() *Keyword { return &Keyword{} },
		GetID: func(k *Keyword) uuid.UUID {
			return k.ID
		},
		SetID: func(k *Keyword, id uuid.UUID) {
			k.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(k *Keyword) string {
			return k.Slug
		},
	})
}

// NewAliasRepository creates a bun-backed repository for KeywordAlias entities.
func NewAliasRepository(db *bun.DB) repository.Repository[*KeywordAlias] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*KeywordAlias]{
		NewRecord: func() *KeywordAlias { return &KeywordAlias{} },
		GetID: func(a *KeywordAlias) uuid.UUID {
			return a.ID
		},
		SetID: func(a *KeywordAlias, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(a *KeywordAlias) string {
			return a.ID.String()
		},
	})
}
