package keywords

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunCategoryRepository persists categories through go-repository-bun.
type BunCategoryRepository struct {
	repo repository.Repository[*Category]
}

func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return NewBunCategoryRepositoryWithCache(db, nil, nil)
}

func NewBunCategoryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCategoryRepository {
	base := NewCategoryRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunCategoryRepository{repo: wrapped}
}

func (r *BunCategoryRepository) Create(ctx context.Context, record *Category) (*Category, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "category", id.String())
	}
	return result, nil
}

func (r *BunCategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "category", slug)
	}
	return result, nil
}

func (r *BunCategoryRepository) List(ctx context.Context) ([]*Category, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

// BunKeywordRepository persists keywords through go-repository-bun.
type BunKeywordRepository struct {
	repo repository.Repository[*Keyword]
}

func NewBunKeywordRepository(db *bun.DB) *BunKeywordRepository {
	return NewBunKeywordRepositoryWithCache(db, nil, nil)
}

func NewBunKeywordRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunKeywordRepository {
	base := NewKeywordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunKeywordRepository{repo: wrapped}
}

func (r *BunKeywordRepository) Create(ctx context.Context, record *Keyword) (*Keyword, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunKeywordRepository) GetByID(ctx context.Context, id uuid.UUID) (*Keyword, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "keyword", id.String())
	}
	return result, nil
}

func (r *BunKeywordRepository) GetBySlug(ctx context.Context, slug string) (*Keyword, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "keyword", slug)
	}
	return result, nil
}

func (r *BunKeywordRepository) List(ctx context.Context) ([]*Keyword, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunKeywordRepository) ListPublic(ctx context.Context) ([]*Keyword, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.is_public = ?", true)
	}))
	return records, err
}

func (r *BunKeywordRepository) Update(ctx context.Context, record *Keyword) (*Keyword, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "keyword", record.ID.String())
	}
	return updated, nil
}

func (r *BunKeywordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Keyword{ID: id})
}

// BunAliasRepository persists keyword aliases through go-repository-bun.
type BunAliasRepository struct {
	repo repository.Repository[*KeywordAlias]
}

func NewBunAliasRepository(db *bun.DB) *BunAliasRepository {
	return NewBunAliasRepositoryWithCache(db, nil, nil)
}

func NewBunAliasRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunAliasRepository {
	base := NewAliasRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunAliasRepository{repo: wrapped}
}

func (r *BunAliasRepository) Create(ctx context.Context, record *KeywordAlias) (*KeywordAlias, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunAliasRepository) ListByKeyword(ctx context.Context, keywordID uuid.UUID) ([]*KeywordAlias, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.keyword_id = ?", keywordID.String())
	}))
	return records, err
}

func (r *BunAliasRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &KeywordAlias{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
