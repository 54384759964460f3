package keywords

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category groups keywords for URL namespacing and browsing.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID        uuid.UUID `bun:",pk,type:uuid"      json:"id"`
	Name      string    `bun:"name,notnull"       json:"name"`
	Slug      string    `bun:"slug,notnull"       json:"slug"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Keyword is one knowledge-base entry: a titled page with a Markdown
// description. Only public keywords participate in automatic linking.
type Keyword struct {
	bun.BaseModel `bun:"table:keywords,alias:k"`

	ID          uuid.UUID       `bun:",pk,type:uuid"            json:"id"`
	CategoryID  uuid.UUID       `bun:"category_id,notnull,type:uuid" json:"category_id"`
	Title       string          `bun:"title,notnull"            json:"title"`
	Slug        string          `bun:"slug,notnull"             json:"slug"`
	Description string          `bun:"description"              json:"description"`
	IsPublic    bool            `bun:"is_public,notnull,default:true" json:"is_public"`
	CreatedAt   time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	Category    *Category       `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Aliases     []*KeywordAlias `bun:"rel:has-many,join:id=keyword_id"    json:"aliases,omitempty"`
}

// KeywordAlias is an alternative surface form resolving to its parent
// keyword's page.
type KeywordAlias struct {
	bun.BaseModel `bun:"table:keyword_aliases,alias:ka"`

	ID        uuid.UUID `bun:",pk,type:uuid"                json:"id"`
	KeywordID uuid.UUID `bun:"keyword_id,notnull,type:uuid" json:"keyword_id"`
	Title     string    `bun:"title,notnull"                json:"title"`
	Slug      string    `bun:"slug,notnull"                 json:"slug"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
