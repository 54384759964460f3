package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// CategoryUUID derives the id for a category from its slug.
func CategoryUUID(slug string) uuid.UUID {
	return UUID("go-keywords:category:" + strings.ToLower(strings.TrimSpace(slug)))
}

// KeywordUUID derives the id for a keyword from its category and slug.
func KeywordUUID(categoryID uuid.UUID, slug string) uuid.UUID {
	return UUID("go-keywords:keyword:" + categoryID.String() + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// AliasUUID derives the id for an alias from its parent keyword and slug.
func AliasUUID(keywordID uuid.UUID, slug string) uuid.UUID {
	return UUID("go-keywords:alias:" + keywordID.String() + ":" + strings.ToLower(strings.TrimSpace(slug)))
}
