package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// KeywordDocument is one keyword authored as a Markdown file: frontmatter
// carries the metadata, the body is the page description.
type KeywordDocument struct {
	Title    string
	Slug     string
	Category string
	Aliases  []string
	Public   bool
	Body     []byte
}

type documentEnvelope struct {
	Title    string   `yaml:"title"`
	Slug     string   `yaml:"slug"`
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases"`
	Public   *bool    `yaml:"public"`
}

// ParseDocument extracts keyword metadata and the Markdown description from
// a frontmatter document. Keywords default to public unless the frontmatter
// says otherwise.
func ParseDocument(source []byte) (*KeywordDocument, error) {
	var meta documentEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse keyword document: %w", err)
	}

	if strings.TrimSpace(meta.Title) == "" {
		return nil, fmt.Errorf("parse keyword document: title is required")
	}

	public := true
	if meta.Public != nil {
		public = *meta.Public
	}

	aliases := make([]string, 0, len(meta.Aliases))
	for _, alias := range meta.Aliases {
		if trimmed := strings.TrimSpace(alias); trimmed != "" {
			aliases = append(aliases, trimmed)
		}
	}

	return &KeywordDocument{
		Title:    strings.TrimSpace(meta.Title),
		Slug:     strings.TrimSpace(meta.Slug),
		Category: strings.TrimSpace(meta.Category),
		Aliases:  aliases,
		Public:   public,
		Body:     body,
	}, nil
}
