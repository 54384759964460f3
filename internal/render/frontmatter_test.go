package render

import (
	"strings"
	"testing"
)

func TestParseDocument(t *testing.T) {
	source := []byte(`---
title: Photosynthesis
slug: photosynthesis
category: science
aliases:
  - 光合作用
  - photo-synthesis
public: true
---
How plants convert **light** into energy.
`)

	doc, err := ParseDocument(source)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if doc.Title != "Photosynthesis" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.Category != "science" {
		t.Fatalf("category = %q", doc.Category)
	}
	if len(doc.Aliases) != 2 || doc.Aliases[0] != "光合作用" {
		t.Fatalf("aliases = %v", doc.Aliases)
	}
	if !doc.Public {
		t.Fatal("expected public keyword")
	}
	if !strings.Contains(string(doc.Body), "How plants convert") {
		t.Fatalf("body = %q", doc.Body)
	}
}

func TestParseDocumentDefaultsToPublic(t *testing.T) {
	doc, err := ParseDocument([]byte("---\ntitle: Enzyme\n---\nBody.\n"))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if !doc.Public {
		t.Fatal("public must default to true")
	}

	doc, err = ParseDocument([]byte("---\ntitle: Enzyme\npublic: false\n---\nBody.\n"))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if doc.Public {
		t.Fatal("explicit public: false must stick")
	}
}

func TestParseDocumentRequiresTitle(t *testing.T) {
	if _, err := ParseDocument([]byte("---\ncategory: science\n---\nBody.\n")); err == nil {
		t.Fatal("expected error for missing title")
	}
}
