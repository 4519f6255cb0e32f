// Package parser extracts definitions and raw import strings from source files.
// Two interchangeable strategies implement the same contract: a precise one
// backed by tree-sitter grammars and a regex fallback used when no grammar is
// available. Failures never propagate past a file: the precise strategy degrades
// to the fallback per file, and parsing and import extraction fail independently.
package parser

import (
	"context"

	"github.com/dpolishuk/codegraph/internal/models"
)

// Strategy is the structural parser contract. Parse returns the definitions
// found in content; ExtractImports returns raw import strings in source order,
// verbatim except for stripped quotes. Neither returns an error: per-file
// recovery is part of the contract.
type Strategy interface {
	Parse(ctx context.Context, content []byte, path string) []models.CodeEntity
	ExtractImports(ctx context.Context, content []byte, path string) []string
}

// New returns the default strategy: precise parsing with per-file regex
// fallback.
func New() Strategy {
	return NewPrecise()
}

// excerpt returns at most max bytes of content starting at start.
func excerpt(content []byte, start, max int) string {
	if start >= len(content) {
		return ""
	}
	end := start + max
	if end > len(content) {
		end = len(content)
	}
	return string(content[start:end])
}
