package treesitter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ParseCtx parses content with the named grammar. A fresh sitter.Parser is created
// per call: tree-sitter parsers are stateful and must not be shared across
// goroutines, and the index builds files in parallel.
func ParseCtx(ctx context.Context, content []byte, language string) (*sitter.Tree, error) {
	lang := GetLanguage(language)
	if lang == nil {
		return nil, fmt.Errorf("no grammar for language %q", language)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", language, err)
	}

	return tree, nil
}
