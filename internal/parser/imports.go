package parser

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dpolishuk/codegraph/internal/registry"
	"github.com/dpolishuk/codegraph/pkg/treesitter"
)

// ExtractImports returns raw import strings for the file's language. Extraction
// is grammar-driven per language: the registry names the statement node types and
// the child types that hold the module string; JS/TS additionally scan for
// require(...) calls, which the grammar models as plain call expressions.
// Languages without import descriptors yield nothing. A parse failure degrades to
// the fallback regex patterns, independently of whether Parse succeeded.
func (p *Precise) ExtractImports(ctx context.Context, content []byte, path string) []string {
	language := registry.Language(filepath.Ext(path))
	if language == "" || treesitter.GetLanguage(language) == nil {
		return p.fallback.ExtractImports(ctx, content, path)
	}

	descriptors := registry.ImportChildTypes(language)
	scanRequire := language == "javascript" || language == "typescript" || language == "tsx"
	if descriptors == nil && !scanRequire {
		return nil
	}

	tree, err := treesitter.ParseCtx(ctx, content, language)
	if err != nil {
		return p.fallback.ExtractImports(ctx, content, path)
	}
	defer tree.Close()

	var imports []string

	stack := []*sitter.Node{tree.RootNode()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if childTypes, ok := descriptors[node.Type()]; ok {
			imports = append(imports, collectImportStrings(node, content, childTypes)...)
		}
		if scanRequire && node.Type() == "call_expression" {
			if arg, ok := requireArgument(node, content); ok {
				imports = append(imports, arg)
			}
		}

		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			if child := node.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}

	return imports
}

// collectImportStrings gathers the module strings under an import statement.
// Matching is top-most-first: once a node matches, its subtree is not searched
// again, so a Python relative_import shadows the dotted_name inside it while a
// grouped Go import list still yields every path in it.
func collectImportStrings(stmt *sitter.Node, content []byte, childTypes []string) []string {
	wanted := make(map[string]bool, len(childTypes))
	for _, t := range childTypes {
		wanted[t] = true
	}

	var out []string
	stack := make([]*sitter.Node, 0, int(stmt.NamedChildCount()))
	for i := int(stmt.NamedChildCount()) - 1; i >= 0; i-- {
		if child := stmt.NamedChild(i); child != nil {
			stack = append(stack, child)
		}
	}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if wanted[node.Type()] {
			out = append(out, stripQuotes(node.Content(content)))
			continue
		}
		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			if child := node.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return out
}

// requireArgument returns the first string argument of a require(...) call.
func requireArgument(call *sitter.Node, content []byte) (string, bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Content(content) != "require" {
		return "", false
	}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return "", false
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg != nil && arg.Type() == "string" {
			return stripQuotes(arg.Content(content)), true
		}
	}
	return "", false
}

// stripQuotes removes surrounding quote characters and include angle brackets
// from a captured module string.
func stripQuotes(s string) string {
	return strings.Trim(s, "\"'`<>")
}
