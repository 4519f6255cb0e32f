package parser

import (
	"context"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dpolishuk/codegraph/internal/models"
	"github.com/dpolishuk/codegraph/internal/registry"
	"github.com/dpolishuk/codegraph/pkg/treesitter"
)

// Precise is the grammar-driven strategy. It parses content into a syntax tree,
// walks it with an explicit stack, and emits an entity for every node whose type
// is registered as a definition for the file's language. Files in languages
// without a grammar, and files whose parse fails, are handed to the fallback
// strategy instead.
type Precise struct {
	fallback *Fallback
}

func NewPrecise() *Precise {
	return &Precise{fallback: NewFallback()}
}

func (p *Precise) Parse(ctx context.Context, content []byte, path string) []models.CodeEntity {
	language := registry.Language(filepath.Ext(path))
	kinds := registry.DefinitionKinds(language)
	if language == "" || kinds == nil || treesitter.GetLanguage(language) == nil {
		return p.fallback.Parse(ctx, content, path)
	}

	tree, err := treesitter.ParseCtx(ctx, content, language)
	if err != nil {
		return p.fallback.Parse(ctx, content, path)
	}
	defer tree.Close()

	var entities []models.CodeEntity

	stack := []*sitter.Node{tree.RootNode()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if kind, ok := kinds[node.Type()]; ok {
			nameNode := findNameNode(node, language)
			if nameNode != nil {
				// Nameless definition nodes are skipped, never emitted.
				name := nameNode.Content(content)
				entities = append(entities, models.CodeEntity{
					ID:      models.EntityID(path, name),
					Path:    path,
					Kind:    kind,
					Name:    name,
					Content: excerpt(content, int(node.StartByte()), models.DefExcerptLen),
					Location: &models.Location{
						StartLine: int(node.StartPoint().Row) + 1,
						EndLine:   int(node.EndPoint().Row) + 1,
						StartByte: node.StartByte(),
						EndByte:   node.EndByte(),
					},
				})
			}
		}

		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			if child := node.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}

	return entities
}

// findNameNode locates the identifier of a definition: a direct named child of a
// registered name type, or the end of a registry descent chain for languages
// where the name is nested (C-family declarators).
func findNameNode(node *sitter.Node, language string) *sitter.Node {
	if chain := registry.NameDescent(language, node.Type()); chain != nil {
		current := node
		for _, field := range chain {
			current = current.ChildByFieldName(field)
			if current == nil {
				return nil
			}
		}
		if registry.IsNameNode(current.Type()) {
			return current
		}
		node = current
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child != nil && registry.IsNameNode(child.Type()) {
			return child
		}
	}
	return nil
}
