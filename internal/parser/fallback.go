package parser

import (
	"context"
	"regexp"

	"github.com/dpolishuk/codegraph/internal/models"
)

// Fallback is the regex strategy used when no grammar is available. A fixed list
// of cross-language patterns runs against raw text regardless of language.
// Accuracy is best-effort by design: a keyword inside a string or comment yields
// a false positive, and languages with other definition keywords are missed.
// Locations carry only the match offset; there is no end boundary.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

var defPatterns = []struct {
	re   *regexp.Regexp
	kind models.EntityKind
}{
	{regexp.MustCompile(`\bclass\s+(\w+)`), models.KindClass},
	{regexp.MustCompile(`\bstruct\s+(\w+)`), models.KindStruct},
	{regexp.MustCompile(`\binterface\s+(\w+)`), models.KindInterface},
	{regexp.MustCompile(`\b(?:def|func|function|fn)\s+(\w+)`), models.KindFunction},
	{regexp.MustCompile(`\btype\s+(\w+)`), models.KindType},
	{regexp.MustCompile(`\benum\s+(\w+)`), models.KindEnum},
}

var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bimport\s+([^\s;(]+)`),
	regexp.MustCompile(`\bfrom\s+(\S+)\s+import`),
	regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	regexp.MustCompile(`#include\s*[<"]([^>"]+)[>"]`),
	regexp.MustCompile(`\buse\s+([^\s;]+)`),
}

func (f *Fallback) Parse(_ context.Context, content []byte, path string) []models.CodeEntity {
	var entities []models.CodeEntity
	for _, p := range defPatterns {
		for _, match := range p.re.FindAllSubmatchIndex(content, -1) {
			name := string(content[match[2]:match[3]])
			entities = append(entities, models.CodeEntity{
				ID:      models.EntityID(path, name),
				Path:    path,
				Kind:    p.kind,
				Name:    name,
				Content: excerpt(content, match[0], models.DefExcerptLen),
				Location: &models.Location{
					StartByte: uint32(match[0]),
				},
			})
		}
	}
	return entities
}

func (f *Fallback) ExtractImports(_ context.Context, content []byte, _ string) []string {
	var imports []string
	for _, re := range importPatterns {
		for _, match := range re.FindAllSubmatch(content, -1) {
			imports = append(imports, stripQuotes(string(match[1])))
		}
	}
	return imports
}
