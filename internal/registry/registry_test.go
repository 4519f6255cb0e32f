package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpolishuk/codegraph/internal/models"
)

func TestLanguageByExtension(t *testing.T) {
	cases := map[string]string{
		".py":    "python",
		".jsx":   "javascript",
		".mjs":   "javascript",
		".ts":    "typescript",
		".tsx":   "tsx",
		".go":    "go",
		".rs":    "rust",
		".cc":    "cpp",
		".h":     "c",
		".cs":    "c_sharp",
		".rb":    "ruby",
		".kt":    "kotlin",
		".r":     "r",
		".mm":    "objc",
		".scala": "scala",
	}
	for ext, want := range cases {
		assert.Equal(t, want, Language(ext), "extension %s", ext)
	}
}

func TestLanguageUnknownExtension(t *testing.T) {
	assert.Empty(t, Language(".md"))
	assert.Empty(t, Language(".exe"))
	assert.Empty(t, Language(""))
}

func TestExtensionsOrderIsFixed(t *testing.T) {
	exts := Extensions()
	require.NotEmpty(t, exts)
	// The resolver relies on this order as a tie-break; the first entry must
	// stay .py so module-style imports prefer Python sources.
	assert.Equal(t, ".py", exts[0])

	seen := make(map[string]bool)
	for _, ext := range exts {
		assert.False(t, seen[ext], "duplicate extension %s", ext)
		seen[ext] = true
		assert.NotEmpty(t, Language(ext), "extension %s has no language", ext)
	}
}

func TestDefinitionKinds(t *testing.T) {
	py := DefinitionKinds("python")
	require.NotNil(t, py)
	assert.Equal(t, models.KindClass, py["class_definition"])
	assert.Equal(t, models.KindFunction, py["function_definition"])

	rs := DefinitionKinds("rust")
	require.NotNil(t, rs)
	assert.Equal(t, models.KindTrait, rs["trait_item"])
	assert.Equal(t, models.KindImplementation, rs["impl_item"])

	// tsx shares the typescript table.
	assert.Equal(t, DefinitionKinds("typescript")["interface_declaration"], DefinitionKinds("tsx")["interface_declaration"])

	// Languages without grammars have no definition table.
	assert.Nil(t, DefinitionKinds("r"))
	assert.Nil(t, DefinitionKinds("objc"))
}

func TestNameLookupTables(t *testing.T) {
	assert.True(t, IsNameNode("identifier"))
	assert.True(t, IsNameNode("type_identifier"))
	assert.True(t, IsNameNode("property_identifier"))
	assert.False(t, IsNameNode("block"))

	assert.Equal(t, []string{"declarator", "declarator"}, NameDescent("c", "function_definition"))
	assert.Nil(t, NameDescent("python", "function_definition"))
}

func TestImportChildTypes(t *testing.T) {
	py := ImportChildTypes("python")
	require.NotNil(t, py)
	assert.Contains(t, py["import_from_statement"], "relative_import")

	assert.NotNil(t, ImportChildTypes("go"))
	assert.Nil(t, ImportChildTypes("ruby"))
}
