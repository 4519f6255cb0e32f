// Package registry holds the static per-language tables that drive structural
// parsing: file extension to language, definition node types to entity kinds,
// name-node lookup rules, and import statement descriptors. Adding a language
// means adding table rows here (and a grammar in pkg/treesitter if one exists);
// parser logic never branches on language names for definitions.
package registry

import "github.com/dpolishuk/codegraph/internal/models"

// extensions, in the fixed order the import resolver tries them. The order is a
// deliberate tie-break: the first existing candidate wins.
var extensions = []string{
	".py",
	".js", ".jsx", ".cjs", ".mjs",
	".ts", ".tsx", ".mts",
	".java",
	".go",
	".rs",
	".c", ".cpp", ".cc", ".cxx", ".h", ".hpp",
	".cs",
	".rb",
	".php",
	".swift",
	".kt",
	".scala",
	".r",
	".m", ".mm",
}

var extensionToLanguage = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".cjs":   "javascript",
	".mjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "tsx",
	".mts":   "typescript",
	".java":  "java",
	".go":    "go",
	".rs":    "rust",
	".c":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".h":     "c",
	".hpp":   "cpp",
	".cs":    "c_sharp",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".r":     "r",
	".m":     "objc",
	".mm":    "objc",
}

// definitionKinds maps grammar node types that denote definitions to the shared
// entity vocabulary, per language.
var definitionKinds = map[string]map[string]models.EntityKind{
	"python": {
		"class_definition":    models.KindClass,
		"function_definition": models.KindFunction,
	},
	"javascript": {
		"class_declaration":              models.KindClass,
		"function_declaration":           models.KindFunction,
		"generator_function_declaration": models.KindFunction,
		"method_definition":              models.KindMethod,
	},
	"typescript": {
		"class_declaration":          models.KindClass,
		"abstract_class_declaration": models.KindClass,
		"interface_declaration":      models.KindInterface,
		"function_declaration":       models.KindFunction,
		"method_definition":          models.KindMethod,
		"type_alias_declaration":     models.KindType,
		"enum_declaration":           models.KindEnum,
	},
	"java": {
		"class_declaration":       models.KindClass,
		"interface_declaration":   models.KindInterface,
		"enum_declaration":        models.KindEnum,
		"method_declaration":      models.KindMethod,
		"constructor_declaration": models.KindConstructor,
	},
	"go": {
		"function_declaration": models.KindFunction,
		"method_declaration":   models.KindMethod,
		"type_spec":            models.KindType,
	},
	"rust": {
		"struct_item":   models.KindStruct,
		"enum_item":     models.KindEnum,
		"function_item": models.KindFunction,
		"trait_item":    models.KindTrait,
		"impl_item":     models.KindImplementation,
		"mod_item":      models.KindModule,
		"type_item":     models.KindType,
	},
	"c": {
		"function_definition": models.KindFunction,
		"struct_specifier":    models.KindStruct,
		"enum_specifier":      models.KindEnum,
	},
	"cpp": {
		"class_specifier":      models.KindClass,
		"struct_specifier":     models.KindStruct,
		"enum_specifier":       models.KindEnum,
		"function_definition":  models.KindFunction,
		"namespace_definition": models.KindModule,
	},
	"c_sharp": {
		"class_declaration":       models.KindClass,
		"interface_declaration":   models.KindInterface,
		"struct_declaration":      models.KindStruct,
		"enum_declaration":        models.KindEnum,
		"method_declaration":      models.KindMethod,
		"constructor_declaration": models.KindConstructor,
	},
	"ruby": {
		"class":            models.KindClass,
		"module":           models.KindModule,
		"method":           models.KindMethod,
		"singleton_method": models.KindMethod,
	},
	"php": {
		"class_declaration":     models.KindClass,
		"interface_declaration": models.KindInterface,
		"trait_declaration":     models.KindTrait,
		"function_definition":   models.KindFunction,
		"method_declaration":    models.KindMethod,
	},
	"swift": {
		"class_declaration":    models.KindClass,
		"protocol_declaration": models.KindInterface,
		"function_declaration": models.KindFunction,
	},
	"kotlin": {
		"class_declaration":    models.KindClass,
		"object_declaration":   models.KindClass,
		"function_declaration": models.KindFunction,
	},
	"scala": {
		"class_definition":    models.KindClass,
		"object_definition":   models.KindModule,
		"trait_definition":    models.KindTrait,
		"function_definition": models.KindFunction,
	},
}

// tsx shares the typescript tables.
func init() {
	definitionKinds["tsx"] = definitionKinds["typescript"]
	importChildTypes["tsx"] = importChildTypes["typescript"]
}

// nameNodeTypes are the node types that may hold a definition's identifier when
// it appears as a direct child of the definition node.
var nameNodeTypes = map[string]bool{
	"identifier":           true,
	"type_identifier":      true,
	"property_identifier":  true,
	"field_identifier":     true,
	"simple_identifier":    true,
	"namespace_identifier": true,
	"constant":             true,
	"name":                 true,
}

// nameDescent overrides name lookup for definitions whose identifier is not a
// direct child: each entry is a chain of field names to follow before searching
// the usual candidates. C-family function names hide inside the declarator.
var nameDescent = map[string]map[string][]string{
	"c": {
		"function_definition": {"declarator", "declarator"},
	},
	"cpp": {
		"function_definition": {"declarator", "declarator"},
	},
}

// importChildTypes describes import/include/use statements: grammar node type of
// the statement mapped to the child node types that hold the module string.
// Collection is top-most-first, so a relative_import shadows its inner
// dotted_name. require(...) calls in JS/TS are grammar-level call expressions and
// are handled by the parser directly.
var importChildTypes = map[string]map[string][]string{
	"python": {
		"import_statement":      {"dotted_name"},
		"import_from_statement": {"relative_import", "dotted_name"},
	},
	"javascript": {
		"import_statement": {"string"},
	},
	"typescript": {
		"import_statement": {"string"},
	},
	"java": {
		"import_declaration": {"scoped_identifier", "identifier"},
	},
	"go": {
		"import_declaration": {"interpreted_string_literal"},
	},
	"rust": {
		"use_declaration": {"scoped_identifier", "scoped_use_list", "use_as_clause", "identifier"},
	},
	"c": {
		"preproc_include": {"string_literal", "system_lib_string"},
	},
	"cpp": {
		"preproc_include": {"string_literal", "system_lib_string"},
	},
}

// Language returns the canonical language identifier for a file extension, or ""
// when the extension is not recognized.
func Language(ext string) string {
	return extensionToLanguage[ext]
}

// Extensions returns the known source extensions in resolver tie-break order.
func Extensions() []string {
	return extensions
}

// DefinitionKinds returns the definition node-type table for a language, nil when
// the language has no table (its files still get file entities).
func DefinitionKinds(language string) map[string]models.EntityKind {
	return definitionKinds[language]
}

// IsNameNode reports whether a node type can hold a definition identifier.
func IsNameNode(nodeType string) bool {
	return nameNodeTypes[nodeType]
}

// NameDescent returns the field-name chain to follow before searching name
// candidates, or nil when the name is a direct child.
func NameDescent(language, nodeType string) []string {
	return nameDescent[language][nodeType]
}

// ImportChildTypes returns the import statement descriptors for a language.
func ImportChildTypes(language string) map[string][]string {
	return importChildTypes[language]
}
