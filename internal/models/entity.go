package models

// EntityKind is the shared vocabulary every language-specific node type maps into
// at the registry boundary.
type EntityKind string

const (
	KindFile           EntityKind = "file"
	KindClass          EntityKind = "class"
	KindStruct         EntityKind = "struct"
	KindInterface      EntityKind = "interface"
	KindFunction       EntityKind = "function"
	KindMethod         EntityKind = "method"
	KindType           EntityKind = "type"
	KindEnum           EntityKind = "enum"
	KindConstructor    EntityKind = "constructor"
	KindModule         EntityKind = "module"
	KindTrait          EntityKind = "trait"
	KindImplementation EntityKind = "implementation"
)

// Location is the source span of a definition. Populated fully by the precise
// strategy; the fallback strategy only knows the match offset, so it sets
// StartByte and leaves the rest zero.
type Location struct {
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	StartByte uint32 `json:"startByte"`
	EndByte   uint32 `json:"endByte"`
}

// Excerpt bounds: file entities carry the first FileExcerptLen bytes of content,
// definition entities up to DefExcerptLen bytes from the definition start. The
// excerpt is preview material for consumers, never re-parsed.
const (
	FileExcerptLen = 500
	DefExcerptLen  = 300
)

// CodeEntity is a named, located unit of code: a file or a definition inside one.
type CodeEntity struct {
	ID          string     `json:"id"`
	Path        string     `json:"path"`
	Kind        EntityKind `json:"kind"`
	Name        string     `json:"name"`
	Content     string     `json:"content,omitempty"`
	ContentHash string     `json:"contentHash,omitempty"` // file entities only
	Location    *Location  `json:"location,omitempty"`
}

// EntityID derives the index key for a definition: path + "::" + name. File
// entities use the bare path. Two same-named siblings in one file collide and
// the later parse wins.
func EntityID(path, name string) string {
	return path + "::" + name
}

// ExternalPrefix namespaces graph nodes for imports that resolve to nothing
// in-tree, so they can never collide with relative file paths.
const ExternalPrefix = "external:"

// ExternalID returns the synthetic node id for an unresolved import.
func ExternalID(rawImport string) string {
	return ExternalPrefix + rawImport
}

// IsExternal reports whether a graph node id denotes an external module.
func IsExternal(id string) bool {
	return len(id) >= len(ExternalPrefix) && id[:len(ExternalPrefix)] == ExternalPrefix
}
