package indexer

import (
	"path/filepath"
	"strings"
)

// skipDirs are path segments that are never indexed: VCS metadata, dependency
// trees, build output, tool caches and IDE state.
var skipDirs = map[string]bool{
	".git":             true,
	".svn":             true,
	".hg":              true,
	"node_modules":     true,
	"bower_components": true,
	"venv":             true,
	".venv":            true,
	"env":              true,
	"__pycache__":      true,
	"target":           true,
	"build":            true,
	"dist":             true,
	"out":              true,
	".pytest_cache":    true,
	".tox":             true,
	".coverage":        true,
	".idea":            true,
	".vscode":          true,
	".settings":        true,
	"vendor":           true,
}

// skipExtensions are binary/compiled artifacts.
var skipExtensions = map[string]bool{
	".pyc":   true,
	".pyo":   true,
	".so":    true,
	".dll":   true,
	".dylib": true,
	".exe":   true,
	".bin":   true,
}

// ShouldSkip reports whether a root-relative path is excluded from indexing:
// any segment starting with "." (except the literal "."), any segment on the
// skip list, or a binary extension.
func ShouldSkip(relPath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
		if skipDirs[part] {
			return true
		}
	}
	return skipExtensions[filepath.Ext(relPath)]
}
