// Package resolver maps raw import strings to in-tree files. It knows nothing
// about package managers: no node_modules search, no classpath, no aliasing.
// Resolution is a fixed candidate ladder over filesystem existence checks.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dpolishuk/codegraph/internal/registry"
)

var segmentSplitter = strings.NewReplacer("::", "/", ".", "/")

// Resolve maps a raw import plus the importing file's path (relative to root) to
// a root-relative posix path, or ("", false) when no candidate exists and the
// caller should record an external dependency.
//
// Relative references (leading ".") resolve against the importing file's
// directory, consuming one directory per leading "../", then one per extra bare
// dot in dotted relative form ("..d" means the parent's d, ".d" the sibling d).
// Anything else is treated as root-relative, with ".", "::" and "/" all acting
// as segment separators. For each known extension, three candidates are tried in
// order: the path itself, its "index" module entry, and its "__init__" package
// entry. The first existing candidate wins; the extension iteration order is a
// deliberate tie-break.
func Resolve(rawImport, importingFile, rootPath string) (string, bool) {
	name := strings.Trim(rawImport, "\"'")

	var baseDir string
	if strings.HasPrefix(name, ".") {
		baseDir = filepath.Join(rootPath, filepath.Dir(filepath.FromSlash(importingFile)))
		for strings.HasPrefix(name, "../") {
			baseDir = filepath.Dir(baseDir)
			name = name[3:]
		}
		dots := 0
		for dots < len(name) && name[dots] == '.' {
			dots++
		}
		for i := 1; i < dots; i++ {
			baseDir = filepath.Dir(baseDir)
		}
		name = strings.TrimLeft(name[dots:], "/")
	} else {
		baseDir = rootPath
		name = strings.Trim(segmentSplitter.Replace(name), "/")
	}

	if name == "" {
		return "", false
	}
	name = filepath.FromSlash(name)

	for _, ext := range registry.Extensions() {
		candidates := [3]string{
			filepath.Join(baseDir, name+ext),
			filepath.Join(baseDir, name, "index"+ext),
			filepath.Join(baseDir, name, "__init__"+ext),
		}
		for _, candidate := range candidates {
			info, err := os.Stat(candidate)
			if err != nil || info.IsDir() {
				continue
			}
			rel, err := filepath.Rel(rootPath, candidate)
			if err != nil || strings.HasPrefix(rel, "..") {
				// A "../" ascent that escaped the root is unresolvable in-tree.
				return "", false
			}
			return filepath.ToSlash(rel), true
		}
	}

	return "", false
}
