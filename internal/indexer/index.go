// Package indexer builds and queries the codebase index: one full traversal of a
// source tree producing an entity map and a dependency graph, then a read-only
// query surface over both.
package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/dpolishuk/codegraph/internal/cache"
	"github.com/dpolishuk/codegraph/internal/graph"
	"github.com/dpolishuk/codegraph/internal/models"
	"github.com/dpolishuk/codegraph/internal/parser"
	"github.com/dpolishuk/codegraph/internal/registry"
	"github.com/dpolishuk/codegraph/internal/resolver"
)

// Status is the index lifecycle: empty until the first Build starts, building
// while a traversal runs, built once it completes. There is no transition back
// to empty short of constructing a new Index.
type Status string

const (
	StatusEmpty    Status = "empty"
	StatusBuilding Status = "building"
	StatusBuilt    Status = "built"
)

// Stats summarizes one Build so callers can assess index completeness.
type Stats struct {
	BuildID      string `json:"buildId"`
	FilesIndexed int    `json:"filesIndexed"`
	FilesSkipped int    `json:"filesSkipped"`
	FilesErrored int    `json:"filesErrored"`
	Entities     int    `json:"entities"`
	Nodes        int    `json:"nodes"`
	Edges        int    `json:"edges"`
}

// Options configures an Index.
type Options struct {
	// Workers bounds the file-parsing pool; <=0 means GOMAXPROCS.
	Workers int
	// Cache, when non-nil, skips re-parsing files whose content hash is unchanged.
	Cache *cache.Cache
	// Logger defaults to the package-level charmbracelet logger.
	Logger *log.Logger
}

// snapshot is one build's complete output. A snapshot is mutated only before it
// is published; once the Index holds it, it is immutable and safe for any number
// of concurrent readers.
type snapshot struct {
	entities map[string]*models.CodeEntity
	graph    *graph.DiGraph
}

func emptySnapshot() *snapshot {
	return &snapshot{
		entities: make(map[string]*models.CodeEntity),
		graph:    graph.New(),
	}
}

// Index is the codebase index for one root path. Build assembles a fresh
// snapshot off to the side and swaps it in atomically, so queries racing a
// rebuild read whichever snapshot was current when they started, never a
// half-built one.
type Index struct {
	rootPath string
	strategy parser.Strategy
	cache    *cache.Cache
	workers  int
	logger   *log.Logger

	mu     sync.RWMutex
	status Status
	stats  Stats
	snap   *snapshot
}

// New validates the root path and returns an empty index. An inaccessible root
// is the only fatal condition of the whole indexing design, surfaced here before
// any traversal begins.
func New(rootPath string, opts Options) (*Index, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("root path inaccessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", abs)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Index{
		rootPath: abs,
		strategy: parser.New(),
		cache:    opts.Cache,
		workers:  workers,
		logger:   logger,
		status:   StatusEmpty,
		snap:     emptySnapshot(),
	}, nil
}

// RootPath returns the absolute root this index covers.
func (ix *Index) RootPath() string { return ix.rootPath }

// Status returns the current lifecycle state.
func (ix *Index) Status() Status {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.status
}

// current returns the last published snapshot. The returned pointer needs no
// further locking: published snapshots are never mutated.
func (ix *Index) current() *snapshot {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.snap
}

// fileBatch is the per-file output merged into the snapshot under one lock.
// Insertion order across batches does not matter: the id-collision rule is
// last-write-wins, which is commutative over a full rebuild.
type fileBatch struct {
	entities []models.CodeEntity
	edges    []graph.Edge
	nodes    []string
}

// Build performs one full traversal: enumerate eligible files, parse each into
// entities and raw imports, resolve imports into edges, and populate a fresh
// entity map and dependency graph, published atomically at the end. Re-running
// Build is a destructive full rebuild, but readers keep the previous snapshot
// until the swap. Per-file failures are logged and counted, never fatal;
// cancellation is checked once per file and leaves the previous snapshot and
// status in place.
func (ix *Index) Build(ctx context.Context) (Stats, error) {
	ix.mu.Lock()
	prev := ix.status
	ix.status = StatusBuilding
	ix.mu.Unlock()

	stats := Stats{BuildID: uuid.New().String()}

	files, skipped, err := ix.enumerate()
	if err != nil {
		ix.setStatus(prev)
		return Stats{}, fmt.Errorf("walk %s: %w", ix.rootPath, err)
	}
	stats.FilesSkipped = skipped

	next := emptySnapshot()
	var buildMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)

	for _, relPath := range files {
		relPath := relPath
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			batch, err := ix.processFile(gctx, relPath)
			buildMu.Lock()
			defer buildMu.Unlock()
			if err != nil {
				// No partial entity set persists for a failed file.
				stats.FilesErrored++
				ix.logger.Warn("failed to index file", "path", relPath, "err", err)
				return nil
			}
			next.merge(batch)
			stats.FilesIndexed++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ix.setStatus(prev)
		return Stats{}, err
	}

	stats.Entities = len(next.entities)
	stats.Nodes = next.graph.NodeCount()
	stats.Edges = next.graph.EdgeCount()

	ix.mu.Lock()
	ix.snap = next
	ix.stats = stats
	ix.status = StatusBuilt
	ix.mu.Unlock()

	ix.logger.Info("index built",
		"root", ix.rootPath,
		"files", stats.FilesIndexed,
		"skipped", stats.FilesSkipped,
		"errored", stats.FilesErrored,
		"entities", stats.Entities,
		"edges", stats.Edges)

	return stats, nil
}

func (ix *Index) setStatus(s Status) {
	ix.mu.Lock()
	ix.status = s
	ix.mu.Unlock()
}

// enumerate returns the root-relative paths of every eligible file, plus the
// count of recognized source files excluded by the skip policy. Skipped
// directories are still descended (their files are counted, never read), so the
// count reflects the whole tree.
func (ix *Index) enumerate() ([]string, int, error) {
	var files []string
	skipped := 0

	err := filepath.WalkDir(ix.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(ix.rootPath, path)
		if err != nil {
			return err
		}
		if registry.Language(filepath.Ext(rel)) == "" {
			return nil
		}
		if ShouldSkip(rel) {
			skipped++
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return files, skipped, nil
}

// processFile turns one file into its batch of entities and edges: a file
// entity, one entity plus containment edge per definition, and one import edge
// per raw import (local when the resolver finds a target, external otherwise).
func (ix *Index) processFile(ctx context.Context, relPath string) (fileBatch, error) {
	content, err := os.ReadFile(filepath.Join(ix.rootPath, filepath.FromSlash(relPath)))
	if err != nil {
		return fileBatch{}, err
	}
	if !utf8.Valid(content) {
		return fileBatch{}, fmt.Errorf("not valid UTF-8")
	}

	hash := fmt.Sprintf("%016x", xxh3.Hash(content))

	definitions, imports, hit := ix.cached(relPath, hash)
	if !hit {
		definitions = ix.strategy.Parse(ctx, content, relPath)
		imports = ix.strategy.ExtractImports(ctx, content, relPath)
		ix.store(relPath, hash, definitions, imports)
	}

	batch := fileBatch{nodes: []string{relPath}}
	batch.entities = append(batch.entities, models.CodeEntity{
		ID:          relPath,
		Path:        relPath,
		Kind:        models.KindFile,
		Name:        filepath.Base(relPath),
		Content:     string(content[:min(len(content), models.FileExcerptLen)]),
		ContentHash: hash,
	})

	for _, def := range definitions {
		batch.entities = append(batch.entities, def)
		batch.edges = append(batch.edges, graph.Edge{From: def.ID, To: relPath, Kind: graph.EdgeContains})
	}

	for _, imp := range imports {
		if resolved, ok := resolver.Resolve(imp, relPath, ix.rootPath); ok {
			batch.edges = append(batch.edges, graph.Edge{From: relPath, To: resolved, Kind: graph.EdgeImports})
		} else {
			batch.edges = append(batch.edges, graph.Edge{From: relPath, To: models.ExternalID(imp), Kind: graph.EdgeImports})
		}
	}

	return batch, nil
}

func (ix *Index) cached(relPath, hash string) ([]models.CodeEntity, []string, bool) {
	if ix.cache == nil {
		return nil, nil, false
	}
	entry, err := ix.cache.Get(relPath)
	if err != nil || entry == nil || entry.Hash != hash {
		return nil, nil, false
	}
	return entry.Entities, entry.Imports, true
}

func (ix *Index) store(relPath, hash string, definitions []models.CodeEntity, imports []string) {
	if ix.cache == nil {
		return
	}
	if err := ix.cache.Put(relPath, &cache.Entry{Hash: hash, Entities: definitions, Imports: imports}); err != nil {
		ix.logger.Debug("cache write failed", "path", relPath, "err", err)
	}
}

// merge inserts a batch into an unpublished snapshot. Caller serializes merges.
func (s *snapshot) merge(batch fileBatch) {
	for _, id := range batch.nodes {
		s.graph.AddNode(id)
	}
	for i := range batch.entities {
		e := batch.entities[i]
		s.entities[e.ID] = &e
		s.graph.AddNode(e.ID)
	}
	for _, edge := range batch.edges {
		s.graph.AddEdge(edge.From, edge.To, edge.Kind)
	}
}

// GetEntity returns the entity with the given id.
func (ix *Index) GetEntity(id string) (*models.CodeEntity, bool) {
	e, ok := ix.current().entities[id]
	return e, ok
}

// Search returns entities whose name or path contains query, case-insensitive.
// A non-empty kind restricts results to that kind. Results are unordered beyond
// natural map iteration; ranking is the caller's concern.
func (ix *Index) Search(query string, kind models.EntityKind) []*models.CodeEntity {
	q := strings.ToLower(query)
	var results []*models.CodeEntity
	for _, e := range ix.current().entities {
		if kind != "" && e.Kind != kind {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Path), q) {
			results = append(results, e)
		}
	}
	return results
}

// EntitiesInFile returns the file entity and every definition inside it.
func (ix *Index) EntitiesInFile(path string) []*models.CodeEntity {
	prefix := path + "::"
	var results []*models.CodeEntity
	for id, e := range ix.current().entities {
		if e.Path == path || strings.HasPrefix(id, prefix) {
			results = append(results, e)
		}
	}
	return results
}

// Successors returns what a node imports/contains.
func (ix *Index) Successors(id string) []string { return ix.current().graph.Successors(id) }

// Predecessors returns what imports/contains a node.
func (ix *Index) Predecessors(id string) []string { return ix.current().graph.Predecessors(id) }

// Walk traverses the dependency graph from id up to depth steps in the given
// direction.
func (ix *Index) Walk(id string, dir graph.Direction, depth int) []graph.Visit {
	return ix.current().graph.Walk(id, dir, depth)
}

// HasNode reports whether id is a graph node (entity or external module).
func (ix *Index) HasNode(id string) bool { return ix.current().graph.HasNode(id) }

// Centrality is one node's degree centrality.
type Centrality struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// TopCentral returns the n highest degree-centrality nodes, descending.
func (ix *Index) TopCentral(n int) []Centrality {
	scores := ix.current().graph.DegreeCentrality()
	out := make([]Centrality, 0, len(scores))
	for id, score := range scores {
		out = append(out, Centrality{ID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Components returns the weakly connected components of the dependency graph.
func (ix *Index) Components() [][]string {
	return ix.current().graph.WeaklyConnectedComponents()
}

// DirectoryCounts groups entity counts by containing directory ("." for the
// root), for architecture summaries.
func (ix *Index) DirectoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range ix.current().entities {
		counts[filepath.ToSlash(filepath.Dir(e.Path))]++
	}
	return counts
}

// EntityList returns every entity, sorted by id for deterministic export.
func (ix *Index) EntityList() []*models.CodeEntity {
	snap := ix.current()
	out := make([]*models.CodeEntity, 0, len(snap.entities))
	for _, e := range snap.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GraphEdges returns every dependency edge.
func (ix *Index) GraphEdges() []graph.Edge { return ix.current().graph.Edges() }

// Stats returns the stats of the most recent Build.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.stats
}
