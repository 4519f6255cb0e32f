package api

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"

	"github.com/dpolishuk/codegraph/internal/config"
	"github.com/dpolishuk/codegraph/internal/db"
	"github.com/dpolishuk/codegraph/internal/graph"
	"github.com/dpolishuk/codegraph/internal/indexer"
	"github.com/dpolishuk/codegraph/internal/models"
)

// Handler serves read-only queries over a built index, plus the rebuild and
// export triggers. Query endpoints answer 409 while a build is running; a query
// that slips past the gate still reads the last published snapshot, which a
// rebuild never mutates.
type Handler struct {
	cfg      *config.Config
	index    *indexer.Index
	logger   *log.Logger
	building atomic.Bool
}

func NewHandler(cfg *config.Config, index *indexer.Index, logger *log.Logger) *Handler {
	return &Handler{cfg: cfg, index: index, logger: logger}
}

// GetStatus reports the index lifecycle state and last build stats.
func (h *Handler) GetStatus(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"root":   h.index.RootPath(),
		"status": h.index.Status(),
		"stats":  h.index.Stats(),
	})
}

// Reindex triggers a destructive full rebuild in the background.
func (h *Handler) Reindex(c fiber.Ctx) error {
	if !h.building.CompareAndSwap(false, true) {
		return c.Status(409).JSON(fiber.Map{"error": "index build already running"})
	}

	go func() {
		defer h.building.Store(false)
		if _, err := h.index.Build(context.Background()); err != nil {
			h.logger.Error("index build failed", "err", err)
		}
	}()

	return c.Status(202).JSON(fiber.Map{"status": "indexing started"})
}

// Export writes the built graph to the configured Neo4j instance.
func (h *Handler) Export(c fiber.Ctx) error {
	if !h.cfg.ExportEnabled() {
		return c.Status(400).JSON(fiber.Map{"error": "no export target configured"})
	}
	if !h.built() {
		return errNotBuilt(c)
	}

	client, err := db.NewNeo4jClient(c.Context(), db.Neo4jConfig{
		URI:      h.cfg.Neo4jURI,
		Username: h.cfg.Neo4jUser,
		Password: h.cfg.Neo4jPass,
	})
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}
	defer client.Close()

	writer := db.NewGraphWriter(client)
	if err := writer.WriteIndex(c.Context(), h.index.RootPath(), h.index.EntityList(), h.index.GraphEdges()); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "exported"})
}

// GetEntity returns one entity by id.
func (h *Handler) GetEntity(c fiber.Ctx) error {
	if !h.built() {
		return errNotBuilt(c)
	}
	id := c.Query("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "query parameter 'id' is required"})
	}
	entity, ok := h.index.GetEntity(id)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "entity not found"})
	}
	return c.JSON(entity)
}

// Search returns entities whose name or path contains the query substring.
func (h *Handler) Search(c fiber.Ctx) error {
	if !h.built() {
		return errNotBuilt(c)
	}
	query := c.Query("q")
	if query == "" {
		return c.Status(400).JSON(fiber.Map{"error": "query parameter 'q' is required"})
	}
	kind := models.EntityKind(c.Query("kind"))

	results := h.index.Search(query, kind)

	limit := fiber.Query[int](c, "limit", 50)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return c.JSON(results)
}

// FileEntities returns every entity belonging to one file.
func (h *Handler) FileEntities(c fiber.Ctx) error {
	if !h.built() {
		return errNotBuilt(c)
	}
	path := c.Query("path")
	if path == "" {
		return c.Status(400).JSON(fiber.Map{"error": "query parameter 'path' is required"})
	}
	return c.JSON(h.index.EntitiesInFile(path))
}

// Walk returns a depth-bounded traversal from a node. direction is "imports"
// (follow outgoing edges) or "importers" (incoming).
func (h *Handler) Walk(c fiber.Ctx) error {
	if !h.built() {
		return errNotBuilt(c)
	}
	id := c.Query("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "query parameter 'id' is required"})
	}
	if !h.index.HasNode(id) {
		return c.Status(404).JSON(fiber.Map{"error": "node not found"})
	}

	dir := graph.Out
	switch c.Query("direction", "imports") {
	case "imports":
	case "importers":
		dir = graph.In
	default:
		return c.Status(400).JSON(fiber.Map{"error": "direction must be 'imports' or 'importers'"})
	}

	depth := fiber.Query[int](c, "depth", 2)
	if depth < 1 || depth > 50 {
		depth = 2
	}

	visits := h.index.Walk(id, dir, depth)
	if visits == nil {
		visits = []graph.Visit{}
	}
	return c.JSON(visits)
}

// Successors returns a node's direct outgoing neighbors.
func (h *Handler) Successors(c fiber.Ctx) error {
	return h.neighbors(c, h.index.Successors)
}

// Predecessors returns a node's direct incoming neighbors.
func (h *Handler) Predecessors(c fiber.Ctx) error {
	return h.neighbors(c, h.index.Predecessors)
}

func (h *Handler) neighbors(c fiber.Ctx, pick func(string) []string) error {
	if !h.built() {
		return errNotBuilt(c)
	}
	id := c.Query("id")
	if id == "" {
		return c.Status(400).JSON(fiber.Map{"error": "query parameter 'id' is required"})
	}
	if !h.index.HasNode(id) {
		return c.Status(404).JSON(fiber.Map{"error": "node not found"})
	}
	ids := pick(id)
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(ids)
}

// Centrality returns the top-N nodes by degree centrality.
func (h *Handler) Centrality(c fiber.Ctx) error {
	if !h.built() {
		return errNotBuilt(c)
	}
	top := fiber.Query[int](c, "top", 10)
	if top < 1 || top > 1000 {
		top = 10
	}
	return c.JSON(h.index.TopCentral(top))
}

// Components returns the weakly connected components.
func (h *Handler) Components(c fiber.Ctx) error {
	if !h.built() {
		return errNotBuilt(c)
	}
	components := h.index.Components()
	return c.JSON(fiber.Map{
		"count":      len(components),
		"components": components,
	})
}

// DirectoryCounts returns entity counts grouped by directory.
func (h *Handler) DirectoryCounts(c fiber.Ctx) error {
	if !h.built() {
		return errNotBuilt(c)
	}
	return c.JSON(h.index.DirectoryCounts())
}

func (h *Handler) built() bool {
	return h.index.Status() == indexer.StatusBuilt
}

func errNotBuilt(c fiber.Ctx) error {
	return c.Status(409).JSON(fiber.Map{"error": "index not built yet"})
}
