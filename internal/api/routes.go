package api

import (
	"github.com/gofiber/fiber/v3"
)

func SetupRoutes(app *fiber.App, h *Handler) {
	api := app.Group("/api")

	api.Get("/status", h.GetStatus)
	api.Post("/index", h.Reindex)
	api.Post("/export", h.Export)

	// Entity queries. Ids contain "/" and "::", so they travel as query params.
	api.Get("/entity", h.GetEntity)
	api.Get("/search", h.Search)
	api.Get("/file/entities", h.FileEntities)

	// Graph queries
	gr := api.Group("/graph")
	gr.Get("/walk", h.Walk)
	gr.Get("/successors", h.Successors)
	gr.Get("/predecessors", h.Predecessors)
	gr.Get("/centrality", h.Centrality)
	gr.Get("/components", h.Components)
	gr.Get("/directories", h.DirectoryCounts)
}
