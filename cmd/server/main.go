package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/dpolishuk/codegraph/internal/api"
	"github.com/dpolishuk/codegraph/internal/cache"
	"github.com/dpolishuk/codegraph/internal/config"
	"github.com/dpolishuk/codegraph/internal/indexer"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})

	opts := indexer.Options{Workers: cfg.IndexWorkers, Logger: logger}
	if cfg.CachePath != "" {
		parseCache, err := cache.Open(cfg.CachePath)
		if err != nil {
			logger.Fatal("failed to open parse cache", "path", cfg.CachePath, "err", err)
		}
		defer parseCache.Close()
		opts.Cache = parseCache
	}

	index, err := indexer.New(cfg.IndexRoot, opts)
	if err != nil {
		logger.Fatal("failed to create index", "root", cfg.IndexRoot, "err", err)
	}

	if _, err := index.Build(context.Background()); err != nil {
		logger.Fatal("initial index build failed", "err", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "codegraph API",
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "codegraph",
		})
	})

	api.SetupRoutes(app, api.NewHandler(cfg, index, logger))

	logger.Info("starting codegraph", "port", cfg.Port, "root", index.RootPath())
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
