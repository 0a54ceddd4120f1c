// Command fetchdata downloads the static game data files from the
// Data Dragon CDN and writes them to the configured data directory.
// It is a one-shot operator tool and exits non-zero on any failure.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/flor3z/game-tools/internal/blob"
	"github.com/flor3z/game-tools/internal/dataset"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data/static"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, dataDir); err != nil {
		slog.Error("Fetch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	fetcher := dataset.NewFetcher()
	registry := dataset.DefaultRegistry()

	version, err := fetcher.LatestVersion(ctx)
	if err != nil {
		return err
	}
	slog.Info("Resolved game data version", "version", version)

	for _, d := range registry.All() {
		body, err := d.Fetch(ctx, fetcher, version)
		if err != nil {
			return err
		}

		path := filepath.Join(dataDir, d.Filename())
		if err := os.WriteFile(path, body, 0644); err != nil {
			return err
		}
		slog.Info("Wrote dataset",
			"dataset", d.Name(),
			"path", path,
			"bytes", len(body),
			"publicUrl", blob.URL("static/"+d.Filename()))
	}

	return nil
}
