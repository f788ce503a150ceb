// AngelaMos | 2026
// seed.go

package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/frohlich71/creator-builds-api/internal/config"
	"github.com/frohlich71/creator-builds-api/internal/product"
)

// allowedCategories is the curated set of catalog categories worth
// importing; everything else in the source CSV is noise for this app.
var allowedCategories = map[int]struct{}{
	56: {}, 57: {}, 66: {}, 81: {}, 71: {}, 79: {},
	83: {}, 72: {}, 69: {}, 65: {}, 255: {}, 263: {},
}

// Importer bulk-loads the product catalog from a CSV at startup. Import
// problems are logged and reported, but never abort process startup.
type Importer struct {
	cfg      config.SeedConfig
	products *product.Service
	logger   *slog.Logger
}

func NewImporter(
	cfg config.SeedConfig,
	products *product.Service,
	logger *slog.Logger,
) *Importer {
	return &Importer{cfg: cfg, products: products, logger: logger}
}

// Run executes the import once. The returned error is informational;
// callers log it and continue.
func (i *Importer) Run(ctx context.Context) error {
	if !i.cfg.Enabled {
		i.logger.Info("catalog seeding disabled, skipping")
		return nil
	}

	count, err := i.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count catalog: %w", err)
	}

	if count > 0 {
		if !i.cfg.Force {
			i.logger.Info("catalog already populated, skipping seed",
				"products", count,
			)
			return nil
		}

		i.logger.Warn("forced re-seed, clearing catalog", "products", count)
		if err := i.products.ResetCatalog(ctx); err != nil {
			return fmt.Errorf("seed: reset catalog: %w", err)
		}
	}

	path := i.findCSV()
	if path == "" {
		i.logger.Warn("no seed CSV found, skipping",
			"candidates", i.cfg.Paths,
		)
		return nil
	}

	rows, err := i.parseCSV(path)
	if err != nil {
		return fmt.Errorf("seed: parse %s: %w", path, err)
	}

	result, err := i.products.BulkCreate(ctx, rows)
	if err != nil {
		return fmt.Errorf("seed: bulk insert: %w", err)
	}

	i.logger.Info("catalog seeded",
		"path", path,
		"inserted", result.Inserted,
		"failed", result.Failed,
		"deduplicated", result.Skipped,
	)

	for _, rowErr := range result.Errors {
		if strings.Contains(rowErr, "duplicate key") {
			i.logger.Debug("seed row already present", "row", rowErr)
		} else {
			i.logger.Warn("seed row failed", "row", rowErr)
		}
	}

	return nil
}

func (i *Importer) findCSV() string {
	for _, candidate := range i.cfg.Paths {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// parseCSV streams the file through the catalog parser, keeping only rows
// in the category allow-list.
func (i *Importer) parseCSV(
	path string,
) ([]product.CreateProductRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	rows, stats, err := product.ParseCSV(f, func(categoryID int) bool {
		_, ok := allowedCategories[categoryID]
		return ok
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info("seed CSV parsed",
		"path", path,
		"kept", stats.Kept,
		"filtered", stats.Filtered,
		"malformed", stats.Malformed,
	)

	return rows, nil
}
