package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/lmicro/gomero/internal/repositories"
	"github.com/lmicro/gomero/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the cache database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// CacheDataset stores a dataset's images and their tags in the local cache.
func (r *Runner) CacheDataset(ctx context.Context, cmd *cli.Command) error {
	conn, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	dataset, err := conn.Dataset(ctx, cmd.Int64("id"))
	if err != nil {
		return err
	}

	images, err := dataset.Images(ctx)
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	adapter := repositories.NewCacheAdapter(
		repositories.NewImageRepository(db),
		repositories.NewTagRepository(db),
	)

	cachedTags := 0
	for _, image := range images {
		if err := adapter.CacheImage(dataset.ID, image.Image); err != nil {
			return fmt.Errorf("caching image %d: %w", image.ID, err)
		}

		tags, err := image.Tags(ctx)
		if err != nil {
			return fmt.Errorf("fetching tags for image %d: %w", image.ID, err)
		}
		for _, tag := range tags {
			if err := adapter.CacheTag(tag); err != nil {
				return fmt.Errorf("caching tag %d: %w", tag.ID, err)
			}
			cachedTags++
		}
	}

	r.logger.Info("dataset cached", "id", dataset.ID, "images", len(images), "tags", cachedTags)

	r.writePlain("✓ Cached %s\n", dataset.Name)
	r.writePlain("  Images: %d\n", len(images))
	r.writePlain("  Tag links: %d\n", cachedTags)
	return nil
}

// CacheList prints cached images, optionally filtered by dataset.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if datasetID := cmd.Int64("dataset"); datasetID != 0 {
		criteria["dataset_id"] = datasetID
	}

	images, err := repositories.NewImageRepository(db).List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type row struct {
			RemoteID  int64  `json:"remoteId"`
			DatasetID int64  `json:"datasetId"`
			Name      string `json:"name"`
		}
		rows := make([]row, 0, len(images))
		for _, image := range images {
			rows = append(rows, row{RemoteID: image.RemoteID(), DatasetID: image.DatasetID(), Name: image.Name()})
		}
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Cached images")
	for _, image := range images {
		r.writePlain("%d. %s (dataset %d)\n", image.RemoteID(), image.Name(), image.DatasetID())
	}
	return nil
}

// openDatabase opens the configured cache database and applies pool limits.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}
