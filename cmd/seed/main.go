package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"donut-store/internal/config"
	"donut-store/internal/database"
	"donut-store/internal/repository"
	"donut-store/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		path    = flag.String("file", "seed/products.json", "catalogue file (local path, or S3 key suffix when S3 is enabled)")
		migrate = flag.Bool("migrate", true, "apply schema migrations before seeding")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *migrate {
		if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	fileLoader := seed.NewFileLoader(logger)
	var loader seed.Loader = fileLoader

	if cfg.Seed.S3Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 loader, using local file system only")
		} else {
			loader = seed.NewFallbackLoader(s3Loader, fileLoader, cfg.Seed.S3Prefix, true, logger)
		}
	}

	productRepo := repository.NewProductRepository(pool, logger)
	seeder := seed.NewSeeder(productRepo, logger)

	count, err := seeder.Seed(ctx, loader, *path)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Info().Int("products", count).Msg("seeding completed")
	return nil
}
