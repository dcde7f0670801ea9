package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"artisanhub/internal/config"
	"artisanhub/internal/db"
	"artisanhub/internal/logging"
	"artisanhub/internal/seed"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "fixture YAML file (defaults to the embedded demo data)")
	flag.Parse()

	cfg, err := config.LoadTool()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.Named("seed")
	defer func() { _ = logger.Sync() }()

	fixtures, err := loadFixtures(*file)
	if err != nil {
		logger.Fatal("load fixtures", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, fixtures); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
	logger.Info("seed applied", zap.Int("artists", len(fixtures.Artists)))
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Parse(f)
}
