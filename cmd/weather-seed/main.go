package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/i474232898/weather-assistant/internal/config"
	"github.com/i474232898/weather-assistant/internal/seed"
	"github.com/i474232898/weather-assistant/internal/store"
	"github.com/i474232898/weather-assistant/internal/weather"
)

func main() {
	file := flag.String("file", "", "YAML seed file (defaults to SEED_FILE, then the built-in cities)")
	flag.Parse()

	if err := run(context.Background(), *file); err != nil {
		color.Red("Error seeding database: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, file string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if file == "" {
		file = cfg.SeedFile
	}

	if cfg.StoreBackend == store.BackendMemory {
		color.Yellow("STORE_BACKEND=memory: seeded data will not outlive this process")
	}

	var records []weather.Record
	if file != "" {
		records, err = seed.LoadFile(file)
		if err != nil {
			return err
		}
		color.Cyan("Loaded %d cities from %s", len(records), file)
	}

	weatherStore, closeStore, err := store.Open(ctx, store.Options{
		Backend:     cfg.StoreBackend,
		DatabaseURL: cfg.DatabaseURL,
		Migrate:     cfg.DatabaseMigrate,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	n, err := seed.New(weatherStore, records).Run(ctx)
	if err != nil {
		return err
	}
	color.Green("All %d cities have been seeded.", n)
	return nil
}
