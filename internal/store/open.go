package store

import (
	"context"
	"fmt"

	"github.com/i474232898/weather-assistant/internal/weather"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Options selects and configures a store backend.
type Options struct {
	Backend     string
	DatabaseURL string
	Migrate     bool
}

// Open builds the configured store. The returned close function is never nil.
func Open(ctx context.Context, opts Options) (weather.Store, func(), error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), func() {}, nil
	case BackendPostgres:
		if opts.Migrate {
			if err := RunMigrations(opts.DatabaseURL); err != nil {
				return nil, func() {}, err
			}
		}
		pg, err := ConnectPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		return pg, pg.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
