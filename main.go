package main

import (
	"context"
	"log"
	"time"

	"github.com/Carlacms18/movie-catalog/internal/config"
	"github.com/Carlacms18/movie-catalog/internal/database"
	"github.com/Carlacms18/movie-catalog/internal/logger"
	"github.com/Carlacms18/movie-catalog/internal/store"
	"github.com/Carlacms18/movie-catalog/internal/store/gormstore"
	"github.com/Carlacms18/movie-catalog/internal/store/memstore"
	"github.com/Carlacms18/movie-catalog/internal/util"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	slogger, err := logger.SetupDefault(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		log.Fatalf("setup logger: %v", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	// schema first; without it the app must not proceed
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	// seeding failures are not fatal: the catalog just starts empty
	if cfg.Seed.Enabled {
		if err := st.SeedIfEmpty(ctx); err != nil {
			slogger.Warn("seed catalog", "err", err)
		}
	}

	// clear out sessions that expired while the app was closed
	swept, err := st.Sessions().SweepExpired(ctx)
	if err != nil {
		slogger.Warn("sweep sessions", "err", err)
	} else if swept > 0 {
		slogger.Info("swept expired sessions", "count", swept)
	}

	movies, err := st.Movies().List(ctx)
	if err != nil {
		log.Fatalf("list movies: %v", err)
	}
	slogger.Info("catalog ready",
		"backend", cfg.Database.Backend,
		"movies", len(movies),
	)
}

func openStore(cfg *config.Config) (store.Store, error) {
	hasher := util.NewHasher(cfg.Security.PasswordScheme)
	ttl := time.Duration(cfg.Session.TTLDays) * 24 * time.Hour

	if cfg.Database.Backend == "memory" {
		return memstore.New(hasher, ttl), nil
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		return nil, err
	}
	return gormstore.New(db, hasher, ttl), nil
}
