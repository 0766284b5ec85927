// SevaSetu - Citizen Service Discovery and Recommendation Platform
// Copyright 2026 SevaSetu Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sevasetu/sevasetu

// Command server runs the sevasetu API: citizen lookup and government
// service recommendations over immutable reference data.
//
// Startup sequence:
//  1. load configuration (defaults, optional YAML file, environment)
//  2. initialize structured logging
//  3. load the reference data artifacts into memory
//  4. build the recommendation engine over the loaded tables
//  5. serve HTTP under a supervision tree until SIGINT/SIGTERM
//
// All reference tables are loaded exactly once; the process must be
// restarted to pick up new data.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevasetu/sevasetu/internal/api"
	"github.com/sevasetu/sevasetu/internal/config"
	"github.com/sevasetu/sevasetu/internal/logging"
	"github.com/sevasetu/sevasetu/internal/recommend"
	"github.com/sevasetu/sevasetu/internal/refdata"
	"github.com/sevasetu/sevasetu/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("data_dir", cfg.Data.Dir).
		Msg("starting sevasetu")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := refdata.NewLoader(cfg.Data, logging.Logger())
	bundle, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	engine, err := buildEngine(cfg, bundle)
	if err != nil {
		return fmt.Errorf("failed to build recommendation engine: %w", err)
	}

	handler := api.NewHandler(bundle.Catalog, bundle.Directory, engine, cfg.Server.Timeout)
	router := api.NewRouter(handler, cfg.Security)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("listening")

	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("supervision tree failed: %w", err)
	}

	logging.Info().Msg("shutdown complete")
	return nil
}

// buildEngine wires the loaded reference tables into the engine.
func buildEngine(cfg *config.Config, bundle *refdata.Bundle) (*recommend.Engine, error) {
	engineCfg := recommend.Config{
		DistrictTopN:    cfg.Recommend.DistrictTopN,
		DemographicTopN: cfg.Recommend.DemographicTopN,
		ContentTopK:     cfg.Recommend.ContentTopK,
		YouthMinAge:     cfg.Recommend.YouthMinAge,
		ElderlyMinAge:   cfg.Recommend.ElderlyMinAge,
		CacheEnabled:    cfg.Recommend.CacheEnabled,
		CacheTTL:        cfg.Recommend.CacheTTL,
		CacheMaxEntries: cfg.Recommend.CacheMaxEntries,
	}

	filter := recommend.NewFilterPolicy(bundle.Catalog)

	return recommend.NewEngine(
		engineCfg,
		logging.Logger(),
		bundle.Directory,
		bundle.Catalog,
		recommend.NewDistrictRanker(bundle.DistrictRankings, filter, engineCfg.DistrictTopN),
		recommend.NewClusterMap(bundle.ClusterAssignments, bundle.ClusterRankings, filter, engineCfg.DemographicTopN),
		recommend.NewSimilarityIndex(bundle.Similarity, filter, engineCfg.ContentTopK),
	)
}
