package main

import (
	"context"
	"net/http"

	webAdapter "payables-tracker/internal/adapters/web"
	"payables-tracker/internal/app"
	"payables-tracker/internal/config"
	"payables-tracker/internal/core"
	"payables-tracker/internal/db"
	"payables-tracker/internal/logger"
	"payables-tracker/internal/seed"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	source, err := seed.New(cfg.SeedDelay)
	if err != nil {
		log.Fatal().Err(err).Msg("seed dataset")
	}

	vendors := core.NewVendorService(pool)
	ledger := core.NewPaymentLedger(pool)
	scStore := core.NewEntryStore(core.ClassSubcontractor, source, ledger, vendors, log)
	hsStore := core.NewEntryStore(core.ClassHiringService, source, ledger, vendors, log)

	svc := app.NewAppService(vendors, ledger, log, scStore, hsStore)
	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, log)

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
