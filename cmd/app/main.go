package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osmunda/cardbot/internal/catalog"
	"github.com/osmunda/cardbot/internal/config"
	"github.com/osmunda/cardbot/internal/cooldown"
	"github.com/osmunda/cardbot/internal/database"
	"github.com/osmunda/cardbot/internal/database/postgres"
	"github.com/osmunda/cardbot/internal/database/schema"
	"github.com/osmunda/cardbot/internal/domain"
	"github.com/osmunda/cardbot/internal/drop"
	"github.com/osmunda/cardbot/internal/gacha"
	"github.com/osmunda/cardbot/internal/handler"
	"github.com/osmunda/cardbot/internal/ledger"
	"github.com/osmunda/cardbot/internal/market"
	"github.com/osmunda/cardbot/internal/server"
	"github.com/osmunda/cardbot/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	handler.InitValidator()

	ctx := context.Background()

	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString: cfg.GetDBConnString(),
	})
	if err != nil {
		slog.Error("Failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := schema.Migrate(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	accountRepo := postgres.NewAccountRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	cooldownRepo := postgres.NewCooldownRepository(pool)
	listingRepo := postgres.NewListingRepository(pool)
	claimSetRepo := postgres.NewClaimSetRepository(pool)

	catalogService := catalog.NewService(itemRepo)
	cooldownService := cooldown.NewService(cooldownRepo, cooldown.Config{
		DevMode: cfg.DevMode,
		Durations: map[string]time.Duration{
			domain.ActionPull:      cfg.PullCooldown,
			domain.ActionMultiPull: cfg.MultiPullCooldown,
			domain.ActionDaily:     cfg.DailyCooldown,
		},
		MaxReductionPercent: cfg.MaxCooldownReduction,
	})
	ledgerService := ledger.NewService(accountRepo, inventoryRepo, catalogService, cooldownService)
	gachaService := gacha.NewService(catalogService, ledgerService, cooldownService, gacha.NewTable(), gacha.Config{
		PullCostPatterns: cfg.PullCostPatterns,
		MultiPullSize:    cfg.MultiPullSize,
	})
	dropService := drop.NewService(claimSetRepo, catalogService, ledgerService)
	marketService := market.NewService(listingRepo, accountRepo, inventoryRepo, catalogService, ledgerService)

	maintenancePool := worker.NewPool(worker.DefaultPoolWorkers, worker.DefaultPoolQueueSize)
	maintenancePool.Start()

	expiryWorker := worker.NewDropExpiryWorker(maintenancePool, dropService, worker.DefaultDropSweepInterval)
	expiryWorker.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, server.Services{
		Ledger:   ledgerService,
		Gacha:    gachaService,
		Drops:    dropService,
		Market:   marketService,
		Cooldown: cooldownService,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := expiryWorker.Stop(shutdownCtx); err != nil {
		slog.Error("Drop expiry worker shutdown failed", "error", err)
	}
	maintenancePool.Stop()

	slog.Info("Shutdown complete")
}
