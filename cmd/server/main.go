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

	"github.com/payflow-labs/transfer-service/internal/application"
	"github.com/payflow-labs/transfer-service/internal/application/services"
	"github.com/payflow-labs/transfer-service/internal/config"
	"github.com/payflow-labs/transfer-service/internal/display"
	"github.com/payflow-labs/transfer-service/internal/domain"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/events"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/memory"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/persistence"
	"github.com/payflow-labs/transfer-service/internal/infrastructure/persistence/postgres"
	"github.com/payflow-labs/transfer-service/internal/interfaces/rest/handlers"
	"github.com/payflow-labs/transfer-service/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)
	logger.Info("starting transfer service", "env", cfg.Primary.Env, "driver", cfg.Database.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		uow          application.UnitOfWork
		registry     domain.AccountRegistry
		transactions services.TransactionReader
	)

	switch cfg.Database.Driver {
	case "postgres":
		db, err := persistence.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		uow = postgres.NewUnitOfWork(db)
		registry = postgres.NewAccountRegistry(db)
		transactions = postgres.NewTransactionRepository(db)

	default:
		store := memory.NewStore(cfg.Transfer.LockTimeout)
		store.Seed(
			domain.NewAccount("client-account", domain.NewAmount(2000, "EUR")),
			domain.NewAccount("merchant-account", domain.NewAmount(500, "EUR")),
		)
		logger.Info("seeded demo accounts", "accounts", 2)

		uow = store
		registry = store
		transactions = store
	}

	var publisher services.EventPublisher
	if cfg.Events.Enabled {
		producer, err := events.NewProducer(cfg.Events.URL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.Warn("event broker unavailable, transfers will not be published", "error", err)
			publisher = events.NewNopPublisher(logger)
		} else {
			defer producer.Close()
			publisher = producer
		}
	} else {
		publisher = events.NewNopPublisher(logger)
	}

	console := display.NewConsole(os.Stdout)
	transferService := services.NewTransferService(uow, console, publisher, logger)
	queryService := services.NewQueryService(registry, transactions)

	reconciler := worker.NewReconciler(transactions, cfg.Worker.Interval, cfg.Worker.BatchSize, logger)
	go reconciler.Start(ctx)

	h := handlers.NewHandlers(transferService, queryService, logger)
	router := handlers.NewRouter(h, logger, cfg.Server.WriteTimeout)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("http server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	logger.Info("transfer service stopped")
}
