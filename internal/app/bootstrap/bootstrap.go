package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	commissionservice "raspepix/contexts/affiliate-network/commission-service"
	commissionpostgres "raspepix/contexts/affiliate-network/commission-service/adapters/postgres"
	editionsimulator "raspepix/contexts/finance-core/edition-simulator"
	simulatorpostgres "raspepix/contexts/finance-core/edition-simulator/adapters/postgres"
	editionservice "raspepix/contexts/lottery-core/edition-service"
	editionpostgres "raspepix/contexts/lottery-core/edition-service/adapters/postgres"
	randomadapter "raspepix/contexts/lottery-core/edition-service/adapters/random"
	editionworkers "raspepix/contexts/lottery-core/edition-service/application/workers"
	"raspepix/internal/platform/config"
	"raspepix/internal/platform/db"
	"raspepix/internal/platform/httpserver"
	"raspepix/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres            *db.Postgres
	editionCloser       editionworkers.EditionCloser
	outboxRelay         editionworkers.OutboxRelay
	enableEditionCloser bool
	enableOutboxRelay   bool
	pollInterval        time.Duration
	logger              *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	commissionRepo := commissionpostgres.NewRepository(pg.DB, logger)
	commissions := commissionservice.NewModule(commissionservice.Dependencies{
		Repository:    commissionRepo,
		Editions:      commissionRepo,
		Deposits:      commissionRepo,
		PublicBaseURL: cfg.PublicBaseURL,
		Logger:        logger,
	})

	simulatorRepo := simulatorpostgres.NewRepository(pg.DB, logger)
	simulator := editionsimulator.NewModule(editionsimulator.Dependencies{
		Repository: simulatorRepo,
		Catalog:    simulatorRepo,
		Clock:      simulatorpostgres.SystemClock{},
		IDGen:      simulatorpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	editionRepo := editionpostgres.NewRepository(pg.DB, logger)
	editions := editionservice.NewModule(editionservice.Dependencies{
		Editions: editionRepo,
		Tickets:  editionRepo,
		Sweep:    editionRepo,
		Outbox:   editionRepo,
		Clock:    editionpostgres.SystemClock{},
		IDGen:    editionpostgres.UUIDGenerator{},
		Numbers:  randomadapter.Source{},
		Logger:   logger,
	})

	server := httpserver.New(commissions, simulator, editions, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewBus(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	editionRepo := editionpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		editionCloser: editionworkers.EditionCloser{
			Editions:  editionRepo,
			Clock:     editionpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		outboxRelay: editionworkers.OutboxRelay{
			Outbox:    editionRepo,
			Publisher: bus,
			Clock:     editionpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		enableEditionCloser: cfg.EnableEditionCloser,
		enableOutboxRelay:   cfg.EnableOutboxRelay,
		pollInterval:        2 * time.Second,
		logger:              logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"edition_closer", w.enableEditionCloser,
		"outbox_relay", w.enableOutboxRelay,
	)

	for {
		if w.enableEditionCloser {
			if err := w.editionCloser.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableOutboxRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
