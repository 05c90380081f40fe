package workers

import (
	"context"
	"log/slog"
	"time"

	application "raspepix/contexts/lottery-core/edition-service/application"
	"raspepix/contexts/lottery-core/edition-service/ports"
)

// EditionCloser sweeps ativo editions whose sales window has passed.
type EditionCloser struct {
	Editions  ports.SweepRepository
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (j EditionCloser) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	now := time.Now().UTC()
	if j.Clock != nil {
		now = j.Clock.Now().UTC()
	}

	limit := j.BatchSize
	if limit <= 0 {
		limit = 100
	}

	closed, err := j.Editions.CloseEditionsPastEnd(ctx, now, limit)
	if err != nil {
		logger.Error("edition close sweep failed",
			"event", "edition_close_sweep_failed",
			"module", "lottery-core/edition-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(closed) > 0 {
		logger.Info("edition close sweep completed",
			"event", "edition_close_sweep_completed",
			"module", "lottery-core/edition-service",
			"layer", "worker",
			"closed_count", len(closed),
		)
	}
	return nil
}
