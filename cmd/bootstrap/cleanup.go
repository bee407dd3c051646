package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"fairway-booking/internal/infra/repository"

	"go.uber.org/fx"
)

const idempotencyCleanupInterval = time.Hour

var CleanupModule = fx.Module("cleanup",
	fx.Invoke(StartIdempotencyCleanup),
)

// StartIdempotencyCleanup sweeps expired idempotency keys in the background.
// Expired keys are already reclaimable on insert; the sweep keeps the table
// from accumulating rows for keys that are never retried.
func StartIdempotencyCleanup(lc fx.Lifecycle, repo *repository.IdempotencyRepository) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(idempotencyCleanupInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						deleted, err := repo.DeleteExpired(ctx)
						if err != nil {
							slog.Warn("idempotency key cleanup failed", "error", err)
							continue
						}
						if deleted > 0 {
							slog.Info("expired idempotency keys removed", "count", deleted)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			<-done
			return nil
		},
	})
}
