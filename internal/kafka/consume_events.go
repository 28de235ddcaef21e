package kafka

import (
	"context"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/config"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/usecase"
	"go.uber.org/fx"
)

// StartConsumeEvents runs the Kafka consumer for the lifetime of the app.
// A consumer failure shuts the whole process down so the orchestrator can
// restart it.
func StartConsumeEvents(
	sd fx.Shutdowner,
	lc fx.Lifecycle,
	conf *config.Config,
	events usecase.EventUsecase,
) error {
	consumer, err := NewConsumer(conf.Kafka, events)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := consumer.Start(runCtx); err != nil {
					log.Errorw(runCtx, "Kafka consumer stopped", "error", err)
					if err := sd.Shutdown(); err != nil {
						log.Errorw(runCtx, "Failed to shutdown app", "error", err)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return consumer.Stop(ctx)
		},
	})
	return nil
}
