package app

import (
	"context"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/config"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/chatapi"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/scraper"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store/mongodb"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/server"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/session"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newMongoDB,

			server.NewController,

			usecase.NewEventUsecase,
			usecase.NewCaptureUsecase,
			usecase.NewWishlistUsecase,
			usecase.NewNavigationUsecase,
			usecase.NewSessionRegistry,

			mongodb.NewItemStore,
			mongodb.NewConfigStore,

			scraper.New,
			chatapi.NewClient,
		),
		fx.Supply(conf),
		fx.Invoke(stopSessionsOnShutdown),
		fx.Invoke(funcs...),
	)
}

// stopSessionsOnShutdown ties the session janitor to the app lifecycle.
func stopSessionsOnShutdown(lc fx.Lifecycle, sessions *session.Registry) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sessions.Stop()
			return nil
		},
	})
}
