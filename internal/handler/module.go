package handler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"peaceconnect_service/internal/config"
	"peaceconnect_service/pkg/healthcheck"
	"peaceconnect_service/pkg/httpClient"
	"peaceconnect_service/pkg/notify"
	"peaceconnect_service/pkg/submission"
	"peaceconnect_service/pkg/suggestion"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(
		ProvideSuggester,
		NewHelpRequestHandler,
		NewEventHandler,
		NewArticleHandler,
		NewCatalogHandler,
		NewDashboardHandler,
		NewRouter,
	),
	fx.Invoke(StartServer),
)

// ProvideSuggester builds the server-side suggestion path. Toasts go to the
// log.
func ProvideSuggester(cfg *config.Config, clock clockwork.Clock, logger *zap.Logger) *submission.Suggester {
	gen := suggestion.New(
		suggestion.WithClock(clock),
		suggestion.WithLatency(cfg.Suggestion.Latency),
		suggestion.WithLogger(logger),
	)
	return submission.NewSuggester(gen,
		submission.WithSuggestNotifier(notify.NewLogger(logger.Named("suggestion"))),
		submission.WithSuggestLogger(logger),
	)
}

// StartServer serves router for the lifetime of the application. The
// listener is bound in OnStart so a busy port fails startup.
func StartServer(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine, health *healthcheck.Manager, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           httpClient.TraceMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			health.SetReady(true)
			logger.Info("http server started", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			health.SetReady(false)
			logger.Info("http server stopping")
			return srv.Shutdown(ctx)
		},
	})
}
