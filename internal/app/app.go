package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"

	"github.com/stockroom/replenish-backend/internal/adapter/postgres"
	"github.com/stockroom/replenish-backend/internal/auth"
	"github.com/stockroom/replenish-backend/internal/config"
	"github.com/stockroom/replenish-backend/internal/transport/middleware"
	"github.com/stockroom/replenish-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database and notification transports, and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Any("notify_drivers", cfg.Notify.Drivers),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	services, err := NewServices(cfg, pool, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Error("close notification transports", slog.String("error", err.Error()))
		}
	}()

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := newHandler(cfg, services, logger, limiter, healthChecks(pool, services.NATS)...)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newHandler assembles the router and middleware chain. Health endpoints get
// request ids, recovery and access logs but skip auth and rate limiting.
func newHandler(cfg *config.Config, s *Services, logger *slog.Logger, limiter *middleware.RateLimiter, checks ...rest.Check) http.Handler {
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	router := rest.NewRouter(rest.Handlers{
		Health:        rest.NewHealthHandler(Version, checks...),
		Requests:      rest.NewRequestHandler(s.Requests, logger),
		Exceptional:   rest.NewExceptionalHandler(s.Exceptional, logger),
		Orders:        rest.NewOrderHandler(s.Orders, logger, cfg.Documents.MaxSize),
		Stock:         rest.NewStockHandler(s.Ledger, logger),
		Audit:         rest.NewAuditHandler(s.Audit, logger),
		Notifications: rest.NewNotificationHandler(s.Notify, logger),
		Suppliers:     rest.NewSupplierHandler(s.Suppliers, logger),
		Stats:         rest.NewStatsHandler(s.Stats, logger),
	}, middleware.Chain(
		middleware.Auth(jwt),
		middleware.IdentifyCaller,
		limiter.Limit(cfg.Server.RateLimit),
	))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Logger(logger),
	)(router)
}

func healthChecks(pool interface{ Ping(context.Context) error }, nc *nats.Conn) []rest.Check {
	checks := []rest.Check{{Name: "database", Ping: pool.Ping}}
	if nc != nil {
		checks = append(checks, rest.Check{Name: "nats", Ping: func(context.Context) error {
			if status := nc.Status(); status != nats.CONNECTED {
				return fmt.Errorf("nats status %s", status)
			}
			return nil
		}})
	}
	return checks
}
