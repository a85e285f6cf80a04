package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	jwttoken "idcheck/internal/jwt_token"
	"idcheck/internal/platform/config"
	"idcheck/internal/platform/httpserver"
	"idcheck/internal/platform/logger"
	"idcheck/internal/platform/metrics"
	"idcheck/internal/platform/postgres"
	"idcheck/internal/platform/redis"
	httptransport "idcheck/internal/transport/http"
	"idcheck/internal/validation"
	"idcheck/internal/validation/handler"
	validationmetrics "idcheck/internal/validation/metrics"
	"idcheck/internal/validation/publisher"
	"idcheck/internal/validation/service"
	"idcheck/internal/validation/store"
)

// main wires dependencies from the environment, serves HTTP and shuts down
// gracefully on SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	validator, err := buildValidator(cfg.Validation)
	if err != nil {
		return err
	}

	validationMetrics := validationmetrics.New()
	st, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	pub, err := buildPublisher(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer pub.Close()

	svc := service.New(validator, store.WithMetrics(st, validationMetrics), log,
		service.WithPublisher(pub),
		service.WithMetrics(validationMetrics),
		service.WithBatchConcurrency(cfg.Validation.BatchConcurrency),
		service.WithMaxBatchSize(cfg.Validation.MaxBatchSize),
		service.WithTracer(otel.Tracer("idcheck/validation")),
	)

	routerCfg := httptransport.RouterConfig{
		Logger:         log,
		Metrics:        metrics.New(),
		MetricsHandler: promhttp.Handler(),
		Health:         svc,
		Routes:         []httptransport.RouteRegistrar{handler.New(svc, log)},
	}
	if cfg.Server.AuthEnabled() {
		routerCfg.Auth = jwttoken.NewJWTService(cfg.Server.JWTSigningKey, jwttoken.Issuer)
	} else {
		log.Warn("IDCHECK_JWT_SIGNING_KEY not set; API routes are unauthenticated")
	}

	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(routerCfg))

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting idcheck", "addr", cfg.Server.Addr, "store", cfg.Store.Backend, "kafka", cfg.Kafka.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func buildValidator(cfg config.Validation) (*validation.Validator, error) {
	lists := validation.DefaultAllowLists()
	if cfg.AllowListFile != "" {
		f, err := os.Open(cfg.AllowListFile)
		if err != nil {
			return nil, fmt.Errorf("open allow-list file: %w", err)
		}
		defer f.Close()
		if lists, err = validation.LoadAllowLists(f); err != nil {
			return nil, err
		}
	}
	if cfg.CheckUSStates && !lists.States.Configured() {
		lists.States = validation.USStates()
	}
	return validation.New(validation.WithAllowLists(lists)), nil
}

// buildStore returns the configured record store and a func releasing its
// connections.
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client.Client, cfg.Store.ReportTTL), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgresStore(pool, cfg.Store.ReportTTL)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		go sweepExpired(ctx, pg, cfg.Store.ReportTTL, log)
		return pg, pool.Close, nil

	default:
		return store.NewInMemoryStore(cfg.Store.ReportTTL), func() {}, nil
	}
}

// sweepExpired deletes expired postgres rows until ctx is cancelled.
func sweepExpired(ctx context.Context, pg *store.PostgresStore, ttl time.Duration, log *slog.Logger) {
	interval := min(ttl, time.Hour)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := pg.DeleteExpired(ctx)
			if err != nil {
				log.Warn("failed to delete expired validations", "error", err)
				continue
			}
			if n > 0 {
				log.Info("deleted expired validations", "count", n)
			}
		}
	}
}

func buildPublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (publisher.Publisher, error) {
	if !cfg.Enabled() {
		return publisher.NoOp{}, nil
	}
	k, err := publisher.NewKafka(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	if err := k.EnsureTopic(ctx, 3, 1); err != nil {
		log.Warn("could not ensure kafka topic", "topic", cfg.Topic, "error", err)
	}
	return k, nil
}
