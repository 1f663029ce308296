package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Navaneeth-Nair/Neuromate/internal/api"
	"github.com/Navaneeth-Nair/Neuromate/internal/auth"
	"github.com/Navaneeth-Nair/Neuromate/internal/cache"
	"github.com/Navaneeth-Nair/Neuromate/internal/calendar"
	"github.com/Navaneeth-Nair/Neuromate/internal/config"
	"github.com/Navaneeth-Nair/Neuromate/internal/domain"
	"github.com/Navaneeth-Nair/Neuromate/internal/logging"
	"github.com/Navaneeth-Nair/Neuromate/internal/outbox"
	"github.com/Navaneeth-Nair/Neuromate/internal/persistence/memory"
	"github.com/Navaneeth-Nair/Neuromate/internal/persistence/postgres"
	httptransport "github.com/Navaneeth-Nair/Neuromate/internal/transport/http"
)

func main() {
	cfg := config.Load()
	logger := logging.Must(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	loc, _ := cfg.Location()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		repo       domain.Repository
		dispatcher *outbox.Dispatcher
	)
	if cfg.PostgresURL == "" {
		logger.Warn("POSTGRES_URL not set, using in-memory repository")
		repo = memory.NewInMemoryRepository()
	} else {
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(cfg.PostgresURL, postgres.Up); err != nil {
				logger.Fatal("failed to apply migrations", zap.Error(err))
			}
		}

		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()
		repo = postgres.NewRepository(pool)

		if cfg.OutboxEnabled {
			producer := outbox.NewKafkaProducer(cfg.KafkaBrokers)
			defer producer.Close()

			registry := outbox.NewSchemaRegistryClient(cfg.SchemaRegistryURL)
			dispatcher = outbox.NewDispatcher(pool, producer, registry, cfg.OutboxPollInterval, cfg.OutboxBatchSize,
				outbox.WithLogger(logger.Named("outbox")))
			go dispatcher.Start(ctx)
		}
	}

	memo := cache.NewMemo[*calendar.Calendar](cfg.CalendarCacheSize, cfg.CalendarCacheTTL)
	go sweepExpired(ctx, memo, cfg.CalendarCacheTTL, logger)

	authCfg := auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.JWTTTL}
	service := domain.NewService(repo, memo, auth.NewIssuer(authCfg))
	aggregator := calendar.NewAggregator(service,
		calendar.WithLogger(logger.Named("calendar")),
		calendar.WithLocation(loc),
		calendar.WithFetchTimeout(cfg.CalendarFetchTimeout),
	)

	handler := api.NewHandler(service, calendar.NewService(aggregator, memo), api.WithLogger(logger.Named("api")))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	server := httptransport.NewServer(httptransport.DefaultServerConfig(cfg.HTTPAddress), httptransport.Chain(mux,
		httptransport.Recover(logger),
		httptransport.RequestLogger(logger.Named("http")),
		httptransport.CORS(cfg.CORSOrigin),
		auth.NewMiddleware(authCfg).Wrap,
	))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("neuromate api listening", zap.String("address", cfg.HTTPAddress), zap.String("timezone", loc.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh
	logger.Info("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	if dispatcher != nil {
		dispatcher.Wait()
	}
}

// sweepExpired drops stale calendars so idle users do not pin memory until eviction.
func sweepExpired(ctx context.Context, memo *cache.Memo[*calendar.Calendar], ttl time.Duration, logger *zap.Logger) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := memo.CleanExpired(); n > 0 {
				logger.Debug("expired calendars evicted", zap.Int("count", n))
			}
		}
	}
}
