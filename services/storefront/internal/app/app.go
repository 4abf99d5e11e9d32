package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Roselynepj1/Flowerpower/pkg/database"
	"github.com/Roselynepj1/Flowerpower/pkg/health"
	"github.com/Roselynepj1/Flowerpower/pkg/httpclient"
	pkgkafka "github.com/Roselynepj1/Flowerpower/pkg/kafka"
	"github.com/Roselynepj1/Flowerpower/pkg/middleware"
	"github.com/Roselynepj1/Flowerpower/pkg/tracing"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/config"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/event"
	handler "github.com/Roselynepj1/Flowerpower/services/storefront/internal/handler/http"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/render"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/repository"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/repository/postgres"
	redisrepo "github.com/Roselynepj1/Flowerpower/services/storefront/internal/repository/redis"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/service"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/storeapi"
	"github.com/Roselynepj1/Flowerpower/services/storefront/migrations"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	limiter        *middleware.RateLimiter
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	// Page templates are parsed once; a broken override directory fails startup.
	pages, err := render.LoadTemplates(cfg.PageTemplateDir)
	if err != nil {
		return nil, fmt.Errorf("load page templates: %w", err)
	}

	// Upstream store API client. Retries stay off: a failed fetch surfaces
	// to the view that asked for it.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.StoreAPITimeout()
	cbCfg := httpclient.CircuitBreakerConfig{
		Name:         "store-api",
		MaxRequests:  cfg.CBMaxRequests,
		Interval:     time.Duration(cfg.CBInterval) * time.Second,
		Timeout:      time.Duration(cfg.CBTimeout) * time.Second,
		FailureRatio: cfg.CBFailureRatio,
		MinRequests:  cfg.CBMinRequests,
	}
	cbClient := httpclient.NewCircuitBreakerClient(httpclient.New(httpCfg), cbCfg, logger)
	storeAPI := storeapi.NewClient(cbClient, cfg.StoreAPIEndpoint, logger)
	logger.Info("store api client initialized",
		slog.String("endpoint", storeAPI.Endpoint()),
		slog.Int("timeout_seconds", cfg.StoreAPITimeoutSeconds),
	)

	// Checkout store.
	repo, storePing, err := a.openCheckoutStore(ctx)
	if err != nil {
		return nil, err
	}

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	a.producer = pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	eventProducer := event.NewProducer(a.producer, logger)
	storefrontService := service.NewStorefrontService(storeAPI, repo, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler(serviceName)
	healthHandler.Register("store-api", storeAPI.Ping)
	healthHandler.Register("checkout-store", storePing)

	// HTTP router.
	opts := handler.RouterOptions{
		PprofCIDRs: cfg.PprofAllowedCIDRs,
		CORS:       middleware.DefaultCORSConfig(),
		Shopper:    middleware.DefaultShopperConfig(),
	}
	opts.CORS.AllowedOrigins = cfg.CORSAllowedOrigins
	opts.Shopper.Secure = cfg.ShopperCookieSecure
	if cfg.RateLimitRPS > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
		opts.RateLimiter = a.limiter
	}
	router := handler.NewRouter(storefrontService, pages, healthHandler, logger, opts)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// openCheckoutStore connects the configured checkout backend and returns the
// repository with its readiness probe.
func (a *App) openCheckoutStore(ctx context.Context) (repository.CheckoutRepository, health.Checker, error) {
	cfg := a.cfg

	switch cfg.CheckoutStore {
	case config.StorePostgres:
		pgCfg := database.PostgresConfig{
			Host:            cfg.PostgresHost,
			Port:            cfg.PostgresPort,
			User:            cfg.PostgresUser,
			Password:        cfg.PostgresPass,
			DBName:          cfg.PostgresDB,
			SSLMode:         cfg.PostgresSSL,
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
			MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
		}
		pool, err := database.NewPostgresPool(ctx, &pgCfg, a.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)
		database.RegisterPoolMetrics(pool, serviceName)

		if err := database.RunMigrations(ctx, pool, migrations.FS, a.logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		a.logger.Info("database migrations completed")

		if cfg.SlowQueryThresholdMs > 0 {
			database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, a.logger)
		}

		a.pool = pool
		return postgres.NewCheckoutRepository(pool), pool.Ping, nil

	default:
		redisCfg := database.DefaultRedisConfig()
		redisCfg.Host = cfg.RedisHost
		redisCfg.Port = cfg.RedisPort
		redisCfg.Password = cfg.RedisPassword
		redisCfg.DB = cfg.RedisDB

		rdb, err := database.NewRedisClient(ctx, redisCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.logger.Info("connected to Redis",
			slog.String("addr", redisCfg.Addr()),
			slog.Int("db", cfg.RedisDB),
		)

		a.rdb = rdb
		ping := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		return redisrepo.NewCheckoutRepository(rdb, cfg.CheckoutTTL()), ping, nil
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return errors.Join(err, a.Shutdown())
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: HTTP server, tracer,
// Kafka producer, checkout store.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	if a.limiter != nil {
		a.limiter.Close()
	}

	// Flush spans after the HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.closeStores(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// closeStores releases whichever checkout store was opened.
func (a *App) closeStores() error {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}
