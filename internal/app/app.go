package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	cartevent "github.com/Mrfarooqui038501/SalesChatBot/internal/cart/event"
	carthandler "github.com/Mrfarooqui038501/SalesChatBot/internal/cart/handler/http"
	cartredis "github.com/Mrfarooqui038501/SalesChatBot/internal/cart/repository/redis"
	cartservice "github.com/Mrfarooqui038501/SalesChatBot/internal/cart/service"
	cthandler "github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/handler/http"
	ctpostgres "github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/repository/postgres"
	ctservice "github.com/Mrfarooqui038501/SalesChatBot/internal/catalog/service"
	chathandler "github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/handler/http"
	chatpostgres "github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/repository/postgres"
	chatservice "github.com/Mrfarooqui038501/SalesChatBot/internal/chatlog/service"
	"github.com/Mrfarooqui038501/SalesChatBot/internal/user/auth"
	authhandler "github.com/Mrfarooqui038501/SalesChatBot/internal/user/handler/http"
	userpostgres "github.com/Mrfarooqui038501/SalesChatBot/internal/user/repository/postgres"
	userservice "github.com/Mrfarooqui038501/SalesChatBot/internal/user/service"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/database"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/health"
	pkgkafka "github.com/Mrfarooqui038501/SalesChatBot/pkg/kafka"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/middleware"
	"github.com/Mrfarooqui038501/SalesChatBot/pkg/tracing"
)

// App wires together all dependencies and runs the API server.
type App struct {
	cfg             *Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     1.0,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	pgCfg := cfg.PostgresConfig()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	rdb, err := database.NewRedisClient(ctx, cfg.RedisConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry())

	productSvc := ctservice.NewProductService(ctpostgres.NewProductRepository(pool), logger)
	cartSvc := cartservice.NewCartService(
		cartredis.NewCartRepository(rdb, cfg.CartTTL()),
		productSvc,
		cartevent.NewProducer(producer, logger),
		logger,
	)
	chatSvc := chatservice.NewChatService(chatpostgres.NewChatRepository(pool), logger)
	userSvc := userservice.NewUserService(userpostgres.NewUserRepository(pool), jwtManager, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	router := NewRouter(RouterDeps{
		Products: cthandler.NewProductHandler(productSvc, logger),
		Cart:     carthandler.NewCartHandler(cartSvc, logger),
		Chat:     chathandler.NewChatHandler(chatSvc, logger),
		Auth:     authhandler.NewAuthHandler(userSvc, logger),
		Health:   healthHandler,
		TokenValidate: func(token string) (*middleware.Claims, error) {
			claims, err := userSvc.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			return &middleware.Claims{UserID: claims.UserID, Email: claims.Email}, nil
		},
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
