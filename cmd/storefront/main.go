package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/storefront/internal/auth"
	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/cartstore"
	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/config"
	h "github.com/fjod/storefront/internal/http"
	"github.com/fjod/storefront/internal/logger"
	"github.com/fjod/storefront/internal/metrics"
	"github.com/fjod/storefront/internal/publisher"
	"github.com/fjod/storefront/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to read env files: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	l, err := logger.New(logger.Options{Service: "storefront", Env: cfg.Env, Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Fatal("storefront stopped with error", zap.Error(err))
	}
	l.Info("storefront stopped")
}

func run(ctx context.Context, cfg config.Config, l *zap.Logger) error {
	creds := &repository.Credentials{
		Driver:            cfg.DBDriver,
		DatabaseURL:       cfg.DatabaseURL,
		SQLitePath:        cfg.SQLitePath,
		MigrationsDirPath: cfg.MigrationsPath,
	}
	repo, err := repository.NewRepository(ctx, creds)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.RunMigrations(creds); err != nil {
		return err
	}
	l.Info("database ready", zap.String("driver", cfg.DBDriver))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}

	kv, closeKV, err := cartBackend(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeKV()
	l.Info("cart backend ready", zap.String("backend", cfg.CartBackend))

	pool, err := auth.ConnectPG(ctx, cfg.AuthDatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	directory := auth.NewPGDirectory(pool)
	if err := directory.EnsureSchema(ctx); err != nil {
		return err
	}
	authService := auth.NewService(
		directory,
		auth.NewRedisSessions(redisClient),
		auth.NewBroadcaster(),
		[]byte(cfg.JWTSecret),
		cfg.SessionTTL,
		l.Named("auth"),
	)

	serverMetrics := metrics.NewServerMetrics(nil)
	carts := cart.NewRegistry(cartstore.Factory(kv, l.Named("cartstore")), l.Named("cart"))
	checkoutService := checkout.NewService(checkout.Deps{
		Orders:   repo,
		Payments: checkout.NewRandomGateway(cfg.PaymentSuccessRate, cfg.PaymentDelay),
		Observer: serverMetrics,
		Logger:   l.Named("checkout"),
	})

	router := h.NewRouter(h.Deps{
		Catalog:        repo,
		Orders:         repo,
		Auth:           authService,
		Carts:          carts,
		Checkout:       checkoutService,
		Metrics:        serverMetrics,
		Logger:         l.Named("http"),
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
		Ready: func(ctx context.Context) error {
			if err := repo.Ping(ctx); err != nil {
				return err
			}
			return redisClient.Ping(ctx).Err()
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info("storefront listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		carts.Run(gctx, cfg.CartSweepInterval, cfg.CartIdleTTL, checkoutService.Forget)
		return nil
	})

	if len(cfg.KafkaBrokers) > 0 {
		writer := publisher.NewKafkaWriter(cfg.OrderEventsTopic, cfg.KafkaBrokers...)
		defer writer.Close()
		poller := publisher.NewOutboxPoller(repo, writer, serverMetrics, l.Named("publisher"))
		g.Go(func() error {
			poller.Run(gctx)
			return nil
		})
	} else {
		l.Warn("KAFKA_BROKERS is empty, order events stay in the outbox")
	}

	return g.Wait()
}

// cartBackend returns the key-value store carts persist to and its closer.
func cartBackend(ctx context.Context, cfg config.Config, redisClient *redis.Client) (cartstore.KV, func(), error) {
	if cfg.CartBackend != config.CartBackendMongo {
		return cartstore.NewRedisKV(redisClient), func() {}, nil
	}

	db, err := cartstore.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return nil, nil, err
	}
	disconnect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Client().Disconnect(ctx)
	}

	kv := cartstore.NewMongoKV(db)
	if err := kv.CreateIndexes(ctx); err != nil {
		disconnect()
		return nil, nil, err
	}
	return kv, disconnect, nil
}
