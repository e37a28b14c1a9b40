package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ecodeli/internal/core/cache"
	"ecodeli/internal/core/config"
	"ecodeli/internal/core/logger"
	"ecodeli/internal/core/metrics"
	"ecodeli/internal/core/server"
	deliveryadapter "ecodeli/internal/features/deliveries/adapters"
	deliveryhandler "ecodeli/internal/features/deliveries/handler"
	deliveryports "ecodeli/internal/features/deliveries/ports"
	deliveryservice "ecodeli/internal/features/deliveries/service"
	notifyadapter "ecodeli/internal/features/notifications/adapters"
	notifyports "ecodeli/internal/features/notifications/ports"
	notifyservice "ecodeli/internal/features/notifications/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// bootstrap loads the configuration and initializes the global logger.
func bootstrap(configDir string) (*config.AppConfig, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, nil
}

// runMigrate applies the embedded schema to DATABASE_URL.
func runMigrate(ctx context.Context, configDir string) error {
	cfg, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Store.DatabaseURL == "" {
		return errors.New("missing required configuration: DATABASE_URL")
	}

	db, err := deliveryadapter.OpenPostgres(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := deliveryadapter.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Get().Info("Schema applied")
	return nil
}

// runServe wires the stores, services and workers, then serves until SIGINT or SIGTERM.
func runServe(configDir string) error {
	cfg, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("store_driver", cfg.Store.Driver),
	)

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	sink := metrics.NewPrometheusSink(registry)

	var redisClient *redis.Client
	if cfg.Store.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(cfg.Store.RedisURL)
		if err != nil {
			return err
		}
		defer func() {
			if err := releaseRedis(cfg, redisClient); err != nil {
				l.Warn("Failed to close redis client", zap.Error(err))
			}
		}()
	}

	store, err := openStore(ctx, cfg, redisClient, sink)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		l.Fatal("Store health check failed", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	l.Info("Store connection verified", zap.String("driver", cfg.Store.Driver))

	// Notifications
	senders, closeSenders, err := buildSenders(cfg.Notifications)
	if err != nil {
		return err
	}
	defer closeSenders()

	dispatcherOpts := []notifyservice.Option{notifyservice.WithMetrics(sink)}
	if redisClient != nil {
		dispatcherOpts = append(dispatcherOpts,
			notifyservice.WithDedupe(cache.NewRedisAdapterFromClient(redisClient), cfg.Notifications.DedupeTTL))
	}
	dispatcher := notifyservice.NewDispatcher(senders, dispatcherOpts...)
	queue := notifyservice.NewQueue(cfg.Notifications.QueueSize, notifyservice.WithQueueMetrics(sink))

	dispatchCtx, cancelDispatch := context.WithCancel(ctx)
	var dispatchWg sync.WaitGroup
	dispatchWg.Add(1)
	go func() {
		defer dispatchWg.Done()
		dispatcher.Run(dispatchCtx, queue.Events(), cfg.Notifications.Workers)
	}()

	// Deliveries
	opts := deliveryservice.Options{
		TxTimeout:      cfg.Validation.TxTimeout,
		CodeTTL:        cfg.Validation.CodeTTL,
		CommissionRate: decimal.NewFromFloat(cfg.Validation.CommissionRate),
		PublicBaseURL:  cfg.PublicBaseURL,
		Metrics:        sink,
	}
	validationSvc := deliveryservice.NewValidationService(store, queue, opts)
	lifecycleSvc := deliveryservice.NewLifecycleService(store, queue, opts)

	srv := server.New(cfg,
		server.WithMetrics(registry),
		server.WithHealthCheck("store", store),
	)

	// Register Routes
	deliveryhandler.RegisterRoutes(srv.App,
		deliveryhandler.NewValidationHandler(validationSvc),
		deliveryhandler.NewLifecycleHandler(lifecycleSvc),
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Run()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case received := <-sig:
		l.Info("Received signal, shutting down", zap.String("signal", received.String()))
	case err := <-serveErr:
		l.Error("Server stopped unexpectedly", zap.Error(err))
	}

	// HTTP first so no new notifications are queued, then drain the queue.
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("Server shutdown error", zap.Error(err))
	}

	cancelDispatch()
	dispatchWg.Wait()
	l.Info("Stopped")
	return nil
}

// openStore picks the persistence backend named by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.AppConfig, redisClient *redis.Client, sink metrics.Sink) (deliveryports.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := deliveryadapter.OpenPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return deliveryadapter.NewPostgresStore(db), nil
	case config.StoreDriverRedis:
		if redisClient == nil {
			return nil, errors.New("missing required configuration: REDIS_URL")
		}
		return deliveryadapter.NewRedisStore(redisClient, deliveryadapter.WithStoreMetrics(sink)), nil
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q", cfg.Store.Driver)
	}
}

// releaseRedis closes client unless the redis store owns it and closes it itself.
func releaseRedis(cfg *config.AppConfig, client *redis.Client) error {
	if client == nil || cfg.Store.Driver == config.StoreDriverRedis {
		return nil
	}
	return client.Close()
}

// buildSenders returns the log sender plus the webhook and NATS senders when configured.
func buildSenders(cfg config.NotificationConfig) ([]notifyports.Sender, func(), error) {
	senders := []notifyports.Sender{notifyadapter.NewLogSender()}
	closers := []func() error{}

	if cfg.WebhookURL != "" {
		senders = append(senders, notifyadapter.NewWebhookSender(cfg.WebhookURL, cfg.WebhookSecret))
	}

	if cfg.NatsURL != "" {
		ns, err := notifyadapter.NewNATSSender(cfg.NatsURL, cfg.NatsSubjectPrefix)
		if err != nil {
			return nil, nil, err
		}
		senders = append(senders, ns)
		closers = append(closers, ns.Close)
	}

	names := make([]string, 0, len(senders))
	for _, s := range senders {
		names = append(names, s.Name())
	}
	logger.Get().Info("Notification senders configured", zap.Strings("senders", names))

	return senders, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Get().Warn("Failed to close sender", zap.Error(err))
			}
		}
	}, nil
}
