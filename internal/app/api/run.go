package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	pizzeriaserver "github.com/Apurer/go-gin-pizzeria/go"
	cartmemory "github.com/Apurer/go-gin-pizzeria/internal/domains/cart/adapters/memory"
	cartredis "github.com/Apurer/go-gin-pizzeria/internal/domains/cart/adapters/redis"
	cartapp "github.com/Apurer/go-gin-pizzeria/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-pizzeria/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
	ordersmemory "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/observability"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/payments"
	orderspostgres "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
	storefrontmemory "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/adapters/memory"
	storefrontpostgres "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/adapters/persistence/postgres"
	storefrontapp "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/application"
	storefrontports "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/ports"
	"github.com/Apurer/go-gin-pizzeria/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-pizzeria/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-pizzeria/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-pizzeria/internal/platform/redis"
)

const serviceName = "pizzeria-api"

// Run boots the pizzeria HTTP API with observability, repositories, and notifications wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	storefrontService := storefrontapp.NewService(
		buildScheduleRepository(db),
		storefrontapp.WithLocation(cfg.StoreLocation),
		storefrontapp.WithLogger(logger),
	)

	catalogRepo, err := buildCatalogRepository(ctx, db, logger)
	if err != nil {
		return err
	}
	catalogService := catalogapp.NewService(catalogRepo)

	delivery, closeDelivery := BuildDeliveryNotifier(cfg, serviceName, logger)
	defer closeDelivery()
	inline := ordersworkflows.NewInlineNotifier(delivery, ordersworkflows.WithInlineLogger(logger))
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := inline.Close(drainCtx); err != nil {
			logger.Warn("pending inline notifications abandoned", slog.String("error", err.Error()))
		}
	}()
	var notifier ordersports.StatusNotifier = inline
	if cfg.TemporalDisabled {
		logger.Warn("Temporal disabled via TEMPORAL_DISABLED, delivering notifications inline")
	} else if temporalClient, err := DialTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, delivering notifications inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		notifier = ordersworkflows.NewTemporalNotifier(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	orderOpts := []ordersapp.Option{
		ordersapp.WithAvailability(storefrontService),
		ordersapp.WithCardAuthorizer(payments.NewLocalCardAuthorizer()),
		ordersapp.WithNotifier(notifier),
		ordersapp.WithLogger(logger),
	}
	if pix, err := payments.NewPixGenerator(payments.PixConfig{
		Key:          cfg.PixKey,
		MerchantName: cfg.PixMerchantName,
		MerchantCity: cfg.PixMerchantCity,
	}); err != nil {
		logger.Warn("pix payments disabled", slog.String("error", err.Error()))
	} else {
		orderOpts = append(orderOpts, ordersapp.WithPixGenerator(pix))
	}
	orderService := ordersobs.New(
		ordersapp.NewService(buildOrderRepository(db), orderOpts...),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	cartStore, closeCarts := buildCartStore(ctx, cfg, logger)
	defer closeCarts()
	cartService := cartapp.NewService(cartStore, catalogService, orderService, cartapp.WithLogger(logger))

	handlers := pizzeriaserver.ApiHandleFunctions{
		StorefrontAPI: pizzeriaserver.NewStorefrontAPI(storefrontService),
		CatalogAPI:    pizzeriaserver.NewCatalogAPI(catalogService),
		CartAPI:       pizzeriaserver.NewCartAPI(cartService),
		OrdersAPI:     pizzeriaserver.NewOrdersAPI(orderService),
	}
	router := pizzeriaserver.NewInstrumentedRouter(handlers, serviceName)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("pizzeria API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("pizzeria API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down pizzeria API")
		return srv.Shutdown(shutdownCtx)
	}
}

func buildScheduleRepository(db *gorm.DB) storefrontports.Repository {
	if db == nil {
		return storefrontmemory.NewRepository()
	}
	return storefrontpostgres.NewRepository(db)
}

func buildOrderRepository(db *gorm.DB) ordersports.Repository {
	if db == nil {
		return ordersmemory.NewRepository()
	}
	return orderspostgres.NewRepository(db)
}

// buildCatalogRepository seeds an empty database with the default menu.
func buildCatalogRepository(ctx context.Context, db *gorm.DB, logger *slog.Logger) (catalogports.Repository, error) {
	if db == nil {
		return catalogmemory.NewSeededRepository(), nil
	}
	repo := catalogpostgres.NewRepository(db)
	items, err := repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(items) > 0 {
		return repo, nil
	}
	for _, item := range catalogmemory.SeedItems() {
		if _, err := repo.SaveItem(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to seed catalog item %s: %w", item.ID, err)
		}
	}
	for _, addition := range catalogmemory.SeedAdditions() {
		if _, err := repo.SaveAddition(ctx, addition); err != nil {
			return nil, fmt.Errorf("failed to seed addition %s: %w", addition.ID, err)
		}
	}
	logger.Info("catalog seeded with default menu")
	return repo, nil
}

func buildCartStore(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Store, func()) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, keeping carts in memory")
		return cartmemory.NewStore(), func() {}
	}
	rdb, err := platformredis.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("failed to connect to redis, keeping carts in memory", slog.String("error", err.Error()))
		return cartmemory.NewStore(), func() {}
	}
	logger.Info("cart store configured with redis", slog.Duration("ttl", cfg.CartTTL))
	return cartredis.NewStore(rdb, cfg.CartTTL), func() { _ = rdb.Close() }
}
