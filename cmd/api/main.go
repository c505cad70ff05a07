package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avelarq/tableside-backend/api/routes"
	cartsvc "github.com/avelarq/tableside-backend/internal/cart"
	menusvc "github.com/avelarq/tableside-backend/internal/menu"
	ordersvc "github.com/avelarq/tableside-backend/internal/orders"
	paymentsvc "github.com/avelarq/tableside-backend/internal/payments"
	tablesvc "github.com/avelarq/tableside-backend/internal/tables"
	"github.com/avelarq/tableside-backend/pkg/config"
	"github.com/avelarq/tableside-backend/pkg/db"
	"github.com/avelarq/tableside-backend/pkg/logger"
	"github.com/avelarq/tableside-backend/pkg/metrics"
	"github.com/avelarq/tableside-backend/pkg/migrate"
	"github.com/avelarq/tableside-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	tablesService, err := tablesvc.NewService(tablesvc.ServiceParams{
		Repo:     tablesvc.NewRepository(dbClient.DB()),
		Sessions: tablesvc.NewRedisSessionStore(redisClient),
		Config:   cfg.Session,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create tables service", err)
		os.Exit(1)
	}

	menuService, err := menusvc.NewService(menusvc.ServiceParams{
		Repo: menusvc.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

	cartManager, err := cartsvc.NewManager(cartsvc.ManagerParams{
		Persister: cartsvc.NewRedisPersister(redisClient, cfg.Cart.StorageKeyPrefix, cfg.Cart.PersistTTL),
		TaxRate:   cfg.Pricing.CartTaxRate,
		Metrics:   orderMetrics,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(ordersvc.ServiceParams{
		Repo:    ordersvc.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		TaxRate: cfg.Pricing.DefaultTaxRate,
		Metrics: orderMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	paymentsService, err := paymentsvc.NewService(paymentsvc.ServiceParams{
		Repo:            paymentsvc.NewRepository(dbClient.DB()),
		ProcessingRate:  cfg.Pricing.ProcessingFeeRate,
		ProcessingFlat:  cfg.Pricing.ProcessingFeeFlat,
		DefaultCurrency: cfg.Pricing.CurrencyCode,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Tables:   tablesService,
			Menu:     menuService,
			Carts:    cartManager,
			Orders:   ordersService,
			Payments: paymentsService,
			Metrics:  routes.MetricsHandler(),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
