package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/ocampodev/supplyline-backend/api/routes"
	"github.com/ocampodev/supplyline-backend/internal/audit"
	"github.com/ocampodev/supplyline-backend/internal/auth"
	"github.com/ocampodev/supplyline-backend/internal/catalog"
	"github.com/ocampodev/supplyline-backend/internal/memberships"
	"github.com/ocampodev/supplyline-backend/internal/notifications"
	"github.com/ocampodev/supplyline-backend/internal/orders"
	"github.com/ocampodev/supplyline-backend/internal/salesnotes"
	"github.com/ocampodev/supplyline-backend/internal/shippingpool"
	"github.com/ocampodev/supplyline-backend/internal/stores"
	"github.com/ocampodev/supplyline-backend/internal/users"
	"github.com/ocampodev/supplyline-backend/pkg/auth/session"
	"github.com/ocampodev/supplyline-backend/pkg/config"
	"github.com/ocampodev/supplyline-backend/pkg/db"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
	"github.com/ocampodev/supplyline-backend/pkg/metrics"
	"github.com/ocampodev/supplyline-backend/pkg/migrate"
	"github.com/ocampodev/supplyline-backend/pkg/outbox"
	"github.com/ocampodev/supplyline-backend/pkg/redis"

	"github.com/prometheus/client_golang/prometheus"
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
		Env:         cfg.App.Env,
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Users:       users.NewRepository(dbClient.DB()),
		Memberships: memberships.NewRepository(dbClient.DB()),
		Sessions:    sessionManager,
		Limiter:     redisClient,
		JWT:         cfg.JWT,
		RateLimit:   cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	auditRepo := audit.NewRepository(dbClient.DB())
	recorder, err := audit.NewRecorder(auditRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit recorder", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	resolver, err := catalog.NewResolver(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create price resolver", err)
		os.Exit(1)
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, outboxService, resolver, recorder)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	poolService, err := shippingpool.NewService(shippingpool.NewRepository(dbClient.DB()), dbClient, recorder)
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping pool service", err)
		os.Exit(1)
	}

	commitMetrics := metrics.NewPoolCommitMetrics(prometheus.DefaultRegisterer)
	salesNotesService, err := salesnotes.NewService(
		salesnotes.NewRepository(dbClient.DB()),
		dbClient,
		ordersService,
		outboxService,
		recorder,
		redisClient,
		commitMetrics,
		logg,
		salesnotes.WithLockTTL(cfg.PoolCommit.LockTTL),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales notes service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
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
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Sessions:      sessionManager,
			Auth:          authService,
			Orders:        ordersService,
			ShippingPool:  poolService,
			SalesNotes:    salesNotesService,
			Notifications: notificationsService,
			Catalog:       catalogRepo,
			Stores:        stores.NewRepository(dbClient.DB()),
			AuditLogs:     auditRepo,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
