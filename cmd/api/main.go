package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sweetquest/sweetquest-backend/api/routes"
	"github.com/sweetquest/sweetquest-backend/internal/affiliates"
	authsvc "github.com/sweetquest/sweetquest-backend/internal/auth"
	cartsvc "github.com/sweetquest/sweetquest-backend/internal/cart"
	"github.com/sweetquest/sweetquest-backend/internal/catalog"
	checkoutsvc "github.com/sweetquest/sweetquest-backend/internal/checkout"
	"github.com/sweetquest/sweetquest-backend/internal/paymentmethods"
	"github.com/sweetquest/sweetquest-backend/internal/referrals"
	"github.com/sweetquest/sweetquest-backend/internal/settings"
	"github.com/sweetquest/sweetquest-backend/pkg/auth/session"
	"github.com/sweetquest/sweetquest-backend/pkg/config"
	"github.com/sweetquest/sweetquest-backend/pkg/db"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
	"github.com/sweetquest/sweetquest-backend/pkg/migrate"
	"github.com/sweetquest/sweetquest-backend/pkg/redis"
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalog.ServiceParams{Repo: catalogRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Store: cartsvc.NewMemoryStore(cfg.Checkout.CartTTL),
		Menu:  catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	affiliateService, err := affiliates.NewService(affiliates.ServiceParams{
		Repo: affiliates.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create affiliate service", err)
		os.Exit(1)
	}

	referralService, err := referrals.NewService(referrals.ServiceParams{
		Repo:   referrals.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create referral service", err)
		os.Exit(1)
	}

	referralResolver, err := referrals.NewResolver(referrals.ResolverParams{
		Affiliates: affiliateService,
		Cache:      redisClient,
		SessionTTL: cfg.Referral.SessionTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create referral resolver", err)
		os.Exit(1)
	}

	paymentMethodService, err := paymentmethods.NewService(paymentmethods.ServiceParams{
		Repo: paymentmethods.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payment method service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.ServiceParams{
		Repo: settings.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Carts:           cartService,
		Orders:          referralService,
		Referrals:       referralResolver,
		PaymentMethods:  paymentMethodService,
		Logger:          logg,
		MessengerPageID: cfg.Checkout.MessengerPageID,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Repo:     authsvc.NewRepository(dbClient.DB()),
		Sessions: sessionManager,
		JWT:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			catalogService,
			cartService,
			checkoutService,
			referralResolver,
			referralService,
			affiliateService,
			paymentMethodService,
			settingsService,
			authService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
