package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/stratera/pos-api/internal/application/auth"
	"github.com/stratera/pos-api/internal/application/reports"
	"github.com/stratera/pos-api/internal/application/sales"
	"github.com/stratera/pos-api/internal/application/usecase"
	"github.com/stratera/pos-api/internal/cache"
	infrapdf "github.com/stratera/pos-api/internal/infrastructure/pdf"
	"github.com/stratera/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/stratera/pos-api/internal/interfaces/http"
	"github.com/stratera/pos-api/pkg/config"
	"github.com/stratera/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Dashboard cache: Redis when configured, no-op otherwise.
	var dashCache cache.Cache = cache.NewNoop()
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, dashboard cache disabled")
		} else {
			defer redisCache.Close()
			dashCache = redisCache
		}
	}

	checkoutUC := sales.NewCheckoutUseCase(txRunner, productRepo, saleRepo, settingsRepo)
	receiptPDFUC := sales.NewReceiptPDFUseCase(saleRepo, settingsRepo, infrapdf.NewMarotoReceiptGenerator())
	reportUC := reports.NewReportUseCase(txRunner)
	exportUC := reports.NewExportUseCase(txRunner)
	dashboardUC := reports.NewDashboardUseCase(txRunner, dashCache, log)
	productUC := usecase.NewProductUseCase(productRepo, activityRepo, txRunner, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, activityRepo, log)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	userUC := usecase.NewUserUseCase(userRepo, activityRepo, log)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, activityRepo, log)
	activityUC := usecase.NewActivityUseCase(activityRepo)
	authUC := auth.NewUseCase(userRepo, activityRepo, auth.Config{
		JWTSecret:         cfg.JWT.Secret,
		JWTIssuer:         cfg.JWT.Issuer,
		ExpirationMinutes: cfg.JWT.Expiration,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stratera POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CheckoutUC:   checkoutUC,
		ReceiptPDFUC: receiptPDFUC,
		ReportUC:     reportUC,
		ExportUC:     exportUC,
		DashboardUC:  dashboardUC,
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		SupplierUC:   supplierUC,
		UserUC:       userUC,
		SettingsUC:   settingsUC,
		ActivityUC:   activityUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
