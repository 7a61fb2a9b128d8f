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
	"github.com/redis/go-redis/v9"
	_ "github.com/tu-usuario/salon-pro/docs"
	"github.com/tu-usuario/salon-pro/internal/application/auth"
	"github.com/tu-usuario/salon-pro/internal/application/inventory"
	"github.com/tu-usuario/salon-pro/internal/application/reports"
	"github.com/tu-usuario/salon-pro/internal/application/usecase"
	"github.com/tu-usuario/salon-pro/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/salon-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/salon-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/salon-pro/internal/interfaces/http"
	"github.com/tu-usuario/salon-pro/pkg/config"
	"github.com/tu-usuario/salon-pro/pkg/logger"
	"github.com/tu-usuario/salon-pro/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_ADDR el resumen se sirve siempre desde la DB.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, cache de resúmenes deshabilitado")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	summaryCache := cache.NewSummaryCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)

	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	formatter, err := money.NewFormatter(cfg.Money.Locale, cfg.Money.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de moneda")
	}

	adjustUC := inventory.NewAdjustStockUseCase(txRunner, productRepo, locationRepo, inventory.Policy{
		AllowNegativeStock: cfg.Inventory.AllowNegativeStock,
		BulkTimeout:        time.Duration(cfg.Inventory.BulkTimeoutSeconds) * time.Second,
	})
	queryUC := inventory.NewStockQueryUseCase(stockRepo, auditRepo, formatter)
	reportUC := reports.NewStockReportUseCase(locationRepo, stockRepo, infrapdf.NewMarotoStockReport(), formatter)
	productUC := usecase.NewProductUseCase(productRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(log.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Salon Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:         productUC,
		LocationUC:        locationUC,
		AdjustUC:          adjustUC,
		QueryUC:           queryUC,
		ReportUC:          reportUC,
		AuthUC:            authUC,
		SummaryCache:      summaryCache,
		JWTSecret:         cfg.JWT.Secret,
		DefaultStockToAdd: cfg.Inventory.BulkDefaultStockToAdd,
		Log:               log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
