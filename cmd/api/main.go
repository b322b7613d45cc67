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

	"github.com/jhoicas/comisiones-api/internal/application/auth"
	apppricing "github.com/jhoicas/comisiones-api/internal/application/pricing"
	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	infracache "github.com/jhoicas/comisiones-api/internal/infrastructure/cache"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/dolarapi"
	infrapdf "github.com/jhoicas/comisiones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/postgres"
	infrasolver "github.com/jhoicas/comisiones-api/internal/infrastructure/solver"
	httpRouter "github.com/jhoicas/comisiones-api/internal/interfaces/http"
	"github.com/jhoicas/comisiones-api/pkg/config"
	"github.com/jhoicas/comisiones-api/pkg/logger"
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

	scheduleRepo := postgres.NewScheduleVersionRepository(pool)
	constantsRepo := postgres.NewConstantsVersionRepository(pool)
	calcRepo := postgres.NewCalculationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	esquemas := versioning.NewManager[*entity.CommissionSchedule](entity.KindComisiones, scheduleRepo)
	constantes := versioning.NewManager[*entity.PricingConstants](entity.KindConstantes, constantsRepo)

	// Proveedor de cotización, opcionalmente detrás de un cache Redis.
	var rates apppricing.ExchangeRateProvider = dolarapi.NewClient(cfg.Cotizacion.URL)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rates = infracache.NewRateCache(rates, rdb, cfg.Cotizacion.CacheTTL, log)
	}

	// Solver de cuotas: enriquecimiento opcional del cálculo.
	var installments apppricing.InstallmentSolver
	if cfg.Solver.URL != "" {
		installments = infrasolver.NewClient(cfg.Solver.URL, cfg.Solver.Timeout)
	}

	calculateUC := apppricing.NewCalculateUseCase(
		esquemas, constantes, rates, installments, calcRepo, cfg.Solver.Timeout, log,
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	pdfGenerator := infrapdf.NewMatrixPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comisiones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Esquemas:    esquemas,
		Constantes:  constantes,
		CalculateUC: calculateUC,
		Rates:       rates,
		CalcRepo:    calcRepo,
		AuthUC:      authUC,
		PDFGen:      pdfGenerator,
		JWTSecret:   cfg.JWT.Secret,
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
