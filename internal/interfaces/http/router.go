package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comisiones-api/internal/application/auth"
	apppricing "github.com/jhoicas/comisiones-api/internal/application/pricing"
	"github.com/jhoicas/comisiones-api/internal/application/versioning"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Esquemas    *versioning.Manager[*entity.CommissionSchedule]
	Constantes  *versioning.Manager[*entity.PricingConstants]
	CalculateUC *apppricing.CalculateUseCase
	Rates       apppricing.ExchangeRateProvider
	CalcRepo    repository.CalculationRepository
	AuthUC      *auth.AuthUseCase
	PDFGen      *pdf.MatrixPDFGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Calculadora y cotización (protegido, permiso calcular_precios)
	calculatorHandler := NewCalculatorHandler(deps.CalculateUC, deps.Rates)
	protected.Post("/calculadora",
		RequirePermission(deps.AuthUC, entity.PermCalcularPrecios),
		calculatorHandler.Calculate)
	protected.Get("/cotizacion",
		RequirePermission(deps.AuthUC, entity.PermCalcularPrecios),
		calculatorHandler.Cotizacion)

	// Esquema de comisiones (lecturas con auth; historial y mutaciones con permiso)
	verHistorial := RequirePermission(deps.AuthUC, entity.PermVerHistorial)
	comisiones := protected.Group("/comisiones")
	scheduleHandler := NewScheduleHandler(deps.Esquemas, deps.PDFGen)
	comisiones.Get("/activa", scheduleHandler.Activa)
	comisiones.Get("/historial", verHistorial, scheduleHandler.Historial)
	comisiones.Get("/:id/matriz", scheduleHandler.Matriz)
	comisiones.Get("/:id/matriz/pdf", scheduleHandler.MatrizPDF)

	editComisiones := RequirePermission(deps.AuthUC, entity.PermEditarComisiones)
	comisiones.Post("/", editComisiones, scheduleHandler.Create)
	comisiones.Put("/:id", editComisiones, scheduleHandler.Update)
	comisiones.Delete("/:id", editComisiones, scheduleHandler.Delete)

	// Constantes de precios
	constantes := protected.Group("/constantes")
	constantsHandler := NewConstantsHandler(deps.Constantes)
	constantes.Get("/activa", constantsHandler.Activa)
	constantes.Get("/historial", verHistorial, constantsHandler.Historial)

	editConstantes := RequirePermission(deps.AuthUC, entity.PermEditarConstantes)
	constantes.Post("/", editConstantes, constantsHandler.Create)
	constantes.Put("/:id", editConstantes, constantsHandler.Update)
	constantes.Delete("/:id", editConstantes, constantsHandler.Delete)

	// Historial de cálculos (permiso ver_historial)
	calculos := protected.Group("/calculos", verHistorial)
	calculationHandler := NewCalculationHandler(deps.CalcRepo)
	calculos.Get("/", calculationHandler.List)
	calculos.Get("/:id", calculationHandler.GetByID)
}
