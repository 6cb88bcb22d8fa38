package routes

import (
	"folhacred/internal/adapters/gateways"
	"folhacred/internal/adapters/http/handlers"
	"folhacred/internal/adapters/http/middleware"
	"folhacred/internal/adapters/persistence/repositories"
	"folhacred/internal/config"
	"folhacred/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	// Initialize repositories
	funcionarioRepo := repositories.NewFuncionarioRepository(db)
	empresaRepo := repositories.NewEmpresaRepository(db)
	emprestimoRepo := repositories.NewEmprestimoRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Outbound gateways
	scoreGateway := gateways.NewScoreGateway(cfg.Gateways.ScoreURL, log)
	paymentGateway := gateways.NewPaymentGateway(cfg.Gateways.PaymentURL, log)

	// Initialize services
	authService := services.NewAuthService(funcionarioRepo, empresaRepo, refreshTokenRepo, cfg, log)
	emprestimoService := services.NewEmprestimoService(funcionarioRepo, emprestimoRepo, scoreGateway, paymentGateway, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	emprestimoHandler := handlers.NewEmprestimoHandler(emprestimoService)
	empresaHandler := handlers.NewEmpresaHandler(funcionarioRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, emprestimoHandler, empresaHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	emprestimoHandler *handlers.EmprestimoHandler,
	empresaHandler *handlers.EmpresaHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Loan routes (authenticated)
	emprestimoRoutes := router.Group("/emprestimos")
	emprestimoRoutes.Use(middleware.AuthMiddleware(cfg))
	setupEmprestimoRoutes(emprestimoRoutes, emprestimoHandler)

	// Company routes (authenticated, company accounts only)
	empresaRoutes := router.Group("/empresas")
	empresaRoutes.Use(middleware.AuthMiddleware(cfg))
	empresaRoutes.Use(middleware.EmpresaOnly())
	setupEmpresaRoutes(empresaRoutes, empresaHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate-limited against brute force)
	router.Post("/register/funcionario", middleware.AuthRateLimiter(), handler.RegisterFuncionario)
	router.Post("/register/empresa", middleware.AuthRateLimiter(), handler.RegisterEmpresa)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupEmprestimoRoutes configures loan routes
func setupEmprestimoRoutes(router fiber.Router, handler *handlers.EmprestimoHandler) {
	// Employee routes
	router.Get("/margem-disponivel", middleware.FuncionarioOnly(), middleware.NoCacheHeaders(), handler.MargemDisponivel)
	router.Post("/solicitar", middleware.FuncionarioOnly(), handler.Solicitar)
	router.Get("/meus-emprestimos", middleware.FuncionarioOnly(), handler.MeusEmprestimos)

	// Company routes
	router.Get("/empresa/:empresaId", middleware.EmpresaOnly(), handler.PorEmpresa)
}

// setupEmpresaRoutes configures company routes
func setupEmpresaRoutes(router fiber.Router, handler *handlers.EmpresaHandler) {
	router.Get("/funcionarios", handler.Funcionarios)
}
