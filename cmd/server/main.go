package main

import (
	"os"
	"os/signal"
	"syscall"

	"folhacred/internal/adapters/http/middleware"
	"folhacred/internal/adapters/http/routes"
	"folhacred/internal/adapters/persistence/models"
	"folhacred/internal/adapters/persistence/repositories"
	"folhacred/internal/config"
	"folhacred/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	_ "folhacred/docs" // Swagger docs
)

// @title FolhaCred API
// @version 1.0
// @description Payroll-advance loan brokerage API for employees of affiliated companies.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email suporte@folhacred.com.br

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.folhacred.com.br
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Load configuration
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.IsProd() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("failed to auto migrate: %v", err)
	}
	log.Info("database migration completed")

	// Seed demo data in dev mode
	if cfg.IsDev() {
		if err := config.SeedDemoData(db, log); err != nil {
			log.Warnf("failed to seed demo data: %v", err)
		}
	}

	// Start cron service (token purge 02:00, overdue report 08:30)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	parcelaRepo := repositories.NewParcelaRepository(db)
	cronService := services.NewCronService(refreshTokenRepo, parcelaRepo, log)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FolhaCred API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, log)

	// Graceful shutdown
	go gracefulShutdown(app, log)

	// Start server
	log.Infof("server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
	log.Info("server stopped gracefully")
}
