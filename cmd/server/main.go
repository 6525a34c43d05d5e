package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"patitas-adopciones/internal/adapters/http/middleware"
	"patitas-adopciones/internal/adapters/http/routes"
	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	_ "patitas-adopciones/docs" // Swagger docs
)

// @title API Adopción de Mascotas
// @version 1.0
// @description API REST para gestionar adopciones de mascotas

// @contact.name Patitas
// @contact.email soporte@patitas-adopciones.com

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Escribe: Bearer <tu_token>

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the first admin account
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Template engine for the server-rendered pages
	engine := html.New("./views", ".html")
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Patitas Adopciones v1.0",
		Views:        engine,
		ViewsLayout:  "layouts/main",
		BodyLimit:    cfg.Upload.MaxBytes,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	cronService := routes.Setup(app, db, cfg)

	// Daily pending-requests digest (08:30)
	if err := cronService.Start(); err != nil {
		log.Printf("⚠️ Warning: Failed to start cron jobs: %v", err)
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
