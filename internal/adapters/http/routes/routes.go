package routes

import (
	"context"
	"log"

	"patitas-adopciones/internal/adapters/http/handlers"
	"patitas-adopciones/internal/adapters/http/middleware"
	"patitas-adopciones/internal/adapters/persistence/repositories"
	"patitas-adopciones/internal/config"
	"patitas-adopciones/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	petRepo := repositories.NewPetRepository(db)
	requestRepo := repositories.NewRequestRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	petService := services.NewPetService(petRepo, requestRepo)
	notifyService := services.NewNotificationService(cfg)
	requestService := services.NewRequestService(db, requestRepo, petRepo, notifyService)
	cronService := services.NewCronService(userRepo, requestRepo, notifyService)

	storage, err := services.NewS3Storage(context.Background(), cfg)
	if err != nil {
		log.Printf("⚠️ Photo storage disabled: %v", err)
		storage = nil
	}

	// Session store for the server-rendered pages
	sess := middleware.NewSession(cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	webAuthHandler := handlers.NewWebAuthHandler(authService, sess)
	webPetHandler := handlers.NewWebPetHandler(petService, photoStorage(storage), sess)
	webRequestHandler := handlers.NewWebRequestHandler(requestService, petService, sess)
	apiAuthHandler := handlers.NewAPIAuthHandler(authService)
	apiPetHandler := handlers.NewAPIPetHandler(petService)
	apiRequestHandler := handlers.NewAPIRequestHandler(requestService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/api/docs/*", swagger.HandlerDefault)

	// Pages: every page route sees the session user when present
	app.Use(sess.LoadUser(userRepo))

	authPages := app.Group("/auth")
	setupAuthPages(authPages, webAuthHandler, sess)

	petPages := app.Group("/mascotas")
	setupPetPages(petPages, webPetHandler, sess)

	requestPages := app.Group("/solicitudes")
	setupRequestPages(requestPages, webRequestHandler, sess)

	// JSON API
	api := app.Group("/api")
	setupAPIRoutes(api, apiAuthHandler, apiPetHandler, apiRequestHandler, userRepo, cfg)

	return cronService
}

// photoStorage keeps the interface nil when storage construction failed
func photoStorage(s *services.S3Storage) services.PhotoStorage {
	if s == nil {
		return nil
	}
	return s
}

// setupAuthPages configures the registration and login pages
func setupAuthPages(router fiber.Router, handler *handlers.WebAuthHandler, sess *middleware.Session) {
	router.Get("/registro", handler.RegisterPage)
	router.Post("/registro", middleware.AuthRateLimiter(), handler.Register)
	router.Get("/login", handler.LoginPage)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Get("/logout", sess.RequireLogin(), handler.Logout)
}

// setupPetPages configures the public catalog and the admin panel
func setupPetPages(router fiber.Router, handler *handlers.WebPetHandler, sess *middleware.Session) {
	// Public
	router.Get("/", handler.Catalog)
	router.Get("/catalogo", handler.Catalog)

	// Admin panel
	admin := router.Group("/admin", sess.RequireLogin(), sess.AdminRequired())
	admin.Get("/", handler.AdminList)
	admin.Get("/nueva", handler.AdminNewPage)
	admin.Post("/nueva", handler.AdminCreate)
	admin.Get("/editar/:id", handler.AdminEditPage)
	admin.Post("/editar/:id", handler.AdminUpdate)
	admin.Post("/eliminar/:id", handler.AdminDelete)

	// Public detail registers last so /admin wins the match
	router.Get("/:id", handler.Detail)
}

// setupRequestPages configures the adoption request pages
func setupRequestPages(router fiber.Router, handler *handlers.WebRequestHandler, sess *middleware.Session) {
	router.Use(sess.RequireLogin())

	router.Get("/nueva/:mascota_id", handler.NewPage)
	router.Post("/nueva/:mascota_id", handler.Create)
	router.Get("/mis-solicitudes", handler.Mine)
	router.Get("/detalle/:id", handler.Detail)

	// Admin review (role checked in the handlers, redirect with flash)
	router.Get("/admin", handler.AdminList)
	router.Get("/admin/revisar/:id", handler.AdminReviewPage)
	router.Post("/admin/revisar/:id", handler.AdminDecide)
}

// setupAPIRoutes configures the JSON API
func setupAPIRoutes(
	router fiber.Router,
	authHandler *handlers.APIAuthHandler,
	petHandler *handlers.APIPetHandler,
	requestHandler *handlers.APIRequestHandler,
	userRepo repositories.UserRepository,
	cfg *config.Config,
) {
	// Public
	router.Post("/auth/login", middleware.AuthRateLimiter(), authHandler.Login)
	router.Get("/mascotas/", petHandler.List)
	router.Get("/mascotas/:id", petHandler.Get)

	// Bearer token required
	protected := router.Group("/solicitudes", middleware.APIAuth(cfg, userRepo))
	protected.Get("/mias", requestHandler.Mine)
	protected.Post("/", requestHandler.Create)
}
