// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and registers
// every HTTP route with its middleware.
package routes

import (
	"marketplace/internal/config"
	"marketplace/internal/handlers"
	"marketplace/internal/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/services/auth"
	"marketplace/internal/services/catalog"
	"marketplace/internal/services/comment"
	"marketplace/internal/services/order"
	"marketplace/internal/services/registration"
	"marketplace/internal/services/restaurant"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the process-wide resources the routes are built from.
type Dependencies struct {
	DB        *gorm.DB
	Config    *config.Config
	Logger    *zap.Logger
	Blacklist auth.Blacklist

	// Health maps a dependency name to its probe for GET /health.
	Health map[string]handlers.Pinger
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, d Dependencies) {
	// Repositories
	accountRepo := repositories.NewAccountRepository(d.DB)
	profileRepo := repositories.NewProfileRepository(d.DB)
	membershipRepo := repositories.NewMembershipRepository(d.DB)
	restaurantRepo := repositories.NewRestaurantRepository(d.DB)
	commentRepo := repositories.NewCommentRepository(d.DB)
	serviceRepo := repositories.NewServiceRepository(d.DB)
	orderRepo := repositories.NewOrderRepository(d.DB)

	// Services
	tokens := utils.NewTokenIssuer(d.Config.JWT)
	authService := auth.NewService(accountRepo, profileRepo, tokens, d.Blacklist, d.Logger)
	registrationService := registration.NewService(d.DB, accountRepo, profileRepo, membershipRepo, d.Config.BcryptCost, d.Logger)
	restaurantService := restaurant.NewService(restaurantRepo, d.Logger)
	commentService := comment.NewService(commentRepo, restaurantRepo, d.Logger)
	orderService := order.NewService(orderRepo, serviceRepo, d.Logger)
	catalogService := catalog.NewService(membershipRepo, serviceRepo, d.Logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, registrationService)
	userHandler := handlers.NewUserHandler()
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	commentHandler := handlers.NewCommentHandler(commentService)
	orderHandler := handlers.NewOrderHandler(orderService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	healthHandler := handlers.NewHealthHandler(d.Health)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Public routes
	throttle := rateLimit(d.Config.Server.AuthRateLimit)
	app.Get("/health", healthHandler.Check)
	app.Post("/register/customer/", throttle, authHandler.RegisterCustomer)
	app.Post("/register/merchant/", throttle, authHandler.RegisterMerchant)
	app.Post("/login/", throttle, authHandler.Login)
	app.Post("/refresh/", authHandler.Refresh)
	app.Get("/membership-levels/", catalogHandler.MembershipLevels)

	// Protected routes
	authRequired := authMiddleware.Handler
	app.Post("/logout/", authRequired, authHandler.Logout)
	app.Get("/user/", authRequired, userHandler.Me)
	app.Get("/merchant/", authRequired, userHandler.Merchant)

	setupRestaurantRoutes(app, authRequired, restaurantHandler, commentHandler)
	setupOrderRoutes(app.Group("/orders", authRequired), orderHandler)

	services := app.Group("/services", authRequired)
	services.Get("/", catalogHandler.Services)
	services.Get("/:id/", catalogHandler.Service)
}

func setupRestaurantRoutes(app *fiber.App, authRequired fiber.Handler, h *handlers.RestaurantHandler, comments *handlers.CommentHandler) {
	restaurants := app.Group("/restaurants", authRequired)
	restaurants.Get("/", h.List)
	restaurants.Post("/", h.Create)
	restaurants.Get("/:id/", h.Get)
	restaurants.Put("/:id/", h.Update)
	restaurants.Patch("/:id/", h.Patch)
	restaurants.Delete("/:id/", h.Delete)

	restaurants.Get("/:id/comments/", comments.List)
	restaurants.Post("/:id/comments/", comments.Create)
	app.Delete("/comments/:id/", authRequired, comments.Delete)
}

func setupOrderRoutes(orders fiber.Router, h *handlers.OrderHandler) {
	orders.Get("/", h.List)
	orders.Post("/", h.Create)
	orders.Get("/:id/", h.Get)
	orders.Put("/:id/", h.Update)
	orders.Patch("/:id/", h.Patch)
	orders.Delete("/:id/", h.Delete)
}

func rateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return middleware.RateLimit(perMinute)
}
