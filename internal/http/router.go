package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/config"
	"github.com/ooh-media/backend/internal/http/handlers"
	"github.com/ooh-media/backend/internal/middleware"
	"github.com/ooh-media/backend/internal/models"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	clientHandler *handlers.ClientHandler,
	assetHandler *handlers.AssetHandler,
	campaignHandler *handlers.CampaignHandler,
	invoiceHandler *handlers.InvoiceHandler,
	orgHandler *handlers.OrgHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/login", authHandler.Login)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))
	protected.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow))

	protected.Get("/me", authHandler.Me)
	protected.Post("/users", middleware.RequireRole(models.RoleAdmin), authHandler.Register)

	// Clients
	protected.Post("/clients", clientHandler.Create)
	protected.Get("/clients", clientHandler.List)
	protected.Get("/clients/:id", clientHandler.Get)
	protected.Put("/clients/:id", clientHandler.Update)
	protected.Delete("/clients/:id", middleware.RequireRole(models.RoleAdmin), clientHandler.Delete)

	// Assets
	protected.Post("/assets", assetHandler.Create)
	protected.Get("/assets", assetHandler.List)
	protected.Get("/assets/:id", assetHandler.Get)
	protected.Put("/assets/:id", assetHandler.Update)
	protected.Delete("/assets/:id", middleware.RequireRole(models.RoleAdmin), assetHandler.Delete)

	// Campaigns
	protected.Post("/campaigns", campaignHandler.Create)
	protected.Get("/campaigns", campaignHandler.List)
	protected.Get("/campaigns/:id", campaignHandler.Get)
	protected.Put("/campaigns/:id", campaignHandler.Update)
	protected.Delete("/campaigns/:id", middleware.RequireRole(models.RoleAdmin), campaignHandler.Delete)

	// Bookings
	protected.Get("/campaigns/:id/bookings", campaignHandler.ListBookings)
	protected.Post("/campaigns/:id/assets", campaignHandler.BookAsset)
	protected.Post("/bookings/preview", campaignHandler.PreviewBooking)
	protected.Put("/bookings/:bookingId", campaignHandler.UpdateBooking)
	protected.Delete("/bookings/:bookingId", campaignHandler.RemoveBooking)

	// Renewal
	protected.Post("/campaigns/:id/renewal/preview", campaignHandler.PreviewRenewal)
	protected.Post("/campaigns/:id/renewal", campaignHandler.SubmitRenewal)

	// Invoices
	protected.Post("/invoices", invoiceHandler.Create)
	protected.Get("/invoices", invoiceHandler.List)
	protected.Get("/invoices/:id", invoiceHandler.Get)
	protected.Post("/invoices/:id/payments", invoiceHandler.RecordPayment)
	protected.Get("/invoices/:id/document", invoiceHandler.Document)

	// Organization profile
	protected.Get("/org", orgHandler.Get)
	protected.Put("/org", middleware.RequireRole(models.RoleAdmin), orgHandler.Update)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
