package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/config"
	"github.com/ooh-media/backend/internal/db"
	"github.com/ooh-media/backend/internal/events"
	apphttp "github.com/ooh-media/backend/internal/http"
	"github.com/ooh-media/backend/internal/http/handlers"
	"github.com/ooh-media/backend/internal/render"
	"github.com/ooh-media/backend/internal/repositories"
	"github.com/ooh-media/backend/internal/services"
	"github.com/ooh-media/backend/migrations"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	assetRepo := repositories.NewAssetRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	snapshotRepo := repositories.NewSnapshotRepo(pool)
	orgRepo := repositories.NewOrgRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Rendering
	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		log.Fatal("failed to build renderer", zap.Error(err))
	}
	logoCache := render.NewLogoCache(&http.Client{Timeout: cfg.LogoFetchTimeout}, cfg.LogoCacheTTL)

	// Services
	bookingService := services.NewBookingService(bookingRepo, campaignRepo, assetRepo, auditRepo, log)
	campaignService := services.NewCampaignService(campaignRepo, bookingRepo, clientRepo, auditRepo, publisher, log)
	invoiceService := services.NewInvoiceService(invoiceRepo, snapshotRepo, campaignRepo, bookingRepo,
		assetRepo, clientRepo, orgRepo, auditRepo, renderer, logoCache, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	clientHandler := handlers.NewClientHandler(clientRepo, log)
	assetHandler := handlers.NewAssetHandler(assetRepo, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, bookingService, cfg, log)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, cfg, log)
	orgHandler := handlers.NewOrgHandler(orgRepo, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, clientHandler, assetHandler, campaignHandler, invoiceHandler, orgHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
