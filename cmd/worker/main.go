package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/config"
	"github.com/ooh-media/backend/internal/db"
	"github.com/ooh-media/backend/internal/events"
	"github.com/ooh-media/backend/internal/models"
	"github.com/ooh-media/backend/internal/repositories"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	campaignRepo := repositories.NewCampaignRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	publisher := events.NewRedisPublisher(rdb, log)

	log.Info("worker started")

	statusTicker := time.NewTicker(cfg.StatusRollInterval)
	overdueTicker := time.NewTicker(cfg.OverdueInterval)
	defer statusTicker.Stop()
	defer overdueTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Run once on startup so a restarted worker catches up immediately.
	runStatusRoll(ctx, campaignRepo, auditRepo, publisher, log)
	runOverdueCheck(ctx, invoiceRepo, auditRepo, publisher, log)

	for {
		select {
		case <-statusTicker.C:
			runStatusRoll(ctx, campaignRepo, auditRepo, publisher, log)
		case <-overdueTicker.C:
			runOverdueCheck(ctx, invoiceRepo, auditRepo, publisher, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// runStatusRoll moves campaigns along their date-derived lifecycle:
// upcoming becomes running once the start date arrives, running becomes
// completed once the end date has passed.
func runStatusRoll(ctx context.Context, campaignRepo *repositories.CampaignRepo,
	auditRepo *repositories.AuditRepo, publisher events.Publisher, log *zap.Logger) {

	today := time.Now().UTC().Truncate(24 * time.Hour)

	starting, err := campaignRepo.ListStartingBy(ctx, today)
	if err != nil {
		log.Error("failed to list starting campaigns", zap.Error(err))
		return
	}
	for _, c := range starting {
		rollCampaign(ctx, campaignRepo, auditRepo, publisher, log, c, models.CampaignStatusRunning)
	}

	ended, err := campaignRepo.ListEndedBy(ctx, today)
	if err != nil {
		log.Error("failed to list ended campaigns", zap.Error(err))
		return
	}
	for _, c := range ended {
		rollCampaign(ctx, campaignRepo, auditRepo, publisher, log, c, models.CampaignStatusCompleted)
	}
}

func rollCampaign(ctx context.Context, campaignRepo *repositories.CampaignRepo,
	auditRepo *repositories.AuditRepo, publisher events.Publisher, log *zap.Logger,
	c models.Campaign, to string) {

	if !models.IsValidCampaignTransition(c.Status, to) {
		return
	}
	if err := campaignRepo.SetStatus(ctx, c.ID, to); err != nil {
		log.Error("failed to roll campaign status",
			zap.String("campaign_id", c.ID.String()), zap.Error(err))
		return
	}

	log.Info("campaign status rolled",
		zap.String("campaign_id", c.ID.String()),
		zap.String("from", c.Status),
		zap.String("to", to))

	id := c.ID
	_ = auditRepo.Log(ctx, models.AuditLog{
		ActorType:  "system",
		Action:     "campaign_status_rolled",
		EntityType: "campaign",
		EntityID:   &id,
		Meta:       map[string]any{"from": c.Status, "to": to},
	})
	_ = publisher.Publish(ctx, events.StreamBilling, events.Event{
		Type: events.EventCampaignStatusChanged,
		Payload: map[string]any{
			"campaign_id": c.ID.String(),
			"from":        c.Status,
			"to":          to,
		},
	})
}

// runOverdueCheck flags issued invoices whose due date passed with a
// balance outstanding.
func runOverdueCheck(ctx context.Context, invoiceRepo *repositories.InvoiceRepo,
	auditRepo *repositories.AuditRepo, publisher events.Publisher, log *zap.Logger) {

	today := time.Now().UTC().Truncate(24 * time.Hour)

	overdue, err := invoiceRepo.ListOverdue(ctx, today)
	if err != nil {
		log.Error("failed to list overdue invoices", zap.Error(err))
		return
	}

	for _, inv := range overdue {
		if !models.IsValidInvoiceTransition(inv.Status, models.InvoiceStatusOverdue) {
			continue
		}
		if err := invoiceRepo.SetStatus(ctx, inv.ID, models.InvoiceStatusOverdue); err != nil {
			log.Error("failed to mark invoice overdue",
				zap.String("invoice_id", inv.ID.String()), zap.Error(err))
			continue
		}

		log.Info("invoice marked overdue",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("invoice_no", inv.InvoiceNo))

		id := inv.ID
		_ = auditRepo.Log(ctx, models.AuditLog{
			ActorType:  "system",
			Action:     "invoice_marked_overdue",
			EntityType: "invoice",
			EntityID:   &id,
		})
		_ = publisher.Publish(ctx, events.StreamBilling, events.Event{
			Type: events.EventInvoiceOverdue,
			Payload: map[string]any{
				"invoice_id":  inv.ID.String(),
				"invoice_no":  inv.InvoiceNo,
				"balance_due": inv.BalanceDue.String(),
			},
		})
	}
}
