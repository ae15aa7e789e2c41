package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/billing"
	"github.com/ooh-media/backend/internal/events"
	"github.com/ooh-media/backend/internal/models"
	"github.com/ooh-media/backend/internal/repositories"
)

type CampaignService struct {
	campaignRepo *repositories.CampaignRepo
	bookingRepo  *repositories.BookingRepo
	clientRepo   *repositories.ClientRepo
	auditRepo    *repositories.AuditRepo
	publisher    events.Publisher
	now          func() time.Time
	log          *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	bookingRepo *repositories.BookingRepo,
	clientRepo *repositories.ClientRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		now:          time.Now,
		log:          log,
	}
}

func (s *CampaignService) Create(ctx context.Context, userID uuid.UUID, c *models.Campaign) error {
	if _, err := s.clientRepo.GetByID(ctx, c.ClientID); err != nil {
		return fmt.Errorf("client not found")
	}
	if c.Status == "" {
		c.Status = models.CampaignStatusFor(c.StartDate, c.EndDate, s.now())
	}
	c.RecalculateTotals()

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "staff",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &c.ID,
	})
	return nil
}

func (s *CampaignService) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, id)
}

func (s *CampaignService) List(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error) {
	return s.campaignRepo.List(ctx, f)
}

func (s *CampaignService) Update(ctx context.Context, id uuid.UUID, c *models.Campaign) error {
	existing, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("campaign not found")
	}

	c.ID = id
	if c.Status == "" {
		c.Status = existing.Status
	} else if c.Status != existing.Status && !models.IsValidCampaignTransition(existing.Status, c.Status) {
		return fmt.Errorf("cannot move campaign from %s to %s", existing.Status, c.Status)
	}
	c.RecalculateTotals()

	return s.campaignRepo.Update(ctx, c)
}

func (s *CampaignService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.campaignRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("campaign not found")
	}
	return s.campaignRepo.Delete(ctx, id)
}

// RenewalPreview is the reactive preview contract: plan plus estimate,
// nothing persisted.
type RenewalPreview struct {
	Plan     billing.RenewalPlan     `json:"plan"`
	Estimate billing.RenewalEstimate `json:"estimate"`
}

// PreviewRenewal computes dates and money for a renewal selection without
// touching storage. The UI calls this as the user adjusts options.
func (s *CampaignService) PreviewRenewal(ctx context.Context, campaignID uuid.UUID,
	req billing.RenewalRequest, opts billing.EstimateOptions) (*RenewalPreview, error) {

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found")
	}

	plan, err := billing.PlanRenewal(campaign.EndDate, s.now(), req)
	if err != nil {
		return nil, err
	}

	estimate := billing.EstimateRenewal(economics(campaign), plan, opts)
	return &RenewalPreview{Plan: plan, Estimate: estimate}, nil
}

// SubmitRenewal applies a renewal action.
//
//   - extend: same campaign, end date pushed out, bookings re-derived over
//     the new period and aggregates rolled up from them.
//   - renew: same campaign, fresh period from the plan, installation state
//     reset for the new run.
//   - copy_new: a new campaign with cloned bookings on the new dates and
//     proportionally rebuilt financials; the original is marked completed.
func (s *CampaignService) SubmitRenewal(ctx context.Context, userID, campaignID uuid.UUID,
	req billing.RenewalRequest, opts billing.EstimateOptions) (*models.Campaign, *RenewalPreview, error) {

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, nil, fmt.Errorf("campaign not found")
	}

	plan, err := billing.PlanRenewal(campaign.EndDate, s.now(), req)
	if err != nil {
		return nil, nil, err
	}
	estimate := billing.EstimateRenewal(economics(campaign), plan, opts)
	preview := &RenewalPreview{Plan: plan, Estimate: estimate}

	var result *models.Campaign
	switch plan.Action {
	case billing.ActionExtend:
		result, err = s.applyExtension(ctx, campaign, plan, false)
	case billing.ActionRenew:
		result, err = s.applyExtension(ctx, campaign, plan, true)
	case billing.ActionCopyNew:
		result, err = s.applyCopyNew(ctx, campaign, plan, estimate)
	}
	if err != nil {
		return nil, nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "staff",
		Action:      "campaign_" + string(plan.Action),
		EntityType:  "campaign",
		EntityID:    &result.ID,
	})
	_ = s.publisher.Publish(ctx, events.StreamBilling, events.Event{
		Type: events.EventCampaignRenewed,
		Payload: map[string]any{
			"campaign_id": result.ID.String(),
			"action":      string(plan.Action),
			"new_start":   plan.NewStart.Format("2006-01-02"),
			"new_end":     plan.NewEnd.Format("2006-01-02"),
		},
	})

	return result, preview, nil
}

func (s *CampaignService) applyExtension(ctx context.Context, campaign *models.Campaign,
	plan billing.RenewalPlan, reset bool) (*models.Campaign, error) {

	// Extend each booking to the new period end and re-derive its rent
	// first; the campaign aggregates are then rolled up from the bookings,
	// so the renewal estimate stays display-only.
	bookings, err := s.bookingRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		b := &bookings[i]
		if reset {
			b.StartDate = plan.NewStart
		}
		b.EndDate = plan.NewEnd
		breakdown, err := billing.ComputeRent(b.MonthlyRate, b.StartDate, b.EndDate, b.BillingMode)
		if err != nil {
			s.log.Warn("skipping rent re-derivation for booking",
				zap.String("booking_id", b.ID.String()), zap.Error(err))
			continue
		}
		b.BookedDays = breakdown.BookedDays
		b.DailyRate = breakdown.DailyRate
		b.RentAmount = breakdown.RentAmount
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			return nil, err
		}
	}

	if reset {
		campaign.StartDate = plan.NewStart
	}
	campaign.EndDate = plan.NewEnd
	campaign.Status = models.CampaignStatusFor(campaign.StartDate, campaign.EndDate, s.now())
	rollUpFromBookings(campaign, bookings)

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	if reset {
		if err := s.bookingRepo.ResetInstallation(ctx, campaign.ID); err != nil {
			return nil, err
		}
	}
	return campaign, nil
}

// rollUpFromBookings rebuilds a campaign's financial aggregates from its
// bookings' rents and one-time costs.
func rollUpFromBookings(c *models.Campaign, bookings []models.CampaignAsset) {
	c.Subtotal = decimal.Zero
	c.PrintingTotal = decimal.Zero
	c.MountingTotal = decimal.Zero
	for _, b := range bookings {
		c.Subtotal = c.Subtotal.Add(b.RentAmount)
		c.PrintingTotal = c.PrintingTotal.Add(b.PrintingCost)
		c.MountingTotal = c.MountingTotal.Add(b.MountingCost)
	}
	c.RecalculateTotals()
}

func (s *CampaignService) applyCopyNew(ctx context.Context, original *models.Campaign,
	plan billing.RenewalPlan, estimate billing.RenewalEstimate) (*models.Campaign, error) {

	bookings, err := s.bookingRepo.ListByCampaign(ctx, original.ID)
	if err != nil {
		return nil, err
	}

	clones := make([]models.CampaignAsset, 0, len(bookings))
	for _, b := range bookings {
		clone := models.CampaignAsset{
			AssetID:      b.AssetID,
			StartDate:    plan.NewStart,
			EndDate:      plan.NewEnd,
			BillingMode:  b.BillingMode,
			MonthlyRate:  b.MonthlyRate,
			PrintingCost: b.PrintingCost,
			MountingCost: b.MountingCost,
		}
		breakdown, err := billing.ComputeRent(b.MonthlyRate, plan.NewStart, plan.NewEnd, b.BillingMode)
		if err != nil {
			return nil, err
		}
		clone.BookedDays = breakdown.BookedDays
		clone.DailyRate = breakdown.DailyRate
		clone.RentAmount = breakdown.RentAmount
		clones = append(clones, clone)
	}

	next := &models.Campaign{
		ClientID:      original.ClientID,
		Name:          original.Name,
		StartDate:     plan.NewStart,
		EndDate:       plan.NewEnd,
		Status:        models.CampaignStatusFor(plan.NewStart, plan.NewEnd, s.now()),
		Subtotal:      estimate.Subtotal,
		PrintingTotal: estimate.PrintingTotal,
		MountingTotal: estimate.MountingTotal,
		GSTPercent:    original.GSTPercent,
		GSTAmount:     estimate.GSTAmount,
		TotalAmount:   estimate.TotalAmount,
		GrandTotal:    estimate.GrandTotal,
		RenewedFrom:   &original.ID,
	}

	if err := s.campaignRepo.CreateWithBookings(ctx, next, clones); err != nil {
		return nil, err
	}

	if models.IsValidCampaignTransition(original.Status, models.CampaignStatusCompleted) {
		if err := s.campaignRepo.SetStatus(ctx, original.ID, models.CampaignStatusCompleted); err != nil {
			return nil, err
		}
	}
	return next, nil
}

func economics(c *models.Campaign) billing.CampaignEconomics {
	return billing.CampaignEconomics{
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Subtotal:      c.Subtotal,
		PrintingTotal: c.PrintingTotal,
		MountingTotal: c.MountingTotal,
		GSTPercent:    c.GSTPercent,
		GrandTotal:    c.GrandTotal,
	}
}
