package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ooh-media/backend/internal/billing"
	"github.com/ooh-media/backend/internal/models"
	"github.com/ooh-media/backend/internal/repositories"
)

// BookingService manages asset bookings within campaigns. Every date, rate
// or mode edit re-derives booked_days/daily_rate/rent_amount via
// billing.ComputeRent before persisting, and the campaign's aggregate
// totals are rolled up from its bookings afterwards.
type BookingService struct {
	bookingRepo  *repositories.BookingRepo
	campaignRepo *repositories.CampaignRepo
	assetRepo    *repositories.AssetRepo
	auditRepo    *repositories.AuditRepo
	log          *zap.Logger
}

func NewBookingService(
	bookingRepo *repositories.BookingRepo,
	campaignRepo *repositories.CampaignRepo,
	assetRepo *repositories.AssetRepo,
	auditRepo *repositories.AuditRepo,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		campaignRepo: campaignRepo,
		assetRepo:    assetRepo,
		auditRepo:    auditRepo,
		log:          log,
	}
}

// BookingInput is the editable slice of a booking.
type BookingInput struct {
	AssetID      uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	BillingMode  billing.BillingMode
	MonthlyRate  decimal.Decimal
	PrintingCost decimal.Decimal
	MountingCost decimal.Decimal
}

// Book adds an asset to a campaign.
func (s *BookingService) Book(ctx context.Context, userID, campaignID uuid.UUID, in BookingInput) (*models.CampaignAsset, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("campaign not found")
	}

	asset, err := s.assetRepo.GetByID(ctx, in.AssetID)
	if err != nil {
		return nil, fmt.Errorf("asset not found")
	}
	if asset.Status == models.AssetStatusInactive {
		return nil, fmt.Errorf("asset %s is inactive", asset.Code)
	}

	booking := &models.CampaignAsset{
		CampaignID:   campaignID,
		AssetID:      in.AssetID,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		BillingMode:  in.BillingMode,
		MonthlyRate:  in.MonthlyRate,
		PrintingCost: in.PrintingCost,
		MountingCost: in.MountingCost,
	}
	if err := s.deriveRent(booking, asset); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	_ = s.assetRepo.SetStatus(ctx, asset.ID, models.AssetStatusBooked)

	if err := s.rollUpCampaign(ctx, campaign); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "staff",
		Action:      "asset_booked",
		EntityType:  "campaign_asset",
		EntityID:    &booking.ID,
	})

	return booking, nil
}

// UpdateBooking applies an edit and re-derives the rent fields.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, bookingID uuid.UUID, in BookingInput) (*models.CampaignAsset, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking not found")
	}

	asset, err := s.assetRepo.GetByID(ctx, booking.AssetID)
	if err != nil {
		return nil, fmt.Errorf("asset not found")
	}

	booking.StartDate = in.StartDate
	booking.EndDate = in.EndDate
	booking.BillingMode = in.BillingMode
	booking.MonthlyRate = in.MonthlyRate
	booking.PrintingCost = in.PrintingCost
	booking.MountingCost = in.MountingCost
	if err := s.deriveRent(booking, asset); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.GetByID(ctx, booking.CampaignID)
	if err != nil {
		return nil, err
	}
	if err := s.rollUpCampaign(ctx, campaign); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "staff",
		Action:      "booking_updated",
		EntityType:  "campaign_asset",
		EntityID:    &booking.ID,
	})

	return booking, nil
}

func (s *BookingService) RemoveBooking(ctx context.Context, userID, bookingID uuid.UUID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("booking not found")
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return err
	}
	_ = s.assetRepo.SetStatus(ctx, booking.AssetID, models.AssetStatusAvailable)

	campaign, err := s.campaignRepo.GetByID(ctx, booking.CampaignID)
	if err != nil {
		return err
	}
	if err := s.rollUpCampaign(ctx, campaign); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "staff",
		Action:      "booking_removed",
		EntityType:  "campaign_asset",
		EntityID:    &bookingID,
	})
	return nil
}

func (s *BookingService) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.CampaignAsset, error) {
	return s.bookingRepo.ListByCampaign(ctx, campaignID)
}

// Preview runs the rent computation without persisting anything; the UI
// calls this on every date/rate/mode edit.
func (s *BookingService) Preview(ctx context.Context, in BookingInput) (billing.RentBreakdown, error) {
	rate := in.MonthlyRate
	if rate.Sign() <= 0 {
		if asset, err := s.assetRepo.GetByID(ctx, in.AssetID); err == nil {
			rate = asset.CardRate
		}
	}
	return billing.ComputeRent(rate, in.StartDate, in.EndDate, in.BillingMode)
}

func (s *BookingService) deriveRent(b *models.CampaignAsset, asset *models.Asset) error {
	breakdown, err := billing.ComputeRent(b.EffectiveRate(asset), b.StartDate, b.EndDate, b.BillingMode)
	if err != nil {
		return err
	}
	b.BookedDays = breakdown.BookedDays
	b.DailyRate = breakdown.DailyRate
	b.RentAmount = breakdown.RentAmount
	return nil
}

// rollUpCampaign rebuilds the campaign's financial aggregates from its
// current bookings.
func (s *BookingService) rollUpCampaign(ctx context.Context, campaign *models.Campaign) error {
	bookings, err := s.bookingRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return err
	}

	rollUpFromBookings(campaign, bookings)

	return s.campaignRepo.Update(ctx, campaign)
}
