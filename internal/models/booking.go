package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ooh-media/backend/internal/billing"
)

// CampaignAsset is one asset's booking inside a campaign. BookedDays,
// DailyRate and RentAmount are derived from the rate and date range on every
// edit; they are persisted for display and invoicing stability but are never
// edited independently.
type CampaignAsset struct {
	ID           uuid.UUID           `json:"id"`
	CampaignID   uuid.UUID           `json:"campaign_id"`
	AssetID      uuid.UUID           `json:"asset_id"`
	StartDate    time.Time           `json:"start_date"`
	EndDate      time.Time           `json:"end_date"`
	BillingMode  billing.BillingMode `json:"billing_mode"`
	MonthlyRate  decimal.Decimal     `json:"monthly_rate"`
	PrintingCost decimal.Decimal     `json:"printing_cost"`
	MountingCost decimal.Decimal     `json:"mounting_cost"`

	// Derived, recomputed via billing.ComputeRent on every edit.
	BookedDays int             `json:"booked_days"`
	DailyRate  decimal.Decimal `json:"daily_rate"`
	RentAmount decimal.Decimal `json:"rent_amount"`

	// Operational state, reset on renew/copy_new.
	InstalledAt   *time.Time `json:"installed_at,omitempty"`
	ProofPhotoURL *string    `json:"proof_photo_url,omitempty"`
	MounterName   *string    `json:"mounter_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveRate is the booking's negotiated monthly rate, falling back to
// the asset's card rate when no rate was negotiated.
func (ca CampaignAsset) EffectiveRate(asset *Asset) decimal.Decimal {
	if ca.MonthlyRate.Sign() > 0 {
		return ca.MonthlyRate
	}
	if asset != nil {
		return asset.CardRate
	}
	return ca.MonthlyRate
}
