package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Validate runs the struct tags on any request type.
func Validate(req any) error {
	return validate.Struct(req)
}

// Auth

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin operator"`
}

// Clients

type ClientRequest struct {
	Name           string  `json:"name" validate:"required"`
	ContactPerson  *string `json:"contact_person,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	GSTIN          *string `json:"gstin,omitempty"`
	BillingAddress *string `json:"billing_address,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
}

// Assets

type AssetRequest struct {
	Code         string          `json:"code" validate:"required"`
	Location     string          `json:"location" validate:"required"`
	Area         *string         `json:"area,omitempty"`
	City         *string         `json:"city,omitempty"`
	Direction    *string         `json:"direction,omitempty"`
	MediaType    string          `json:"media_type" validate:"required"`
	Illumination *string         `json:"illumination,omitempty"`
	WidthFt      decimal.Decimal `json:"width_ft"`
	HeightFt     decimal.Decimal `json:"height_ft"`
	CardRate     decimal.Decimal `json:"card_rate"`
	HSNSAC       *string         `json:"hsn_sac,omitempty"`
	Status       *string         `json:"status,omitempty" validate:"omitempty,oneof=available booked inactive"`
}

// Campaigns

type CampaignRequest struct {
	ClientID   string          `json:"client_id" validate:"required,uuid4"`
	Name       string          `json:"name" validate:"required"`
	StartDate  time.Time       `json:"start_date" validate:"required"`
	EndDate    time.Time       `json:"end_date" validate:"required"`
	GSTPercent decimal.Decimal `json:"gst_percent"`
	Notes      *string         `json:"notes,omitempty"`
}

type BookAssetRequest struct {
	AssetID      string          `json:"asset_id" validate:"required,uuid4"`
	StartDate    time.Time       `json:"start_date" validate:"required"`
	EndDate      time.Time       `json:"end_date" validate:"required"`
	BillingMode  string          `json:"billing_mode" validate:"omitempty,oneof=thirty_day calendar_month full_month"`
	MonthlyRate  decimal.Decimal `json:"monthly_rate"`
	PrintingCost decimal.Decimal `json:"printing_cost"`
	MountingCost decimal.Decimal `json:"mounting_cost"`
}

// RenewalRequest selects a renewal action and duration. CustomEnd is only
// read when duration is "custom"; NewStart/NewEnd only apply to copy_new.
type RenewalRequest struct {
	Action              string     `json:"action" validate:"required,oneof=extend renew copy_new"`
	Duration            string     `json:"duration" validate:"omitempty,oneof=15_days 1_month 2_months 3_months custom"`
	CustomEnd           *time.Time `json:"custom_end,omitempty"`
	NewStart            *time.Time `json:"new_start,omitempty"`
	NewEnd              *time.Time `json:"new_end,omitempty"`
	ProrateOneTimeCosts bool       `json:"prorate_one_time_costs"`
}

// Invoices

type CreateInvoiceRequest struct {
	CampaignID string  `json:"campaign_id" validate:"required,uuid4"`
	DueInDays  int     `json:"due_in_days" validate:"omitempty,min=1"`
	Notes      *string `json:"notes,omitempty"`
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}
