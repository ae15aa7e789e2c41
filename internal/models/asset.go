package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset statuses
const (
	AssetStatusAvailable = "available"
	AssetStatusBooked    = "booked"
	AssetStatusInactive  = "inactive"
)

// Media types
const (
	MediaTypeHoarding  = "hoarding"
	MediaTypeUnipole   = "unipole"
	MediaTypeGantry    = "gantry"
	MediaTypeBusShelter = "bus_shelter"
	MediaTypeWallWrap  = "wall_wrap"
	MediaTypeLED       = "led"
)

// Asset is a physical media unit in the master inventory. CardRate is the
// published monthly list rate; bookings may negotiate their own.
type Asset struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Location     string          `json:"location"`
	Area         *string         `json:"area,omitempty"`
	City         *string         `json:"city,omitempty"`
	Direction    *string         `json:"direction,omitempty"`
	MediaType    string          `json:"media_type"`
	Illumination *string         `json:"illumination,omitempty"` // lit / non-lit / backlit
	WidthFt      decimal.Decimal `json:"width_ft"`
	HeightFt     decimal.Decimal `json:"height_ft"`
	TotalSqft    decimal.Decimal `json:"total_sqft"`
	CardRate     decimal.Decimal `json:"card_rate"`
	HSNSAC       *string         `json:"hsn_sac,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Dimensions renders the display form used on invoices, e.g. "40 x 20 ft".
func (a Asset) Dimensions() string {
	return a.WidthFt.String() + " x " + a.HeightFt.String() + " ft"
}
