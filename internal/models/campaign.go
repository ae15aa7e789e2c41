package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign statuses
const (
	CampaignStatusUpcoming  = "upcoming"
	CampaignStatusRunning   = "running"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Valid status transitions: from -> []to
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusUpcoming:  {CampaignStatusRunning, CampaignStatusCancelled},
	CampaignStatusRunning:   {CampaignStatusCompleted, CampaignStatusCancelled},
	CampaignStatusCompleted: {},
	CampaignStatusCancelled: {},
}

func IsValidCampaignTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// CampaignStatusFor derives the natural status of a campaign from its date
// range relative to today. Cancellation is always explicit, never derived.
func CampaignStatusFor(start, end, today time.Time) string {
	if today.Before(start) {
		return CampaignStatusUpcoming
	}
	if today.After(end) {
		return CampaignStatusCompleted
	}
	return CampaignStatusRunning
}

// Campaign is one client engagement. The financial aggregates are rolled up
// from its bookings: GrandTotal = round(Subtotal + PrintingTotal +
// MountingTotal) + GSTAmount.
type Campaign struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"client_id"`
	Name          string          `json:"name"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PrintingTotal decimal.Decimal `json:"printing_total"`
	MountingTotal decimal.Decimal `json:"mounting_total"`
	GSTPercent    decimal.Decimal `json:"gst_percent"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	RenewedFrom   *uuid.UUID      `json:"renewed_from,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// RecalculateTotals rebuilds the aggregate chain from the component totals.
func (c *Campaign) RecalculateTotals() {
	c.TotalAmount = c.Subtotal.Add(c.PrintingTotal).Add(c.MountingTotal).Round(2)
	c.GSTAmount = c.TotalAmount.Mul(c.GSTPercent).Div(decimal.NewFromInt(100)).Round(2)
	c.GrandTotal = c.TotalAmount.Add(c.GSTAmount)
}
