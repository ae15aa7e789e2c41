package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// Valid status transitions: from -> []to
var ValidInvoiceTransitions = map[string][]string{
	InvoiceStatusDraft:     {InvoiceStatusIssued, InvoiceStatusCancelled},
	InvoiceStatusIssued:    {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue:   {InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusPaid:      {},
	InvoiceStatusCancelled: {},
}

func IsValidInvoiceTransition(from, to string) bool {
	allowed, ok := ValidInvoiceTransitions[from]
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

// Invoice is a billing document with its own financial snapshot. Once set,
// the monetary fields are never touched by reconciliation — only descriptive
// line-item fields may be back-filled afterwards.
type Invoice struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceNo   string          `json:"invoice_no"`
	CampaignID  uuid.UUID       `json:"campaign_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	Status      string          `json:"status"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	GSTPercent  decimal.Decimal `json:"gst_percent"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	BalanceDue  decimal.Decimal `json:"balance_due"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InvoiceItem is one billable line. The identifier triple (CampaignAssetID,
// AssetID, AssetCode) links it back to its sources; legacy summary items
// carry none of the three.
type InvoiceItem struct {
	ID        uuid.UUID `json:"id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
	Position  int       `json:"position"`

	CampaignAssetID *uuid.UUID `json:"campaign_asset_id,omitempty"`
	AssetID         *uuid.UUID `json:"asset_id,omitempty"`
	AssetCode       *string    `json:"asset_code,omitempty"`

	Description  *string          `json:"description,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Area         *string          `json:"area,omitempty"`
	Direction    *string          `json:"direction,omitempty"`
	MediaType    *string          `json:"media_type,omitempty"`
	Illumination *string          `json:"illumination,omitempty"`
	Dimensions   *string          `json:"dimensions,omitempty"`
	TotalSqft    *decimal.Decimal `json:"total_sqft,omitempty"`
	BookingStart *time.Time       `json:"booking_start_date,omitempty"`
	BookingEnd   *time.Time       `json:"booking_end_date,omitempty"`
	HSNSAC       *string          `json:"hsn_sac,omitempty"`

	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// HasSourceIdentifier reports whether the item can be matched back to a
// booking or asset at all.
func (it InvoiceItem) HasSourceIdentifier() bool {
	return it.CampaignAssetID != nil || it.AssetID != nil ||
		(it.AssetCode != nil && *it.AssetCode != "")
}

// InvoiceItemSnapshot is a point-in-time copy of a line item's descriptive
// fields, written when the invoice is issued. It keeps historical invoices
// stable even if the underlying asset or booking later changes.
type InvoiceItemSnapshot struct {
	ID              uuid.UUID  `json:"id"`
	InvoiceID       uuid.UUID  `json:"invoice_id"`
	CampaignAssetID *uuid.UUID `json:"campaign_asset_id,omitempty"`
	AssetID         *uuid.UUID `json:"asset_id,omitempty"`
	AssetCode       *string    `json:"asset_code,omitempty"`

	Location      *string    `json:"location,omitempty"`
	Area          *string    `json:"area,omitempty"`
	Direction     *string    `json:"direction,omitempty"`
	MediaType     *string    `json:"media_type,omitempty"`
	Illumination  *string    `json:"illumination,omitempty"`
	DimensionText *string    `json:"dimension_text,omitempty"`
	HSNSAC        *string    `json:"hsn_sac,omitempty"`
	BookingStart  *time.Time `json:"booking_start_date,omitempty"`
	BookingEnd    *time.Time `json:"booking_end_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// OrgSettings is the single organization profile row used on rendered
// documents.
type OrgSettings struct {
	ID              uuid.UUID       `json:"id"`
	CompanyName     string          `json:"company_name"`
	Address         *string         `json:"address,omitempty"`
	GSTIN           *string         `json:"gstin,omitempty"`
	Phone           *string         `json:"phone,omitempty"`
	Email           *string         `json:"email,omitempty"`
	BankName        *string         `json:"bank_name,omitempty"`
	BankAccountNo   *string         `json:"bank_account_no,omitempty"`
	BankIFSC        *string         `json:"bank_ifsc,omitempty"`
	LogoURL         *string         `json:"logo_url,omitempty"`
	InvoicePrefix   string          `json:"invoice_prefix"`
	DefaultGST      decimal.Decimal `json:"default_gst_percent"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
