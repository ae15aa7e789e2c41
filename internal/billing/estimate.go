package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateWarning flags a degraded estimate. Warnings are advisory: the
// action proceeds, the UI surfaces them.
type EstimateWarning string

const (
	// WarnDayRateUnavailable: the original period has no usable day count,
	// so the estimate falls back to the unscaled grand total.
	WarnDayRateUnavailable EstimateWarning = "day_rate_unavailable"
	// WarnOneTimeCostsCarried: printing/mounting totals were carried over
	// unscaled into the new campaign.
	WarnOneTimeCostsCarried EstimateWarning = "one_time_costs_carried"
)

// CampaignEconomics is the originating campaign's financial snapshot.
type CampaignEconomics struct {
	StartDate     time.Time
	EndDate       time.Time
	Subtotal      decimal.Decimal
	PrintingTotal decimal.Decimal
	MountingTotal decimal.Decimal
	GSTPercent    decimal.Decimal
	GrandTotal    decimal.Decimal
}

// EstimateOptions are explicit policy knobs. One-time production costs are
// carried over unscaled by default on copy_new; set ProrateOneTimeCosts to
// scale them by the duration ratio instead.
type EstimateOptions struct {
	ProrateOneTimeCosts bool
}

// RenewalEstimate is a display/invoice-seeding estimate, never authoritative
// until an invoice is issued against it. For extend/renew only RenewalAmount
// is meaningful; for copy_new the full financial block is rebuilt.
type RenewalEstimate struct {
	Action        ActionType        `json:"action"`
	RenewalAmount decimal.Decimal   `json:"renewal_amount"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	PrintingTotal decimal.Decimal   `json:"printing_total"`
	MountingTotal decimal.Decimal   `json:"mounting_total"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	GSTPercent    decimal.Decimal   `json:"gst_percent"`
	GSTAmount     decimal.Decimal   `json:"gst_amount"`
	GrandTotal    decimal.Decimal   `json:"grand_total"`
	Warnings      []EstimateWarning `json:"warnings,omitempty"`
}

// EstimateRenewal prices the planned period from the original campaign's
// economics. Extend/renew bill only the added days at the campaign's derived
// day rate; copy_new rebuilds the financial block by prorating the subtotal.
func EstimateRenewal(c CampaignEconomics, plan RenewalPlan, opts EstimateOptions) RenewalEstimate {
	est := RenewalEstimate{Action: plan.Action, GSTPercent: c.GSTPercent}

	originalDays := 0
	if d, err := BookedDays(c.StartDate, c.EndDate); err == nil {
		originalDays = d
	}

	switch plan.Action {
	case ActionExtend, ActionRenew:
		if originalDays <= 0 {
			est.RenewalAmount = c.GrandTotal
			est.Warnings = append(est.Warnings, WarnDayRateUnavailable)
			return est
		}
		ext := plan.ExtensionDays
		if ext < 1 {
			ext = 1
		}
		dailyRate := c.GrandTotal.Div(decimal.NewFromInt(int64(originalDays)))
		est.RenewalAmount = dailyRate.Mul(decimal.NewFromInt(int64(ext))).Round(2)
		return est

	case ActionCopyNew:
		est.Subtotal = c.Subtotal
		if originalDays <= 0 {
			est.Warnings = append(est.Warnings, WarnDayRateUnavailable)
		} else {
			ratio := decimal.NewFromInt(int64(plan.NewDurationDays)).
				Div(decimal.NewFromInt(int64(originalDays)))
			est.Subtotal = c.Subtotal.Mul(ratio).Round(2)
		}

		est.PrintingTotal = c.PrintingTotal
		est.MountingTotal = c.MountingTotal
		oneTime := c.PrintingTotal.Add(c.MountingTotal)
		if opts.ProrateOneTimeCosts && originalDays > 0 {
			ratio := decimal.NewFromInt(int64(plan.NewDurationDays)).
				Div(decimal.NewFromInt(int64(originalDays)))
			est.PrintingTotal = c.PrintingTotal.Mul(ratio).Round(2)
			est.MountingTotal = c.MountingTotal.Mul(ratio).Round(2)
		} else if !oneTime.IsZero() {
			est.Warnings = append(est.Warnings, WarnOneTimeCostsCarried)
		}

		est.TotalAmount = est.Subtotal.Add(est.PrintingTotal).Add(est.MountingTotal).Round(2)
		est.GSTAmount = est.TotalAmount.Mul(c.GSTPercent).Div(decimal.NewFromInt(100)).Round(2)
		est.GrandTotal = est.TotalAmount.Add(est.GSTAmount)
		est.RenewalAmount = est.GrandTotal
		return est
	}

	return est
}
