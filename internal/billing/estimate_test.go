package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRenewalExtensionBillsAddedDaysOnly(t *testing.T) {
	// 90-day campaign worth 93000 extended by 30 days: day rate 1033.33...,
	// renewal amount 93000/90*30 = 31000.
	econ := CampaignEconomics{
		StartDate:  date(2025, 1, 1),
		EndDate:    date(2025, 3, 31),
		GrandTotal: dec("93000"),
	}
	plan, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{
		Action:   ActionExtend,
		Duration: Duration1Month,
	})
	require.NoError(t, err)
	require.Equal(t, 30, plan.ExtensionDays)

	est := EstimateRenewal(econ, plan, EstimateOptions{})
	assert.True(t, est.RenewalAmount.Equal(dec("31000")), "amount = %s", est.RenewalAmount)
	assert.Empty(t, est.Warnings)
}

func TestEstimateRenewalDegradesWithoutDayRate(t *testing.T) {
	// End before start: no usable day count, estimate falls back to the
	// grand total with an advisory flag rather than dividing by zero.
	econ := CampaignEconomics{
		StartDate:  date(2025, 3, 31),
		EndDate:    date(2025, 1, 1),
		GrandTotal: dec("50000"),
	}
	plan := RenewalPlan{Action: ActionRenew, ExtensionDays: 30, NewDurationDays: 30}

	est := EstimateRenewal(econ, plan, EstimateOptions{})
	assert.True(t, est.RenewalAmount.Equal(dec("50000")))
	assert.Contains(t, est.Warnings, WarnDayRateUnavailable)
}

func TestEstimateRenewalClampsExtensionDays(t *testing.T) {
	econ := CampaignEconomics{
		StartDate:  date(2025, 1, 1),
		EndDate:    date(2025, 1, 30),
		GrandTotal: dec("30000"),
	}
	plan := RenewalPlan{Action: ActionExtend, ExtensionDays: 0}

	est := EstimateRenewal(econ, plan, EstimateOptions{})
	assert.True(t, est.RenewalAmount.Equal(dec("1000")), "bills at least one day, got %s", est.RenewalAmount)
}

func TestEstimateCopyNewProratesSubtotalOnly(t *testing.T) {
	// Half-length copy: subtotal halves, one-time production costs carry
	// over unscaled, GST applies to the rebuilt total.
	econ := CampaignEconomics{
		StartDate:     date(2025, 1, 1),
		EndDate:       date(2025, 4, 10), // 100 days
		Subtotal:      dec("80000"),
		PrintingTotal: dec("5000"),
		MountingTotal: dec("3000"),
		GSTPercent:    dec("18"),
		GrandTotal:    dec("103840"),
	}
	plan := RenewalPlan{Action: ActionCopyNew, NewDurationDays: 50}

	est := EstimateRenewal(econ, plan, EstimateOptions{})
	assert.True(t, est.Subtotal.Equal(dec("40000")), "subtotal = %s", est.Subtotal)
	assert.True(t, est.PrintingTotal.Equal(dec("5000")))
	assert.True(t, est.MountingTotal.Equal(dec("3000")))
	assert.True(t, est.TotalAmount.Equal(dec("48000")))
	assert.True(t, est.GSTAmount.Equal(dec("8640")))
	assert.True(t, est.GrandTotal.Equal(dec("56640")))
	assert.Contains(t, est.Warnings, WarnOneTimeCostsCarried)
}

func TestEstimateCopyNewProratePolicyScalesOneTimeCosts(t *testing.T) {
	econ := CampaignEconomics{
		StartDate:     date(2025, 1, 1),
		EndDate:       date(2025, 4, 10), // 100 days
		Subtotal:      dec("80000"),
		PrintingTotal: dec("5000"),
		MountingTotal: dec("3000"),
		GSTPercent:    dec("18"),
	}
	plan := RenewalPlan{Action: ActionCopyNew, NewDurationDays: 50}

	est := EstimateRenewal(econ, plan, EstimateOptions{ProrateOneTimeCosts: true})
	assert.True(t, est.PrintingTotal.Equal(dec("2500")))
	assert.True(t, est.MountingTotal.Equal(dec("1500")))
	assert.NotContains(t, est.Warnings, WarnOneTimeCostsCarried)
}

func TestEstimateCopyNewZeroOneTimeCostsNoWarning(t *testing.T) {
	econ := CampaignEconomics{
		StartDate:  date(2025, 1, 1),
		EndDate:    date(2025, 1, 30),
		Subtotal:   dec("60000"),
		GSTPercent: dec("18"),
	}
	plan := RenewalPlan{Action: ActionCopyNew, NewDurationDays: 30}

	est := EstimateRenewal(econ, plan, EstimateOptions{})
	assert.Empty(t, est.Warnings)
}
