package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ooh-media/backend/internal/billing"
	"github.com/ooh-media/backend/internal/models"
)

func rederive(t *testing.T, b *models.CampaignAsset) {
	t.Helper()
	breakdown, err := billing.ComputeRent(b.MonthlyRate, b.StartDate, b.EndDate, b.BillingMode)
	require.NoError(t, err)
	b.BookedDays = breakdown.BookedDays
	b.DailyRate = breakdown.DailyRate
	b.RentAmount = breakdown.RentAmount
}

// Extension totals come from rolling up the re-derived booking rents. The
// renewal estimate is GST-inclusive display pricing and must never be folded
// into the pre-tax subtotal.
func TestExtensionTotalsEqualBookingRollUp(t *testing.T) {
	start := day(2026, time.January, 1)
	end := day(2026, time.March, 31) // 90 booked days

	booking := models.CampaignAsset{
		StartDate:    start,
		EndDate:      end,
		BillingMode:  billing.BillingModeThirtyDay,
		MonthlyRate:  dec("25000"),
		PrintingCost: dec("5000"),
	}
	rederive(t, &booking)
	require.Equal(t, "75000", booking.RentAmount.String())

	campaign := &models.Campaign{
		StartDate:  start,
		EndDate:    end,
		GSTPercent: dec("18"),
	}
	rollUpFromBookings(campaign, []models.CampaignAsset{booking})
	require.Equal(t, "94400", campaign.GrandTotal.String())

	customEnd := day(2026, time.April, 30)
	plan, err := billing.PlanRenewal(campaign.EndDate, day(2026, time.March, 20), billing.RenewalRequest{
		Action:    billing.ActionExtend,
		Duration:  billing.DurationCustom,
		CustomEnd: &customEnd,
	})
	require.NoError(t, err)
	require.Equal(t, 30, plan.ExtensionDays)
	estimate := billing.EstimateRenewal(economics(campaign), plan, billing.EstimateOptions{})

	// Mirror applyExtension: push the booking onto the new period, re-derive
	// its rent, then roll the campaign up from the bookings.
	booking.EndDate = plan.NewEnd
	rederive(t, &booking)
	require.Equal(t, 120, booking.BookedDays)

	campaign.EndDate = plan.NewEnd
	rollUpFromBookings(campaign, []models.CampaignAsset{booking})

	assert.Equal(t, "100000", campaign.Subtotal.String())
	assert.Equal(t, "105000", campaign.TotalAmount.String())
	assert.Equal(t, "18900", campaign.GSTAmount.String())
	assert.Equal(t, "123900", campaign.GrandTotal.String())

	// Adding the estimate's renewal amount to the old subtotal would embed
	// GST and the printing share twice.
	inflated := dec("75000").Add(estimate.RenewalAmount)
	assert.Equal(t, "106466.67", inflated.String())
	assert.False(t, campaign.Subtotal.Equal(inflated))
}

// A later booking edit rolls the same aggregates up again, so both paths
// must agree on the result.
func TestRollUpFromBookingsIsIdempotent(t *testing.T) {
	start := day(2026, time.May, 1)
	end := day(2026, time.May, 31)

	bookings := []models.CampaignAsset{
		{StartDate: start, EndDate: end, BillingMode: billing.BillingModeCalendarMonth, MonthlyRate: dec("40000"), MountingCost: dec("2500")},
		{StartDate: start, EndDate: end, BillingMode: billing.BillingModeThirtyDay, MonthlyRate: dec("18000"), PrintingCost: dec("3000")},
	}
	for i := range bookings {
		rederive(t, &bookings[i])
	}

	campaign := &models.Campaign{StartDate: start, EndDate: end, GSTPercent: dec("18")}
	rollUpFromBookings(campaign, bookings)
	first := *campaign

	rollUpFromBookings(campaign, bookings)
	assert.True(t, campaign.Subtotal.Equal(first.Subtotal))
	assert.True(t, campaign.GSTAmount.Equal(first.GSTAmount))
	assert.True(t, campaign.GrandTotal.Equal(first.GrandTotal))
}
