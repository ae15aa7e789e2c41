package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeRentThirtyDayMode(t *testing.T) {
	// 31 days of January at 30000/month on the fixed 30-day divisor.
	got, err := ComputeRent(dec("30000"), date(2025, 1, 1), date(2025, 1, 31), BillingModeThirtyDay)
	require.NoError(t, err)

	assert.Equal(t, 31, got.BookedDays)
	assert.True(t, got.DailyRate.Equal(dec("1000")), "daily rate = %s", got.DailyRate)
	assert.True(t, got.RentAmount.Equal(dec("31000")), "rent = %s", got.RentAmount)
	assert.Equal(t, BillingModeThirtyDay, got.BillingMode)
}

func TestComputeRentCalendarMonthMode(t *testing.T) {
	// February 2025 has 28 days; a full-month booking bills exactly one month.
	got, err := ComputeRent(dec("28000"), date(2025, 2, 1), date(2025, 2, 28), BillingModeCalendarMonth)
	require.NoError(t, err)

	assert.Equal(t, 28, got.BookedDays)
	assert.True(t, got.DailyRate.Equal(dec("1000")))
	assert.True(t, got.RentAmount.Equal(dec("28000")))
}

func TestComputeRentFullMonthMode(t *testing.T) {
	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{"one day bills one month", date(2025, 1, 1), "30000"},
		{"thirty days bills one month", date(2025, 1, 30), "30000"},
		{"thirty one days bills two months", date(2025, 1, 31), "60000"},
		{"sixty one days bills three months", date(2025, 3, 2), "90000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRent(dec("30000"), date(2025, 1, 1), tt.end, BillingModeFullMonth)
			require.NoError(t, err)
			assert.True(t, got.RentAmount.Equal(dec(tt.want)), "rent = %s", got.RentAmount)
		})
	}
}

func TestComputeRentRoundsOnceAtOutput(t *testing.T) {
	// 10000/30 = 333.333...; 7 days should be 10000*7/30 = 2333.33,
	// not 333.33*7 = 2333.31.
	got, err := ComputeRent(dec("10000"), date(2025, 6, 1), date(2025, 6, 7), BillingModeThirtyDay)
	require.NoError(t, err)

	assert.True(t, got.DailyRate.Equal(dec("333.33")), "daily = %s", got.DailyRate)
	assert.True(t, got.RentAmount.Equal(dec("2333.33")), "rent = %s", got.RentAmount)
}

func TestComputeRentDeterministic(t *testing.T) {
	a, err := ComputeRent(dec("47500"), date(2025, 4, 10), date(2025, 5, 24), BillingModeCalendarMonth)
	require.NoError(t, err)
	b, err := ComputeRent(dec("47500"), date(2025, 4, 10), date(2025, 5, 24), BillingModeCalendarMonth)
	require.NoError(t, err)

	assert.Equal(t, a.BookedDays, b.BookedDays)
	assert.True(t, a.DailyRate.Equal(b.DailyRate))
	assert.True(t, a.RentAmount.Equal(b.RentAmount))
}

func TestComputeRentMonotonicInDays(t *testing.T) {
	for _, mode := range []BillingMode{BillingModeThirtyDay, BillingModeCalendarMonth, BillingModeFullMonth} {
		t.Run(string(mode), func(t *testing.T) {
			start := date(2025, 1, 1)
			prev := decimal.Zero
			for n := 0; n < 120; n++ {
				got, err := ComputeRent(dec("30000"), start, start.AddDate(0, 0, n), mode)
				require.NoError(t, err)
				assert.False(t, got.RentAmount.LessThan(prev),
					"rent decreased at day %d: %s < %s", n+1, got.RentAmount, prev)
				prev = got.RentAmount
			}
		})
	}
}

func TestComputeRentZeroAndNegativeRate(t *testing.T) {
	for _, rate := range []string{"0", "-500"} {
		got, err := ComputeRent(dec(rate), date(2025, 1, 1), date(2025, 1, 31), BillingModeThirtyDay)
		require.NoError(t, err)
		assert.True(t, got.RentAmount.IsZero())
		assert.True(t, got.DailyRate.IsZero())
		assert.Equal(t, 31, got.BookedDays)
	}
}

func TestComputeRentInvalidRange(t *testing.T) {
	_, err := ComputeRent(dec("30000"), date(2025, 1, 31), date(2025, 1, 1), BillingModeThirtyDay)
	var rangeErr *InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestComputeRentUnknownMode(t *testing.T) {
	_, err := ComputeRent(dec("30000"), date(2025, 1, 1), date(2025, 1, 31), BillingMode("weekly"))
	var modeErr *UnknownBillingModeError
	require.ErrorAs(t, err, &modeErr)
}

func TestValidBillingMode(t *testing.T) {
	assert.True(t, ValidBillingMode(BillingModeThirtyDay))
	assert.True(t, ValidBillingMode(BillingModeCalendarMonth))
	assert.True(t, ValidBillingMode(BillingModeFullMonth))
	assert.False(t, ValidBillingMode(BillingMode("weekly")))
}
