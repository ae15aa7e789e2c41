package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingMode selects the strategy for normalizing a monthly rate into a
// per-day rate. The set is a business policy input; new modes are added by
// registering a strategy here, callers never branch on the mode themselves.
type BillingMode string

const (
	// BillingModeThirtyDay divides the monthly rate by a fixed 30 days.
	BillingModeThirtyDay BillingMode = "thirty_day"
	// BillingModeCalendarMonth divides by the actual number of days in the
	// booking's starting month.
	BillingModeCalendarMonth BillingMode = "calendar_month"
	// BillingModeFullMonth charges whole months: any started 30-day block
	// bills the full monthly rate.
	BillingModeFullMonth BillingMode = "full_month"
)

// RentBreakdown is the derived pricing of one booking. RentAmount is a
// cache of this computation; it is persisted for display and invoicing
// stability but always re-derivable from the inputs.
type RentBreakdown struct {
	BookedDays  int             `json:"booked_days"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	RentAmount  decimal.Decimal `json:"rent_amount"`
	BillingMode BillingMode     `json:"billing_mode"`
}

// modeStrategy computes the unrounded daily rate and rent for a mode.
type modeStrategy func(monthlyRate decimal.Decimal, start time.Time, days int) (daily, rent decimal.Decimal)

var thirty = decimal.NewFromInt(30)

var modeStrategies = map[BillingMode]modeStrategy{
	BillingModeThirtyDay: func(rate decimal.Decimal, _ time.Time, days int) (decimal.Decimal, decimal.Decimal) {
		return rate.Div(thirty), rate.Mul(decimal.NewFromInt(int64(days))).Div(thirty)
	},
	BillingModeCalendarMonth: func(rate decimal.Decimal, start time.Time, days int) (decimal.Decimal, decimal.Decimal) {
		dim := decimal.NewFromInt(int64(daysInMonth(start)))
		return rate.Div(dim), rate.Mul(decimal.NewFromInt(int64(days))).Div(dim)
	},
	BillingModeFullMonth: func(rate decimal.Decimal, _ time.Time, days int) (decimal.Decimal, decimal.Decimal) {
		months := int64((days + 29) / 30)
		return rate.Div(thirty), rate.Mul(decimal.NewFromInt(months))
	},
}

// ValidBillingMode reports whether mode has a registered strategy.
func ValidBillingMode(mode BillingMode) bool {
	_, ok := modeStrategies[mode]
	return ok
}

// ComputeRent derives booked days, daily rate and rent amount from a monthly
// rate, a date range and a billing mode. Rounding to 2 decimals happens once,
// on the final outputs, never cumulatively across days. A zero or negative
// monthly rate is valid (comped placements) and yields a zero rent.
func ComputeRent(monthlyRate decimal.Decimal, start, end time.Time, mode BillingMode) (RentBreakdown, error) {
	days, err := BookedDays(start, end)
	if err != nil {
		return RentBreakdown{}, err
	}

	strategy, ok := modeStrategies[mode]
	if !ok {
		return RentBreakdown{}, &UnknownBillingModeError{Mode: mode}
	}

	if monthlyRate.Sign() <= 0 {
		return RentBreakdown{
			BookedDays:  days,
			DailyRate:   decimal.Zero,
			RentAmount:  decimal.Zero,
			BillingMode: mode,
		}, nil
	}

	daily, rent := strategy(monthlyRate, dateOnly(start), days)
	return RentBreakdown{
		BookedDays:  days,
		DailyRate:   daily.Round(2),
		RentAmount:  rent.Round(2),
		BillingMode: mode,
	}, nil
}

func daysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
