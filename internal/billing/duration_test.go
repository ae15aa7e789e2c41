package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookedDaysInclusive(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day is one day", date(2025, 1, 1), date(2025, 1, 1), 1},
		{"one week", date(2025, 1, 1), date(2025, 1, 7), 7},
		{"full january", date(2025, 1, 1), date(2025, 1, 31), 31},
		{"across month boundary", date(2025, 1, 15), date(2025, 2, 14), 31},
		{"across year boundary", date(2024, 12, 25), date(2025, 1, 5), 12},
		{"leap february", date(2024, 2, 1), date(2024, 2, 29), 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BookedDays(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookedDaysIgnoresWallClock(t *testing.T) {
	start := time.Date(2025, 3, 1, 23, 59, 0, 0, time.FixedZone("IST", 5*3600+1800))
	end := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)

	got, err := BookedDays(start, end)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestBookedDaysInvalidRange(t *testing.T) {
	_, err := BookedDays(date(2025, 5, 10), date(2025, 5, 9))
	require.Error(t, err)

	var rangeErr *InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 30, DaysBetween(date(2025, 3, 31), date(2025, 4, 30)))
	assert.Equal(t, 0, DaysBetween(date(2025, 3, 31), date(2025, 3, 31)))
	assert.Equal(t, -5, DaysBetween(date(2025, 3, 10), date(2025, 3, 5)))
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"mid month", date(2025, 1, 15), 1, date(2025, 2, 15)},
		{"jan 31 clamps to feb 28", date(2025, 1, 31), 1, date(2025, 2, 28)},
		{"jan 31 clamps to leap feb 29", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"mar 31 to apr 30", date(2025, 3, 31), 1, date(2025, 4, 30)},
		{"three months across year", date(2025, 11, 30), 3, date(2026, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}
