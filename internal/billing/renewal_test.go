package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRenewalExtendOneMonth(t *testing.T) {
	// Campaign ends 2025-03-31; extend by one month.
	plan, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{
		Action:   ActionExtend,
		Duration: Duration1Month,
	})
	require.NoError(t, err)

	assert.Equal(t, date(2025, 3, 31), plan.NewStart)
	assert.Equal(t, date(2025, 4, 30), plan.NewEnd)
	assert.Equal(t, 31, plan.NewDurationDays)
	assert.Equal(t, 30, plan.ExtensionDays)
}

func TestPlanRenewalExtendFifteenDays(t *testing.T) {
	plan, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{
		Action:   ActionExtend,
		Duration: Duration15Days,
	})
	require.NoError(t, err)

	assert.Equal(t, date(2025, 4, 15), plan.NewEnd)
	assert.Equal(t, 15, plan.ExtensionDays)
}

func TestPlanRenewalExtendCustomMustFollowStart(t *testing.T) {
	custom := date(2025, 3, 30)
	_, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{
		Action:    ActionExtend,
		Duration:  DurationCustom,
		CustomEnd: &custom,
	})

	var dateErr *InvalidDateError
	require.ErrorAs(t, err, &dateErr)
}

func TestPlanRenewalExtendCustomMissing(t *testing.T) {
	_, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{
		Action:   ActionExtend,
		Duration: DurationCustom,
	})

	var dateErr *InvalidDateError
	require.ErrorAs(t, err, &dateErr)
}

func TestPlanRenewalRenewNeverStartsInPast(t *testing.T) {
	tests := []struct {
		name       string
		currentEnd time.Time
		today      time.Time
		wantStart  time.Time
	}{
		{"lapsed campaign renews from today", date(2024, 6, 30), date(2025, 3, 20), date(2025, 3, 20)},
		{"future end renews from day after end", date(2025, 4, 30), date(2025, 3, 20), date(2025, 5, 1)},
		{"ends today renews tomorrow", date(2025, 3, 20), date(2025, 3, 20), date(2025, 3, 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanRenewal(tt.currentEnd, tt.today, RenewalRequest{
				Action:   ActionRenew,
				Duration: Duration1Month,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, plan.NewStart)
			assert.False(t, plan.NewStart.Before(tt.today), "renewal must not start in the past")
			assert.Positive(t, plan.ExtensionDays)
		})
	}
}

func TestPlanRenewalCopyNewDefaults(t *testing.T) {
	plan, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{
		Action: ActionCopyNew,
	})
	require.NoError(t, err)

	assert.Equal(t, date(2025, 4, 1), plan.NewStart)
	assert.Equal(t, date(2025, 5, 1), plan.NewEnd)
	assert.Equal(t, 31, plan.NewDurationDays)
}

func TestPlanRenewalCopyNewExplicitDates(t *testing.T) {
	start := date(2025, 6, 1)
	end := date(2025, 8, 31)
	plan, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{
		Action:   ActionCopyNew,
		NewStart: &start,
		NewEnd:   &end,
	})
	require.NoError(t, err)

	assert.Equal(t, start, plan.NewStart)
	assert.Equal(t, end, plan.NewEnd)
	assert.Equal(t, 92, plan.NewDurationDays)
}

func TestPlanRenewalCopyNewEndBeforeStart(t *testing.T) {
	start := date(2025, 6, 1)
	end := date(2025, 6, 1)
	_, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{
		Action:   ActionCopyNew,
		NewStart: &start,
		NewEnd:   &end,
	})

	var dateErr *InvalidDateError
	require.ErrorAs(t, err, &dateErr)
}

func TestPlanRenewalUnknownAction(t *testing.T) {
	_, err := PlanRenewal(date(2025, 3, 31), date(2025, 3, 20), RenewalRequest{Action: "restart"})

	var dateErr *InvalidDateError
	require.ErrorAs(t, err, &dateErr)
}
