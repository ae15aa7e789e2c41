package billing

import "time"

// ActionType is the kind of renewal being planned.
type ActionType string

const (
	// ActionExtend pushes the same campaign's end date out from its current end.
	ActionExtend ActionType = "extend"
	// ActionRenew starts a fresh period on the same campaign, never in the past.
	ActionRenew ActionType = "renew"
	// ActionCopyNew creates an independent campaign with explicit dates.
	ActionCopyNew ActionType = "copy_new"
)

// DurationOption is the preset length of the new period.
type DurationOption string

const (
	Duration15Days  DurationOption = "15_days"
	Duration1Month  DurationOption = "1_month"
	Duration2Months DurationOption = "2_months"
	Duration3Months DurationOption = "3_months"
	DurationCustom  DurationOption = "custom"
)

// RenewalRequest captures the user's renewal selection. CustomEnd applies to
// extend/renew with DurationCustom; NewStart/NewEnd apply to copy_new and
// default to "day after current end" and "+1 month" when unset.
type RenewalRequest struct {
	Action    ActionType
	Duration  DurationOption
	CustomEnd *time.Time
	NewStart  *time.Time
	NewEnd    *time.Time
}

// RenewalPlan is the planner's output: the projected period and its derived
// counters. ExtensionDays counts days added past the current campaign end.
type RenewalPlan struct {
	Action          ActionType `json:"action"`
	NewStart        time.Time  `json:"new_start"`
	NewEnd          time.Time  `json:"new_end"`
	NewDurationDays int        `json:"new_duration_days"`
	ExtensionDays   int        `json:"extension_days"`
}

// PlanRenewal computes the new start/end dates for a renewal action.
//
//   - extend: newStart is the current campaign end.
//   - renew: newStart is the day after the current end, but never before
//     today — a lapsed campaign renews from today.
//   - copy_new: explicit dates, defaulted when unset.
func PlanRenewal(currentEnd, today time.Time, req RenewalRequest) (RenewalPlan, error) {
	currentEnd = dateOnly(currentEnd)
	today = dateOnly(today)

	var newStart, newEnd time.Time
	var err error

	switch req.Action {
	case ActionExtend:
		newStart = currentEnd
		newEnd, err = applyDuration(newStart, req.Duration, req.CustomEnd)
	case ActionRenew:
		newStart = currentEnd.AddDate(0, 0, 1)
		if newStart.Before(today) {
			newStart = today
		}
		newEnd, err = applyDuration(newStart, req.Duration, req.CustomEnd)
	case ActionCopyNew:
		newStart = currentEnd.AddDate(0, 0, 1)
		if req.NewStart != nil {
			newStart = dateOnly(*req.NewStart)
		}
		newEnd = AddMonths(newStart, 1)
		if req.NewEnd != nil {
			newEnd = dateOnly(*req.NewEnd)
		}
		if !newEnd.After(newStart) {
			err = &InvalidDateError{Field: "new_end", Reason: "must be after new start date"}
		}
	default:
		return RenewalPlan{}, &InvalidDateError{Field: "action", Reason: "unknown renewal action"}
	}
	if err != nil {
		return RenewalPlan{}, err
	}

	durationDays, err := BookedDays(newStart, newEnd)
	if err != nil {
		return RenewalPlan{}, err
	}
	if durationDays < 1 {
		durationDays = 1
	}

	extensionDays := DaysBetween(currentEnd, newEnd)
	if (req.Action == ActionExtend || req.Action == ActionRenew) && extensionDays <= 0 {
		return RenewalPlan{}, &InvalidDateError{Field: "new_end", Reason: "must extend past the current campaign end"}
	}

	return RenewalPlan{
		Action:          req.Action,
		NewStart:        newStart,
		NewEnd:          newEnd,
		NewDurationDays: durationDays,
		ExtensionDays:   extensionDays,
	}, nil
}

func applyDuration(start time.Time, opt DurationOption, custom *time.Time) (time.Time, error) {
	switch opt {
	case Duration15Days:
		return start.AddDate(0, 0, 15), nil
	case Duration1Month:
		return AddMonths(start, 1), nil
	case Duration2Months:
		return AddMonths(start, 2), nil
	case Duration3Months:
		return AddMonths(start, 3), nil
	case DurationCustom:
		if custom == nil {
			return time.Time{}, &InvalidDateError{Field: "custom_end", Reason: "required for custom duration"}
		}
		end := dateOnly(*custom)
		if !end.After(start) {
			return time.Time{}, &InvalidDateError{Field: "custom_end", Reason: "must be after new start date"}
		}
		return end, nil
	default:
		return time.Time{}, &InvalidDateError{Field: "duration", Reason: "unknown duration option"}
	}
}
