package report

import "time"

// Bucketing periods shared by the sales report and the dashboard.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	yearLayout  = "2006"
)

// PeriodKey returns the bucket key for a timestamp: ISO date for daily,
// Monday-aligned week start date for weekly, YYYY-MM for monthly and the
// year for yearly. Unknown periods fall back to monthly.
func PeriodKey(t time.Time, period string) string {
	switch period {
	case PeriodDaily:
		return t.Format(dayLayout)
	case PeriodWeekly:
		return WeekStart(t).Format(dayLayout)
	case PeriodYearly:
		return t.Format(yearLayout)
	default:
		return t.Format(monthLayout)
	}
}

// WeekStart truncates a timestamp to the Monday of its week.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the week started the previous Monday
	}
	return day.AddDate(0, 0, -offset)
}

// keyTime parses a bucket key back into its period start.
func keyTime(key, period string) (time.Time, error) {
	switch period {
	case PeriodDaily, PeriodWeekly:
		return time.Parse(dayLayout, key)
	case PeriodYearly:
		return time.Parse(yearLayout, key)
	default:
		return time.Parse(monthLayout, key)
	}
}

// stepPeriod advances a period start by exactly one period.
func stepPeriod(t time.Time, period string) time.Time {
	switch period {
	case PeriodDaily:
		return t.AddDate(0, 0, 1)
	case PeriodWeekly:
		return t.AddDate(0, 0, 7)
	case PeriodYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// stepBack moves a period start back by exactly one period.
func stepBack(t time.Time, period string) time.Time {
	switch period {
	case PeriodDaily:
		return t.AddDate(0, 0, -1)
	case PeriodWeekly:
		return t.AddDate(0, 0, -7)
	case PeriodYearly:
		return t.AddDate(-1, 0, 0)
	default:
		return t.AddDate(0, -1, 0)
	}
}

// FillKeys expands a sparse set of observed bucket keys into a continuous,
// sorted run of keys from the earliest to the latest observed period, so
// charts render one point per period with zeros in the gaps. Weekly and
// monthly runs get one extra empty leading period, so a single-bucket
// dataset still draws a line with two points. With no observed keys at all,
// monthly mode synthesizes exactly two keys (previous month and now's
// month) as a baseline; other periods yield nil.
func FillKeys(observed []string, period string, now time.Time) []string {
	if len(observed) == 0 {
		if period == PeriodMonthly || period == "" {
			prev := now.AddDate(0, -1, 0)
			return []string{prev.Format(monthLayout), now.Format(monthLayout)}
		}
		return nil
	}

	first, err := keyTime(observed[0], period)
	if err != nil {
		return observed
	}
	last := first
	for _, key := range observed[1:] {
		t, err := keyTime(key, period)
		if err != nil {
			continue
		}
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}

	if period == PeriodWeekly || period == PeriodMonthly || period == "" {
		first = stepBack(first, period)
	}

	var keys []string
	for t := first; !t.After(last); t = stepPeriod(t, period) {
		keys = append(keys, PeriodKey(t, period))
	}
	return keys
}
