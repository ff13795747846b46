package budget

import "time"

// =============================================================================
// TIME NORMALIZATION
// =============================================================================

const dateLayout = "2006-01-02"

// PeriodsPerYear returns how many payment periods a frequency produces in
// a year. Unknown frequencies are treated as monthly.
func PeriodsPerYear(f Frequency) float64 {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiWeekly:
		return 26
	default:
		return 12
	}
}

// NormaliseToMonthly converts an amount paid at the given frequency to a
// canonical monthly amount. Negative amounts pass through unchanged;
// validation is a caller concern.
func NormaliseToMonthly(amount float64, f Frequency) float64 {
	return amount * PeriodsPerYear(f) / 12
}

// CalendarMonthsBetween returns the number of whole calendar months from
// `from` to `to`, ignoring the day of month. Negative when `to` is
// earlier than `from`.
func CalendarMonthsBetween(to, from time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// parseDate parses a YYYY-MM-DD date string, ignoring time-of-day.
func parseDate(iso string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, iso)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// monthsUntil is the inclusive month count used for sinking funds and
// goal funding: whole calendar months until the date, floored at zero,
// plus one for the current month.
func monthsUntil(dateISO string, now time.Time) (int, bool) {
	due, ok := parseDate(dateISO)
	if !ok {
		return 0, false
	}
	diff := CalendarMonthsBetween(due, now)
	if diff < 0 {
		diff = 0
	}
	return diff + 1, true
}
