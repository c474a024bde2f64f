// Package dates provides the calendar arithmetic shared by the scheduler and
// validators: working-day tests, blackout-aware skipping, and day/month spans.
// All functions are pure and total.
package dates

import "time"

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Normalize truncates t to midnight UTC. All engine dates are normalized so
// equality and map lookups behave.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Set is a set of calendar days keyed on normalized dates.
type Set map[time.Time]struct{}

// NewSet builds a Set from the given days.
func NewSet(days ...time.Time) Set {
	s := make(Set, len(days))
	for _, d := range days {
		s[Normalize(d)] = struct{}{}
	}
	return s
}

// Has reports whether d is in the set.
func (s Set) Has(d time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s[Normalize(d)]
	return ok
}

// IsWorkingDay reports whether d is a weekday outside the blackout set.
func IsWorkingDay(d time.Time, blackouts Set) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !blackouts.Has(d)
}

// NextWorkingDay returns the smallest working day strictly after d.
func NextWorkingDay(d time.Time, blackouts Set) time.Time {
	next := Normalize(d).AddDate(0, 0, 1)
	for !IsWorkingDay(next, blackouts) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// FirstWorkingDayOnOrAfter returns d when it is a working day, otherwise the
// next working day after it.
func FirstWorkingDayOnOrAfter(d time.Time, blackouts Set) time.Time {
	day := Normalize(d)
	for !IsWorkingDay(day, blackouts) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// AddWorkingDays advances d by n working days, skipping weekends and
// blackouts. n must be non-negative; n = 0 returns d unchanged.
func AddWorkingDays(d time.Time, n int, blackouts Set) time.Time {
	day := Normalize(d)
	for i := 0; i < n; i++ {
		day = NextWorkingDay(day, blackouts)
	}
	return day
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}

// MonthsBetween returns the signed whole-month span from a to b, ignoring
// the day of month.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// MinDate and MaxDate bound all engine-relevant calendar days. Used as
// missing-deadline sentinels by heuristic orderings.
var (
	MinDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)
