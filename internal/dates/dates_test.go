package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkingDay_Weekdays(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := date(2025, 6, 2)
	for i := 0; i < 5; i++ {
		assert.True(t, IsWorkingDay(monday.AddDate(0, 0, i), nil), "weekday %d", i)
	}
	assert.False(t, IsWorkingDay(date(2025, 6, 7), nil), "Saturday")
	assert.False(t, IsWorkingDay(date(2025, 6, 8), nil), "Sunday")
}

func TestIsWorkingDay_Blackout(t *testing.T) {
	blackouts := NewSet(date(2025, 6, 3))
	assert.False(t, IsWorkingDay(date(2025, 6, 3), blackouts))
	assert.True(t, IsWorkingDay(date(2025, 6, 4), blackouts))
}

func TestNextWorkingDay_SkipsWeekend(t *testing.T) {
	friday := date(2025, 6, 6)
	assert.Equal(t, date(2025, 6, 9), NextWorkingDay(friday, nil))
}

func TestNextWorkingDay_SkipsBlackoutRun(t *testing.T) {
	blackouts := NewSet(date(2025, 6, 3), date(2025, 6, 4))
	assert.Equal(t, date(2025, 6, 5), NextWorkingDay(date(2025, 6, 2), blackouts))
}

func TestFirstWorkingDayOnOrAfter(t *testing.T) {
	assert.Equal(t, date(2025, 6, 2), FirstWorkingDayOnOrAfter(date(2025, 6, 2), nil), "working day returns itself")
	assert.Equal(t, date(2025, 6, 9), FirstWorkingDayOnOrAfter(date(2025, 6, 7), nil), "Saturday advances to Monday")
}

func TestAddWorkingDays(t *testing.T) {
	monday := date(2025, 6, 2)
	assert.Equal(t, monday, AddWorkingDays(monday, 0, nil))
	assert.Equal(t, date(2025, 6, 6), AddWorkingDays(monday, 4, nil))
	// Crossing a weekend: 5 working days from Monday is next Monday.
	assert.Equal(t, date(2025, 6, 9), AddWorkingDays(monday, 5, nil))
}

func TestDaysBetween_Signed(t *testing.T) {
	a, b := date(2025, 1, 1), date(2025, 1, 31)
	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestMonthsBetween_IgnoresDayOfMonth(t *testing.T) {
	assert.Equal(t, 2, MonthsBetween(date(2025, 1, 31), date(2025, 3, 1)))
	assert.Equal(t, -12, MonthsBetween(date(2026, 5, 1), date(2025, 5, 20)))
	assert.Equal(t, 0, MonthsBetween(date(2025, 4, 1), date(2025, 4, 30)))
}

func TestParse_Valid(t *testing.T) {
	d, err := Parse("deadline", "2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 4), d)
}

func TestParse_InvalidDateError(t *testing.T) {
	_, err := Parse("deadline", "06/04/2025")
	require.Error(t, err)
	var invalid *InvalidDateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "deadline", invalid.Field)
	assert.Equal(t, "06/04/2025", invalid.Value)
}

func TestParseOptional(t *testing.T) {
	d, err := ParseOptional("x", nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	empty := ""
	d, err = ParseOptional("x", &empty)
	require.NoError(t, err)
	assert.Nil(t, d)

	value := "2025-12-01"
	d, err = ParseOptional("x", &value)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, date(2025, 12, 1), *d)

	bad := "not-a-date"
	_, err = ParseOptional("x", &bad)
	assert.Error(t, err)
}
