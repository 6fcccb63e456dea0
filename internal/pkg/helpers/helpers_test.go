package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntilBirthdayToday(t *testing.T) {
	now := time.Date(2026, time.May, 10, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntilBirthday(date(1980, time.May, 10), now))
}

func TestDaysUntilBirthdayIncreasesMonotonically(t *testing.T) {
	now := date(2026, time.March, 1)
	prev := -1
	for offset := 0; offset <= BirthdayWindowDays; offset++ {
		birthday := now.AddDate(-40, 0, offset)
		days := DaysUntilBirthday(birthday, now)
		assert.Equal(t, offset, days)
		assert.Greater(t, days, prev)
		prev = days
	}
}

func TestDaysUntilBirthdayWrapsToNextYear(t *testing.T) {
	now := date(2026, time.December, 20)
	assert.Equal(t, 12, DaysUntilBirthday(date(1990, time.January, 1), now))
	assert.Equal(t, 364, DaysUntilBirthday(date(1990, time.December, 19), now))
}

func TestDaysUntilBirthdayLeapDay(t *testing.T) {
	assert.Equal(t, 0, DaysUntilBirthday(date(2000, time.February, 29), date(2027, time.February, 28)))
	assert.Equal(t, 0, DaysUntilBirthday(date(2000, time.February, 29), date(2028, time.February, 29)))
	assert.Equal(t, 1, DaysUntilBirthday(date(2000, time.February, 29), date(2028, time.February, 28)))
}

func TestDaysUntilBirthdayUsesNowLocation(t *testing.T) {
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)

	// 22:30 UTC on May 9 is already May 10 in Nairobi.
	now := time.Date(2026, time.May, 9, 22, 30, 0, 0, time.UTC).In(nairobi)
	assert.Equal(t, 0, DaysUntilBirthday(date(1970, time.May, 10), now))
}

type person struct {
	name     string
	birthday *time.Time
}

func TestUpcomingBirthdaysWindow(t *testing.T) {
	now := date(2026, time.June, 1)
	in := func(days int) *time.Time { b := now.AddDate(-30, 0, days); return &b }

	people := []person{
		{name: "far", birthday: in(31)},
		{name: "soon", birthday: in(3)},
		{name: "none"},
		{name: "today", birthday: in(0)},
		{name: "edge", birthday: in(30)},
	}

	got := UpcomingBirthdays(people, func(p person) (time.Time, bool) {
		if p.birthday == nil {
			return time.Time{}, false
		}
		return *p.birthday, true
	}, now, BirthdayWindowDays)

	require.Len(t, got, 3)
	assert.Equal(t, "today", got[0].Item.name)
	assert.Equal(t, 0, got[0].Days)
	assert.Equal(t, "soon", got[1].Item.name)
	assert.Equal(t, "edge", got[2].Item.name)
	assert.Equal(t, 30, got[2].Days)
}

func TestInSameMonth(t *testing.T) {
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	assert.True(t, InSameMonth(date(2026, time.October, 1), now))
	assert.False(t, InSameMonth(date(2025, time.October, 18), now))
	assert.False(t, InSameMonth(date(2026, time.September, 30), now))
}

func TestFormatKES(t *testing.T) {
	assert.Equal(t, "KES 0", FormatKES(0))
	assert.Equal(t, "KES 950", FormatKES(950))
	assert.Equal(t, "KES 12,500", FormatKES(12500))
	assert.Equal(t, "KES 1,234,567.50", FormatKES(1234567.5))
	assert.Equal(t, "KES -1,000", FormatKES(-1000))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JD", Initials("jane doe smith"))
	assert.Equal(t, "A", Initials("  amani "))
	assert.Equal(t, "", Initials(""))
	assert.Equal(t, "ÉO", Initials("élodie okoth"))
}

func TestParseDateTimeLocal(t *testing.T) {
	loc := time.FixedZone("EAT", 3*3600)
	got, err := ParseDateTimeLocal("2026-12-24T18:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 24, 15, 30, 0, 0, time.UTC), got.UTC())

	_, err = ParseDateTimeLocal("tomorrow", loc)
	assert.Error(t, err)

	empty, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, empty)
}
