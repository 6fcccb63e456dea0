package helpers

import (
	"sort"
	"time"
)

// BirthdayWindowDays is how far ahead the dashboard looks for birthdays.
const BirthdayWindowDays = 30

// DaysUntilBirthday returns the number of calendar days from now's date to the next
// anniversary of birthday, evaluated in now's location. It is 0 on the day itself.
// Feb 29 birthdays are celebrated on Feb 28 in non-leap years.
func DaysUntilBirthday(birthday, now time.Time) int {
	today := StartOfDay(now)
	next := anniversary(birthday, today.Year(), today.Location())
	if next.Before(today) {
		next = anniversary(birthday, today.Year()+1, today.Location())
	}
	return daysBetween(today, next)
}

func anniversary(birthday time.Time, year int, loc *time.Location) time.Time {
	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysBetween counts whole calendar days, immune to DST shifts.
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// UpcomingBirthday pairs an item with the days left until its birthday.
type UpcomingBirthday[T any] struct {
	Item T
	Days int
}

// UpcomingBirthdays keeps items whose next birthday is at most window days away,
// sorted soonest first. Items for which birthdayOf reports no birthday are skipped.
func UpcomingBirthdays[T any](items []T, birthdayOf func(T) (time.Time, bool), now time.Time, window int) []UpcomingBirthday[T] {
	var upcoming []UpcomingBirthday[T]
	for _, item := range items {
		birthday, ok := birthdayOf(item)
		if !ok {
			continue
		}
		if days := DaysUntilBirthday(birthday, now); days <= window {
			upcoming = append(upcoming, UpcomingBirthday[T]{Item: item, Days: days})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Days < upcoming[j].Days
	})
	return upcoming
}
