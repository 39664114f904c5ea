package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

var weekIDPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekID returns the YYYY-Www key for t. Weeks start on Sunday and week 1 is
// the one holding January 1st, so the number is
// ceil((dayOfYear + weekdayOfJan1 + 1) / 7) with a zero-based day of year.
func WeekID(t time.Time) string {
	return fmt.Sprintf("%d-W%02d", t.Year(), weekNumber(t))
}

func weekNumber(t time.Time) int {
	day := t.YearDay() - 1
	jan1 := int(yearStart(t.Year(), t.Location()).Weekday())
	return (day + jan1 + 1 + 6) / 7
}

// ParseWeekID splits a YYYY-Www key into year and week number.
func ParseWeekID(id string) (year, week int, err error) {
	m := weekIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, fmt.Errorf("week id %q: expected YYYY-Www", id)
	}
	year, _ = strconv.Atoi(m[1])
	week, _ = strconv.Atoi(m[2])
	if week < 1 || week > 54 {
		return 0, 0, fmt.Errorf("week id %q: week out of range", id)
	}
	return year, week, nil
}

// WeekMidpoint returns the middle day of the week (its start plus three days),
// clamped into the week's year.
func WeekMidpoint(id string, loc *time.Location) (time.Time, error) {
	year, week, err := ParseWeekID(id)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	start := yearStart(year, loc)
	jan1 := int(start.Weekday())
	mid := 7*(week-1) - jan1 + 3
	last := start.AddDate(1, 0, -1).YearDay() - 1
	mid = max(0, min(mid, last))
	return start.AddDate(0, 0, mid), nil
}

// InMonth reports whether the week belongs to now's calendar month, judged by
// the month holding the week's middle day. Malformed ids never match.
func InMonth(id string, now time.Time) bool {
	mid, err := WeekMidpoint(id, now.Location())
	if err != nil {
		return false
	}
	return mid.Year() == now.Year() && mid.Month() == now.Month()
}

func yearStart(year int, loc *time.Location) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
}
