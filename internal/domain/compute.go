package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "03:04 PM"

	// clockInputLayout also takes a single-digit hour ("9:05 AM").
	clockInputLayout = "3:04 PM"
)

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidClock = errors.New("invalid time, expected hh:mm AM/PM")
	ErrDateRange    = errors.New("start date must be on or before end date")
	ErrClockRange   = errors.New("check-out must be after check-in")
)

// NetSalary is the only place take-home pay is computed. Rounded to cents.
func NetSalary(basic, allowances, deductions float64) float64 {
	return math.Round((basic+allowances-deductions)*100) / 100
}

// LeaveDays counts calendar days in the inclusive range [start, end].
func LeaveDays(start, end string) (int, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0, ErrInvalidDate
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return 0, ErrInvalidDate
	}
	if s.After(e) {
		return 0, ErrDateRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// WorkHours renders the span between two clock strings as "9h 13m".
func WorkHours(checkIn, checkOut string) (string, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return "", err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return "", err
	}
	if !out.After(in) {
		return "", ErrClockRange
	}
	return FormatDuration(out.Sub(in)), nil
}

// ParseWorkHours reads a duration written by FormatDuration.
func ParseWorkHours(s string) (time.Duration, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%dh %dm", &h, &m); err != nil || h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid work hours %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

func FormatDuration(d time.Duration) string {
	mins := int(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(clockInputLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return time.Time{}, ErrInvalidClock
	}
	return t, nil
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// IsLate applies the 09:15 grace period.
func IsLate(t time.Time) bool {
	return t.Hour() > 9 || (t.Hour() == 9 && t.Minute() > 15)
}

// IsMonth reports whether s is one of Months.
func IsMonth(s string) bool {
	for _, m := range Months {
		if m == s {
			return true
		}
	}
	return false
}
