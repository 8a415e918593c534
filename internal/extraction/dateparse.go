package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	monthYearRe = regexp.MustCompile(`(?i)\b(` + monthPattern + `)\s*,?\s*(` + yearPattern + `)\b`)
	numericRe   = regexp.MustCompile(`\b(\d{1,2})/(` + yearPattern + `)\b`)
	yearRe      = regexp.MustCompile(`\b(` + yearPattern + `)\b`)
	openEndRe   = regexp.MustCompile(`(?i)^\s*` + openEndPattern + `\s*$`)
)

var monthByPrefix = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseDate converts one half of a date range into a calendar date. It tries
// month-name + year, then MM/YYYY, then a bare year; only years 1900-2099
// count. "present", "current" and "now" resolve to now, truncated to the day.
// The second return value is false when the token holds no usable date.
//
// Resolving "present" eagerly means a stored total drifts as time passes until
// the resume is processed again.
func ParseDate(token string, now time.Time) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}

	if openEndRe.MatchString(token) {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}

	if m := monthYearRe.FindStringSubmatch(token); m != nil {
		month, ok := monthByPrefix[strings.ToLower(m[1][:3])]
		if year, err := strconv.Atoi(m[2]); ok && err == nil {
			return firstOfMonth(year, month), true
		}
	}

	if m := numericRe.FindStringSubmatch(token); m != nil {
		month, errMonth := strconv.Atoi(m[1])
		year, errYear := strconv.Atoi(m[2])
		if errMonth == nil && errYear == nil && month >= 1 && month <= 12 {
			return firstOfMonth(year, time.Month(month)), true
		}
	}

	if m := yearRe.FindStringSubmatch(token); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			return firstOfMonth(year, time.January), true
		}
	}

	return time.Time{}, false
}

func firstOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
