// Package reldate normalizes the date strings found in scraped reviews.
// Portals render review ages as relative Korean phrases ("3일 전",
// "2개월 전") and occasionally as absolute dates; everything downstream
// needs an actual timestamp anchored to a caller-supplied reference time.
package reldate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var digits = regexp.MustCompile(`\d+`)

// relUnits maps each relative suffix to its unit duration. Years and
// months are fixed at 365 and 30 days; the approximation is intentional
// and matches how the portals round ages in the first place.
var relUnits = []struct {
	suffix string
	unit   time.Duration
}{
	{"년 전", 365 * 24 * time.Hour},
	{"개월 전", 30 * 24 * time.Hour},
	{"일 전", 24 * time.Hour},
	{"시간 전", time.Hour},
	{"분 전", time.Minute},
	{"초 전", time.Second},
}

// absLayouts are tried in order when no relative suffix matches.
var absLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006.01.02.",
	"2006.01.02",
	"2006/01/02",
	"2006년 1월 2일",
}

// Parse converts a review date string into an absolute timestamp anchored
// at now. The second return value is false when the string cannot be
// interpreted; callers drop the owning review rather than guessing.
func Parse(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, ru := range relUnits {
		if !strings.Contains(s, ru.suffix) {
			continue
		}
		m := digits.FindString(s)
		if m == "" {
			return time.Time{}, false
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return time.Time{}, false
		}
		return now.Add(-time.Duration(n) * ru.unit), true
	}

	for _, layout := range absLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysSince returns the whole days elapsed between t and now, floored
// at zero so a clock-skewed "future" review cannot produce a negative age.
func DaysSince(t, now time.Time) int {
	d := int(now.Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
