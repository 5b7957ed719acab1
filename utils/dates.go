package utils

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date form used throughout the engine.
const DateLayout = "2006-01-02"

// DateOnly canonicalizes a date value to YYYY-MM-DD. It accepts date-only
// strings and longer timestamps (RFC3339 etc.) by taking the date prefix.
// Malformed input yields "".
func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < len(DateLayout) {
		return ""
	}
	s = s[:len(DateLayout)]
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ""
	}
	return s
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// NowTime returns the current local time as HH:MM.
func NowTime() string {
	return time.Now().Format("15:04")
}

// Nights computes billable nights between two dates using end-exclusive day
// difference. Equal, missing or malformed dates bill one night: a same-day
// stay is always at least one night.
func Nights(in, out string) float64 {
	a := DateOnly(in)
	b := DateOnly(out)
	if a == "" || b == "" || a == b {
		return 1
	}
	ta, _ := time.Parse(DateLayout, a)
	tb, _ := time.Parse(DateLayout, b)
	days := int(tb.Sub(ta).Hours() / 24)
	if days <= 0 {
		return 1
	}
	return float64(days)
}

// HalfNights applies the half-night flag: subtract half a night, floored at
// 0.5. A same-day half-night stay therefore bills 0.5.
func HalfNights(n float64) float64 {
	n -= 0.5
	if n < 0.5 {
		return 0.5
	}
	return n
}

// NightsWithHalf is Nights with the half-night flag applied.
func NightsWithHalf(in, out string, half bool) float64 {
	n := Nights(in, out)
	if half {
		n = HalfNights(n)
	}
	return n
}

// NightsFor is the unified per-guest rule: both dates present use Nights;
// a live checked-in guest with no checkout bills against today; anything
// else is 0 (arrivals, malformed records).
func NightsFor(in, out, status string, checkedOut bool, today string) float64 {
	inISO := DateOnly(in)
	outISO := DateOnly(out)
	if inISO != "" && outISO != "" {
		return Nights(inISO, outISO)
	}
	if inISO != "" && status == "checked-in" && !checkedOut {
		return Nights(inISO, today)
	}
	return 0
}

// InRangeInclusive reports whether d falls within [from, to] inclusive.
// Missing endpoints or an unusable d yield false.
func InRangeInclusive(d, from, to string) bool {
	dd := DateOnly(d)
	f := DateOnly(from)
	t := DateOnly(to)
	if dd == "" || f == "" || t == "" {
		return false
	}
	return dd >= f && dd <= t
}
