package schedule

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnrecognizedDuration is returned by ParseHours when the input matches
// none of the accepted duration forms. Callers should treat it as "ignore,
// keep the previous value" rather than coercing to zero.
var ErrUnrecognizedDuration = errors.New("unrecognized duration")

// The accepted duration forms, tried in order. Matching is anchored: the
// entire trimmed, lowercased input must match one pattern. Fields written
// as \d+ are deliberately integer-only; fractions are allowed only where
// the pattern uses the decimal group.
var (
	reDays      = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:d|days?)$`)
	reDaysHours = regexp.MustCompile(`^(\d+)\s*(?:d|days?)\s+(\d+(?:\.\d+)?)\s*(?:h|hours?)?$`)
	reHours     = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:h|hours?)$`)
	reHoursMins = regexp.MustCompile(`^(\d+)\s*h\s*(\d+)\s*m$`)
	reMinutes   = regexp.MustCompile(`^(\d+)\s*(?:m|mins?|minutes?)$`)
	reColon     = regexp.MustCompile(`^(\d+):(\d+)$`)
	reDecimal   = regexp.MustCompile(`^(\d+(?:\.\d+)?)$`)
)

// ParseHours converts a human-entered duration string to a number of hours.
//
// Accepted forms (case-insensitive, surrounding whitespace ignored):
//
//	"2 days", "1.5d"        → days × 24
//	"1d 6h", "1 day 6"      → whole days × 24 + hours
//	"3 hours", "2.5h"       → hours
//	"5h 30m"                → hours + minutes/60
//	"45 min", "90m"         → minutes/60
//	"5:30"                  → hours:minutes
//	"2.5"                   → bare number of hours
//
// Anything else returns ErrUnrecognizedDuration.
func ParseHours(text string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(text))

	if m := reDays.FindStringSubmatch(s); m != nil {
		days := mustFloat(m[1])
		return days * 24, nil
	}
	if m := reDaysHours.FindStringSubmatch(s); m != nil {
		days := mustInt(m[1])
		hours := mustFloat(m[2])
		return float64(days)*24 + hours, nil
	}
	if m := reHours.FindStringSubmatch(s); m != nil {
		return mustFloat(m[1]), nil
	}
	if m := reHoursMins.FindStringSubmatch(s); m != nil {
		hours := mustInt(m[1])
		mins := mustInt(m[2])
		return float64(hours) + float64(mins)/60, nil
	}
	if m := reMinutes.FindStringSubmatch(s); m != nil {
		return float64(mustInt(m[1])) / 60, nil
	}
	if m := reColon.FindStringSubmatch(s); m != nil {
		hours := mustInt(m[1])
		mins := mustInt(m[2])
		return float64(hours) + float64(mins)/60, nil
	}
	if m := reDecimal.FindStringSubmatch(s); m != nil {
		return mustFloat(m[1]), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedDuration, text)
}

// FormatHours renders an hour count as a compact display string.
//
// With useDays and 24 hours or more, the value is split into whole days and
// a remainder rounded to the nearest whole hour: "1d", "1d 6h". Sub-hour
// precision is dropped in day mode.
//
// Otherwise the value is split into whole hours and rounded minutes:
// "30m", "2h", "1h 30m".
//
// Minutes that round up to 60 are printed as-is ("1h 60m" for 1.999) rather
// than carried into the hour. The planner UI has always shown it this way
// and exported files are compared textually, so the behavior is kept.
func FormatHours(hours float64, useDays bool) string {
	if useDays && hours >= 24 {
		days := int(hours / 24)
		rem := math.Mod(hours, 24)
		h := int(math.Round(rem))
		if h == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd %dh", days, h)
	}

	whole := int(math.Floor(hours))
	mins := int(math.Round((hours - math.Floor(hours)) * 60))
	if whole == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", whole)
	}
	return fmt.Sprintf("%dh %dm", whole, mins)
}

// mustFloat parses a decimal group already validated by a regexp.
func mustFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("schedule: regexp admitted unparseable number: " + s)
	}
	return f
}

// mustInt parses an integer group already validated by a regexp.
func mustInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic("schedule: regexp admitted unparseable integer: " + s)
	}
	return n
}
