package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
)

var bracketAnnotation = regexp.MustCompile(`\s*\[.*?\]`)

// Cell contents that spreadsheet exports use to mean "no value".
var nullMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"-NaN":     {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"-nan":     {},
	"null":     {},
}

// IsNull reports whether a raw cell should be treated as missing.
func IsNull(value string) bool {
	_, ok := nullMarkers[strings.TrimSpace(value)]
	return ok
}

// StripAnnotations removes every "[...]" annotation along with the
// whitespace in front of it.
func StripAnnotations(value string) string {
	return bracketAnnotation.ReplaceAllString(value, "")
}

func ParseTimeOfDay(value string) *types.TimeOfDay {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &types.TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}
}

// MinutesBetween subtracts two times of day. There is no date component, so a
// range that crosses midnight comes out negative.
func MinutesBetween(start, end *types.TimeOfDay) *float64 {
	if start == nil || end == nil {
		return nil
	}
	minutes := float64(end.Minutes() - start.Minutes())
	return &minutes
}

func ParseDate(value, layout string) (time.Time, bool) {
	parsed, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return DateOnly(parsed), true
}

func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseAmount reads a money cell such as "-2.80", "£2.80" or "1,204.00".
func ParseAmount(value string) (float64, bool) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "£", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(amount) {
		return 0, false
	}
	return amount, true
}

func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
