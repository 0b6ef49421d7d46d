package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTimeframeDays is assumed when a timeframe is absent or does not
// match the supported range form.
const DefaultTimeframeDays = 30

var timeframePattern = regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*(day|week|month)s?`)

var unitDays = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
}

// ParseTimeframeDays normalizes a free-text duration like "2-4 weeks"
// into a day count: the average of the range bounds converted by unit.
func ParseTimeframeDays(text string) int {
	m := timeframePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultTimeframeDays
	}
	lo, loErr := strconv.Atoi(m[1])
	hi, hiErr := strconv.Atoi(m[2])
	if loErr != nil || hiErr != nil {
		return DefaultTimeframeDays
	}
	avg := float64(lo+hi) / 2
	return int(math.Round(avg * float64(unitDays[strings.ToLower(m[3])])))
}
