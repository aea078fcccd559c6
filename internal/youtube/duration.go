package youtube

import (
	"math"
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO 8601 duration of the form PT[nH][nM][nS] to
// seconds. Strings that do not start with that form, and values that do not
// fit in an int, yield 0.
func ParseDuration(s string) int {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	total := 0
	for i, unit := range [...]int{3600, 60, 1} {
		part := m[i+1]
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > (math.MaxInt-total)/unit {
			return 0
		}
		total += n * unit
	}
	return total
}
