package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]*)`)
	unitDays      = map[string]int{
		"":      1,
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseDays parses a human-friendly day window (for example "3", "3d", "1w" or
// "1w2d") and returns the number of calendar days it covers.
func ParseDays(input string) (int, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty day window")
	}

	total := 0
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid day window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("invalid day window value %q: %w", matches[1], err)
		}
		mult, ok := unitDays[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported day window unit %q", matches[2])
		}
		total += value * mult
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}

	if total <= 0 {
		return 0, fmt.Errorf("day window must be greater than zero")
	}
	return total, nil
}
