package schedule

import (
	"garage/shared/constant"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultDurationMinutes is used when a duration label cannot be parsed.
	DefaultDurationMinutes = 30
	// VariesDurationMinutes is used for services whose duration is "Változó".
	VariesDurationMinutes = 60
)

var (
	variesPattern = regexp.MustCompile(`^változó$`)
	rangePattern  = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)\s*óra$`)
	hourPattern   = regexp.MustCompile(`^(\d+)\s*óra$`)
	minutePattern = regexp.MustCompile(`^(\d+)\s*perc$`)
)

// ParseDurationMinutes converts a service duration label such as "45 perc", "1 óra", "1-2 óra" or
// "Változó" into minutes. Ranges resolve to their upper bound. Unrecognized labels resolve to
// DefaultDurationMinutes and are logged, so the caller never has to handle an error.
func ParseDurationMinutes(text string) int {
	normalized := strings.ToLower(strings.TrimSpace(text))

	switch {
	case variesPattern.MatchString(normalized):
		return VariesDurationMinutes
	case rangePattern.MatchString(normalized):
		match := rangePattern.FindStringSubmatch(normalized)
		if upper, ok := atoi(match[2]); ok {
			return upper * constant.MinutesInHour
		}
	case hourPattern.MatchString(normalized):
		match := hourPattern.FindStringSubmatch(normalized)
		if hours, ok := atoi(match[1]); ok {
			return hours * constant.MinutesInHour
		}
	case minutePattern.MatchString(normalized):
		match := minutePattern.FindStringSubmatch(normalized)
		if minutes, ok := atoi(match[1]); ok {
			return minutes
		}
	}

	log.Warn().Str("duration", text).Int("fallback_minutes", DefaultDurationMinutes).Msg("unrecognized service duration, using fallback")

	return DefaultDurationMinutes
}

// SlotCount returns how many grid slots a duration occupies, never less than one.
func SlotCount(minutes int) int {
	if minutes <= 0 {
		return 1
	}

	return (minutes + constant.SlotMinutes - 1) / constant.SlotMinutes
}

func atoi(value string) (int, bool) {
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}

	return number, true
}
