package schedule

import (
	"errors"
	"fmt"
	"garage/config"
	"garage/shared/constant"
	"strconv"
	"strings"
)

const (
	DefaultFirstSlot   = "9:00"
	DefaultLastSlot    = "16:30"
	DefaultClosingTime = "17:00"

	minutesPerDay = 24 * constant.MinutesInHour
)

var (
	ErrInvalidLabel = errors.New("invalid time label")
	ErrInvalidGrid  = errors.New("invalid slot grid")
)

// Grid is the ordered set of bookable half-hour start times of a day plus its closing boundary.
type Grid struct {
	labels  []string
	minutes []int
	index   map[string]int
	closing int
}

// NewGrid builds the labels from first through last in SlotMinutes steps.
func NewGrid(first, last, closing string) (Grid, error) {
	start, err := ParseLabel(first)
	if err != nil {
		return Grid{}, err
	}

	end, err := ParseLabel(last)
	if err != nil {
		return Grid{}, err
	}

	closeAt, err := ParseLabel(closing)
	if err != nil {
		return Grid{}, err
	}

	if end < start || closeAt <= end || (end-start)%constant.SlotMinutes != 0 {
		return Grid{}, fmt.Errorf("%w: %s-%s closing %s", ErrInvalidGrid, first, last, closing)
	}

	grid := Grid{index: map[string]int{}, closing: closeAt}

	for minute := start; minute <= end; minute += constant.SlotMinutes {
		label := FormatLabel(minute)

		grid.index[label] = len(grid.labels)
		grid.labels = append(grid.labels, label)
		grid.minutes = append(grid.minutes, minute)
	}

	return grid, nil
}

// DefaultGrid is the 9:00-16:30 grid closing at 17:00.
func DefaultGrid() Grid {
	grid, _ := NewGrid(DefaultFirstSlot, DefaultLastSlot, DefaultClosingTime)

	return grid
}

// GridFromConfig reads BOOKING_* settings and falls back to the default grid for unset values.
func GridFromConfig(cfg *config.Config) (Grid, error) {
	first := valueOr(cfg.Booking.FirstSlot, DefaultFirstSlot)
	last := valueOr(cfg.Booking.LastSlot, DefaultLastSlot)
	closing := valueOr(cfg.Booking.ClosingTime, DefaultClosingTime)

	return NewGrid(first, last, closing)
}

func (g Grid) Labels() []string {
	return append([]string(nil), g.labels...)
}

func (g Grid) Contains(label string) bool {
	_, ok := g.index[label]

	return ok
}

// StartedBy returns the labels starting at or before minute, in grid order.
func (g Grid) StartedBy(minute int) []string {
	started := []string{}

	for i, m := range g.minutes {
		if m > minute {
			break
		}

		started = append(started, g.labels[i])
	}

	return started
}

// ClosingMinute is the closing boundary in minutes since midnight.
func (g Grid) ClosingMinute() int {
	return g.closing
}

// Len returns the number of bookable start times.
func (g Grid) Len() int {
	return len(g.labels)
}

// ParseLabel converts "H:MM" or "HH:MM" into minutes since midnight.
func ParseLabel(label string) (int, error) {
	hours, minutes, found := strings.Cut(strings.TrimSpace(label), ":")
	if !found || len(minutes) != 2 || hours == "" || len(hours) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	total := h*constant.MinutesInHour + m
	if h < 0 || m < 0 || m >= constant.MinutesInHour || total >= minutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	return total, nil
}

// FormatLabel renders minutes since midnight in the canonical "H:MM" form.
func FormatLabel(minute int) string {
	return fmt.Sprintf("%d:%02d", minute/constant.MinutesInHour, minute%constant.MinutesInHour)
}

// NormalizeLabel rewrites a label into canonical form, e.g. "09:00" becomes "9:00".
func NormalizeLabel(label string) (string, error) {
	minute, err := ParseLabel(label)
	if err != nil {
		return "", err
	}

	return FormatLabel(minute), nil
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}
