// Package allocator implements the timetable allocation engine: the bookable
// time grid, room/instructor conflict detection, room suitability scoring and
// the greedy placement search. Everything operates on an injected Dataset
// snapshot; the package holds no state of its own.
package allocator

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical day-of-week names, weekdays first. Ordering matters: the greedy
// search walks days in this order.
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

var (
	weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday}
	weekend  = []string{Saturday, Sunday}
)

// Weekdays returns the five working days in week order.
func Weekdays() []string {
	return append([]string(nil), weekdays...)
}

// Weekend returns the two weekend days in week order.
func Weekend() []string {
	return append([]string(nil), weekend...)
}

// AllDays returns the full week, weekdays before weekend days.
func AllDays() []string {
	return append(Weekdays(), weekend...)
}

// IsValidDay reports whether name is one of the seven canonical day names.
func IsValidDay(name string) bool {
	for _, d := range AllDays() {
		if d == name {
			return true
		}
	}
	return false
}

// NormalizeDay uppercases and trims a day name.
func NormalizeDay(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// ParseClock converts an "HH:MM" clock into minutes from midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", clock)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Slot is one fixed-width bookable interval within the working day.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// Grid is the ordered, contiguous, non-overlapping slot sequence for one day.
// It is computed once at startup and never mutated.
type Grid struct {
	slots []Slot
}

// GridConfig bounds grid generation. Zero values fall back to the reference
// window: 08:30 to 17:00 in 45-minute slots.
type GridConfig struct {
	Open      string
	Close     string
	SlotWidth int
}

// NewGrid builds the slot sequence for cfg. Generation stops once the next
// slot would run past the closing boundary.
func NewGrid(cfg GridConfig) (Grid, error) {
	if cfg.Open == "" {
		cfg.Open = "08:30"
	}
	if cfg.Close == "" {
		cfg.Close = "17:00"
	}
	if cfg.SlotWidth <= 0 {
		cfg.SlotWidth = 45
	}

	open, err := ParseClock(cfg.Open)
	if err != nil {
		return Grid{}, fmt.Errorf("grid open: %w", err)
	}
	closeAt, err := ParseClock(cfg.Close)
	if err != nil {
		return Grid{}, fmt.Errorf("grid close: %w", err)
	}
	if closeAt <= open {
		return Grid{}, fmt.Errorf("grid close %s must be after open %s", cfg.Close, cfg.Open)
	}

	var slots []Slot
	for start := open; start+cfg.SlotWidth <= closeAt; start += cfg.SlotWidth {
		end := start + cfg.SlotWidth
		slots = append(slots, Slot{
			Start: FormatClock(start),
			End:   FormatClock(end),
			Label: FormatClock(start) + " - " + FormatClock(end),
		})
	}
	if len(slots) == 0 {
		return Grid{}, fmt.Errorf("grid window %s-%s fits no %d-minute slot", cfg.Open, cfg.Close, cfg.SlotWidth)
	}
	return Grid{slots: slots}, nil
}

// Slots returns the ordered slot sequence.
func (g Grid) Slots() []Slot {
	return append([]Slot(nil), g.slots...)
}

// Len returns the number of slots per day.
func (g Grid) Len() int {
	return len(g.slots)
}

// SlotAt finds the slot starting at the given clock and its index.
func (g Grid) SlotAt(start string) (Slot, int, bool) {
	for i, s := range g.slots {
		if s.Start == start {
			return s, i, true
		}
	}
	return Slot{}, 0, false
}
