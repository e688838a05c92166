package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday mirrors time.Weekday values (Sunday = 0).
type Weekday = time.Weekday

// ScheduleEntry describes whether an entity takes bookings on a given
// day of the week and, if so, between which hours.
type ScheduleEntry struct {
	Day     Weekday `bson:"day" json:"day"`
	Enabled bool    `bson:"enabled" json:"enabled"`
	Start   string  `bson:"start,omitempty" json:"start,omitempty"` // "HH:MM", 24h
	End     string  `bson:"end,omitempty" json:"end,omitempty"`     // "HH:MM", 24h
}

// WeeklySchedule is the seven-day availability template of an entity
// (an establishment or one of its staff members). All seven days are
// always present.
type WeeklySchedule struct {
	Entries [7]ScheduleEntry `bson:"entries" json:"entries"`
}

// EmptyWeeklySchedule returns a schedule with every day disabled.
func EmptyWeeklySchedule() WeeklySchedule {
	var ws WeeklySchedule
	for d := 0; d < 7; d++ {
		ws.Entries[d] = ScheduleEntry{Day: Weekday(d)}
	}
	return ws
}

// Entry returns the entry for the given weekday.
func (ws WeeklySchedule) Entry(day Weekday) ScheduleEntry {
	return ws.Entries[int(day)%7]
}

// SetEntry replaces the entry for its own weekday.
func (ws *WeeklySchedule) SetEntry(e ScheduleEntry) {
	ws.Entries[int(e.Day)%7] = e
}

// Validate checks every enabled entry parses and opens before it closes.
func (ws WeeklySchedule) Validate() error {
	for _, e := range ws.Entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the entry's times when the day is enabled.
func (e ScheduleEntry) Validate() error {
	if !e.Enabled {
		return nil
	}
	start, err := ParseClock(e.Start)
	if err != nil {
		return fmt.Errorf("schedule %s: invalid start %q: %w", e.Day, e.Start, err)
	}
	end, err := ParseClock(e.End)
	if err != nil {
		return fmt.Errorf("schedule %s: invalid end %q: %w", e.Day, e.End, err)
	}
	if start >= end {
		return fmt.Errorf("schedule %s: start %s must be before end %s", e.Day, e.Start, e.End)
	}
	return nil
}

// Window returns the open and close times as minutes from midnight.
// ok is false when the day is disabled or the times do not parse.
func (e ScheduleEntry) Window() (start, end int, ok bool) {
	if !e.Enabled {
		return 0, 0, false
	}
	s, err := ParseClock(e.Start)
	if err != nil {
		return 0, 0, false
	}
	en, err := ParseClock(e.End)
	if err != nil || s >= en {
		return 0, 0, false
	}
	return s, en, true
}

// ParseClock parses an "HH:MM" time of day into minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
