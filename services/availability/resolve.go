package availability

import (
	"errors"
	"fmt"

	"booklyo/models"
)

// ErrStaffNotFound is returned when a booking targets a staff member the
// establishment does not list.
var ErrStaffNotFound = errors.New("staff member not found")

// Resolve selects the active weekly schedule for a booking attempt:
// the establishment's own schedule when staffID is empty, otherwise the
// staff member's schedule, falling back to the establishment's when the
// member has none of their own. Exactly one schedule is active per
// attempt; booking pools stay namespaced by (establishment, staff) and
// are never merged for conflict checking.
func Resolve(est models.Establishment, staffID string) (models.WeeklySchedule, error) {
	if staffID == "" {
		return est.Schedule, nil
	}
	member, ok := est.StaffByID(staffID)
	if !ok {
		return models.WeeklySchedule{}, fmt.Errorf("%w: %s", ErrStaffNotFound, staffID)
	}
	if !member.Active {
		return models.WeeklySchedule{}, fmt.Errorf("%w: %s is inactive", ErrStaffNotFound, staffID)
	}
	if member.Schedule != nil {
		return *member.Schedule, nil
	}
	return est.Schedule, nil
}

// StaffHoursWarnings reports days where a staff member's hours fall
// outside the establishment's. This is a soft check surfaced to the
// operator at edit time, not a stored invariant.
func StaffHoursWarnings(est models.WeeklySchedule, staff models.WeeklySchedule) []string {
	var warnings []string
	for d := 0; d < 7; d++ {
		se := staff.Entries[d]
		sStart, sEnd, ok := se.Window()
		if !ok {
			continue
		}
		eStart, eEnd, open := est.Entries[d].Window()
		if !open {
			warnings = append(warnings, fmt.Sprintf("%s: staff hours set but establishment is closed", se.Day))
			continue
		}
		if sStart < eStart || sEnd > eEnd {
			warnings = append(warnings, fmt.Sprintf("%s: staff hours %s-%s fall outside establishment hours %s-%s",
				se.Day,
				models.FormatClock(sStart), models.FormatClock(sEnd),
				models.FormatClock(eStart), models.FormatClock(eEnd)))
		}
	}
	return warnings
}
