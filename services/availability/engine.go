// Package availability computes bookable start times for a calendar day
// from an entity's weekly schedule and its existing bookings. It is a
// pure computation: no I/O, no shared state, recomputed fresh per call.
package availability

import (
	"time"

	"booklyo/models"
)

// Query is everything a slot computation needs. Booked must hold the
// start timestamps of the entity's confirmed bookings for the target
// date; cancelled bookings must already be filtered out by the caller.
type Query struct {
	Schedule models.WeeklySchedule
	Date     time.Time // any instant on the target calendar day
	Duration int       // minutes; the selected service's duration, also the slot step
	Booked   []time.Time
	Now      time.Time
}

// Slots enumerates the valid, non-conflicting start times for the day,
// ascending. Candidates step by the service duration from the day's
// opening time; a slot whose end lands exactly on closing time is still
// valid. A disabled or unconfigured day, or a duration longer than the
// open window, yields an empty result rather than an error.
//
// Conflicts are point-equality checks on the start minute against the
// booked list, not interval-overlap checks: the grid is quantized by the
// selected service's duration, so two services with different durations
// produce different grids and this check alone does not prevent every
// overlap between them.
func Slots(q Query) []time.Time {
	if q.Duration <= 0 {
		return nil
	}

	entry := q.Schedule.Entry(q.Date.Weekday())
	open, close, ok := entry.Window()
	if !ok {
		return nil
	}

	loc := q.Date.Location()
	dayStart := time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, loc)
	cursor := dayStart.Add(time.Duration(open) * time.Minute)
	closing := dayStart.Add(time.Duration(close) * time.Minute)
	step := time.Duration(q.Duration) * time.Minute

	booked := make(map[int64]struct{}, len(q.Booked))
	for _, b := range q.Booked {
		booked[b.Truncate(time.Minute).Unix()] = struct{}{}
	}

	now := q.Now.In(loc)
	isToday := now.Year() == dayStart.Year() && now.YearDay() == dayStart.YearDay()

	var slots []time.Time
	for !cursor.Add(step).After(closing) {
		if isToday && cursor.Before(now) {
			cursor = cursor.Add(step)
			continue
		}
		if _, taken := booked[cursor.Unix()]; !taken {
			slots = append(slots, cursor)
		}
		cursor = cursor.Add(step)
	}
	return slots
}
