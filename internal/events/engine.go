package events

import (
	"sort"
	"time"

	"bitsa-portal/internal/models"
)

// ongoingWindow is how long an event counts as Ongoing after it starts.
const ongoingWindow = 24 * time.Hour

// Status derives the temporal bucket for an event from the current time and
// its start timestamp. It is a pure function: it never reads the wall clock
// itself, so callers recompute it at render time rather than caching it.
//
// An event is Ongoing when it has started (start <= now) and less than 24
// hours have elapsed. A future event, even one within the next 24 hours, is
// Upcoming; the start <= now guard is the discriminator. Everything else is
// Past. An event starting exactly now is Ongoing.
func Status(now, start time.Time) models.EventStatus {
	if now.Sub(start).Abs() < ongoingWindow && !start.After(now) {
		return models.StatusOngoing
	}
	if start.After(now) {
		return models.StatusUpcoming
	}
	return models.StatusPast
}

// Filter is a listing filter value. The zero value shows everything.
type Filter string

const (
	FilterAll      Filter = "All"
	FilterUpcoming Filter = "Upcoming"
	FilterOngoing  Filter = "Ongoing"
	FilterPast     Filter = "Past"
)

// Filters lists the filter values in the order the UI cycles through them.
var Filters = []Filter{FilterAll, FilterUpcoming, FilterOngoing, FilterPast}

// matches reports whether an event with the given derived status passes the
// filter.
func (f Filter) matches(status models.EventStatus) bool {
	switch f {
	case FilterAll, "":
		return true
	default:
		return string(f) == string(status)
	}
}

// Select returns the events passing the filter at the given time, sorted
// ascending by start timestamp. The sort is stable, so events sharing a
// start time keep their fetch order. The input slice is not modified.
func Select(evts []models.Event, f Filter, now time.Time) []models.Event {
	selected := make([]models.Event, 0, len(evts))
	for _, e := range evts {
		if f.matches(Status(now, e.Date)) {
			selected = append(selected, e)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Date.Before(selected[j].Date)
	})
	return selected
}
