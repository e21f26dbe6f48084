package events

import "bitsa-portal/internal/models"

// FeaturedCount is how many events are pinned to fixed display slots before
// the listing falls back to the generic grid.
const FeaturedCount = 6

// Slot is one fixed position in the featured layout. A slot whose Event is
// nil renders as a placeholder, never an error.
type Slot struct {
	Event *models.Event
	Hero  bool
}

// Layout is the curated arrangement of a filtered, sorted event sequence:
// the first six events pinned to fixed slots, the rest in a generic grid.
//
// The slot order mirrors the page sections: a hero, a half-width pair,
// a second hero, and a second half-width pair.
type Layout struct {
	Slots []Slot
	Grid  []models.Event
}

// heroSlots marks which of the six featured positions render full width.
var heroSlots = [FeaturedCount]bool{0: true, 3: true}

// BuildLayout splits a sorted event sequence into the featured slots and
// the overflow grid. It tolerates any input length: with fewer than six
// events the remaining slots carry a nil Event.
func BuildLayout(evts []models.Event) Layout {
	layout := Layout{Slots: make([]Slot, FeaturedCount)}
	for i := range layout.Slots {
		layout.Slots[i].Hero = heroSlots[i]
		if i < len(evts) {
			layout.Slots[i].Event = &evts[i]
		}
	}
	if len(evts) > FeaturedCount {
		layout.Grid = evts[FeaturedCount:]
	}
	return layout
}
