package notify

import "time"

// HighlightDuration is how long a viewed notification set stays visually
// emphasized before the unconditional timer-driven clear.
const HighlightDuration = 2 * time.Second

// HighlightSet is the transient set of message ids emphasized after the
// user views notifications. Membership is time-boxed: the owner schedules a
// single timer when populating the set and clears it when the timer fires,
// regardless of anything else that happened in between. The set itself
// carries no timer so it stays trivially testable.
type HighlightSet struct {
	ids map[string]struct{}
}

// NewHighlightSet creates an empty highlight set.
func NewHighlightSet() *HighlightSet {
	return &HighlightSet{ids: make(map[string]struct{})}
}

// Set replaces the membership with the given ids.
func (h *HighlightSet) Set(ids []string) {
	h.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		h.ids[id] = struct{}{}
	}
}

// Clear empties the set unconditionally.
func (h *HighlightSet) Clear() {
	h.ids = make(map[string]struct{})
}

// Contains reports whether a message id is currently highlighted.
func (h *HighlightSet) Contains(id string) bool {
	_, ok := h.ids[id]
	return ok
}

// Len returns the number of highlighted ids.
func (h *HighlightSet) Len() int {
	return len(h.ids)
}
