package registration

import (
	"sync"

	"bitsa-portal/internal/models"
)

// Tracker maps the authenticated user's registrations onto events and holds
// the per-event in-flight intent flags that gate duplicate submissions.
//
// The registration snapshot is replaced wholesale on every refresh; nothing
// patches individual entries, so derived state is always recomputed from a
// full server response.
type Tracker struct {
	mu            sync.RWMutex
	registrations []models.Registration
	inflight      map[string]bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		inflight: make(map[string]bool),
	}
}

// Replace swaps in a fresh registration snapshot from the server.
func (t *Tracker) Replace(regs []models.Registration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.registrations = make([]models.Registration, len(regs))
	copy(t.registrations, regs)
}

// Lookup scans the snapshot for a registration referencing the event.
// Absence means the user has no registration for it; the returned status is
// empty in that case.
func (t *Tracker) Lookup(eventID string) (bool, models.RegistrationStatus) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, r := range t.registrations {
		if r.Event != nil && r.Event.ID == eventID {
			return true, r.Status
		}
	}
	return false, ""
}

// Registrations returns a copy of the current snapshot.
func (t *Tracker) Registrations() []models.Registration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	regs := make([]models.Registration, len(t.registrations))
	copy(regs, t.registrations)
	return regs
}

// Begin raises the in-flight intent flag for an event. It returns false —
// and raises nothing — when a submission is already in flight for that
// event or the user is already registered, making a second rapid submit a
// no-op before any network call happens.
func (t *Tracker) Begin(eventID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inflight[eventID] {
		return false
	}
	for _, r := range t.registrations {
		if r.Event != nil && r.Event.ID == eventID {
			return false
		}
	}
	t.inflight[eventID] = true
	return true
}

// Finish clears the intent flag for an event. Called on every submission
// outcome, success or failure, so the control always becomes actionable
// again.
func (t *Tracker) Finish(eventID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.inflight, eventID)
}

// InFlight reports whether a submission is currently in flight for the
// event.
func (t *Tracker) InFlight(eventID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.inflight[eventID]
}
