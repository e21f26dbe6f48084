package registration

import (
	"testing"

	"bitsa-portal/internal/models"
)

func snapshot() []models.Registration {
	return []models.Registration{
		{ID: "r1", Event: &models.Event{ID: "evt-1"}, Status: models.RegistrationPending},
		{ID: "r2", Event: &models.Event{ID: "evt-2"}, Status: models.RegistrationApproved},
		{ID: "r3", Status: models.RegistrationPending}, // dangling event reference
	}
}

func TestLookup(t *testing.T) {
	tr := NewTracker()

	if ok, status := tr.Lookup("evt-1"); ok || status != "" {
		t.Errorf("empty tracker Lookup = (%v, %q), want (false, \"\")", ok, status)
	}

	tr.Replace(snapshot())

	if ok, status := tr.Lookup("evt-1"); !ok || status != models.RegistrationPending {
		t.Errorf("Lookup(evt-1) = (%v, %q), want (true, Pending)", ok, status)
	}
	if ok, status := tr.Lookup("evt-2"); !ok || status != models.RegistrationApproved {
		t.Errorf("Lookup(evt-2) = (%v, %q), want (true, Approved)", ok, status)
	}
	if ok, _ := tr.Lookup("evt-9"); ok {
		t.Error("Lookup(evt-9) found a registration that does not exist")
	}
}

func TestBeginGatesDuplicateSubmits(t *testing.T) {
	tr := NewTracker()

	if !tr.Begin("evt-1") {
		t.Fatal("first Begin should succeed")
	}
	if tr.Begin("evt-1") {
		t.Error("second Begin while in flight should be refused")
	}
	if !tr.InFlight("evt-1") {
		t.Error("intent flag should be raised")
	}

	// A different event is gated independently.
	if !tr.Begin("evt-2") {
		t.Error("Begin for an unrelated event should succeed")
	}

	tr.Finish("evt-1")
	if tr.InFlight("evt-1") {
		t.Error("Finish should clear the intent flag")
	}
	if !tr.Begin("evt-1") {
		t.Error("Begin after Finish should succeed again")
	}
}

func TestBeginRefusesWhenAlreadyRegistered(t *testing.T) {
	tr := NewTracker()
	tr.Replace(snapshot())

	if tr.Begin("evt-1") {
		t.Error("Begin should refuse an event the user is registered for")
	}
}

func TestFinishIsUnconditional(t *testing.T) {
	tr := NewTracker()

	// Finish without Begin must not panic or leave state behind.
	tr.Finish("evt-1")
	if tr.InFlight("evt-1") {
		t.Error("Finish on a clean event left a flag set")
	}
}

func TestReplaceSwapsWholesale(t *testing.T) {
	tr := NewTracker()
	tr.Replace(snapshot())
	tr.Replace(nil)

	if ok, _ := tr.Lookup("evt-1"); ok {
		t.Error("Replace(nil) should clear the snapshot")
	}
	if got := tr.Registrations(); len(got) != 0 {
		t.Errorf("expected empty snapshot, got %d entries", len(got))
	}
}
