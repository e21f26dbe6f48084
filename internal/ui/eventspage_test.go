package ui

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"bitsa-portal/internal/api"
	"bitsa-portal/internal/auth"
	"bitsa-portal/internal/models"
)

// fakeBackend counts calls and returns canned results.
type fakeBackend struct {
	events        []models.Event
	registrations []models.Registration
	messages      []models.Message
	profile       *models.Profile

	registerErr   error
	markReadErr   error
	registerCalls int
	markReadCalls int
}

func (f *fakeBackend) ListEvents(context.Context) ([]models.Event, error) {
	return f.events, nil
}

func (f *fakeBackend) MyRegistrations(context.Context) ([]models.Registration, error) {
	return f.registrations, nil
}

func (f *fakeBackend) Register(_ context.Context, eventID string) error {
	f.registerCalls++
	return f.registerErr
}

func (f *fakeBackend) Profile(context.Context) (*models.Profile, error) {
	return f.profile, nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, input api.UpdateProfileInput) (*models.Profile, error) {
	return f.profile, nil
}

func (f *fakeBackend) MyMessages(context.Context) ([]models.Message, error) {
	return f.messages, nil
}

func (f *fakeBackend) MarkMessageRead(_ context.Context, messageID string) error {
	f.markReadCalls++
	return f.markReadErr
}

func (f *fakeBackend) ResolveImage(ref string) string { return ref }

// loggedIn returns a session whose opaque token counts as authenticated.
func loggedIn() *auth.Session { return auth.NewSession("opaque-token", "") }

func TestDoubleSubmitIssuesOneCall(t *testing.T) {
	backend := &fakeBackend{}
	page := NewEventsPage(backend, loggedIn(), zerolog.Nop())

	first := page.submitRegistration("evt-1")
	if first == nil {
		t.Fatal("first submit should produce a command")
	}
	// Second submit before the first resolves: suppressed by the intent.
	if second := page.submitRegistration("evt-1"); second != nil {
		t.Fatal("second submit while in flight should be a no-op")
	}

	first()
	if backend.registerCalls != 1 {
		t.Errorf("expected exactly 1 register call, got %d", backend.registerCalls)
	}
}

func TestSubmitUnauthenticatedShowsLoginPrompt(t *testing.T) {
	backend := &fakeBackend{}
	page := NewEventsPage(backend, auth.NewSession("", ""), zerolog.Nop())

	if cmd := page.submitRegistration("evt-1"); cmd != nil {
		t.Fatal("unauthenticated submit should not produce a command")
	}
	if !page.showLoginModal {
		t.Error("login prompt should be shown")
	}
	if backend.registerCalls != 0 {
		t.Errorf("unauthenticated submit reached the network: %d calls", backend.registerCalls)
	}
}

func TestSubmitRefusedWhenAlreadyRegistered(t *testing.T) {
	backend := &fakeBackend{}
	page := NewEventsPage(backend, loggedIn(), zerolog.Nop())
	page.tracker.Replace([]models.Registration{
		{ID: "r1", Event: &models.Event{ID: "evt-1"}, Status: models.RegistrationPending},
	})

	if cmd := page.submitRegistration("evt-1"); cmd != nil {
		t.Error("submit for a registered event should be a no-op")
	}
}

func TestConflictResultShowsSpecificNotice(t *testing.T) {
	backend := &fakeBackend{}
	page := NewEventsPage(backend, loggedIn(), zerolog.Nop())
	page.tracker.Begin("evt-1")

	conflict := &api.Error{StatusCode: 409, Message: "already registered"}
	page, cmd := page.Update(registerResultMsg{eventID: "evt-1", err: conflict})

	if page.notice != noticeAlreadyRegistered {
		t.Errorf("notice = %q, want %q", page.notice, noticeAlreadyRegistered)
	}
	if page.tracker.InFlight("evt-1") {
		t.Error("intent flag must be cleared after a conflict")
	}
	if cmd == nil {
		t.Error("conflict should reconcile by re-fetching registrations")
	}
}

func TestGenericFailureShowsRetryableNotice(t *testing.T) {
	backend := &fakeBackend{}
	page := NewEventsPage(backend, loggedIn(), zerolog.Nop())
	page.tracker.Begin("evt-1")

	page, _ = page.Update(registerResultMsg{eventID: "evt-1", err: &api.Error{StatusCode: 500}})

	if page.notice != noticeGenericError {
		t.Errorf("notice = %q, want %q", page.notice, noticeGenericError)
	}
	if page.tracker.InFlight("evt-1") {
		t.Error("intent flag must be cleared after a failure")
	}
}

func TestSuccessRefreshesBothSets(t *testing.T) {
	backend := &fakeBackend{}
	page := NewEventsPage(backend, loggedIn(), zerolog.Nop())
	page.tracker.Begin("evt-1")

	page, cmd := page.Update(registerResultMsg{eventID: "evt-1"})

	if page.notice != noticeRegistered {
		t.Errorf("notice = %q, want %q", page.notice, noticeRegistered)
	}
	if cmd == nil {
		t.Fatal("success must schedule the re-fetch of events and registrations")
	}
	if page.tracker.InFlight("evt-1") {
		t.Error("intent flag must be cleared after success")
	}
}

func TestFailedFetchSetsBannerAndEmptiesSet(t *testing.T) {
	backend := &fakeBackend{}
	page := NewEventsPage(backend, loggedIn(), zerolog.Nop())
	page.events = []models.Event{{ID: "stale"}}

	page, _ = page.Update(eventsFetchedMsg{err: context.DeadlineExceeded})

	if page.errBanner != noticeLoadFailed {
		t.Errorf("banner = %q, want %q", page.errBanner, noticeLoadFailed)
	}
	if len(page.events) != 0 {
		t.Error("failed fetch must leave the working set empty")
	}
}
