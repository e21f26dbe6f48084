package ui

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"bitsa-portal/internal/models"
)

func dashboardFixture(backend *fakeBackend) DashboardPage {
	page := NewDashboardPage(backend, loggedIn(), zerolog.Nop())
	page.inbox.Replace([]models.Message{
		{ID: "m1", Subject: "Card", Replied: true, ReadStatus: models.MessageUnread, AdminReply: "Ready."},
		{ID: "m2", Subject: "Idea", Replied: true, ReadStatus: models.MessageRead, AdminReply: "Nice."},
		{ID: "m3", Subject: "Fees", Replied: false},
	})
	return page
}

func TestViewNotificationsHighlightsUnreadIDs(t *testing.T) {
	page := dashboardFixture(&fakeBackend{})

	cmd := page.viewNotifications()
	if cmd == nil {
		t.Fatal("view-notifications must arm the highlight timer")
	}

	if page.highlights.Len() != 1 || !page.highlights.Contains("m1") {
		t.Errorf("highlight set should contain exactly the unread reply ids, got len %d", page.highlights.Len())
	}
	if page.highlights.Contains("m2") || page.highlights.Contains("m3") {
		t.Error("read and unreplied messages must not be highlighted")
	}
}

func TestHighlightClearedByTimerRegardlessOfOtherActions(t *testing.T) {
	page := dashboardFixture(&fakeBackend{})
	page.viewNotifications()

	// Unrelated state changes in the interim do not keep the highlight alive.
	page, _ = page.Update(dashboardRegsMsg{registrations: []models.Registration{{ID: "r1"}}})

	page, _ = page.Update(highlightExpiredMsg{})
	if page.highlights.Len() != 0 {
		t.Errorf("highlight set should be empty after the timer, got %d", page.highlights.Len())
	}
}

func TestMarkReadOnlyAfterServerAck(t *testing.T) {
	backend := &fakeBackend{}
	page := dashboardFixture(backend)

	cmd := page.markRead("m1")
	if cmd == nil {
		t.Fatal("mark-read on an unread reply should produce a command")
	}

	// Still unread until the result message lands.
	if page.inbox.UnreadReplyCount() != 1 {
		t.Error("status must not change before the server confirms")
	}

	page, _ = page.Update(cmd().(markReadResultMsg))
	if page.inbox.UnreadReplyCount() != 0 {
		t.Error("status should be read after the server confirms")
	}
	if page.notice != noticeMarkedRead {
		t.Errorf("notice = %q, want %q", page.notice, noticeMarkedRead)
	}
}

func TestMarkReadFailureLeavesStateUnchanged(t *testing.T) {
	backend := &fakeBackend{markReadErr: errors.New("boom")}
	page := dashboardFixture(backend)

	cmd := page.markRead("m1")
	page, _ = page.Update(cmd().(markReadResultMsg))

	if page.inbox.UnreadReplyCount() != 1 {
		t.Error("failed mark-read must leave the message unread")
	}
	if page.notice != noticeMarkReadFailed {
		t.Errorf("notice = %q, want %q", page.notice, noticeMarkReadFailed)
	}
}

func TestMarkReadEntryPointsConverge(t *testing.T) {
	backend := &fakeBackend{}
	page := dashboardFixture(backend)

	// Click-to-read and the explicit control in the same interaction: the
	// second trigger is suppressed while the first is in flight.
	first := page.markRead("m1")
	if second := page.markRead("m1"); second != nil {
		t.Fatal("second mark-read trigger should be a no-op")
	}

	first()
	if backend.markReadCalls != 1 {
		t.Errorf("expected exactly 1 mark-read call, got %d", backend.markReadCalls)
	}
}

func TestMarkReadIgnoresReadAndUnreplied(t *testing.T) {
	page := dashboardFixture(&fakeBackend{})

	if cmd := page.markRead("m2"); cmd != nil {
		t.Error("already-read reply should not trigger a call")
	}
	if cmd := page.markRead("m3"); cmd != nil {
		t.Error("unreplied message has no read state to transition")
	}
}

func TestUnreadCountRecomputedAfterTransition(t *testing.T) {
	page := dashboardFixture(&fakeBackend{})

	if got := page.inbox.UnreadReplyCount(); got != 1 {
		t.Fatalf("initial unread count = %d, want 1", got)
	}
	page.markRead("m1")
	page, _ = page.Update(markReadResultMsg{messageID: "m1"})
	if got := page.inbox.UnreadReplyCount(); got != 0 {
		t.Errorf("unread count after transition = %d, want 0", got)
	}
}
