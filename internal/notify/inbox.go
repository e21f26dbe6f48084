package notify

import (
	"sync"

	"bitsa-portal/internal/models"
)

// Inbox holds the member's contact messages and their reply read-state. The
// collection is replaced wholesale on each fetch; the only local mutation is
// MarkRead, applied after — never before — the server acknowledges the
// transition.
type Inbox struct {
	mu       sync.RWMutex
	messages []models.Message
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{}
}

// Replace swaps in a fresh message snapshot from the server.
func (in *Inbox) Replace(msgs []models.Message) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.messages = make([]models.Message, len(msgs))
	copy(in.messages, msgs)
}

// Messages returns a copy of the current snapshot.
func (in *Inbox) Messages() []models.Message {
	in.mu.RLock()
	defer in.mu.RUnlock()

	msgs := make([]models.Message, len(in.messages))
	copy(msgs, in.messages)
	return msgs
}

// UnreadReplyCount counts messages with an unread admin reply. An
// unreplied message has no read/unread distinction and never counts.
func (in *Inbox) UnreadReplyCount() int {
	in.mu.RLock()
	defer in.mu.RUnlock()

	count := 0
	for _, m := range in.messages {
		if m.Replied && m.ReadStatus == models.MessageUnread {
			count++
		}
	}
	return count
}

// UnreadReplyIDs returns the ids of messages with an unread admin reply, in
// snapshot order. This is the id set the view-notifications action
// highlights.
func (in *Inbox) UnreadReplyIDs() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()

	var ids []string
	for _, m := range in.messages {
		if m.Replied && m.ReadStatus == models.MessageUnread {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// MarkRead transitions the local copy of a message to read. Callers invoke
// it only after the mark-read API call succeeds; on a failed call the local
// state stays untouched. Returns false when the id is unknown.
func (in *Inbox) MarkRead(id string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	for i := range in.messages {
		if in.messages[i].ID == id {
			in.messages[i].ReadStatus = models.MessageRead
			return true
		}
	}
	return false
}
