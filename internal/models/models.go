package models

import "time"

// Event is a scheduled BITSA activity. The client holds an immutable
// snapshot per fetch cycle; the temporal status is derived at query time
// and never stored.
type Event struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Location    string    `json:"location,omitempty"`
	Date        time.Time `json:"date"`
}

// EventStatus is the derived temporal bucket of an event.
type EventStatus string

const (
	StatusOngoing  EventStatus = "Ongoing"
	StatusUpcoming EventStatus = "Upcoming"
	StatusPast     EventStatus = "Past"
)

// Registration is the authenticated user's request to attend an event.
// Its status is server-authoritative; the client never infers transitions.
type Registration struct {
	ID     string             `json:"_id"`
	Event  *Event             `json:"event,omitempty"`
	Status RegistrationStatus `json:"status"`
	Notes  string             `json:"notes,omitempty"`
}

// RegistrationStatus represents the approval lifecycle of a registration
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "Pending"
	RegistrationApproved RegistrationStatus = "Approved"
	RegistrationRejected RegistrationStatus = "Rejected"
)

// Message is a contact inquiry sent by the user, optionally answered by an
// admin reply. ReadStatus is meaningful only when Replied is true.
type Message struct {
	ID         string     `json:"_id"`
	Subject    string     `json:"subject"`
	Body       string     `json:"message"`
	CreatedAt  time.Time  `json:"createdAt"`
	Replied    bool       `json:"replied"`
	ReadStatus ReadStatus `json:"status,omitempty"`
	AdminReply string     `json:"adminReply,omitempty"`
}

// ReadStatus tracks whether the user has seen an admin reply.
type ReadStatus string

const (
	MessageUnread ReadStatus = "unread"
	MessageRead   ReadStatus = "read"
)

// Profile is the member's account record.
type Profile struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Photo     string    `json:"photo,omitempty"`
	StudentID string    `json:"studentId,omitempty"`
	Course    string    `json:"course,omitempty"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
