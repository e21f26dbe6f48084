package ui

import (
	"context"

	"bitsa-portal/internal/api"
	"bitsa-portal/internal/models"
)

// Backend is the slice of the association API the portal pages consume.
// *api.Client satisfies it; tests substitute a fake.
type Backend interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	MyRegistrations(ctx context.Context) ([]models.Registration, error)
	Register(ctx context.Context, eventID string) error
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, input api.UpdateProfileInput) (*models.Profile, error)
	MyMessages(ctx context.Context) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, messageID string) error
	ResolveImage(ref string) string
}
