package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bitsa-portal/internal/auth"
	"bitsa-portal/internal/models"
)

// Config holds the API client configuration.
type Config struct {
	BaseURL      string
	AssetBaseURL string
	Timeout      time.Duration
}

// Client talks to the association's HTTP API. Every request is bearer-token
// authenticated and carries a per-call timeout, so a hung request cannot
// leave a submit control stuck forever.
type Client struct {
	cfg      *Config
	session  *auth.Session
	http     *http.Client
	log      zerolog.Logger
	validate *validator.Validate
}

// NewClient creates a new API client
func NewClient(cfg *Config, session *auth.Session, logger zerolog.Logger) *Client {
	return &Client{
		cfg:     cfg,
		session: session,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		log:      logger.With().Str("component", "api").Logger(),
		validate: validator.New(),
	}
}

// adminScopedPrefixes lists the path prefixes for which an admin token, when
// present, takes precedence over the user token.
var adminScopedPrefixes = []string{"/events", "/gallery", "/blogs"}

// bearerToken picks the token to attach for a path. Admin-scoped paths
// prefer the admin token; everything else uses the user token. Empty when
// logged out entirely.
func (c *Client) bearerToken(path string) string {
	admin := strings.Contains(path, "/admin")
	for _, prefix := range adminScopedPrefixes {
		if strings.HasPrefix(path, prefix) {
			admin = true
			break
		}
	}
	if admin && c.session.AdminToken() != "" {
		return c.session.AdminToken()
	}
	return c.session.UserToken()
}

// do issues one request and decodes the JSON response into out (skipped
// when out is nil). Non-2xx responses come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if token := c.bearerToken(path); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("failed to reach API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
		c.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).
			Str("message", apiErr.Message).Msg("API error response")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeErrorMessage pulls a human-readable message out of an error body.
// The backend uses both "message" and "error" keys.
func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// ListEvents fetches every event.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var evts []models.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, "", &evts); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return evts, nil
}

// MyRegistrations fetches the authenticated user's registrations.
func (c *Client) MyRegistrations(ctx context.Context) ([]models.Registration, error) {
	var payload struct {
		Registrations []models.Registration `json:"registrations"`
	}
	if err := c.do(ctx, http.MethodGet, "/events/user/registrations", nil, "", &payload); err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return payload.Registrations, nil
}

// Register submits a registration for an event. The unauthenticated case is
// intercepted here, before any network call; callers surface a login prompt
// for ErrNotAuthenticated and the specific already-registered notice when
// IsConflict reports true.
func (c *Client) Register(ctx context.Context, eventID string) error {
	if !c.session.Authenticated() {
		return ErrNotAuthenticated
	}
	path := fmt.Sprintf("/events/%s/register", eventID)
	if err := c.do(ctx, http.MethodPost, path, nil, "", nil); err != nil {
		return err
	}
	c.log.Info().Str("event_id", eventID).Msg("registration submitted")
	return nil
}

// Profile fetches the member's profile.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var payload struct {
		User *models.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, "", &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return payload.User, nil
}

// UpdateProfileInput carries the editable profile fields. Photo is the raw
// image content; both fields are optional but at least the ones set must
// validate.
type UpdateProfileInput struct {
	Email     string `validate:"omitempty,email"`
	PhotoName string
	Photo     []byte
}

// UpdateProfile sends the changed profile fields as a multipart PUT and
// returns the server's updated copy.
func (c *Client) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.Profile, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid profile input: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if input.Email != "" {
		if err := writer.WriteField("email", input.Email); err != nil {
			return nil, fmt.Errorf("failed to write email field: %w", err)
		}
	}
	if len(input.Photo) > 0 {
		part, err := writer.CreateFormFile("photo", input.PhotoName)
		if err != nil {
			return nil, fmt.Errorf("failed to create photo part: %w", err)
		}
		if _, err := part.Write(input.Photo); err != nil {
			return nil, fmt.Errorf("failed to write photo: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	var payload struct {
		User *models.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/profile", &buf, writer.FormDataContentType(), &payload); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return payload.User, nil
}

// MyMessages fetches the member's contact messages and admin replies.
func (c *Client) MyMessages(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	if err := c.do(ctx, http.MethodGet, "/contact/my", nil, "", &msgs); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// MarkMessageRead asks the server to transition a reply to read. Local
// state must only change after this returns nil.
func (c *Client) MarkMessageRead(ctx context.Context, messageID string) error {
	path := fmt.Sprintf("/contact/%s/read", messageID)
	if err := c.do(ctx, http.MethodPut, path, nil, "", nil); err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

// ResolveImage resolves an event or profile image reference. Absolute URLs
// pass through; anything else is joined to the asset host.
func (c *Client) ResolveImage(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return ref
	}
	return c.cfg.AssetBaseURL + ref
}
