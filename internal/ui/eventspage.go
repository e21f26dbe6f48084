package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"bitsa-portal/internal/api"
	"bitsa-portal/internal/auth"
	"bitsa-portal/internal/events"
	"bitsa-portal/internal/models"
	"bitsa-portal/internal/registration"
)

// User-facing notices, kept identical to the web front end's copy.
const (
	noticeLoadFailed        = "Unable to load events. Please try again later."
	noticeRegistered        = "Success! Your registration was successful."
	noticeAlreadyRegistered = "You are already registered for this event."
	noticeGenericError      = "An error occurred. Please try again later."
	noticeNoEvents          = "No events found matching the filter."
)

// eventsFetchedMsg delivers the events listing fetch result.
type eventsFetchedMsg struct {
	events []models.Event
	err    error
}

// registrationsFetchedMsg delivers the user's registration snapshot.
type registrationsFetchedMsg struct {
	registrations []models.Registration
	err           error
}

// registerResultMsg delivers the outcome of a registration submission.
type registerResultMsg struct {
	eventID string
	err     error
}

// EventsPage is the events listing: temporal buckets, filter, the curated
// featured layout, and the registration affordance. Its Update loop is the
// only writer of the event collection and the registration tracker; network
// calls run as commands and come back as messages.
type EventsPage struct {
	backend Backend
	session *auth.Session
	tracker *registration.Tracker
	log     zerolog.Logger
	keys    KeyMap
	theme   Theme

	events  []models.Event
	filter  events.Filter
	cursor  int
	loading bool

	errBanner   string
	notice      string
	noticeIsErr bool

	showLoginModal bool

	width  int
	height int
}

// NewEventsPage creates the events listing page.
func NewEventsPage(backend Backend, session *auth.Session, logger zerolog.Logger) EventsPage {
	return EventsPage{
		backend: backend,
		session: session,
		tracker: registration.NewTracker(),
		log:     logger.With().Str("component", "events-page").Logger(),
		keys:    DefaultKeyMap,
		theme:   DefaultTheme,
		filter:  events.FilterAll,
		loading: true,
	}
}

// Init starts the initial fetches. Registrations are only fetched for a
// logged-in user, matching the token-gated effect in the original page.
func (p EventsPage) Init() tea.Cmd {
	cmds := []tea.Cmd{p.fetchEvents()}
	if p.session.Authenticated() {
		cmds = append(cmds, p.fetchRegistrations())
	}
	return tea.Batch(cmds...)
}

func (p EventsPage) fetchEvents() tea.Cmd {
	backend := p.backend
	return func() tea.Msg {
		evts, err := backend.ListEvents(context.Background())
		return eventsFetchedMsg{events: evts, err: err}
	}
}

func (p EventsPage) fetchRegistrations() tea.Cmd {
	backend := p.backend
	return func() tea.Msg {
		regs, err := backend.MyRegistrations(context.Background())
		return registrationsFetchedMsg{registrations: regs, err: err}
	}
}

// submitRegistration runs the submit contract for the selected event:
// unauthenticated callers get the login prompt without a network call, and
// the intent gate suppresses a second submission while one is in flight or
// after the user is already registered.
func (p *EventsPage) submitRegistration(eventID string) tea.Cmd {
	if !p.session.Authenticated() {
		p.showLoginModal = true
		return nil
	}
	if !p.tracker.Begin(eventID) {
		return nil
	}

	backend := p.backend
	return func() tea.Msg {
		err := backend.Register(context.Background(), eventID)
		return registerResultMsg{eventID: eventID, err: err}
	}
}

// Update implements the page's message loop.
func (p EventsPage) Update(msg tea.Msg) (EventsPage, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case eventsFetchedMsg:
		p.loading = false
		if msg.err != nil {
			p.log.Error().Err(msg.err).Msg("events fetch failed")
			p.events = nil
			p.errBanner = noticeLoadFailed
			return p, nil
		}
		p.errBanner = ""
		p.events = msg.events
		p.clampCursor()

	case registrationsFetchedMsg:
		if msg.err != nil {
			// Degrades to an empty registration set; the listing still works.
			p.log.Error().Err(msg.err).Msg("registrations fetch failed")
			return p, nil
		}
		p.tracker.Replace(msg.registrations)

	case registerResultMsg:
		// Intent cleared on every outcome so the control stays actionable.
		p.tracker.Finish(msg.eventID)
		switch {
		case msg.err == nil:
			p.setNotice(noticeRegistered, false)
			// Re-fetch both sets so server-computed state is reflected.
			return p, tea.Batch(p.fetchEvents(), p.fetchRegistrations())
		case errors.Is(msg.err, api.ErrNotAuthenticated):
			p.showLoginModal = true
		case api.IsConflict(msg.err):
			// Reconciliation, not failure: the registration exists
			// server-side, so pull it in rather than allowing a retry.
			p.setNotice(noticeAlreadyRegistered, true)
			return p, p.fetchRegistrations()
		default:
			p.log.Error().Err(msg.err).Str("event_id", msg.eventID).Msg("registration failed")
			p.setNotice(noticeGenericError, true)
		}

	case tea.KeyMsg:
		if p.showLoginModal {
			if key.Matches(msg, p.keys.Dismiss) || key.Matches(msg, p.keys.Register) {
				p.showLoginModal = false
			}
			return p, nil
		}

		switch {
		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.visible())-1 {
				p.cursor++
			}
		case key.Matches(msg, p.keys.CycleFilter):
			p.filter = nextFilter(p.filter)
			p.clampCursor()
		case key.Matches(msg, p.keys.Refresh):
			p.loading = true
			return p, p.Init()
		case key.Matches(msg, p.keys.Register):
			if selected := p.selectedEvent(); selected != nil {
				return p, p.submitRegistration(selected.ID)
			}
		}
	}

	return p, nil
}

func (p *EventsPage) setNotice(text string, isErr bool) {
	p.notice = text
	p.noticeIsErr = isErr
}

// visible returns the filtered, sorted working set at the current time.
// Status is derived here, at render/query time, never cached.
func (p EventsPage) visible() []models.Event {
	return events.Select(p.events, p.filter, time.Now())
}

func (p *EventsPage) clampCursor() {
	if n := len(p.visible()); p.cursor >= n {
		p.cursor = 0
	}
}

func (p EventsPage) selectedEvent() *models.Event {
	visible := p.visible()
	if p.cursor < 0 || p.cursor >= len(visible) {
		return nil
	}
	return &visible[p.cursor]
}

func nextFilter(current events.Filter) events.Filter {
	for i, f := range events.Filters {
		if f == current {
			return events.Filters[(i+1)%len(events.Filters)]
		}
	}
	return events.FilterAll
}

// registerLabel is the registration control wording for one event.
func (p EventsPage) registerLabel(eventID string) string {
	if p.tracker.InFlight(eventID) {
		return p.theme.RegisterOpen.Render("Registering...")
	}
	registered, status := p.tracker.Lookup(eventID)
	if !registered {
		return p.theme.RegisterOpen.Render("Register Now")
	}
	switch status {
	case models.RegistrationApproved:
		return p.theme.RegisterApproved.Render("✓ Approved - Registered")
	case models.RegistrationRejected:
		return p.theme.RegisterRejected.Render("✗ Registration Rejected")
	default:
		return p.theme.RegisterPending.Render("⏳ Pending Approval")
	}
}

// View renders the listing: filter line, featured slots, overflow grid.
func (p EventsPage) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n",
		p.theme.SectionTitle.Render("BITSA Events Calendar"),
		p.theme.Help.Render(fmt.Sprintf("filter: %s (f to change)", p.filter)))

	if p.notice != "" {
		style := p.theme.Notice
		if p.noticeIsErr {
			style = p.theme.ErrorBanner
		}
		b.WriteString(style.Render(p.notice) + "\n")
	}

	switch {
	case p.loading:
		b.WriteString(p.theme.Help.Render("Loading events...") + "\n")
	case p.errBanner != "":
		b.WriteString(p.theme.ErrorBanner.Render(p.errBanner) + "\n")
	default:
		b.WriteString(p.renderListing())
	}

	if p.showLoginModal {
		b.WriteString("\n" + p.theme.Modal.Render(
			p.theme.CardTitle.Render("Login Required")+"\n"+
				"You need to log in to register for events.\n"+
				p.theme.Help.Render("Set BITSA_TOKEN and restart. esc to dismiss.")))
	}

	b.WriteString("\n" + p.theme.Help.Render("↑/↓ select · enter register · f filter · R reload · tab dashboard · q quit"))
	return b.String()
}

func (p EventsPage) renderListing() string {
	visible := p.visible()
	if len(visible) == 0 {
		return p.theme.Placeholder.Render(noticeNoEvents+"\nTry selecting 'All' or check back soon!") + "\n"
	}

	layout := events.BuildLayout(visible)
	now := time.Now()

	var sections []string
	index := 0
	for slotIdx := 0; slotIdx < len(layout.Slots); {
		slot := layout.Slots[slotIdx]
		if slot.Hero {
			sections = append(sections, p.renderCard(slot.Event, p.theme.HeroCard, p.cardWidth(1), index, now))
			index++
			slotIdx++
			continue
		}
		// Half-width slots come in pairs.
		left := p.renderCard(slot.Event, p.theme.HalfCard, p.cardWidth(2), index, now)
		index++
		right := p.renderCard(layout.Slots[slotIdx+1].Event, p.theme.HalfCard, p.cardWidth(2), index, now)
		index++
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
		slotIdx += 2
	}

	if len(layout.Grid) > 0 {
		sections = append(sections, p.theme.SectionTitle.Render("More Events"))
		var row []string
		for _, evt := range layout.Grid {
			e := evt
			row = append(row, p.renderCard(&e, p.theme.GridCard, p.cardWidth(3), index, now))
			index++
			if len(row) == 3 {
				sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, row...))
				row = nil
			}
		}
		if len(row) > 0 {
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// renderCard renders one event card, or a placeholder when the slot is
// empty. index is the event's position in the filtered sequence and drives
// cursor emphasis.
func (p EventsPage) renderCard(evt *models.Event, style lipgloss.Style, width int, index int, now time.Time) string {
	if evt == nil {
		return p.theme.Placeholder.Width(width).Render("No Featured Event")
	}

	title := p.theme.CardTitle.Render(evt.Title)
	if index == p.cursor {
		title = p.theme.Selected.Render(evt.Title)
	}

	description := evt.Description
	if description == "" {
		description = "No description available."
	}

	lines := []string{
		p.theme.badge(events.Status(now, evt.Date)) + " " + title,
		p.theme.CardMeta.Render(evt.Date.Format("January 2, 2006")),
		description,
		p.registerLabel(evt.ID),
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// cardWidth splits the terminal width into n columns, with a floor for
// narrow terminals.
func (p EventsPage) cardWidth(columns int) int {
	total := p.width
	if total <= 0 {
		total = 80
	}
	w := total/columns - 4
	if w < 20 {
		w = 20
	}
	return w
}
