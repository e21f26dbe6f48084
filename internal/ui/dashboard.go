package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"bitsa-portal/internal/api"
	"bitsa-portal/internal/auth"
	"bitsa-portal/internal/models"
	"bitsa-portal/internal/notify"
)

// Dashboard copy, kept identical to the web front end's.
const (
	noticeLoginRequired  = "Please log in to view your dashboard"
	noticeProfileFailed  = "Failed to load profile"
	noticeProfileSaved   = "Profile updated successfully!"
	noticeProfileErr     = "Failed to update profile"
	noticeMarkedRead     = "Reply marked as read."
	noticeMarkReadFailed = "Failed to mark as read."
)

// fixedHeaderRows is the portal header overlaying the dashboard viewport;
// the notification scroll target is offset by it so the messages section
// lands below the header, mirroring the web page's sticky-header offset.
const fixedHeaderRows = 2

// profileFetchedMsg delivers the profile fetch result.
type profileFetchedMsg struct {
	profile *models.Profile
	err     error
}

// profileSavedMsg delivers the profile update result.
type profileSavedMsg struct {
	profile *models.Profile
	err     error
}

// messagesFetchedMsg delivers the contact-message snapshot.
type messagesFetchedMsg struct {
	messages []models.Message
	err      error
}

// dashboardRegsMsg delivers the registration list shown on the dashboard.
type dashboardRegsMsg struct {
	registrations []models.Registration
	err           error
}

// markReadResultMsg delivers the outcome of a mark-as-read call.
type markReadResultMsg struct {
	messageID string
	err       error
}

// highlightExpiredMsg fires when the notification highlight window ends.
type highlightExpiredMsg struct{}

// DashboardPage is the member dashboard: profile, event registrations, and
// the contact messages with admin replies. It owns the unread-reply
// tracking, the view-notifications highlight, and the mark-as-read flow.
type DashboardPage struct {
	backend Backend
	session *auth.Session
	log     zerolog.Logger
	keys    KeyMap
	theme   Theme

	profile       *models.Profile
	registrations []models.Registration
	inbox         *notify.Inbox
	highlights    *notify.HighlightSet
	markInFlight  map[string]bool

	viewport  viewport.Model
	msgCursor int

	editing    bool
	emailInput textinput.Model

	notice      string
	noticeIsErr bool
	loading     bool

	width  int
	height int
}

// NewDashboardPage creates the dashboard page.
func NewDashboardPage(backend Backend, session *auth.Session, logger zerolog.Logger) DashboardPage {
	input := textinput.New()
	input.Placeholder = "email@student.example"
	input.CharLimit = 120

	return DashboardPage{
		backend:      backend,
		session:      session,
		log:          logger.With().Str("component", "dashboard").Logger(),
		keys:         DefaultKeyMap,
		theme:        DefaultTheme,
		inbox:        notify.NewInbox(),
		highlights:   notify.NewHighlightSet(),
		markInFlight: make(map[string]bool),
		viewport:     viewport.New(80, 20),
		emailInput:   input,
		loading:      true,
	}
}

// Init starts the dashboard fetches. Without a login there is nothing to
// fetch; the view shows the login notice instead.
func (p DashboardPage) Init() tea.Cmd {
	if !p.session.Authenticated() {
		return nil
	}
	return tea.Batch(p.fetchProfile(), p.fetchRegistrations(), p.fetchMessages())
}

func (p DashboardPage) fetchProfile() tea.Cmd {
	backend := p.backend
	return func() tea.Msg {
		profile, err := backend.Profile(context.Background())
		return profileFetchedMsg{profile: profile, err: err}
	}
}

func (p DashboardPage) fetchRegistrations() tea.Cmd {
	backend := p.backend
	return func() tea.Msg {
		regs, err := backend.MyRegistrations(context.Background())
		return dashboardRegsMsg{registrations: regs, err: err}
	}
}

func (p DashboardPage) fetchMessages() tea.Cmd {
	backend := p.backend
	return func() tea.Msg {
		msgs, err := backend.MyMessages(context.Background())
		return messagesFetchedMsg{messages: msgs, err: err}
	}
}

// markRead is the single mark-as-read entry point: both the explicit key
// and opening an unread reply converge here, and the in-flight guard keeps
// one interaction from invoking the transition twice. Local state changes
// only when the server acknowledges (in the markReadResultMsg handler).
func (p *DashboardPage) markRead(messageID string) tea.Cmd {
	if p.markInFlight[messageID] {
		return nil
	}
	unread := false
	for _, m := range p.inbox.Messages() {
		if m.ID == messageID && m.Replied && m.ReadStatus == models.MessageUnread {
			unread = true
			break
		}
	}
	if !unread {
		return nil
	}

	p.markInFlight[messageID] = true
	backend := p.backend
	return func() tea.Msg {
		err := backend.MarkMessageRead(context.Background(), messageID)
		return markReadResultMsg{messageID: messageID, err: err}
	}
}

// viewNotifications computes the unread id set, scrolls the viewport to the
// messages section (offset for the fixed header), and arms the highlight
// window. The clear two seconds later is timer-driven and unconditional.
func (p *DashboardPage) viewNotifications() tea.Cmd {
	ids := p.inbox.UnreadReplyIDs()
	p.highlights.Set(ids)

	target := p.messagesSectionLine() - fixedHeaderRows
	if target < 0 {
		target = 0
	}
	p.viewport.SetYOffset(target)

	return tea.Tick(notify.HighlightDuration, func(time.Time) tea.Msg {
		return highlightExpiredMsg{}
	})
}

// Update implements the page's message loop.
func (p DashboardPage) Update(msg tea.Msg) (DashboardPage, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.viewport.Width = msg.Width
		p.viewport.Height = msg.Height - fixedHeaderRows - 2

	case profileFetchedMsg:
		p.loading = false
		if msg.err != nil {
			p.log.Error().Err(msg.err).Msg("profile fetch failed")
			p.setNotice(noticeProfileFailed, true)
			return p, nil
		}
		p.profile = msg.profile

	case profileSavedMsg:
		if msg.err != nil {
			p.log.Error().Err(msg.err).Msg("profile update failed")
			p.setNotice(noticeProfileErr, true)
			return p, nil
		}
		p.profile = msg.profile
		p.editing = false
		p.setNotice(noticeProfileSaved, false)

	case dashboardRegsMsg:
		if msg.err != nil {
			p.log.Error().Err(msg.err).Msg("registrations fetch failed")
			return p, nil
		}
		p.registrations = msg.registrations

	case messagesFetchedMsg:
		if msg.err != nil {
			// Degrades to an empty inbox rather than crashing the page.
			p.log.Error().Err(msg.err).Msg("messages fetch failed")
			return p, nil
		}
		p.inbox.Replace(msg.messages)
		p.clampMsgCursor()

	case markReadResultMsg:
		delete(p.markInFlight, msg.messageID)
		if msg.err != nil {
			// Local state untouched on failure.
			p.log.Error().Err(msg.err).Str("message_id", msg.messageID).Msg("mark-as-read failed")
			p.setNotice(noticeMarkReadFailed, true)
			return p, nil
		}
		p.inbox.MarkRead(msg.messageID)
		p.setNotice(noticeMarkedRead, false)

	case highlightExpiredMsg:
		p.highlights.Clear()

	case tea.KeyMsg:
		if p.editing {
			return p.updateProfileEdit(msg)
		}

		switch {
		case key.Matches(msg, p.keys.Up):
			if p.msgCursor > 0 {
				p.msgCursor--
			}
			p.viewport.LineUp(1)
		case key.Matches(msg, p.keys.Down):
			if p.msgCursor < len(p.inbox.Messages())-1 {
				p.msgCursor++
			}
			p.viewport.LineDown(1)
		case key.Matches(msg, p.keys.Notifications):
			return p, p.viewNotifications()
		case key.Matches(msg, p.keys.Open), key.Matches(msg, p.keys.MarkRead):
			if selected := p.selectedMessage(); selected != nil {
				return p, p.markRead(selected.ID)
			}
		case key.Matches(msg, p.keys.EditProfile):
			if p.profile != nil {
				p.editing = true
				p.emailInput.SetValue(p.profile.Email)
				p.emailInput.Focus()
			}
		case key.Matches(msg, p.keys.Refresh):
			p.loading = true
			return p, p.Init()
		}
	}

	return p, nil
}

// updateProfileEdit routes keystrokes to the email input while editing.
// Enter saves, escape cancels and restores the stored value.
func (p DashboardPage) updateProfileEdit(msg tea.KeyMsg) (DashboardPage, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		email := strings.TrimSpace(p.emailInput.Value())
		backend := p.backend
		return p, func() tea.Msg {
			profile, err := backend.UpdateProfile(context.Background(), api.UpdateProfileInput{Email: email})
			return profileSavedMsg{profile: profile, err: err}
		}
	case tea.KeyEsc:
		p.editing = false
		p.emailInput.Blur()
		return p, nil
	}

	var cmd tea.Cmd
	p.emailInput, cmd = p.emailInput.Update(msg)
	return p, cmd
}

func (p *DashboardPage) setNotice(text string, isErr bool) {
	p.notice = text
	p.noticeIsErr = isErr
}

func (p *DashboardPage) clampMsgCursor() {
	if n := len(p.inbox.Messages()); p.msgCursor >= n {
		p.msgCursor = 0
	}
}

func (p DashboardPage) selectedMessage() *models.Message {
	msgs := p.inbox.Messages()
	if p.msgCursor < 0 || p.msgCursor >= len(msgs) {
		return nil
	}
	return &msgs[p.msgCursor]
}

// messagesSectionLine is the line offset of the messages section inside the
// rendered dashboard content, the scroll target for view-notifications.
func (p DashboardPage) messagesSectionLine() int {
	content := p.renderContent()
	marker := p.theme.SectionTitle.Render(messagesSectionTitle)
	for i, line := range strings.Split(content, "\n") {
		if strings.Contains(line, marker) {
			return i
		}
	}
	return 0
}

const messagesSectionTitle = "My Messages & Admin Replies"

// View renders the dashboard inside its viewport, under the fixed header.
func (p DashboardPage) View() string {
	if !p.session.Authenticated() {
		return p.theme.ErrorBanner.Render(noticeLoginRequired)
	}
	if p.loading {
		return p.theme.Help.Render("Loading dashboard...")
	}

	header := p.renderHeader()
	p.viewport.SetContent(p.renderContent())
	return header + "\n" + p.viewport.View() + "\n" +
		p.theme.Help.Render("↑/↓ move · enter/x mark read · n notifications · e edit profile · R reload · tab events · q quit")
}

func (p DashboardPage) renderHeader() string {
	title := p.theme.SectionTitle.Render("My Dashboard")
	if count := p.inbox.UnreadReplyCount(); count > 0 {
		word := "Replies"
		if count == 1 {
			word = "Reply"
		}
		return title + "  " + p.theme.Bell.Render(fmt.Sprintf("🔔 %d Unread %s!", count, word))
	}
	return title
}

func (p DashboardPage) renderContent() string {
	var b strings.Builder

	if p.notice != "" {
		style := p.theme.Notice
		if p.noticeIsErr {
			style = p.theme.ErrorBanner
		}
		b.WriteString(style.Render(p.notice) + "\n\n")
	}

	b.WriteString(p.renderProfile())
	b.WriteString("\n" + p.renderRegistrations())
	b.WriteString("\n" + p.renderMessages())
	return b.String()
}

func (p DashboardPage) renderProfile() string {
	if p.profile == nil {
		return p.theme.Help.Render("Profile not found") + "\n"
	}

	var b strings.Builder
	b.WriteString(p.theme.SectionTitle.Render("Profile Information") + "\n")

	email := p.theme.Value.Render(p.profile.Email)
	if p.editing {
		email = p.emailInput.View() + p.theme.Help.Render("  (enter save · esc cancel)")
	}
	fmt.Fprintf(&b, "%s %s\n", p.theme.Label.Render("Email:"), email)

	rows := []struct{ label, value string }{
		{"Full Name", p.profile.Name},
		{"Student ID", p.profile.StudentID},
		{"Course", p.profile.Course},
	}
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = "Not set"
		}
		fmt.Fprintf(&b, "%s %s\n", p.theme.Label.Render(row.label+":"), p.theme.Value.Render(value))
	}
	year := "Not set"
	if p.profile.Year > 0 {
		year = fmt.Sprintf("Year %d", p.profile.Year)
	}
	fmt.Fprintf(&b, "%s %s\n", p.theme.Label.Render("Year of Study:"), p.theme.Value.Render(year))

	memberSince := "Not available"
	if !p.profile.CreatedAt.IsZero() {
		memberSince = p.profile.CreatedAt.Format("January 2, 2006")
	}
	fmt.Fprintf(&b, "%s %s\n", p.theme.Label.Render("Member Since:"), p.theme.Value.Render(memberSince))
	return b.String()
}

func (p DashboardPage) renderRegistrations() string {
	if len(p.registrations) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.theme.SectionTitle.Render("My Event Registrations") + "\n")
	for _, reg := range p.registrations {
		title := "(event removed)"
		date := ""
		if reg.Event != nil {
			title = reg.Event.Title
			if !reg.Event.Date.IsZero() {
				date = reg.Event.Date.Format("January 2, 2006")
			}
		}
		fmt.Fprintf(&b, "%s %s %s\n", p.statusIcon(reg.Status), p.theme.Value.Render(title), p.theme.CardMeta.Render(date))
		if reg.Notes != "" {
			b.WriteString(p.theme.Help.Render("  Note: "+reg.Notes) + "\n")
		}
	}
	return b.String()
}

func (p DashboardPage) statusIcon(status models.RegistrationStatus) string {
	switch status {
	case models.RegistrationApproved:
		return p.theme.RegisterApproved.Render("✓")
	case models.RegistrationRejected:
		return p.theme.RegisterRejected.Render("✗")
	default:
		return p.theme.RegisterPending.Render("⏳")
	}
}

func (p DashboardPage) renderMessages() string {
	var b strings.Builder
	b.WriteString(p.theme.SectionTitle.Render(messagesSectionTitle) + "\n")

	msgs := p.inbox.Messages()
	if len(msgs) == 0 {
		b.WriteString(p.theme.Help.Render("You have not sent any messages yet.") + "\n")
		return b.String()
	}

	for i, m := range msgs {
		subject := p.theme.Value.Render("Subject: " + m.Subject)
		if i == p.msgCursor {
			subject = p.theme.Selected.Render("Subject: " + m.Subject)
		}
		tag := p.theme.Help.Render("PENDING")
		if m.Replied {
			if m.ReadStatus == models.MessageUnread {
				tag = p.theme.UnreadReply.Render("🔔 NEW REPLY")
			} else {
				tag = p.theme.ReadReply.Render("REPLIED")
			}
		}
		fmt.Fprintf(&b, "%s %s\n", subject, tag)
		fmt.Fprintf(&b, "%s\n", p.theme.CardMeta.Render("Sent on: "+m.CreatedAt.Format("Jan 2, 2006 15:04")))
		fmt.Fprintf(&b, "%s %s\n", p.theme.Label.Render("Your Query:"), m.Body)

		if m.Replied && m.AdminReply != "" {
			reply := "Admin Response: " + m.AdminReply
			switch {
			case p.highlights.Contains(m.ID):
				b.WriteString(p.theme.Highlighted.Render(reply) + "\n")
			case m.ReadStatus == models.MessageUnread:
				b.WriteString(p.theme.UnreadReply.Render(reply) + "\n")
				b.WriteString(p.theme.Help.Render("  enter/x to mark reply as read") + "\n")
			default:
				b.WriteString(p.theme.ReadReply.Render(reply) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
