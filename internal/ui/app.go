package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"bitsa-portal/internal/auth"
)

// Page identifies which portal page is active.
type Page int

const (
	// PageEvents shows the events listing and registration flow.
	PageEvents Page = iota
	// PageDashboard shows the member profile, registrations and messages.
	PageDashboard
)

// App is the top-level bubbletea model: a header with page tabs and the
// two portal pages. Messages fan out to both pages so fetch results land
// wherever they belong regardless of which page is visible.
type App struct {
	keys  KeyMap
	theme Theme

	page      Page
	events    EventsPage
	dashboard DashboardPage

	width  int
	height int
}

// NewApp creates the portal application model.
func NewApp(backend Backend, session *auth.Session, logger zerolog.Logger) App {
	return App{
		keys:      DefaultKeyMap,
		theme:     DefaultTheme,
		events:    NewEventsPage(backend, session, logger),
		dashboard: NewDashboardPage(backend, session, logger),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.events.Init(), a.dashboard.Init())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, a.keys.Quit):
			// Quit works everywhere except while typing in the profile editor.
			if !(a.page == PageDashboard && a.dashboard.editing && keyMsg.String() == "q") {
				return a, tea.Quit
			}
		case key.Matches(keyMsg, a.keys.SwitchPage):
			if a.page == PageEvents {
				a.page = PageDashboard
			} else {
				a.page = PageEvents
			}
			return a, nil
		}

		// Key input goes only to the visible page.
		var cmd tea.Cmd
		if a.page == PageEvents {
			a.events, cmd = a.events.Update(msg)
		} else {
			a.dashboard, cmd = a.dashboard.Update(msg)
		}
		return a, cmd
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		a.height = size.Height
	}

	// Everything else (fetch results, timers, sizes) fans out to both pages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.events, cmd = a.events.Update(msg)
	cmds = append(cmds, cmd)
	a.dashboard, cmd = a.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a App) View() string {
	eventsTab := a.theme.PageTab.Render("Events")
	dashboardTab := a.theme.PageTab.Render("Dashboard")
	if a.page == PageEvents {
		eventsTab = a.theme.ActiveTab.Render("Events")
	} else {
		dashboardTab = a.theme.ActiveTab.Render("Dashboard")
	}
	header := a.theme.AppTitle.Render("BITSA") + eventsTab + dashboardTab

	if a.page == PageEvents {
		return header + "\n" + a.events.View()
	}
	return header + "\n" + a.dashboard.View()
}
