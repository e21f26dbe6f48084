package ui

import (
	"github.com/charmbracelet/lipgloss"

	"bitsa-portal/internal/models"
)

// Theme bundles the lipgloss styles for both pages.
type Theme struct {
	AppTitle  lipgloss.Style
	PageTab   lipgloss.Style
	ActiveTab lipgloss.Style

	HeroCard    lipgloss.Style
	HalfCard    lipgloss.Style
	GridCard    lipgloss.Style
	Placeholder lipgloss.Style
	CardTitle   lipgloss.Style
	CardMeta    lipgloss.Style
	Selected    lipgloss.Style

	BadgeOngoing  lipgloss.Style
	BadgeUpcoming lipgloss.Style
	BadgePast     lipgloss.Style

	RegisterOpen     lipgloss.Style
	RegisterPending  lipgloss.Style
	RegisterApproved lipgloss.Style
	RegisterRejected lipgloss.Style

	Notice      lipgloss.Style
	ErrorBanner lipgloss.Style
	Modal       lipgloss.Style

	SectionTitle lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	UnreadReply  lipgloss.Style
	ReadReply    lipgloss.Style
	Highlighted  lipgloss.Style
	Bell         lipgloss.Style
	Help         lipgloss.Style
}

// DefaultTheme is the standard portal palette: BITSA blue with the
// traffic-light registration states the web front end uses.
var DefaultTheme = Theme{
	AppTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27")),
	PageTab:   lipgloss.NewStyle().Faint(true).Padding(0, 2),
	ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27")).Padding(0, 2).Underline(true),

	HeroCard:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("27")).Padding(0, 1),
	HalfCard:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 1),
	GridCard:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	Placeholder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Faint(true).Padding(0, 1),
	CardTitle:   lipgloss.NewStyle().Bold(true),
	CardMeta:    lipgloss.NewStyle().Faint(true),
	Selected:    lipgloss.NewStyle().Reverse(true),

	BadgeOngoing:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
	BadgeUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("27")).Bold(true),
	BadgePast:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),

	RegisterOpen:     lipgloss.NewStyle().Foreground(lipgloss.Color("27")).Bold(true),
	RegisterPending:  lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	RegisterApproved: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	RegisterRejected: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),

	Notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	ErrorBanner: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	Modal:       lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("27")).Padding(1, 3),

	SectionTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
	Label:        lipgloss.NewStyle().Faint(true),
	Value:        lipgloss.NewStyle().Bold(true),
	UnreadReply:  lipgloss.NewStyle().Foreground(lipgloss.Color("178")).Bold(true),
	ReadReply:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	Highlighted:  lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("16")),
	Bell:         lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("231")).Padding(0, 1).Bold(true),
	Help:         lipgloss.NewStyle().Faint(true),
}

// badge returns the styled status tag for a derived event status.
func (t Theme) badge(status models.EventStatus) string {
	switch status {
	case models.StatusOngoing:
		return t.BadgeOngoing.Render("[" + string(status) + "]")
	case models.StatusUpcoming:
		return t.BadgeUpcoming.Render("[" + string(status) + "]")
	default:
		return t.BadgePast.Render("[" + string(status) + "]")
	}
}
