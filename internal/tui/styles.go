package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/persons/internal/activity"
	"github.com/idilsaglam/persons/internal/notify"
	"github.com/idilsaglam/persons/internal/view"
)

// ------- styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("240")).Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("12"))
)

func badgeStyle(b view.Badge) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0"))
	switch b {
	case view.BadgeInfo:
		return base.Background(lipgloss.Color("45"))
	case view.BadgeSuccess:
		return base.Background(lipgloss.Color("42"))
	case view.BadgeWarning:
		return base.Background(lipgloss.Color("214"))
	default:
		return base.Background(lipgloss.Color("9")).Foreground(lipgloss.Color("15"))
	}
}

func severityStyle(s notify.Severity) lipgloss.Style {
	switch s {
	case notify.Success:
		return successStyle
	case notify.Danger:
		return errorStyle
	case notify.Warning:
		return warningStyle
	default:
		return infoStyle
	}
}

func outcomeStyle(o activity.Outcome) lipgloss.Style {
	switch o {
	case activity.Success:
		return successStyle
	case activity.Error:
		return errorStyle
	case activity.Warning:
		return warningStyle
	default:
		return infoStyle
	}
}

func panel(inner string, focused bool, width int) string {
	st := panelStyle
	if focused {
		st = focusedPanelStyle
	}
	if width > 0 {
		st = st.Width(width)
	}
	return st.Render(inner)
}
