package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/persons/internal/activity"
	"github.com/idilsaglam/persons/internal/view"
)

const sideWidth = 44

func listWidth(total int) int {
	if total < 90 {
		return max(total-6, 20)
	}
	return total - sideWidth - 8
}

func (m Model) View() string {
	sections := []string{m.headerView(), m.statsView()}
	if n := m.notificationsView(); n != "" {
		sections = append(sections, n)
	}

	main := m.listView()
	switch {
	case m.details != "":
		main = panel(titleStyle.Render("Details")+"\n\n"+m.details+"\n\n"+mutedStyle.Render("press any key to close"), true, 0)
	case m.confirmID != 0:
		main = panel(warningStyle.Render(fmt.Sprintf("Delete person #%d?", m.confirmID))+"\n\n"+mutedStyle.Render("y to confirm, any other key to abort"), true, 0)
	}

	side := lipgloss.JoinVertical(lipgloss.Left, m.formView(), m.searchView(), m.activityView())
	if m.width < 90 {
		sections = append(sections, main, side)
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, main, " ", side))
	}

	if m.focus == focusForm {
		sections = append(sections, m.help.View(formHelp{m.keys}))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}
	return strings.Join(sections, "\n")
}

func (m Model) headerView() string {
	status := mutedStyle.Render("checking...")
	switch m.health {
	case healthUp:
		status = successStyle.Render("Connected")
	case healthDown:
		status = errorStyle.Render("Offline")
	}
	return fmt.Sprintf("%s   API: %s  %s", titleStyle.Render("Persons"), status, mutedStyle.Render(m.baseURL))
}

// statsView reflects the last list displayed; failed fetches keep it.
func (m Model) statsView() string {
	st := view.ComputeStats(m.persons)
	return fmt.Sprintf("%s %d   %s %d   %s %d",
		accentStyle.Render("Total"), st.Total,
		accentStyle.Render("Average age"), st.AverageAge,
		accentStyle.Render("Youngest"), st.MinAge,
	)
}

func (m Model) notificationsView() string {
	active := m.notes.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for _, n := range active {
		st := severityStyle(n.Severity)
		lines = append(lines, st.Render(n.Severity.Title()+":")+" "+n.Message)
	}
	lines = append(lines, mutedStyle.Render("x to dismiss"))
	return strings.Join(lines, "\n")
}

func (m Model) listView() string {
	var inner string
	switch m.state {
	case view.Loading:
		inner = m.spinner.View() + " Loading persons..."
	case view.Empty:
		inner = mutedStyle.Render("No persons to show. Press a to add one.")
	case view.Error:
		inner = errorStyle.Render("Could not load persons.") + "\n" +
			mutedStyle.Render(errText(m.loadErr)) + "\n\n" +
			mutedStyle.Render("Press r to retry.")
	default:
		inner = m.list.View()
	}
	return panel(inner, m.focus == focusList, listWidth(m.width))
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (m Model) formView() string {
	title := titleStyle.Render(m.form.Title())
	hint := mutedStyle.Render("a to add")
	if m.form.Editing() {
		hint = mutedStyle.Render("enter to update, esc to cancel")
	} else if m.form.Focused() {
		hint = mutedStyle.Render("enter to add")
	}
	return panel(title+"\n"+m.form.View()+"\n"+hint, m.focus == focusForm, sideWidth)
}

func (m Model) searchView() string {
	return panel(m.search.View(), m.focus == focusSearch, sideWidth)
}

// activityView shows as many recent entries as fit.
func (m Model) activityView() string {
	entries := m.activity.Entries()
	if len(entries) == 0 {
		return panel(titleStyle.Render("Activity")+"\n"+mutedStyle.Render(activity.Placeholder), false, sideWidth)
	}

	room := max(m.height-18, 3)
	if len(entries) > room {
		entries = entries[:room]
	}
	lines := []string{titleStyle.Render("Activity")}
	for _, e := range entries {
		st := outcomeStyle(e.Outcome)
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			mutedStyle.Render("["+e.Time.Format("15:04:05")+"]"),
			st.Render(e.Outcome.Symbol()),
			titleStyle.Render(e.Method+" "+truncate(e.Endpoint, 22)),
			e.Message,
		))
	}
	return panel(strings.Join(lines, "\n"), false, sideWidth)
}
