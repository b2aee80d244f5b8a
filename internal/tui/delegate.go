package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/persons/internal/model"
	"github.com/idilsaglam/persons/internal/view"
)

// personItem adapts a Person to bubbles/list.Item
type personItem struct {
	model.Person
}

func (i personItem) Row() view.Row { return view.RowFor(i.Person) }

// Implement list.Item interface
func (i personItem) Title() string       { return i.Row().Name }
func (i personItem) Description() string { return i.Row().AgeLabel }
func (i personItem) FilterValue() string { return i.Name }

func toItems(persons []model.Person) []list.Item {
	out := make([]list.Item, 0, len(persons))
	for _, p := range persons {
		out = append(out, personItem{p})
	}
	return out
}

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(personItem)
	if !ok {
		return
	}
	r := it.Row()

	name := fmt.Sprintf("%-24s", truncate(r.Name, 24))
	line := fmt.Sprintf("%s %s %s",
		idStyle.Render(fmt.Sprintf("%4s", r.ID)),
		nameStyle.Render(name),
		badgeStyle(r.Badge).Render(r.AgeLabel),
	)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
