// Package form is the two-mode (create/edit) person form.
package form

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/persons/internal/model"
)

type Mode int

const (
	Create Mode = iota
	Edit
)

func (m Mode) String() string {
	if m == Edit {
		return "edit"
	}
	return "create"
}

type field int

const (
	fieldName field = iota
	fieldAge
)

// Form owns the inputs and the editing state. Exactly one of create or
// edit mode holds; the target id is only meaningful in edit mode.
type Form struct {
	Name textinput.Model
	Age  textinput.Model

	mode     Mode
	targetID int
	focus    field
	focused  bool
}

func New() Form {
	name := textinput.New()
	name.Prompt = "Name › "
	name.Placeholder = "Full name"
	name.CharLimit = 100

	age := textinput.New()
	age.Prompt = "Age  › "
	age.Placeholder = "1-120"
	age.CharLimit = 3

	return Form{Name: name, Age: age}
}

func (f Form) Mode() Mode    { return f.mode }
func (f Form) TargetID() int { return f.targetID }
func (f Form) Focused() bool { return f.focused }
func (f Form) Editing() bool { return f.mode == Edit }
func (f Form) NameFocused() bool {
	return f.focused && f.focus == fieldName
}

// Submission validates the inputs identically in both modes and returns
// the record to send. In edit mode it carries the stored target id.
func (f Form) Submission() (model.Person, error) {
	p, err := model.ParsePerson(f.Name.Value(), f.Age.Value())
	if err != nil {
		return model.Person{}, err
	}
	if f.mode == Edit {
		p.ID = f.targetID
	}
	return p, nil
}

// Load switches to edit mode for p and focuses the name field.
func (f Form) Load(p model.Person) (Form, tea.Cmd) {
	f.mode = Edit
	f.targetID = p.ID
	f.Name.SetValue(p.Name)
	f.Name.CursorEnd()
	f.Age.SetValue(strconv.Itoa(p.Age))
	return f.FocusName()
}

// Reset clears the inputs and returns to create mode.
func (f Form) Reset() Form {
	f.mode = Create
	f.targetID = 0
	f.Name.SetValue("")
	f.Age.SetValue("")
	return f
}

// Cancel discards edit mode unconditionally.
func (f Form) Cancel() Form {
	return f.Blur().Reset()
}

func (f Form) FocusName() (Form, tea.Cmd) {
	f.focused = true
	f.focus = fieldName
	f.Age.Blur()
	return f, f.Name.Focus()
}

// NextField moves focus between name and age.
func (f Form) NextField() (Form, tea.Cmd) {
	f.focused = true
	if f.focus == fieldName {
		f.focus = fieldAge
		f.Name.Blur()
		return f, f.Age.Focus()
	}
	f.focus = fieldName
	f.Age.Blur()
	return f, f.Name.Focus()
}

func (f Form) Blur() Form {
	f.focused = false
	f.Name.Blur()
	f.Age.Blur()
	return f
}

// Update routes input to the focused field. Age only accepts digits.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if !f.focused {
		return f, nil
	}
	var cmd tea.Cmd
	if f.focus == fieldName {
		f.Name, cmd = f.Name.Update(msg)
		return f, cmd
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
		if strings.TrimLeft(string(k.Runes), "0123456789") != "" {
			return f, nil
		}
	}
	f.Age, cmd = f.Age.Update(msg)
	return f, cmd
}

func (f Form) Title() string {
	if f.mode == Edit {
		return "Edit person #" + strconv.Itoa(f.targetID)
	}
	return "Add person"
}

func (f Form) View() string {
	return f.Name.View() + "\n" + f.Age.View()
}
