package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/persons/internal/model"
)

func typeText(f Form, s string) Form {
	for _, r := range s {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func TestNew_StartsInCreateMode(t *testing.T) {
	f := New()
	assert.Equal(t, Create, f.Mode())
	assert.Zero(t, f.TargetID())
	assert.False(t, f.Focused())
	assert.Equal(t, "Add person", f.Title())
}

func TestSubmission_Create(t *testing.T) {
	f, _ := New().FocusName()
	f = typeText(f, "Grace")
	f, _ = f.NextField()
	f = typeText(f, "85")

	p, err := f.Submission()
	require.NoError(t, err)
	assert.Equal(t, model.Person{Name: "Grace", Age: 85}, p)
}

func TestSubmission_RejectsInvalid(t *testing.T) {
	cases := []struct{ name, age string }{
		{"", "30"},
		{"Al", "0"},
		{"Al", "121"},
		{"Al", ""},
	}
	for _, c := range cases {
		f := New()
		f.Name.SetValue(c.name)
		f.Age.SetValue(c.age)
		_, err := f.Submission()
		assert.True(t, model.IsValidation(err), "name=%q age=%q", c.name, c.age)
	}
}

func TestAge_IgnoresNonDigits(t *testing.T) {
	f, _ := New().FocusName()
	f, _ = f.NextField()
	f = typeText(f, "4x2")
	assert.Equal(t, "42", f.Age.Value())
}

func TestLoad_EntersEditMode(t *testing.T) {
	f, _ := New().Load(model.Person{ID: 7, Name: "Kim", Age: 52})

	assert.Equal(t, Edit, f.Mode())
	assert.Equal(t, 7, f.TargetID())
	assert.True(t, f.NameFocused())
	assert.Equal(t, "Kim", f.Name.Value())
	assert.Equal(t, "52", f.Age.Value())
	assert.Equal(t, "Edit person #7", f.Title())

	p, err := f.Submission()
	require.NoError(t, err)
	assert.Equal(t, model.Person{ID: 7, Name: "Kim", Age: 52}, p)
}

func TestCancel_AlwaysReturnsToCreate(t *testing.T) {
	f, _ := New().Load(model.Person{ID: 7, Name: "Kim", Age: 52})
	f.Age.SetValue("999")
	f.Name.SetValue("")

	f = f.Cancel()
	assert.Equal(t, Create, f.Mode())
	assert.Zero(t, f.TargetID())
	assert.Empty(t, f.Name.Value())
	assert.Empty(t, f.Age.Value())
	assert.False(t, f.Focused())
}

func TestUpdate_IgnoredWhenBlurred(t *testing.T) {
	f := typeText(New(), "abc")
	assert.Empty(t, f.Name.Value())
}
