// Package tui is the interactive persons screen: a list with statistics,
// the add/edit form, a search bar, the activity log and notifications.
//
// All state lives in Model and is only touched from Bubble Tea's update
// loop. API calls run as commands and come back as messages.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/persons/internal/activity"
	"github.com/idilsaglam/persons/internal/api"
	"github.com/idilsaglam/persons/internal/form"
	"github.com/idilsaglam/persons/internal/model"
	"github.com/idilsaglam/persons/internal/notify"
	"github.com/idilsaglam/persons/internal/view"
)

type focusArea int

const (
	focusList focusArea = iota
	focusForm
	focusSearch
)

type health int

const (
	healthUnknown health = iota
	healthUp
	healthDown
)

// Options tune the screen.
type Options struct {
	BaseURL string
	Logger  logrus.FieldLogger
}

type Model struct {
	gw      Gateway
	log     logrus.FieldLogger
	baseURL string

	// displayed list and its state; persons is kept on failed fetches
	persons []model.Person
	state   view.State
	loadErr error
	seq     uint64
	health  health

	form    form.Form
	search  textinput.Model
	focus   focusArea
	list    list.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	activity *activity.Log
	notes    *notify.Center
	after    func(time.Duration, tea.Msg) tea.Cmd

	confirmID int    // record awaiting delete confirmation
	details   string // details overlay text
	width     int
	height    int
}

func New(gw Gateway, opt Options) Model {
	lg := opt.Logger
	if lg == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		lg = l
	}

	l := list.New(nil, rowDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.PaginationStyle = mutedStyle

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "Search by name..."
	si.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		gw:       gw,
		log:      lg,
		baseURL:  opt.BaseURL,
		state:    view.Loading,
		seq:      1,
		form:     form.New(),
		search:   si,
		list:     l,
		spinner:  sp,
		help:     help.New(),
		keys:     newKeyMap(),
		activity: activity.New(),
		notes:    notify.NewCenter(),
		after:    tickAfter,
	}
	return m.resize(80, 24)
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(gw Gateway, opt Options) error {
	p := tea.NewProgram(New(gw, opt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init checks health and issues the first load (token 1).
func (m Model) Init() tea.Cmd {
	m.log.WithField("base_url", m.baseURL).Info("persons UI started")
	return tea.Batch(m.spinner.Tick, checkHealth(m.gw), fetchList(m.gw, m.seq, ""))
}

// Update implements Bubble Tea's Model on Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case healthMsg:
		return m.onHealth(msg)
	case listLoadedMsg:
		return m.onListLoaded(msg)
	case editLoadedMsg:
		return m.onEditLoaded(msg)
	case savedMsg:
		return m.onSaved(msg)
	case deletedMsg:
		return m.onDeleted(msg)
	case expireMsg:
		m.notes.Expire(msg.id)
		return m, nil
	}

	// cursor blink and friends
	var c1, c2 tea.Cmd
	m.form, c1 = m.form.Update(msg)
	m.search, c2 = m.search.Update(msg)
	return m, tea.Batch(c1, c2)
}

func (m Model) resize(w, h int) Model {
	m.width, m.height = w, h
	m.help.Width = w
	m.list.SetSize(listWidth(w), max(h-14, 3))
	return m
}

// -------------- keys ----------------

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.details != "" {
		m.details = ""
		return m, nil
	}
	if m.confirmID != 0 {
		id := m.confirmID
		m.confirmID = 0
		if msg.String() == "y" || msg.String() == "Y" {
			return m, remove(m.gw, id)
		}
		return m, nil
	}

	switch m.focus {
	case focusForm:
		return m.handleFormKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		return m.startLoad()
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.form = m.form.Blur()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Add), key.Matches(msg, m.keys.Focus):
		var cmd tea.Cmd
		m.focus = focusForm
		m.form, cmd = m.form.FocusName()
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		if id, ok := m.selectedID(); ok {
			return m, fetchForEdit(m.gw, id)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			m.confirmID = id
		}
		return m, nil
	case key.Matches(msg, m.keys.Details):
		if id, ok := m.selectedID(); ok {
			return m.viewDetails(id)
		}
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.activity.Clear()
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.notes.DismissLatest()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "tab", "shift+tab":
		var cmd tea.Cmd
		m.form, cmd = m.form.NextField()
		return m, cmd
	case "esc":
		if m.form.Editing() {
			return m.cancelEdit()
		}
		m.form = m.form.Blur()
		m.focus = focusList
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.focus = focusList
		return m.startSearch(m.search.Value())
	case "esc":
		m.search.Blur()
		m.focus = focusList
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) selectedID() (int, bool) {
	if m.state != view.Populated {
		return 0, false
	}
	it, ok := m.list.SelectedItem().(personItem)
	if !ok {
		return 0, false
	}
	return it.ID, true
}

// -------------- operations ----------------

// startLoad issues a full reload under a fresh token.
func (m Model) startLoad() (Model, tea.Cmd) {
	m.seq++
	m.state = view.Loading
	return m, tea.Batch(fetchList(m.gw, m.seq, ""), m.spinner.Tick)
}

// startSearch searches by name; an empty pattern is a full reload.
func (m Model) startSearch(pattern string) (Model, tea.Cmd) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return m.startLoad()
	}
	m.seq++
	m.state = view.Loading
	return m, tea.Batch(fetchList(m.gw, m.seq, pattern), m.spinner.Tick)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	p, err := m.form.Submission()
	if err != nil {
		return m, m.notify(err.Error(), notify.Danger)
	}
	return m, save(m.gw, m.form.Mode(), p)
}

func (m Model) cancelEdit() (tea.Model, tea.Cmd) {
	m.form = m.form.Cancel()
	m.focus = focusList
	return m, m.notify("Edit cancelled", notify.Info)
}

func (m Model) viewDetails(id int) (tea.Model, tea.Cmd) {
	p, ok := view.Find(m.persons, id)
	if !ok {
		return m, m.notify("Person not found", notify.Warning)
	}
	m.details = view.Details(p)
	return m, nil
}

// -------------- results ----------------

func (m Model) onHealth(msg healthMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		m.health = healthUp
		return m, nil
	}
	m.health = healthDown
	m.log.WithError(msg.err).Warn("health check failed")
	m.activity.Record("GET", api.PathHealth, activity.Error, msg.err.Error())
	return m, m.notify(fmt.Sprintf("API unavailable: %s. Check that the server is running.", msg.err), notify.Warning)
}

func (m Model) onListLoaded(msg listLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		m.log.WithFields(logrus.Fields{"seq": msg.seq, "latest": m.seq}).Debug("discarding stale list response")
		return m, nil
	}

	if msg.pattern == "" {
		if msg.err != nil {
			m.state = view.Error
			m.loadErr = msg.err
			return m, m.fail("GET", api.PathAll, "Load error: ", msg.err)
		}
		m.activity.Record("GET", api.PathAll, activity.Success, fmt.Sprintf("%d persons loaded", len(msg.persons)))
		return m.display(msg.persons)
	}

	endpoint := api.PathSearch + "/" + msg.pattern
	switch {
	case api.IsNotFound(msg.err):
		msg.persons, msg.err = []model.Person{}, nil
	case msg.err != nil:
		m.state = view.Error
		m.loadErr = msg.err
		return m, m.fail("GET", endpoint, "Search error: ", msg.err)
	}

	m, cmd := m.display(msg.persons)
	if len(msg.persons) == 0 {
		m.activity.Record("GET", endpoint, activity.Warning, "No match")
		return m, tea.Batch(cmd, m.notify("No person found with this name.", notify.Warning))
	}
	m.activity.Record("GET", endpoint, activity.Success, "Search succeeded")
	return m, tea.Batch(cmd, m.notify(fmt.Sprintf("%d person(s) found", len(msg.persons)), notify.Success))
}

// display replaces the list wholesale and picks the display state.
func (m Model) display(persons []model.Person) (Model, tea.Cmd) {
	m.persons = persons
	m.loadErr = nil
	m.state = view.StateFor(persons, nil)
	return m, m.list.SetItems(toItems(persons))
}

func (m Model) onEditLoaded(msg editLoadedMsg) (tea.Model, tea.Cmd) {
	endpoint := api.PathByID + "/" + strconv.Itoa(msg.id)
	if msg.err != nil {
		if api.IsNotFound(msg.err) {
			m.activity.Record("GET", endpoint, activity.Warning, msg.err.Error())
			return m, m.notify("Person not found", notify.Warning)
		}
		m.activity.Record("GET", endpoint, activity.Error, msg.err.Error())
		return m, m.notify("Error loading person: "+msg.err.Error(), notify.Danger)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Load(msg.person)
	m.focus = focusForm
	m.search.Blur()
	m.activity.Record("GET", endpoint, activity.Info, "Loaded for editing")
	return m, tea.Batch(cmd, m.notify("Editing: "+msg.person.Name, notify.Info))
}

func (m Model) onSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	method, endpoint, done := "POST", api.PathAdd, "Person added"
	if msg.mode == form.Edit {
		method, endpoint, done = "PUT", api.PathUpdate, "Person updated"
	}

	if msg.err != nil {
		if msg.mode == form.Edit && api.IsNotFound(msg.err) {
			// the record vanished while being edited
			m.form = m.form.Cancel()
			m.focus = focusList
			m.activity.Record(method, endpoint, activity.Warning, msg.err.Error())
			warn := m.notify(fmt.Sprintf("Person #%d no longer exists; form reset.", msg.person.ID), notify.Warning)
			var load tea.Cmd
			m, load = m.startLoad()
			return m, tea.Batch(warn, load)
		}
		return m, m.fail(method, endpoint, "Error: ", msg.err)
	}

	m.activity.Record(method, endpoint, activity.Success, done)
	ok := m.notify(done+"!", notify.Success)
	m.form = m.form.Cancel()
	m.focus = focusList
	m, load := m.startLoad()
	return m, tea.Batch(ok, load)
}

func (m Model) onDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	endpoint := api.PathDelete + "/" + strconv.Itoa(msg.id)
	if msg.err != nil {
		return m, m.fail("DELETE", endpoint, "Error: ", msg.err)
	}

	m.activity.Record("DELETE", endpoint, activity.Success, "Person deleted")
	ok := m.notify("Person deleted!", notify.Success)
	if m.form.Editing() && m.form.TargetID() == msg.id {
		m.form = m.form.Cancel()
		if m.focus == focusForm {
			m.focus = focusList
		}
	}
	m, load := m.startLoad()
	return m, tea.Batch(ok, load)
}

// -------------- notifications ----------------

func (m Model) notify(message string, sev notify.Severity) tea.Cmd {
	n := m.notes.Push(message, sev)
	return m.after(notify.Timeout, expireMsg{id: n.ID})
}

// fail reports one failure: one notification and one log entry. Not-found
// answers are warnings, everything else an error.
func (m Model) fail(method, endpoint, prefix string, err error) tea.Cmd {
	sev, outcome := notify.Danger, activity.Error
	if api.IsNotFound(err) {
		sev, outcome = notify.Warning, activity.Warning
	}
	m.log.WithError(err).WithFields(logrus.Fields{"method": method, "endpoint": endpoint}).Warn("request failed")
	m.activity.Record(method, endpoint, outcome, err.Error())
	return m.notify(prefix+err.Error(), sev)
}
