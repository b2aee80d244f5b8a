package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/persons/internal/api"
	"github.com/idilsaglam/persons/internal/form"
	"github.com/idilsaglam/persons/internal/model"
)

// Gateway is the part of the API client the UI needs.
type Gateway interface {
	Health(ctx context.Context) error
	FetchAll(ctx context.Context) ([]model.Person, error)
	FetchOne(ctx context.Context, id int) (model.Person, error)
	Create(ctx context.Context, p model.Person) (api.Result, error)
	Update(ctx context.Context, p model.Person) (api.Result, error)
	Remove(ctx context.Context, id int) (api.Result, error)
	Search(ctx context.Context, pattern string) ([]model.Person, error)
}

type healthMsg struct{ err error }

// listLoadedMsg answers a reload (empty pattern) or a search. seq is the
// token issued with the request; only the latest one is applied.
type listLoadedMsg struct {
	seq     uint64
	pattern string
	persons []model.Person
	err     error
}

type editLoadedMsg struct {
	id     int
	person model.Person
	err    error
}

type savedMsg struct {
	mode   form.Mode
	person model.Person
	err    error
}

type deletedMsg struct {
	id  int
	err error
}

type expireMsg struct{ id int }

func checkHealth(gw Gateway) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{err: gw.Health(context.Background())}
	}
}

func fetchList(gw Gateway, seq uint64, pattern string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			persons []model.Person
			err     error
		)
		if pattern == "" {
			persons, err = gw.FetchAll(ctx)
		} else {
			persons, err = gw.Search(ctx, pattern)
		}
		return listLoadedMsg{seq: seq, pattern: pattern, persons: persons, err: err}
	}
}

func fetchForEdit(gw Gateway, id int) tea.Cmd {
	return func() tea.Msg {
		p, err := gw.FetchOne(context.Background(), id)
		return editLoadedMsg{id: id, person: p, err: err}
	}
}

func save(gw Gateway, mode form.Mode, p model.Person) tea.Cmd {
	return func() tea.Msg {
		var err error
		if mode == form.Edit {
			_, err = gw.Update(context.Background(), p)
		} else {
			_, err = gw.Create(context.Background(), p)
		}
		return savedMsg{mode: mode, person: p, err: err}
	}
}

func remove(gw Gateway, id int) tea.Cmd {
	return func() tea.Msg {
		_, err := gw.Remove(context.Background(), id)
		return deletedMsg{id: id, err: err}
	}
}

func tickAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
