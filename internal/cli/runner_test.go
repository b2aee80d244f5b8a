package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/persons/internal/api"
	"github.com/idilsaglam/persons/internal/model"
	"github.com/idilsaglam/persons/internal/store/jsonstore"
	"github.com/idilsaglam/persons/internal/ui"
)

// memAPI is an in-memory persons server.
type memAPI struct {
	mu      sync.Mutex
	next    int
	persons map[int]model.Person
	calls   int
	down    bool
}

func newMemAPI(seed ...model.Person) *memAPI {
	m := &memAPI{next: 1, persons: map[int]model.Person{}}
	for _, p := range seed {
		p.ID = m.next
		m.persons[p.ID] = p
		m.next++
	}
	return m
}

func (m *memAPI) all() []model.Person {
	out := make([]model.Person, 0, len(m.persons))
	for _, p := range m.persons {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memAPI) routes(r chi.Router) {
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			m.mu.Lock()
			m.calls++
			m.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/persons/health", func(w http.ResponseWriter, _ *http.Request) {
		if m.down {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/persons/all", func(w http.ResponseWriter, _ *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		writeJSON(w, m.all())
	})
	r.Get("/persons/{id}", func(w http.ResponseWriter, req *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		id, _ := strconv.Atoi(chi.URLParam(req, "id"))
		p, ok := m.persons[id]
		if !ok {
			http.Error(w, "no such person", http.StatusNotFound)
			return
		}
		writeJSON(w, p)
	})
	r.Get("/persons/search/{name}", func(w http.ResponseWriter, req *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		name := chi.URLParam(req, "name")
		for _, p := range m.all() {
			if p.Name == name {
				writeJSON(w, []model.Person{p})
				return
			}
		}
		http.Error(w, "", http.StatusNotFound)
	})
	r.Post("/persons/add", func(w http.ResponseWriter, req *http.Request) {
		var p model.Person
		if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		p.ID = m.next
		m.next++
		m.persons[p.ID] = p
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("Person added"))
	})
	r.Put("/persons/update", func(w http.ResponseWriter, req *http.Request) {
		var p model.Person
		if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.persons[p.ID]; !ok {
			http.Error(w, "", http.StatusNotFound)
			return
		}
		m.persons[p.ID] = p
		w.WriteHeader(http.StatusOK)
	})
	r.Delete("/persons/delete/{id}", func(w http.ResponseWriter, req *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		id, _ := strconv.Atoi(chi.URLParam(req, "id"))
		if _, ok := m.persons[id]; !ok {
			http.Error(w, "", http.StatusNotFound)
			return
		}
		delete(m.persons, id)
		w.WriteHeader(http.StatusNoContent)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type harness struct {
	api      *memAPI
	opt      Options
	out, err *bytes.Buffer
}

func newHarness(t *testing.T, seed ...model.Person) *harness {
	t.Helper()
	m := newMemAPI(seed...)
	r := chi.NewRouter()
	r.Route("/api", m.routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	prevOut, prevErr := ui.Out, ui.Err
	ui.Out, ui.Err = &out, &errOut
	ui.SetColorForcing(false, true)
	t.Cleanup(func() {
		ui.Out, ui.Err = prevOut, prevErr
		ui.SetColorForcing(false, false)
	})

	c := api.New(srv.URL+"/api", api.WithHTTPClient(srv.Client()))
	return &harness{api: m, opt: Options{Client: c}, out: &out, err: &errOut}
}

func (h *harness) run(args ...string) int {
	return Run(context.Background(), args, h.opt)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.run("health"))
	assert.Contains(t, h.out.String(), "API available")

	h.api.down = true
	assert.Equal(t, 1, h.run("health"))
	assert.Contains(t, h.err.String(), "API unavailable")
}

func TestList(t *testing.T) {
	h := newHarness(t, model.Person{Name: "Ada", Age: 36}, model.Person{Name: "Alan", Age: 41})
	require.Equal(t, 0, h.run("ls"))

	out := h.out.String()
	assert.Contains(t, out, "Total 2")
	assert.Contains(t, out, "Avg age 39")
	assert.Contains(t, out, "Youngest 36")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "41 yrs")
}

func TestList_NonASCIINamesStayValid(t *testing.T) {
	short := strings.Repeat("é", 40)
	long := strings.Repeat("ü", 70)
	h := newHarness(t, model.Person{Name: short, Age: 30}, model.Person{Name: long, Age: 31})
	require.Equal(t, 0, h.run("ls"))

	out := h.out.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, short)
	assert.Contains(t, out, strings.Repeat("ü", 57)+"...")
	assert.NotContains(t, out, strings.Repeat("ü", 58))
}

func TestList_Empty(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("ls"))
	assert.Contains(t, h.out.String(), "No person registered yet")
}

func TestGet(t *testing.T) {
	h := newHarness(t, model.Person{Name: "Ada", Age: 36})
	require.Equal(t, 0, h.run("get", "1"))
	assert.Contains(t, h.out.String(), "Name: Ada")
	assert.Contains(t, h.out.String(), "Age: 36 yrs")

	assert.Equal(t, 1, h.run("get", "42"))
	assert.Contains(t, h.err.String(), "Person #42 not found")

	assert.Equal(t, 2, h.run("get", "abc"))
}

func TestSearch(t *testing.T) {
	h := newHarness(t, model.Person{Name: "Ada", Age: 36}, model.Person{Name: "Alan", Age: 41})
	require.Equal(t, 0, h.run("search", "Alan"))
	assert.Contains(t, h.out.String(), "Alan")
	assert.NotContains(t, h.out.String(), "Ada")
}

func TestSearch_NotFoundIsEmptyResult(t *testing.T) {
	h := newHarness(t, model.Person{Name: "Ada", Age: 36})
	require.Equal(t, 0, h.run("search", "Grace"))
	assert.Contains(t, h.err.String(), "No person found with this name.")
	assert.Contains(t, h.out.String(), "Total 0")
}

func TestAdd(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("add", "36", "Ada", "Lovelace"))
	assert.Contains(t, h.out.String(), "Person added: Ada Lovelace")

	got := h.api.all()
	require.Len(t, got, 1)
	assert.Equal(t, "Ada Lovelace", got[0].Name)
	assert.Equal(t, 36, got[0].Age)
}

func TestAdd_InvalidSendsNothing(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run("add", "0", "Ada"))
	assert.Equal(t, 2, h.run("add", "x", "Ada"))
	assert.Equal(t, 2, h.run("add", "36"))
	assert.Equal(t, 0, h.api.calls)
	assert.Contains(t, h.err.String(), "Please enter a valid name and an age between 1 and 120.")
}

func TestUpdate(t *testing.T) {
	h := newHarness(t, model.Person{Name: "Ada", Age: 36})
	require.Equal(t, 0, h.run("update", "1", "37", "Ada"))
	assert.Equal(t, 37, h.api.persons[1].Age)

	assert.Equal(t, 1, h.run("update", "9", "37", "Ghost"))
	assert.Contains(t, h.err.String(), "Person #9 no longer exists")
}

func TestRemove(t *testing.T) {
	h := newHarness(t, model.Person{Name: "Ada", Age: 36})
	require.Equal(t, 0, h.run("rm", "1"))
	assert.Empty(t, h.api.persons)

	assert.Equal(t, 1, h.run("rm", "1"))
	assert.Contains(t, h.err.String(), "Person #1 not found")
}

func TestExportImport(t *testing.T) {
	src := newHarness(t, model.Person{Name: "Ada", Age: 36}, model.Person{Name: "Alan", Age: 41})
	path := filepath.Join(t.TempDir(), "snap.json")
	require.Equal(t, 0, src.run("export", path))

	snap, err := jsonstore.Load(path)
	require.NoError(t, err)
	assert.Len(t, snap, 2)

	dst := newHarness(t, model.Person{Name: "Grace", Age: 85})
	require.Equal(t, 0, dst.run("import", path))
	got := dst.api.all()
	require.Len(t, got, 3)
	// server ids are reassigned
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, "Ada", got[1].Name)
	assert.Contains(t, dst.out.String(), "imported 2 person(s)")
}

func TestImport_InvalidRecord(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, jsonstore.Save(path, []model.Person{{Name: "", Age: 30}}))

	assert.Equal(t, 2, h.run("import", path))
	assert.Contains(t, h.err.String(), "record 1")
	assert.Equal(t, 0, h.api.calls)
}

func TestUnknownSubcommand(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run("frobnicate"))
	assert.Contains(t, h.err.String(), "unknown subcommand: frobnicate")
	assert.Contains(t, h.out.String(), "Subcommands:")
}

func TestDefaultsToUI(t *testing.T) {
	h := newHarness(t)
	called := false
	h.opt.UI = func() error { called = true; return nil }
	assert.Equal(t, 0, h.run())
	assert.True(t, called)

	h.opt.UI = func() error { return errors.New("no tty") }
	assert.Equal(t, 1, h.run("ui"))
	assert.Contains(t, h.err.String(), "ui: no tty")
}
