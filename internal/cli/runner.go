package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/persons/internal/api"
	"github.com/idilsaglam/persons/internal/model"
	"github.com/idilsaglam/persons/internal/store/jsonstore"
	"github.com/idilsaglam/persons/internal/ui"
	"github.com/idilsaglam/persons/internal/view"
)

// Options carry what root flags resolved to.
type Options struct {
	Client *api.Client
	// UI starts the interactive screen; nil makes `ui` a usage error.
	UI  func() error
	Log logrus.FieldLogger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		args = []string{"ui"}
	}
	if opt.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opt.Log = l
	}
	cmd, a := args[0], args[1:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		PrintHelp()
		return 0
	}
	if cmd == "ui" {
		if opt.UI == nil {
			ui.Fail("ui: not available")
			return 2
		}
		if err := opt.UI(); err != nil {
			ui.Fail("ui: " + err.Error())
			return 1
		}
		return 0
	}
	if opt.Client == nil {
		ui.Fail("no API client configured")
		return 1
	}
	r := runner{c: opt.Client, log: opt.Log}

	switch cmd {
	case "health":
		return r.health(ctx)

	case "ls":
		if len(a) != 0 {
			ui.Fail("usage: persons ls")
			return 2
		}
		return r.list(ctx)

	case "get":
		if len(a) != 1 {
			ui.Fail("usage: persons get <id>")
			return 2
		}
		id, ok := parseID("get", a[0])
		if !ok {
			return 2
		}
		return r.get(ctx, id)

	case "search":
		return r.search(ctx, strings.Join(a, " "))

	case "add":
		if len(a) < 2 {
			ui.Fail("usage: persons add <age> <name...>")
			return 2
		}
		return r.add(ctx, a[0], strings.Join(a[1:], " "))

	case "update":
		if len(a) < 3 {
			ui.Fail("usage: persons update <id> <age> <name...>")
			return 2
		}
		id, ok := parseID("update", a[0])
		if !ok {
			return 2
		}
		return r.update(ctx, id, a[1], strings.Join(a[2:], " "))

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: persons rm <id>")
			return 2
		}
		id, ok := parseID("rm", a[0])
		if !ok {
			return 2
		}
		return r.remove(ctx, id)

	case "export":
		if len(a) != 1 {
			ui.Fail("usage: persons export <file>")
			return 2
		}
		return r.export(ctx, a[0])

	case "import":
		if len(a) != 1 {
			ui.Fail("usage: persons import <file>")
			return 2
		}
		return r.importFile(ctx, a[0])
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Err)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Out, `persons - client for the persons REST API

Usage:
  persons [flags] [subcommand] [args]

Subcommands:
  ui                          Interactive screen (default)
  health                      Check that the API answers
  ls                          List all persons with statistics
  get <id>                    Show one person
  search <name...>            Search by name (empty lists everybody)
  add <age> <name...>         Create a person
  update <id> <age> <name...> Replace a person's name and age
  rm <id>                     Delete a person
  export <file>               Write the current list to a JSON snapshot
  import <file>               Create every person of a JSON snapshot

Examples:
  persons -base-url http://localhost:8080/tp333/api ls
  persons add 36 Ada Lovelace
  persons search Ada
  persons rm 3
`)
}

func parseID(cmd, s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		ui.Fail(cmd + ": not a valid id: " + s)
		return 0, false
	}
	return id, true
}

// -------------- subcommand impls ----------------

type runner struct {
	c   *api.Client
	log logrus.FieldLogger
}

// failed prints err and maps it to an exit code. Not-found is reported as a
// warning but still fails the command.
func (r runner) failed(op string, err error) int {
	r.log.WithError(err).WithField("op", op).Debug("command failed")
	switch {
	case model.IsValidation(err):
		ui.Fail(err.Error())
		return 2
	case api.IsNotFound(err):
		ui.Warn(op + ": not found")
		return 1
	}
	ui.Fail(op + ": " + err.Error())
	return 1
}

// wrote logs what a write endpoint answered; the body is informational only.
func (r runner) wrote(op string, res api.Result) {
	r.log.WithFields(logrus.Fields{"op": op, "status": res.Status, "body": string(res.Body)}).Debug("write accepted")
}

func (r runner) health(ctx context.Context) int {
	if err := r.c.Health(ctx); err != nil {
		ui.Fail(fmt.Sprintf("API unavailable at %s: %s", r.c.BaseURL(), err))
		return 1
	}
	ui.OK("API available at " + r.c.BaseURL())
	return 0
}

func (r runner) list(ctx context.Context) int {
	persons, err := r.c.FetchAll(ctx)
	if err != nil {
		return r.failed("ls", err)
	}
	render(persons)
	return 0
}

func (r runner) get(ctx context.Context, id int) int {
	p, err := r.c.FetchOne(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			ui.Warn(fmt.Sprintf("Person #%d not found", id))
			return 1
		}
		return r.failed("get", err)
	}
	badge := view.AgeBadge(p.Age)
	lines := strings.Split(view.Details(p), "\n")
	lines = append(lines, "", ui.C(ui.BadgeColor(badge), "● "+string(badge)))
	ui.Panel(lines)
	return 0
}

func (r runner) search(ctx context.Context, pattern string) int {
	persons, err := r.c.Search(ctx, pattern)
	if err != nil {
		if api.IsNotFound(err) {
			ui.Warn("No person found with this name.")
			render(nil)
			return 0
		}
		return r.failed("search", err)
	}
	render(persons)
	return 0
}

func (r runner) add(ctx context.Context, age, name string) int {
	p, err := model.ParsePerson(name, age)
	if err != nil {
		return r.failed("add", err)
	}
	res, err := r.c.Create(ctx, p)
	if err != nil {
		return r.failed("add", err)
	}
	r.wrote("add", res)
	ui.OK("Person added: " + p.Name)
	return 0
}

func (r runner) update(ctx context.Context, id int, age, name string) int {
	p, err := model.ParsePerson(name, age)
	if err != nil {
		return r.failed("update", err)
	}
	p.ID = id
	res, err := r.c.Update(ctx, p)
	if err != nil {
		if api.IsNotFound(err) {
			ui.Warn(fmt.Sprintf("Person #%d no longer exists", id))
			return 1
		}
		return r.failed("update", err)
	}
	r.wrote("update", res)
	ui.OK(fmt.Sprintf("Person #%d updated", id))
	return 0
}

func (r runner) remove(ctx context.Context, id int) int {
	res, err := r.c.Remove(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			ui.Warn(fmt.Sprintf("Person #%d not found", id))
			return 1
		}
		return r.failed("rm", err)
	}
	r.wrote("rm", res)
	ui.OK(fmt.Sprintf("Person #%d deleted", id))
	return 0
}

func (r runner) export(ctx context.Context, path string) int {
	persons, err := r.c.FetchAll(ctx)
	if err != nil {
		return r.failed("export", err)
	}
	if err := jsonstore.Save(path, persons); err != nil {
		return r.failed("export", err)
	}
	ui.OK(fmt.Sprintf("exported %d person(s) to %s", len(persons), path))
	return 0
}

// importFile creates each snapshot record in order and stops at the first
// failure; records already created stay created.
func (r runner) importFile(ctx context.Context, path string) int {
	persons, err := jsonstore.Load(path)
	if err != nil {
		return r.failed("import", err)
	}
	for i, p := range persons {
		in, err := model.ParsePerson(p.Name, strconv.Itoa(p.Age))
		if err != nil {
			ui.Fail(fmt.Sprintf("import: record %d: %s", i+1, err))
			return 2
		}
		if _, err := r.c.Create(ctx, in); err != nil {
			return r.failed(fmt.Sprintf("import: record %d", i+1), err)
		}
	}
	ui.OK(fmt.Sprintf("imported %d person(s) from %s", len(persons), path))
	return 0
}

// -------------- rendering helpers --------------

func render(persons []model.Person) {
	st := view.ComputeStats(persons)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Persons"),
		ui.C(ui.Current().Accent, "Total"), st.Total,
		ui.C(ui.Current().Accent, "Avg age"), st.AverageAge,
		ui.C(ui.Current().Accent, "Youngest"), st.MinAge,
	)
	lines := []string{header, ""}
	lines = append(lines, bucketLines(persons)...)
	ui.Panel(lines)

	if len(persons) == 0 {
		fmt.Fprintln(ui.Out, ui.C(ui.Current().Muted, "No person registered yet"))
		return
	}
	fmt.Fprintln(ui.Out, personTable(view.Rows(persons)))
}

var buckets = []struct {
	badge view.Badge
	label string
}{
	{view.BadgeInfo, "< 20 "},
	{view.BadgeSuccess, "20-39"},
	{view.BadgeWarning, "40-59"},
	{view.BadgeDanger, "60+  "},
}

func bucketLines(persons []model.Person) []string {
	counts := map[view.Badge]int{}
	for _, p := range persons {
		counts[view.AgeBadge(p.Age)]++
	}
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, fmt.Sprintf("%s %s",
			ui.C(ui.BadgeColor(b.badge), b.label),
			ui.C(ui.Current().Muted, ui.AgeBar(counts[b.badge], len(persons), 24))))
	}
	return out
}

var badgeColors = map[view.Badge]lipgloss.Color{
	view.BadgeInfo:    lipgloss.Color("6"),
	view.BadgeSuccess: lipgloss.Color("2"),
	view.BadgeWarning: lipgloss.Color("3"),
	view.BadgeDanger:  lipgloss.Color("1"),
}

// maxNameWidth bounds the NAME column in terminal cells.
const maxNameWidth = 60

func personTable(rows []view.Row) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "AGE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			if col == 2 && row >= 0 && row < len(rows) {
				return cell.Foreground(badgeColors[rows[row].Badge])
			}
			return cell
		})
	for _, r := range rows {
		t.Row(r.ID, runewidth.Truncate(r.Name, maxNameWidth, "..."), r.AgeLabel)
	}
	return t.Render()
}
