// Package view holds the pure projections from the person list to what the
// screen shows. Nothing here touches a terminal.
package view

import (
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/idilsaglam/persons/internal/model"
)

// State is the list area's display state. Exactly one is visible.
type State int

const (
	Loading State = iota
	Populated
	Empty
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Empty:
		return "empty"
	case Error:
		return "error"
	}
	return "unknown"
}

// StateFor maps a finished fetch to its display state.
func StateFor(persons []model.Person, err error) State {
	switch {
	case err != nil:
		return Error
	case len(persons) == 0:
		return Empty
	default:
		return Populated
	}
}

// Badge is the color bucket of an age.
type Badge string

const (
	BadgeInfo    Badge = "info"
	BadgeSuccess Badge = "success"
	BadgeWarning Badge = "warning"
	BadgeDanger  Badge = "danger"
)

// AgeBadge buckets ages as [..20) info, [20,40) success, [40,60) warning
// and [60..) danger.
func AgeBadge(age int) Badge {
	switch {
	case age < 20:
		return BadgeInfo
	case age < 40:
		return BadgeSuccess
	case age < 60:
		return BadgeWarning
	default:
		return BadgeDanger
	}
}

// Stats are derived from the displayed list only.
type Stats struct {
	Total      int
	AverageAge int
	MinAge     int
}

// ComputeStats counts every record but averages and minimizes only over
// positive ages. With no positive age both are 0.
func ComputeStats(persons []model.Person) Stats {
	st := Stats{Total: len(persons)}
	sum, n := 0, 0
	for _, p := range persons {
		if p.Age <= 0 {
			continue
		}
		if n == 0 || p.Age < st.MinAge {
			st.MinAge = p.Age
		}
		sum += p.Age
		n++
	}
	if n > 0 {
		// round half up
		st.AverageAge = (2*sum + n) / (2 * n)
	}
	return st
}

const (
	NoID   = "N/A"
	NoName = "Not provided"
)

// Row is one table line. The action targets are the record id.
type Row struct {
	ID       string
	Name     string
	AgeLabel string
	Badge    Badge

	EditID, DeleteID, DetailsID int
}

func RowFor(p model.Person) Row {
	id := NoID
	if p.ID != 0 {
		id = strconv.Itoa(p.ID)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = NoName
	}
	return Row{
		ID:        id,
		Name:      name,
		AgeLabel:  strconv.Itoa(p.Age) + " yrs",
		Badge:     AgeBadge(p.Age),
		EditID:    p.ID,
		DeleteID:  p.ID,
		DetailsID: p.ID,
	}
}

func Rows(persons []model.Person) []Row {
	out := make([]Row, 0, len(persons))
	for _, p := range persons {
		out = append(out, RowFor(p))
	}
	return out
}

var detailsTemplate = fasttemplate.New("ID: {{id}}\nName: {{name}}\nAge: {{age}} yrs", "{{", "}}")

// Details is the multi-line description shown by the details action.
func Details(p model.Person) string {
	r := RowFor(p)
	return detailsTemplate.ExecuteString(map[string]interface{}{
		"id":   r.ID,
		"name": r.Name,
		"age":  strconv.Itoa(p.Age),
	})
}

// Find returns the record with the given id from the displayed list.
func Find(persons []model.Person, id int) (model.Person, bool) {
	for _, p := range persons {
		if p.ID == id {
			return p, true
		}
	}
	return model.Person{}, false
}
