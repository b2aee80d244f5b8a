// Package activity keeps the rolling log of API interactions shown to the
// user. It is display-only; nothing else reads it back.
package activity

import "time"

// Capacity is how many entries the log keeps.
const Capacity = 20

const Placeholder = "API requests will appear here..."

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
	Warning Outcome = "warning"
	Info    Outcome = "info"
)

// Symbol is the short marker drawn next to an entry.
func (o Outcome) Symbol() string {
	switch o {
	case Success:
		return "✓"
	case Error:
		return "✗"
	case Warning:
		return "⚠"
	default:
		return "ℹ"
	}
}

type Entry struct {
	Time     time.Time
	Method   string
	Endpoint string
	Outcome  Outcome
	Message  string
}

// Log is a newest-first ring of at most Capacity entries.
// Not safe for concurrent use; the UI loop owns it.
type Log struct {
	entries  []Entry
	capacity int
	now      func() time.Time
}

func New() *Log {
	return &Log{capacity: Capacity, now: time.Now}
}

// Record prepends an entry and drops the oldest once over capacity.
func (l *Log) Record(method, endpoint string, outcome Outcome, message string) {
	e := Entry{
		Time:     l.now(),
		Method:   method,
		Endpoint: endpoint,
		Outcome:  outcome,
		Message:  message,
	}
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

func (l *Log) Clear() {
	l.entries = nil
}

// Entries returns a copy, newest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int { return len(l.entries) }
