// Package notify holds transient user-facing messages. Each one lives for
// Timeout unless dismissed earlier; several may be visible at once.
package notify

import "time"

const Timeout = 5 * time.Second

type Severity string

const (
	Success Severity = "success"
	Danger  Severity = "danger"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Title is the bold label shown before the message.
func (s Severity) Title() string {
	switch s {
	case Success:
		return "Success"
	case Danger:
		return "Error"
	case Warning:
		return "Warning"
	default:
		return "Info"
	}
}

type Notification struct {
	ID       int
	Message  string
	Severity Severity
}

// Center is the set of visible notifications, oldest first.
// Not safe for concurrent use; the UI loop owns it.
type Center struct {
	next  int
	items []Notification
}

func NewCenter() *Center {
	return &Center{}
}

// Push shows a new notification. Duplicates are kept.
func (c *Center) Push(message string, sev Severity) Notification {
	c.next++
	n := Notification{
		ID:       c.next,
		Message:  message,
		Severity: sev,
	}
	c.items = append(c.items, n)
	return n
}

// Dismiss removes one notification; others are untouched.
// It reports whether it was still visible.
func (c *Center) Dismiss(id int) bool {
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Expire is the timer path; a notification dismissed earlier is a no-op.
func (c *Center) Expire(id int) bool {
	return c.Dismiss(id)
}

// DismissLatest removes the newest notification.
func (c *Center) DismissLatest() bool {
	if len(c.items) == 0 {
		return false
	}
	c.items = c.items[:len(c.items)-1]
	return true
}

func (c *Center) Active() []Notification {
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) Len() int { return len(c.items) }
