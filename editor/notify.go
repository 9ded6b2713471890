package editor

import (
	"fmt"
	"time"
)

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a user-visible message.
type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Notifier keeps the most recent notifications in a ring.
type Notifier struct {
	items []Notification
	next  int
	full  bool
	now   func() time.Time
}

// NewNotifier creates a notifier holding up to capacity messages.
func NewNotifier(capacity int) *Notifier {
	if capacity <= 0 {
		capacity = 20
	}
	return &Notifier{items: make([]Notification, capacity), now: time.Now}
}

// Notify records a message.
func (n *Notifier) Notify(level Level, format string, args ...any) {
	n.items[n.next] = Notification{Level: level, Message: fmt.Sprintf(format, args...), At: n.now()}
	n.next = (n.next + 1) % len(n.items)
	if n.next == 0 {
		n.full = true
	}
}

// Latest returns the newest notification.
func (n *Notifier) Latest() (Notification, bool) {
	if !n.full && n.next == 0 {
		return Notification{}, false
	}
	i := (n.next - 1 + len(n.items)) % len(n.items)
	return n.items[i], true
}

// All returns the stored notifications, oldest first.
func (n *Notifier) All() []Notification {
	if !n.full {
		return append([]Notification(nil), n.items[:n.next]...)
	}
	out := make([]Notification, 0, len(n.items))
	out = append(out, n.items[n.next:]...)
	return append(out, n.items[:n.next]...)
}
