package live

import "time"

// Severity classifies a notification for styling and symbols.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
)

// Notification is one entry in the live view's event feed.
type Notification struct {
	Title    string
	Body     string
	Severity Severity
	At       time.Time
}

// Feed is a bounded, append-only list of notifications. When full, the
// oldest entries fall off.
type Feed struct {
	limit int
	items []Notification
}

// NewFeed creates a feed keeping at most limit entries.
func NewFeed(limit int) *Feed {
	if limit < 1 {
		limit = 1
	}
	return &Feed{limit: limit}
}

// Push appends a notification, evicting the oldest entry if the feed is full.
func (f *Feed) Push(sev Severity, title, body string) {
	f.items = append(f.items, Notification{
		Title:    title,
		Body:     body,
		Severity: sev,
		At:       time.Now(),
	})
	if len(f.items) > f.limit {
		f.items = f.items[len(f.items)-f.limit:]
	}
}

// Items returns the kept notifications, oldest first.
func (f *Feed) Items() []Notification {
	return f.items
}

// Len returns how many notifications are kept.
func (f *Feed) Len() int {
	return len(f.items)
}

// Last returns the newest notification, or nil when the feed is empty.
func (f *Feed) Last() *Notification {
	if len(f.items) == 0 {
		return nil
	}
	return &f.items[len(f.items)-1]
}
