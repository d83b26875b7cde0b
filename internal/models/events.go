package models

import "time"

// CompletionEvent records a confirmed shift completion. Immutable once
// appended; the same slot completed twice on the same day produces two
// events.
type CompletionEvent struct {
	ID        string    `json:"id"`
	Username  string    `json:"user"`
	Day       Day       `json:"day"`
	Period    Period    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
}

// MissEvent records an assigned shift that was never completed. Immutable
// once appended.
type MissEvent struct {
	ID       string `json:"id"`
	Username string `json:"user"`
	Day      Day    `json:"day"`
	Period   Period `json:"time"`
}

// WeekSnapshot holds the completion and miss events observed during one ISO
// week. Created lazily the first time an event for the week is recorded;
// never deleted.
type WeekSnapshot struct {
	WeekStart string            `json:"week_start"` // YYYY-MM-DD
	WeekEnd   string            `json:"week_end"`   // YYYY-MM-DD
	Completed []CompletionEvent `json:"completed"`
	Missed    []MissEvent       `json:"missed"`
}
