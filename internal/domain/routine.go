package domain

import (
	"encoding/json"
	"time"
)

// Weekday is a three-letter English weekday token as stored in a
// recurrence rule ("Mon".."Sun").
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

var weekdayTokens = map[Weekday]time.Weekday{
	Mon: time.Monday,
	Tue: time.Tuesday,
	Wed: time.Wednesday,
	Thu: time.Thursday,
	Fri: time.Friday,
	Sat: time.Saturday,
	Sun: time.Sunday,
}

// StdWeekday maps the token to its time.Weekday. Unknown tokens report false
// and are skipped during expansion.
func (w Weekday) StdWeekday() (time.Weekday, bool) {
	d, ok := weekdayTokens[w]
	return d, ok
}

// RecurrenceRule is the weekly schedule persisted on a routine as JSON:
// {"days":["Mon","Wed","Fri"],"time":"09:00"}. Time is carried through for
// display only and never filters dates.
type RecurrenceRule struct {
	Days []Weekday `json:"days"`
	Time string    `json:"time,omitempty"`
}

// Empty reports whether the rule can ever match a date.
func (r RecurrenceRule) Empty() bool {
	return len(r.Days) == 0
}

// ParseRecurrenceRule decodes a persisted rule. Malformed input yields the
// zero rule rather than an error: one routine's bad configuration must never
// fail a whole generation batch.
func ParseRecurrenceRule(raw []byte) RecurrenceRule {
	var r RecurrenceRule
	if len(raw) == 0 {
		return RecurrenceRule{}
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return RecurrenceRule{}
	}
	return r
}

// Routine is a saved weekly recurrence definition that spawns tasks. Edits
// only affect future expansions; already-materialized tasks keep their shape.
type Routine struct {
	ID                string
	TeamID            string
	ClientID          *string
	Title             string
	Rule              RecurrenceRule
	DefaultAssigneeID *string
	Active            bool
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
