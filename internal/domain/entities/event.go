package entities

import (
	"strings"
	"time"
)

// DefaultTargetCount is the headcount used when neither the pasted text nor
// the operator supplies one.
const DefaultTargetCount = 15

// Event is one occurrence of the recurring manpower duty together with its roster.
type Event struct {
	ID          uint // zero = not persisted yet
	Date        string
	Day         string
	Location    string
	Schedule    string
	ReportTime  string
	TargetCount int
	Attendees   []Attendee
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent returns a blank event carrying the given target headcount.
func NewEvent(targetCount int) *Event {
	if targetCount < 0 {
		targetCount = DefaultTargetCount
	}
	return &Event{TargetCount: targetCount}
}

func (e *Event) IsPersisted() bool {
	return e.ID != 0
}

// IsPublishable reports whether the event may be saved.
func (e *Event) IsPublishable() bool {
	return strings.TrimSpace(e.Location) != ""
}

// Clone returns a deep copy so callers can mutate it without touching e.
func (e *Event) Clone() *Event {
	c := *e
	c.Attendees = make([]Attendee, len(e.Attendees))
	for i := range e.Attendees {
		c.Attendees[i] = e.Attendees[i].Clone()
	}
	return &c
}

// NextRollNo is one past the highest roll number on the roster.
func (e *Event) NextRollNo() int {
	next := 1
	for _, a := range e.Attendees {
		if a.RollNo >= next {
			next = a.RollNo + 1
		}
	}
	return next
}
