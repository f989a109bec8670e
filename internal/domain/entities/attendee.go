package entities

import "fmt"

type Status string

const (
	StatusPending Status = "pending"
	StatusIn      Status = "in"
	StatusOut     Status = "out"
)

// ParseStatus validates a persisted status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusIn, StatusOut:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Present reports whether the attendee has shown up at some point.
func (s Status) Present() bool {
	return s == StatusIn || s == StatusOut
}

// Attendee is one person on an event roster.
type Attendee struct {
	ID             uint // zero = not persisted yet
	EventID        uint
	RollNo         int
	Name           string
	Mobile         string
	Status         Status
	UniformChecked bool
	Fines          Fines
}

func (a Attendee) Clone() Attendee {
	a.Fines = a.Fines.Clone()
	return a
}

// AttendeeFields is a partial attendee update. Nil fields are left untouched.
type AttendeeFields struct {
	Name           *string
	Mobile         *string
	Status         *Status
	UniformChecked *bool
	Fines          *Fines
}

func (f AttendeeFields) IsEmpty() bool {
	return f.Name == nil && f.Mobile == nil && f.Status == nil && f.UniformChecked == nil && f.Fines == nil
}

// Apply copies the set fields onto a.
func (f AttendeeFields) Apply(a *Attendee) {
	if f.Name != nil {
		a.Name = *f.Name
	}
	if f.Mobile != nil {
		a.Mobile = *f.Mobile
	}
	if f.Status != nil {
		a.Status = *f.Status
	}
	if f.UniformChecked != nil {
		a.UniformChecked = *f.UniformChecked
	}
	if f.Fines != nil {
		a.Fines = f.Fines.Clone()
	}
}

// Columns lists the snake_case names of the set fields, in a fixed order.
func (f AttendeeFields) Columns() []string {
	var cols []string
	if f.Name != nil {
		cols = append(cols, "name")
	}
	if f.Mobile != nil {
		cols = append(cols, "mobile")
	}
	if f.Status != nil {
		cols = append(cols, "status")
	}
	if f.UniformChecked != nil {
		cols = append(cols, "uniform_checked")
	}
	if f.Fines != nil {
		cols = append(cols, "fines")
	}
	return cols
}
