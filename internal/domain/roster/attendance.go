package roster

import (
	"fmt"
	"strings"

	"manpower/internal/domain"
	"manpower/internal/domain/entities"
)

// Action is an attendance transition an operator can apply to one attendee.
type Action string

const (
	ActionCheckIn  Action = "in"
	ActionUniform  Action = "dress"
	ActionCheckOut Action = "out"
	ActionReset    Action = "reset"
)

var Actions = []Action{ActionCheckIn, ActionUniform, ActionCheckOut, ActionReset}

func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownAction, s)
}

// Policy holds the business rules that differ between deployments.
type Policy struct {
	// UniformRequiresCheckIn rejects ActionUniform unless the attendee is
	// currently checked in.
	UniformRequiresCheckIn bool
}

// Apply returns a with action applied together with the fields that changed,
// which is what must be mirrored to storage. a itself is not modified.
func Apply(a entities.Attendee, action Action, p Policy) (entities.Attendee, entities.AttendeeFields, error) {
	next := a.Clone()
	var fields entities.AttendeeFields

	switch action {
	case ActionCheckIn:
		status := entities.StatusIn
		fields.Status = &status
	case ActionCheckOut:
		status := entities.StatusOut
		fields.Status = &status
	case ActionUniform:
		if p.UniformRequiresCheckIn && a.Status != entities.StatusIn {
			return a, entities.AttendeeFields{}, domain.ErrNotCheckedIn
		}
		checked := true
		fields.UniformChecked = &checked
	case ActionReset:
		status := entities.StatusPending
		checked := false
		fines := entities.Fines{}
		fields.Status = &status
		fields.UniformChecked = &checked
		fields.Fines = &fines
	default:
		return a, entities.AttendeeFields{}, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}

	fields.Apply(&next)
	return next, fields, nil
}

// ToggleFine adds tag to a's fines, or removes it when already present.
func ToggleFine(a entities.Attendee, tag entities.FineTag) (entities.Attendee, entities.AttendeeFields, error) {
	if !tag.Valid() {
		return a, entities.AttendeeFields{}, fmt.Errorf("%w: %q", domain.ErrUnknownFineTag, tag)
	}
	next := a.Clone()
	fines := a.Fines.Toggle(tag)
	fields := entities.AttendeeFields{Fines: &fines}
	fields.Apply(&next)
	return next, fields, nil
}
