package output

import "context"

type ChangeKind string

const (
	ChangeEventSaved      ChangeKind = "event_saved"
	ChangeEventDeleted    ChangeKind = "event_deleted"
	ChangeAttendeeUpdated ChangeKind = "attendee_updated"
	ChangeAttendeeAdded   ChangeKind = "attendee_added"
	ChangeAttendeeRemoved ChangeKind = "attendee_removed"
)

// Change describes a stored roster change other clients may want to reload.
type Change struct {
	Kind       ChangeKind `json:"kind"`
	EventID    uint       `json:"event_id"`
	AttendeeID uint       `json:"attendee_id,omitempty"`
	Fields     []string   `json:"fields,omitempty"`
}

// ChangeNotifier broadcasts roster changes.
type ChangeNotifier interface {
	Publish(ctx context.Context, change Change) error
}
