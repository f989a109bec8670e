package output

import (
	"context"

	"manpower/internal/domain/entities"
)

// EventRepository persists events and their rosters.
type EventRepository interface {
	// ListEvents returns events newest first, without attendees.
	ListEvents(ctx context.Context) ([]entities.Event, error)
	FindEvent(ctx context.Context, id uint) (*entities.Event, error)
	// ListAttendees returns the roster ordered by roll number.
	ListAttendees(ctx context.Context, eventID uint) ([]entities.Attendee, error)
	// UpsertEvent creates the event when its ID is zero and assigns the ID,
	// otherwise updates it.
	UpsertEvent(ctx context.Context, event *entities.Event) error
	// ReplaceAttendees makes the stored roster equal to attendees, in order.
	ReplaceAttendees(ctx context.Context, eventID uint, attendees []entities.Attendee) error
	CreateAttendee(ctx context.Context, attendee *entities.Attendee) error
	// UpdateAttendeeFields writes only the non-nil fields.
	UpdateAttendeeFields(ctx context.Context, attendeeID uint, fields entities.AttendeeFields) error
	DeleteAttendee(ctx context.Context, attendeeID uint) error
	// DeleteEvent removes the event and all its attendees.
	DeleteEvent(ctx context.Context, id uint) error
}
