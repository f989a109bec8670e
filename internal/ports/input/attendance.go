package input

import (
	"context"

	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
)

type AttendanceUseCase interface {
	Mark(ctx context.Context, event *entities.Event, ref roster.Ref, action roster.Action) (*entities.Attendee, error)
	ToggleFine(ctx context.Context, event *entities.Event, ref roster.Ref, tag entities.FineTag) (*entities.Attendee, error)
	AddAttendee(ctx context.Context, event *entities.Event, name, mobile string) (*entities.Attendee, error)
	EditAttendee(ctx context.Context, event *entities.Event, ref roster.Ref, name, mobile *string) (*entities.Attendee, error)
	RemoveAttendee(ctx context.Context, event *entities.Event, ref roster.Ref) (*entities.Attendee, error)
}
