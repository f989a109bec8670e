package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"manpower/internal/domain"
	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
	"manpower/internal/ports/input"
	"manpower/internal/ports/output"
)

var _ input.AttendanceUseCase = (*AttendanceService)(nil)

// AttendanceService applies operator actions to single attendees. Every
// change is written to storage first, as a partial update of the changed
// columns, and only then applied to the in-memory event.
type AttendanceService struct {
	repo     output.EventRepository
	notifier output.ChangeNotifier
	logger   *zap.Logger
	policy   roster.Policy
}

func NewAttendanceService(
	repo output.EventRepository,
	notifier output.ChangeNotifier,
	logger *zap.Logger,
	policy roster.Policy,
) *AttendanceService {
	return &AttendanceService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		policy:   policy,
	}
}

func (s *AttendanceService) Mark(ctx context.Context, event *entities.Event, ref roster.Ref, action roster.Action) (*entities.Attendee, error) {
	i, err := roster.Locate(event.Attendees, ref)
	if err != nil {
		return nil, err
	}
	next, fields, err := roster.Apply(event.Attendees[i], action, s.policy)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, event, i, next, fields)
}

func (s *AttendanceService) ToggleFine(ctx context.Context, event *entities.Event, ref roster.Ref, tag entities.FineTag) (*entities.Attendee, error) {
	i, err := roster.Locate(event.Attendees, ref)
	if err != nil {
		return nil, err
	}
	next, fields, err := roster.ToggleFine(event.Attendees[i], tag)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, event, i, next, fields)
}

// EditAttendee changes the name and/or mobile number. Nil arguments are left
// as they are.
func (s *AttendanceService) EditAttendee(ctx context.Context, event *entities.Event, ref roster.Ref, name, mobile *string) (*entities.Attendee, error) {
	i, err := roster.Locate(event.Attendees, ref)
	if err != nil {
		return nil, err
	}
	var fields entities.AttendeeFields
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, domain.ErrNameRequired
		}
		fields.Name = &trimmed
	}
	if mobile != nil {
		normalised := roster.NormalizeMobile(*mobile)
		fields.Mobile = &normalised
	}
	if fields.IsEmpty() {
		out := event.Attendees[i].Clone()
		return &out, nil
	}
	next := event.Attendees[i].Clone()
	fields.Apply(&next)
	return s.commit(ctx, event, i, next, fields)
}

// AddAttendee appends a pending attendee with the next free roll number.
func (s *AttendanceService) AddAttendee(ctx context.Context, event *entities.Event, name, mobile string) (*entities.Attendee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	a := entities.Attendee{
		EventID: event.ID,
		RollNo:  event.NextRollNo(),
		Name:    name,
		Mobile:  roster.NormalizeMobile(mobile),
		Status:  entities.StatusPending,
		Fines:   entities.Fines{},
	}
	if event.IsPersisted() {
		if err := s.repo.CreateAttendee(ctx, &a); err != nil {
			return nil, fmt.Errorf("create attendee: %w", err)
		}
		s.notify(ctx, output.Change{Kind: output.ChangeAttendeeAdded, EventID: event.ID, AttendeeID: a.ID})
	}
	event.Attendees = append(event.Attendees, a)
	out := a.Clone()
	return &out, nil
}

func (s *AttendanceService) RemoveAttendee(ctx context.Context, event *entities.Event, ref roster.Ref) (*entities.Attendee, error) {
	i, err := roster.Locate(event.Attendees, ref)
	if err != nil {
		return nil, err
	}
	removed := event.Attendees[i]
	if event.IsPersisted() && removed.ID != 0 {
		if err := s.repo.DeleteAttendee(ctx, removed.ID); err != nil {
			return nil, fmt.Errorf("delete attendee: %w", err)
		}
		s.notify(ctx, output.Change{Kind: output.ChangeAttendeeRemoved, EventID: event.ID, AttendeeID: removed.ID})
	}
	event.Attendees = append(event.Attendees[:i:i], event.Attendees[i+1:]...)
	return &removed, nil
}

func (s *AttendanceService) commit(ctx context.Context, event *entities.Event, i int, next entities.Attendee, fields entities.AttendeeFields) (*entities.Attendee, error) {
	current := event.Attendees[i]
	if event.IsPersisted() && current.ID != 0 {
		if err := s.repo.UpdateAttendeeFields(ctx, current.ID, fields); err != nil {
			return nil, fmt.Errorf("update attendee: %w", err)
		}
		s.notify(ctx, output.Change{
			Kind:       output.ChangeAttendeeUpdated,
			EventID:    event.ID,
			AttendeeID: current.ID,
			Fields:     fields.Columns(),
		})
	}
	event.Attendees[i] = next
	out := next.Clone()
	return &out, nil
}

func (s *AttendanceService) notify(ctx context.Context, change output.Change) {
	if err := s.notifier.Publish(ctx, change); err != nil {
		s.logger.Warn("publish change failed", zap.String("kind", string(change.Kind)), zap.Error(err))
	}
}
