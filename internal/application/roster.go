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

var _ input.RosterUseCase = (*RosterService)(nil)

// RosterService loads, imports, saves and reports event rosters.
type RosterService struct {
	repo          output.EventRepository
	notifier      output.ChangeNotifier
	logger        *zap.Logger
	defaultTarget int
}

func NewRosterService(
	repo output.EventRepository,
	notifier output.ChangeNotifier,
	logger *zap.Logger,
	defaultTarget int,
) *RosterService {
	return &RosterService{
		repo:          repo,
		notifier:      notifier,
		logger:        logger,
		defaultTarget: defaultTarget,
	}
}

func (s *RosterService) ListEvents(ctx context.Context) ([]entities.Event, error) {
	return s.repo.ListEvents(ctx)
}

// OpenEvent loads an event with its roster.
func (s *RosterService) OpenEvent(ctx context.Context, id uint) (*entities.Event, error) {
	event, err := s.repo.FindEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	attendees, err := s.repo.ListAttendees(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	event.Attendees = attendees
	return event, nil
}

func (s *RosterService) NewEvent() *entities.Event {
	return entities.NewEvent(s.defaultTarget)
}

// ImportRoster parses pasted text and merges it into a copy of event. Nothing
// is stored until SaveEvent.
func (s *RosterService) ImportRoster(event *entities.Event, text string) *entities.Event {
	next := event.Clone()
	draft, entries := roster.Parse(text)
	roster.ApplyDraft(next, draft)
	next.Attendees = roster.Reconcile(event.Attendees, entries)
	roster.SortByRoll(next.Attendees)
	for i := range next.Attendees {
		next.Attendees[i].EventID = next.ID
	}

	s.logger.Debug("roster imported",
		zap.Uint("event_id", event.ID),
		zap.Int("before", len(event.Attendees)),
		zap.Int("after", len(next.Attendees)),
		zap.Bool("section_started", draft.SectionStarted),
	)
	return next
}

// SaveEvent stores the event and replaces its stored roster. On error the
// caller's event is untouched; on success the stored copy is returned.
func (s *RosterService) SaveEvent(ctx context.Context, event *entities.Event) (*entities.Event, error) {
	if !event.IsPublishable() {
		return nil, domain.ErrLocationRequired
	}
	saved := event.Clone()
	saved.Location = strings.TrimSpace(saved.Location)

	if err := s.repo.UpsertEvent(ctx, saved); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	if err := s.repo.ReplaceAttendees(ctx, saved.ID, saved.Attendees); err != nil {
		return nil, fmt.Errorf("save roster: %w", err)
	}
	attendees, err := s.repo.ListAttendees(ctx, saved.ID)
	if err != nil {
		return nil, fmt.Errorf("reload roster: %w", err)
	}
	saved.Attendees = attendees

	s.logger.Info("event saved", zap.Uint("event_id", saved.ID), zap.Int("attendees", len(attendees)))
	s.notify(ctx, output.Change{Kind: output.ChangeEventSaved, EventID: saved.ID})
	return saved, nil
}

func (s *RosterService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.Info("event deleted", zap.Uint("event_id", id))
	s.notify(ctx, output.Change{Kind: output.ChangeEventDeleted, EventID: id})
	return nil
}

func (s *RosterService) Report(event *entities.Event) (string, roster.Counts) {
	return roster.Generate(event, event.Attendees)
}

func (s *RosterService) notify(ctx context.Context, change output.Change) {
	if err := s.notifier.Publish(ctx, change); err != nil {
		s.logger.Warn("publish change failed", zap.String("kind", string(change.Kind)), zap.Error(err))
	}
}
