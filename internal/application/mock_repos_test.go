package application

import (
	"context"
	"errors"
	"sort"

	"manpower/internal/domain"
	"manpower/internal/domain/entities"
	"manpower/internal/ports/output"
)

// ── Mock EventRepository ──

type fieldUpdate struct {
	attendeeID uint
	columns    []string
}

type mockEventRepo struct {
	events    map[uint]*entities.Event
	attendees map[uint][]entities.Attendee
	nextID    uint
	updates   []fieldUpdate

	errUpsert  error
	errReplace error
	errUpdate  error
	errCreate  error
	errDelete  error
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		events:    make(map[uint]*entities.Event),
		attendees: make(map[uint][]entities.Attendee),
	}
}

func (m *mockEventRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockEventRepo) ListEvents(_ context.Context) ([]entities.Event, error) {
	out := make([]entities.Event, 0, len(m.events))
	for _, e := range m.events {
		c := *e
		c.Attendees = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockEventRepo) FindEvent(_ context.Context, id uint) (*entities.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	c := *e
	c.Attendees = nil
	return &c, nil
}

func (m *mockEventRepo) ListAttendees(_ context.Context, eventID uint) ([]entities.Attendee, error) {
	stored := m.attendees[eventID]
	out := make([]entities.Attendee, len(stored))
	for i := range stored {
		out[i] = stored[i].Clone()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RollNo < out[j].RollNo })
	return out, nil
}

func (m *mockEventRepo) UpsertEvent(_ context.Context, event *entities.Event) error {
	if m.errUpsert != nil {
		return m.errUpsert
	}
	if event.ID == 0 {
		event.ID = m.id()
	} else if _, ok := m.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	c := *event
	c.Attendees = nil
	m.events[event.ID] = &c
	return nil
}

func (m *mockEventRepo) ReplaceAttendees(_ context.Context, eventID uint, attendees []entities.Attendee) error {
	if m.errReplace != nil {
		return m.errReplace
	}
	stored := make([]entities.Attendee, len(attendees))
	for i, a := range attendees {
		a = a.Clone()
		a.EventID = eventID
		if a.ID == 0 {
			a.ID = m.id()
		}
		stored[i] = a
	}
	m.attendees[eventID] = stored
	return nil
}

func (m *mockEventRepo) CreateAttendee(_ context.Context, attendee *entities.Attendee) error {
	if m.errCreate != nil {
		return m.errCreate
	}
	attendee.ID = m.id()
	m.attendees[attendee.EventID] = append(m.attendees[attendee.EventID], attendee.Clone())
	return nil
}

func (m *mockEventRepo) UpdateAttendeeFields(_ context.Context, attendeeID uint, fields entities.AttendeeFields) error {
	if m.errUpdate != nil {
		return m.errUpdate
	}
	for eventID, list := range m.attendees {
		for i := range list {
			if list[i].ID == attendeeID {
				fields.Apply(&m.attendees[eventID][i])
				m.updates = append(m.updates, fieldUpdate{attendeeID: attendeeID, columns: fields.Columns()})
				return nil
			}
		}
	}
	return domain.ErrAttendeeNotFound
}

func (m *mockEventRepo) DeleteAttendee(_ context.Context, attendeeID uint) error {
	if m.errDelete != nil {
		return m.errDelete
	}
	for eventID, list := range m.attendees {
		for i := range list {
			if list[i].ID == attendeeID {
				m.attendees[eventID] = append(list[:i:i], list[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrAttendeeNotFound
}

func (m *mockEventRepo) DeleteEvent(_ context.Context, id uint) error {
	if m.errDelete != nil {
		return m.errDelete
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(m.events, id)
	delete(m.attendees, id)
	return nil
}

// ── Mock ChangeNotifier ──

type mockNotifier struct {
	changes []output.Change
	err     error
}

func (m *mockNotifier) Publish(_ context.Context, change output.Change) error {
	m.changes = append(m.changes, change)
	return m.err
}

var errStore = errors.New("store unavailable")
