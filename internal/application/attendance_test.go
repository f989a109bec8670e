package application

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"manpower/internal/domain"
	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
	"manpower/internal/ports/output"
)

func setupTestAttendanceService(policy roster.Policy) (*AttendanceService, *mockEventRepo, *mockNotifier) {
	repo := newMockEventRepo()
	notifier := &mockNotifier{}
	return NewAttendanceService(repo, notifier, zap.NewNop(), policy), repo, notifier
}

func roll(n int) roster.Ref { return roster.Ref{RollNo: n} }

// savedEvent stores a three person roster and returns the stored copy.
func savedEvent(t *testing.T, repo *mockEventRepo) *entities.Event {
	t.Helper()
	rs := NewRosterService(repo, &mockNotifier{}, zap.NewNop(), 15)
	ev, err := rs.SaveEvent(context.Background(), rs.ImportRoster(rs.NewEvent(), "Location: Mall\n1. Ravi\n2. Sam Paul\n3. Kiran"))
	if err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}
	return ev
}

func TestAttendanceService_Mark_MirrorsChangedFields(t *testing.T) {
	svc, repo, notifier := setupTestAttendanceService(roster.Policy{})
	ev := savedEvent(t, repo)
	ctx := context.Background()

	a, err := svc.Mark(ctx, ev, roll(2), roster.ActionCheckIn)
	if err != nil {
		t.Fatalf("Mark(in) error: %v", err)
	}
	if a.Status != entities.StatusIn || ev.Attendees[1].Status != entities.StatusIn {
		t.Errorf("status not applied: returned %q, in memory %q", a.Status, ev.Attendees[1].Status)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(repo.updates))
	}
	if cols := repo.updates[0].columns; len(cols) != 1 || cols[0] != "status" {
		t.Errorf("columns = %v, want [status]", cols)
	}
	if repo.updates[0].attendeeID != ev.Attendees[1].ID {
		t.Errorf("updated attendee %d, want %d", repo.updates[0].attendeeID, ev.Attendees[1].ID)
	}
	if len(notifier.changes) != 1 || notifier.changes[0].Kind != output.ChangeAttendeeUpdated {
		t.Errorf("changes = %+v", notifier.changes)
	}

	if _, err := svc.Mark(ctx, ev, roll(2), roster.ActionReset); err != nil {
		t.Fatalf("Mark(reset) error: %v", err)
	}
	if cols := repo.updates[1].columns; len(cols) != 3 {
		t.Errorf("reset columns = %v, want status, uniform_checked, fines", cols)
	}
}

func TestAttendanceService_Mark_UnsavedEventStaysInMemory(t *testing.T) {
	svc, repo, notifier := setupTestAttendanceService(roster.Policy{})
	ev := &entities.Event{Attendees: []entities.Attendee{{RollNo: 1, Name: "Ravi", Status: entities.StatusPending}}}

	if _, err := svc.Mark(context.Background(), ev, roll(1), roster.ActionCheckOut); err != nil {
		t.Fatalf("Mark error: %v", err)
	}
	if ev.Attendees[0].Status != entities.StatusOut {
		t.Errorf("Status = %q, want out", ev.Attendees[0].Status)
	}
	if len(repo.updates) != 0 || len(notifier.changes) != 0 {
		t.Error("unsaved event should not reach the repository")
	}
}

func TestAttendanceService_Mark_StoreFailureKeepsState(t *testing.T) {
	svc, repo, _ := setupTestAttendanceService(roster.Policy{})
	ev := savedEvent(t, repo)
	repo.errUpdate = errStore

	_, err := svc.Mark(context.Background(), ev, roll(1), roster.ActionCheckIn)
	if !errors.Is(err, errStore) {
		t.Fatalf("err = %v, want errStore", err)
	}
	if ev.Attendees[0].Status != entities.StatusPending {
		t.Errorf("Status = %q, want pending after failed write", ev.Attendees[0].Status)
	}
}

func TestAttendanceService_Mark_UniformPolicy(t *testing.T) {
	ctx := context.Background()

	strict, repo, _ := setupTestAttendanceService(roster.Policy{UniformRequiresCheckIn: true})
	ev := savedEvent(t, repo)
	if _, err := strict.Mark(ctx, ev, roll(1), roster.ActionUniform); !errors.Is(err, domain.ErrNotCheckedIn) {
		t.Fatalf("strict uniform on pending err = %v, want ErrNotCheckedIn", err)
	}
	if ev.Attendees[0].UniformChecked || len(repo.updates) != 0 {
		t.Error("rejected uniform action changed state")
	}
	if _, err := strict.Mark(ctx, ev, roll(1), roster.ActionCheckIn); err != nil {
		t.Fatalf("Mark(in): %v", err)
	}
	if _, err := strict.Mark(ctx, ev, roll(1), roster.ActionUniform); err != nil {
		t.Fatalf("strict uniform after check-in err = %v", err)
	}

	baseline, repo2, _ := setupTestAttendanceService(roster.Policy{})
	ev2 := savedEvent(t, repo2)
	if _, err := baseline.Mark(ctx, ev2, roll(1), roster.ActionUniform); err != nil {
		t.Fatalf("baseline uniform on pending err = %v", err)
	}
}

func TestAttendanceService_Mark_UnknownRoll(t *testing.T) {
	svc, repo, _ := setupTestAttendanceService(roster.Policy{})
	ev := savedEvent(t, repo)
	if _, err := svc.Mark(context.Background(), ev, roll(42), roster.ActionCheckIn); !errors.Is(err, domain.ErrAttendeeNotFound) {
		t.Errorf("err = %v, want ErrAttendeeNotFound", err)
	}
}

func TestAttendanceService_ToggleFine(t *testing.T) {
	svc, repo, _ := setupTestAttendanceService(roster.Policy{})
	ev := savedEvent(t, repo)
	ctx := context.Background()

	if _, err := svc.ToggleFine(ctx, ev, roll(3), entities.FinePant); err != nil {
		t.Fatalf("ToggleFine error: %v", err)
	}
	if !ev.Attendees[2].Fines.Has(entities.FinePant) {
		t.Error("pant fine not added")
	}
	if cols := repo.updates[0].columns; len(cols) != 1 || cols[0] != "fines" {
		t.Errorf("columns = %v, want [fines]", cols)
	}

	if _, err := svc.ToggleFine(ctx, ev, roll(3), entities.FineTag("cap")); !errors.Is(err, domain.ErrUnknownFineTag) {
		t.Errorf("err = %v, want ErrUnknownFineTag", err)
	}
	if len(repo.updates) != 1 {
		t.Error("rejected toggle reached the repository")
	}
}

func TestAttendanceService_AddAttendee(t *testing.T) {
	svc, repo, notifier := setupTestAttendanceService(roster.Policy{})
	ev := savedEvent(t, repo)

	a, err := svc.AddAttendee(context.Background(), ev, "  Arjun ", "+91 98765-43210")
	if err != nil {
		t.Fatalf("AddAttendee error: %v", err)
	}
	if a.RollNo != 4 || a.Name != "Arjun" || a.Mobile != "9876543210" || a.Status != entities.StatusPending {
		t.Errorf("added = %+v", a)
	}
	if a.ID == 0 {
		t.Error("added attendee was not persisted")
	}
	if len(ev.Attendees) != 4 || len(repo.attendees[ev.ID]) != 4 {
		t.Errorf("roster sizes: memory %d, store %d, want 4", len(ev.Attendees), len(repo.attendees[ev.ID]))
	}
	if notifier.changes[len(notifier.changes)-1].Kind != output.ChangeAttendeeAdded {
		t.Error("missing attendee_added change")
	}

	if _, err := svc.AddAttendee(context.Background(), ev, "   ", ""); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("err = %v, want ErrNameRequired", err)
	}
}

func TestAttendanceService_EditAttendee(t *testing.T) {
	svc, repo, _ := setupTestAttendanceService(roster.Policy{})
	ev := savedEvent(t, repo)
	ctx := context.Background()

	name := "Sam Paulson"
	a, err := svc.EditAttendee(ctx, ev, roll(2), &name, nil)
	if err != nil {
		t.Fatalf("EditAttendee error: %v", err)
	}
	if a.Name != "Sam Paulson" || ev.Attendees[1].Name != "Sam Paulson" {
		t.Errorf("name not updated: %+v", a)
	}
	if cols := repo.updates[0].columns; len(cols) != 1 || cols[0] != "name" {
		t.Errorf("columns = %v, want [name]", cols)
	}

	blank := " "
	if _, err := svc.EditAttendee(ctx, ev, roll(2), &blank, nil); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("err = %v, want ErrNameRequired", err)
	}

	if _, err := svc.EditAttendee(ctx, ev, roll(2), nil, nil); err != nil {
		t.Errorf("no-op edit err = %v", err)
	}
	if len(repo.updates) != 1 {
		t.Errorf("updates = %d, want 1", len(repo.updates))
	}
}

func TestAttendanceService_RemoveAttendee(t *testing.T) {
	svc, repo, _ := setupTestAttendanceService(roster.Policy{})
	ev := savedEvent(t, repo)

	removed, err := svc.RemoveAttendee(context.Background(), ev, roll(1))
	if err != nil {
		t.Fatalf("RemoveAttendee error: %v", err)
	}
	if removed.Name != "Ravi" {
		t.Errorf("removed = %q, want Ravi", removed.Name)
	}
	if len(ev.Attendees) != 2 || len(repo.attendees[ev.ID]) != 2 {
		t.Errorf("roster sizes: memory %d, store %d, want 2", len(ev.Attendees), len(repo.attendees[ev.ID]))
	}

	repo.errDelete = errStore
	if _, err := svc.RemoveAttendee(context.Background(), ev, roll(2)); !errors.Is(err, errStore) {
		t.Fatalf("err = %v, want errStore", err)
	}
	if len(ev.Attendees) != 2 {
		t.Error("failed delete removed attendee from memory")
	}
}

func TestAttendanceService_SharedRollNumber(t *testing.T) {
	svc, repo, _ := setupTestAttendanceService(roster.Policy{})
	rs := NewRosterService(repo, &mockNotifier{}, zap.NewNop(), 15)
	ev, err := rs.SaveEvent(context.Background(), rs.ImportRoster(rs.NewEvent(), "Location: Mall\n1. Ravi\n1. Sam\n2. Tom"))
	if err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.Mark(ctx, ev, roll(1), roster.ActionCheckIn); !errors.Is(err, domain.ErrAmbiguousRoll) {
		t.Fatalf("Mark(roll 1) err = %v, want ErrAmbiguousRoll", err)
	}
	if len(repo.updates) != 0 {
		t.Error("ambiguous mark reached the repository")
	}

	sam, err := svc.Mark(ctx, ev, roster.Ref{RollNo: 1, Name: "sam"}, roster.ActionCheckIn)
	if err != nil {
		t.Fatalf("Mark(1 sam) error: %v", err)
	}
	if sam.Name != "Sam" || ev.Attendees[1].Status != entities.StatusIn || ev.Attendees[0].Status != entities.StatusPending {
		t.Errorf("wrong attendee checked in: %+v", ev.Attendees)
	}

	fined, err := svc.ToggleFine(ctx, ev, roster.Ref{ID: ev.Attendees[1].ID}, entities.FineLate)
	if err != nil || fined.Name != "Sam" {
		t.Fatalf("ToggleFine(by id) = %+v, %v; want Sam", fined, err)
	}

	removed, err := svc.RemoveAttendee(ctx, ev, roster.Ref{RollNo: 1, Name: "Sam"})
	if err != nil || removed.Name != "Sam" {
		t.Fatalf("RemoveAttendee(1 Sam) = %+v, %v; want Sam", removed, err)
	}
	ravi, err := svc.Mark(ctx, ev, roll(1), roster.ActionCheckOut)
	if err != nil || ravi.Name != "Ravi" {
		t.Errorf("Mark(roll 1) after removal = %+v, %v; want Ravi", ravi, err)
	}
}
