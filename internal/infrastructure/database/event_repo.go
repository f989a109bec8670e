package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"manpower/internal/domain"
	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
	"manpower/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

const pgForeignKeyViolation = "23503"

// EventRepository implements output.EventRepository on PostgreSQL via pgx.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) ListEvents(ctx context.Context) ([]entities.Event, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+eventColumns+" FROM events ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]entities.Event, len(records))
	for i := range records {
		out[i] = eventToDomain(records[i])
	}
	return out, nil
}

func (r *EventRepository) FindEvent(ctx context.Context, id uint) (*entities.Event, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+eventColumns+" FROM events WHERE id = $1", int64(id))
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	record, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[eventRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	e := eventToDomain(record)
	return &e, nil
}

func (r *EventRepository) ListAttendees(ctx context.Context, eventID uint) ([]entities.Attendee, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+attendeeColumns+" FROM attendees WHERE event_id = $1 ORDER BY roll_no, position, id",
		int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[attendeeRow])
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	out := make([]entities.Attendee, len(records))
	for i := range records {
		out[i] = attendeeToDomain(records[i])
	}
	return out, nil
}

func (r *EventRepository) UpsertEvent(ctx context.Context, event *entities.Event) error {
	if event.ID == 0 {
		var id int64
		err := r.pool.QueryRow(ctx, `
			INSERT INTO events (date, day, location, schedule, report_time, target_count)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at`,
			event.Date, event.Day, event.Location, event.Schedule, event.ReportTime, int32(event.TargetCount),
		).Scan(&id, &event.CreatedAt, &event.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		event.ID = uint(id)
		return nil
	}

	err := r.pool.QueryRow(ctx, `
		UPDATE events
		SET date = $2, day = $3, location = $4, schedule = $5, report_time = $6, target_count = $7, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		int64(event.ID), event.Date, event.Day, event.Location, event.Schedule, event.ReportTime, int32(event.TargetCount),
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// ReplaceAttendees diffs the stored roster against attendees inside one
// transaction. A stored row is reused when the incoming attendee carries its
// ID or, for attendees without an ID, has the same name key. Reused rows are
// updated, the rest inserted, and stored rows nobody claimed are deleted.
func (r *EventRepository) ReplaceAttendees(ctx context.Context, eventID uint, attendees []entities.Attendee) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, "SELECT id FROM events WHERE id = $1 FOR UPDATE", int64(eventID)).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, "SELECT id, name FROM attendees WHERE event_id = $1 ORDER BY position, id", int64(eventID))
		if err != nil {
			return err
		}
		existingByID := make(map[int64]bool)
		existingByKey := make(map[string]int64)
		var (
			id   int64
			name string
		)
		_, err = pgx.ForEachRow(rows, []any{&id, &name}, func() error {
			existingByID[id] = true
			existingByKey[roster.NameKey(name)] = id
			return nil
		})
		if err != nil {
			return err
		}

		claimed := make(map[int64]bool, len(attendees))
		targets := make([]int64, len(attendees))
		for i, a := range attendees {
			if a.ID != 0 && existingByID[int64(a.ID)] && !claimed[int64(a.ID)] {
				targets[i] = int64(a.ID)
			} else if match, ok := existingByKey[roster.NameKey(a.Name)]; ok && a.ID == 0 && !claimed[match] {
				targets[i] = match
			}
			if targets[i] != 0 {
				claimed[targets[i]] = true
			}
		}

		kept := make([]int64, 0, len(claimed))
		for rowID := range claimed {
			kept = append(kept, rowID)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM attendees WHERE event_id = $1 AND NOT (id = ANY($2))", int64(eventID), kept); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, a := range attendees {
			if targets[i] != 0 {
				batch.Queue(`
					UPDATE attendees
					SET roll_no = $2, position = $3, name = $4, mobile = $5, status = $6, uniform_checked = $7, fines = $8
					WHERE id = $1`,
					targets[i], int32(a.RollNo), int32(i), a.Name, a.Mobile, string(statusOrPending(a.Status)), a.UniformChecked, finesToDB(a.Fines))
				continue
			}
			batch.Queue(`
				INSERT INTO attendees (event_id, roll_no, position, name, mobile, status, uniform_checked, fines)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				int64(eventID), int32(a.RollNo), int32(i), a.Name, a.Mobile, string(statusOrPending(a.Status)), a.UniformChecked, finesToDB(a.Fines))
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("replace attendees: %w", err)
	}
	return nil
}

func (r *EventRepository) CreateAttendee(ctx context.Context, attendee *entities.Attendee) error {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO attendees (event_id, roll_no, position, name, mobile, status, uniform_checked, fines)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position) + 1, 0) FROM attendees WHERE event_id = $1), $3, $4, $5, $6, $7)
		RETURNING id`,
		int64(attendee.EventID), int32(attendee.RollNo), attendee.Name, attendee.Mobile,
		string(statusOrPending(attendee.Status)), attendee.UniformChecked, finesToDB(attendee.Fines),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("create attendee: %w", err)
	}
	attendee.ID = uint(id)
	return nil
}

// UpdateAttendeeFields writes only the columns set in fields, so concurrent
// changes to other columns survive.
func (r *EventRepository) UpdateAttendeeFields(ctx context.Context, attendeeID uint, fields entities.AttendeeFields) error {
	if fields.IsEmpty() {
		return nil
	}
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Mobile != nil {
		add("mobile", *fields.Mobile)
	}
	if fields.Status != nil {
		add("status", string(*fields.Status))
	}
	if fields.UniformChecked != nil {
		add("uniform_checked", *fields.UniformChecked)
	}
	if fields.Fines != nil {
		add("fines", finesToDB(*fields.Fines))
	}
	args = append(args, int64(attendeeID))
	query := fmt.Sprintf("UPDATE attendees SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update attendee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAttendeeNotFound
	}
	return nil
}

func (r *EventRepository) DeleteAttendee(ctx context.Context, attendeeID uint) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM attendees WHERE id = $1", int64(attendeeID))
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAttendeeNotFound
	}
	return nil
}

// DeleteEvent relies on ON DELETE CASCADE to remove the roster.
func (r *EventRepository) DeleteEvent(ctx context.Context, id uint) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM events WHERE id = $1", int64(id))
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func statusOrPending(s entities.Status) entities.Status {
	if s == "" {
		return entities.StatusPending
	}
	return s
}
