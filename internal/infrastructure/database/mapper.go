package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"manpower/internal/domain/entities"
)

const (
	eventColumns    = "id, date, day, location, schedule, report_time, target_count, created_at, updated_at"
	attendeeColumns = "id, event_id, roll_no, name, mobile, status, uniform_checked, fines"
)

type eventRow struct {
	ID          int64              `db:"id"`
	Date        string             `db:"date"`
	Day         string             `db:"day"`
	Location    string             `db:"location"`
	Schedule    string             `db:"schedule"`
	ReportTime  string             `db:"report_time"`
	TargetCount int32              `db:"target_count"`
	CreatedAt   pgtype.Timestamptz `db:"created_at"`
	UpdatedAt   pgtype.Timestamptz `db:"updated_at"`
}

type attendeeRow struct {
	ID             int64    `db:"id"`
	EventID        int64    `db:"event_id"`
	RollNo         int32    `db:"roll_no"`
	Name           string   `db:"name"`
	Mobile         string   `db:"mobile"`
	Status         string   `db:"status"`
	UniformChecked bool     `db:"uniform_checked"`
	Fines          []string `db:"fines"`
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func eventToDomain(e eventRow) entities.Event {
	return entities.Event{
		ID:          uint(e.ID),
		Date:        e.Date,
		Day:         e.Day,
		Location:    e.Location,
		Schedule:    e.Schedule,
		ReportTime:  e.ReportTime,
		TargetCount: int(e.TargetCount),
		CreatedAt:   pgtypeTimestamptzToTime(e.CreatedAt),
		UpdatedAt:   pgtypeTimestamptzToTime(e.UpdatedAt),
	}
}

func attendeeToDomain(a attendeeRow) entities.Attendee {
	status, err := entities.ParseStatus(a.Status)
	if err != nil {
		status = entities.StatusPending
	}
	return entities.Attendee{
		ID:             uint(a.ID),
		EventID:        uint(a.EventID),
		RollNo:         int(a.RollNo),
		Name:           a.Name,
		Mobile:         a.Mobile,
		Status:         status,
		UniformChecked: a.UniformChecked,
		Fines:          entities.FinesFromStrings(a.Fines),
	}
}

// finesToDB never returns nil so the NOT NULL column gets '{}'.
func finesToDB(f entities.Fines) []string {
	if len(f) == 0 {
		return []string{}
	}
	return f.Strings()
}
