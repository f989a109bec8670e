package input

import (
	"context"

	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
)

type RosterUseCase interface {
	ListEvents(ctx context.Context) ([]entities.Event, error)
	OpenEvent(ctx context.Context, id uint) (*entities.Event, error)
	NewEvent() *entities.Event
	ImportRoster(event *entities.Event, text string) *entities.Event
	SaveEvent(ctx context.Context, event *entities.Event) (*entities.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	Report(event *entities.Event) (string, roster.Counts)
}
