package discord

import (
	"context"
	"time"

	"go.uber.org/zap"

	"manpower/internal/ports/input"
	"manpower/internal/ports/output"
)

// Discord drops interactions not answered within three seconds, work past
// that is wasted.
const interactionTimeout = 3 * time.Second

// Handler handles Discord interactions using use cases.
type Handler struct {
	rosterUseCase     input.RosterUseCase
	attendanceUseCase input.AttendanceUseCase
	translator        output.Translator
	logger            *zap.Logger

	// baseCtx is cancelled on shutdown; every interaction derives from it.
	baseCtx context.Context
}

// NewHandler creates a Handler.
func NewHandler(
	rosterUseCase input.RosterUseCase,
	attendanceUseCase input.AttendanceUseCase,
	translator output.Translator,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		rosterUseCase:     rosterUseCase,
		attendanceUseCase: attendanceUseCase,
		translator:        translator,
		logger:            logger,
		baseCtx:           context.Background(),
	}
}

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(h.baseCtx, interactionTimeout)
}
