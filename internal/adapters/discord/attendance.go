package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
	pkgdiscord "manpower/pkg/discord"
)

func attendeeData(a *entities.Attendee) map[string]any {
	return map[string]any{"Roll": a.RollNo, "Name": a.Name}
}

func (h *Handler) handleMark(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	action, err := roster.ParseAction(opts.str(optAction))
	if err != nil {
		h.respondError(s, i, "mark", err)
		return
	}
	ref, err := opts.ref()
	if err != nil {
		h.respondError(s, i, "mark", err)
		return
	}
	event, ok := h.openEvent(ctx, s, i, opts)
	if !ok {
		return
	}
	a, err := h.attendanceUseCase.Mark(ctx, event, ref, action)
	if err != nil {
		h.respondError(s, i, "mark", err)
		return
	}
	h.logger.Debug("attendance marked",
		zap.Uint("event_id", event.ID),
		zap.Int("roll", a.RollNo),
		zap.String("action", string(action)),
		zap.String("user", resolveDisplayName(i)),
	)
	h.respondEphemeral(s, i, roster.StatusIcon(*a)+" "+h.t(i, "info.marked", attendeeData(a)))
}

func (h *Handler) handleFine(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	tag, err := entities.ParseFineTag(opts.str(optTag))
	if err != nil {
		h.respondError(s, i, "fine", err)
		return
	}
	ref, err := opts.ref()
	if err != nil {
		h.respondError(s, i, "fine", err)
		return
	}
	event, ok := h.openEvent(ctx, s, i, opts)
	if !ok {
		return
	}
	a, err := h.attendanceUseCase.ToggleFine(ctx, event, ref, tag)
	if err != nil {
		h.respondError(s, i, "fine", err)
		return
	}
	fines := pkgdiscord.FormatFines(a.Fines)
	if fines == "" {
		fines = h.t(i, "ui.no_fines", nil)
	}
	data := attendeeData(a)
	data["Fines"] = fines
	h.respondEphemeral(s, i, h.t(i, "info.fine_toggled", data))
}

func (h *Handler) handleAdd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	event, ok := h.openEvent(ctx, s, i, opts)
	if !ok {
		return
	}
	a, err := h.attendanceUseCase.AddAttendee(ctx, event, opts.str(optName), opts.str(optMobile))
	if err != nil {
		h.respondError(s, i, "add attendee", err)
		return
	}
	h.respondEphemeral(s, i, h.t(i, "info.added", attendeeData(a)))
}

func (h *Handler) handleEdit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	ref, err := opts.ref()
	if err != nil {
		h.respondError(s, i, "edit attendee", err)
		return
	}
	event, ok := h.openEvent(ctx, s, i, opts)
	if !ok {
		return
	}
	a, err := h.attendanceUseCase.EditAttendee(ctx, event, ref, opts.optionalStr(optName), opts.optionalStr(optMobile))
	if err != nil {
		h.respondError(s, i, "edit attendee", err)
		return
	}
	h.respondEphemeral(s, i, h.t(i, "info.edited", attendeeData(a)))
}

func (h *Handler) handleRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	ref, err := opts.ref()
	if err != nil {
		h.respondError(s, i, "remove attendee", err)
		return
	}
	event, ok := h.openEvent(ctx, s, i, opts)
	if !ok {
		return
	}
	a, err := h.attendanceUseCase.RemoveAttendee(ctx, event, ref)
	if err != nil {
		h.respondError(s, i, "remove attendee", err)
		return
	}
	h.respondEphemeral(s, i, h.t(i, "info.removed", attendeeData(a)))
}
