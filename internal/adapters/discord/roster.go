package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	pkgdiscord "manpower/pkg/discord"
)

func (h *Handler) handleListEvents(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	events, err := h.rosterUseCase.ListEvents(ctx)
	if err != nil {
		h.respondError(s, i, "list events", err)
		return
	}
	if len(events) == 0 {
		h.respondEphemeral(s, i, h.t(i, "info.no_events", nil))
		return
	}

	lines := make([]string, 0, len(events))
	for idx := range events {
		lines = append(lines, "- "+pkgdiscord.EventLabel(&events[idx]))
	}
	h.respond(s, i, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       h.t(i, "ui.events_title", nil),
			Description: strings.Join(lines, "\n"),
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	})
}

// handleReport posts the report publicly so it can be copied and forwarded.
// Reports longer than one message continue in follow-up messages.
func (h *Handler) handleReport(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	event, ok := h.openEvent(ctx, s, i, opts)
	if !ok {
		return
	}
	report, counts := h.rosterUseCase.Report(event)
	chunks := pkgdiscord.SplitMessage(report, pkgdiscord.MaxContentLength)
	h.respond(s, i, &discordgo.InteractionResponseData{
		Content: chunks[0],
		Embeds:  []*discordgo.MessageEmbed{pkgdiscord.BuildRosterEmbed(event, counts)},
	})
	for n, chunk := range chunks[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: chunk}); err != nil {
			h.logger.Warn("report follow-up failed",
				zap.Uint("event_id", event.ID),
				zap.Int("part", n+2),
				zap.Int("parts", len(chunks)),
				zap.Error(err),
			)
			return
		}
	}
}

func (h *Handler) handleDelete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	if !isAdministrator(i) {
		h.respondEphemeral(s, i, h.t(i, "errors.admin_only", nil))
		return
	}
	id, ok := opts.eventID()
	if !ok {
		h.respondEphemeral(s, i, h.t(i, "errors.event_not_found", nil))
		return
	}
	if err := h.rosterUseCase.DeleteEvent(ctx, id); err != nil {
		h.respondError(s, i, "delete event", err)
		return
	}
	h.logger.Info("event deleted from discord", zap.Uint("event_id", id), zap.String("user", resolveDisplayName(i)))
	h.respondEphemeral(s, i, h.t(i, "info.deleted", map[string]any{"ID": id}))
}

func isAdministrator(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}
