package discord

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"manpower/internal/domain"
	pkgdiscord "manpower/pkg/discord"
)

const (
	importModalPrefix = "roster_import_modal_"
	importModalNew    = importModalPrefix + "new"
	rosterInputID     = "roster"

	// Discord caps paragraph text inputs at 4000 characters.
	rosterMaxLength = 4000
)

func importModalID(eventID uint) string {
	if eventID == 0 {
		return importModalNew
	}
	return importModalPrefix + strconv.FormatUint(uint64(eventID), 10)
}

// parseImportModalID returns the target event id (0 for a new event).
func parseImportModalID(customID string) (uint, bool) {
	rest, ok := strings.CutPrefix(customID, importModalPrefix)
	if !ok {
		return 0, false
	}
	if rest == "new" {
		return 0, true
	}
	id, err := strconv.ParseUint(rest, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) handleOpenImportModal(s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	id, _ := opts.eventID()
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: importModalID(id),
			Title:    h.t(i, "ui.import_title", nil),
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    rosterInputID,
						Label:       h.t(i, "ui.import_label", nil),
						Style:       discordgo.TextInputParagraph,
						Required:    true,
						MaxLength:   rosterMaxLength,
						Placeholder: h.t(i, "ui.import_placeholder", nil),
					},
				}},
			},
		},
	})
	if err != nil {
		h.logger.Warn("open import modal failed", zap.Error(err))
	}
}

// HandleModalSubmit routes modals by CustomID.
func (h *Handler) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	switch {
	case strings.HasPrefix(data.CustomID, importModalPrefix):
		h.handleImportModalSubmit(s, i, data)
	default:
		// Unknown modal: ignore.
	}
}

func (h *Handler) handleImportModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) {
	id, ok := parseImportModalID(data.CustomID)
	if !ok {
		return
	}
	text := pkgdiscord.TextInputValue(data, rosterInputID)
	if strings.TrimSpace(text) == "" {
		h.respondEphemeral(s, i, h.t(i, "errors.empty_paste", nil))
		return
	}

	ctx, cancel := h.requestContext()
	defer cancel()
	event := h.rosterUseCase.NewEvent()
	if id != 0 {
		var err error
		if event, err = h.rosterUseCase.OpenEvent(ctx, id); err != nil {
			h.respondError(s, i, "open event", err)
			return
		}
	}

	imported := h.rosterUseCase.ImportRoster(event, text)
	saved, err := h.rosterUseCase.SaveEvent(ctx, imported)
	if err != nil {
		if domain.Code(err) != "" {
			h.respondError(s, i, "import roster", err)
			return
		}
		// Nothing was stored in memory either, the operator can paste again.
		h.logger.Error("import roster failed", zap.Uint("event_id", id), zap.Error(err))
		h.respondEphemeral(s, i, h.t(i, "errors.save_failed", nil))
		return
	}

	h.logger.Info("roster imported from discord",
		zap.Uint("event_id", saved.ID),
		zap.Int("attendees", len(saved.Attendees)),
		zap.String("user", resolveDisplayName(i)),
	)
	_, counts := h.rosterUseCase.Report(saved)
	h.respond(s, i, &discordgo.InteractionResponseData{
		Content: h.t(i, "info.imported", map[string]any{"ID": saved.ID, "Count": len(saved.Attendees)}),
		Embeds:  []*discordgo.MessageEmbed{pkgdiscord.BuildRosterEmbed(saved, counts)},
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}
