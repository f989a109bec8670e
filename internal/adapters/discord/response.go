package discord

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	pkgdiscord "manpower/pkg/discord"
)

// Nick > GlobalName > Username
func resolveDisplayName(i *discordgo.InteractionCreate) string {
	member := i.Member
	if member == nil || member.User == nil {
		if i.User != nil {
			return i.User.Username
		}
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func (h *Handler) t(i *discordgo.InteractionCreate, key string, data map[string]any) string {
	return h.translator.T(string(i.Locale), key, data)
}

func (h *Handler) respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		h.logger.Warn("interaction respond failed", zap.String("interaction_id", i.ID), zap.Error(err))
	}
}

func (h *Handler) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	h.respond(s, i, &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// respondError shows the translated message for err. Errors without a domain
// code are logged since the user only sees the generic text.
func (h *Handler) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, op string, err error) {
	key := pkgdiscord.ErrorMessageKey(err)
	if key == "errors.generic" {
		h.logger.Error(op+" failed", zap.String("user", resolveDisplayName(i)), zap.Error(err))
	} else {
		h.logger.Debug(op+" rejected", zap.String("user", resolveDisplayName(i)), zap.Error(err))
	}
	h.respondEphemeral(s, i, h.t(i, key, nil))
}
