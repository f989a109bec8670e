package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
	pkgdiscord "manpower/pkg/discord"
)

// Discord accepts at most 25 autocomplete choices.
const maxChoices = 25

// HandleAutocomplete suggests events for the "event" option and attendees of
// the chosen event for the "attendee" option.
func (h *Handler) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	options := data.Options[0].Options

	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, opt := range options {
		if opt.Focused {
			focused = opt
		}
	}
	if focused == nil {
		return
	}
	// Partial input arrives as a string whatever the option type.
	typed, _ := focused.Value.(string)

	var choices []*discordgo.ApplicationCommandOptionChoice
	switch focused.Name {
	case optEvent:
		choices = h.eventSuggestions(typed)
	case optAttendee:
		choices = h.attendeeSuggestions(selectedEventID(options), typed)
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		h.logger.Warn("autocomplete respond failed", zap.Error(err))
	}
}

// selectedEventID reads the already filled "event" option, 0 when missing.
func selectedEventID(options []*discordgo.ApplicationCommandInteractionDataOption) uint {
	for _, opt := range options {
		if opt.Name != optEvent || opt.Focused {
			continue
		}
		if v, ok := opt.Value.(float64); ok && v > 0 {
			return uint(v)
		}
	}
	return 0
}

func (h *Handler) eventSuggestions(typed string) []*discordgo.ApplicationCommandOptionChoice {
	ctx, cancel := h.requestContext()
	defer cancel()
	events, err := h.rosterUseCase.ListEvents(ctx)
	if err != nil {
		h.logger.Warn("autocomplete: list events failed", zap.Error(err))
		return nil
	}
	return eventChoices(events, typed)
}

func (h *Handler) attendeeSuggestions(eventID uint, typed string) []*discordgo.ApplicationCommandOptionChoice {
	if eventID == 0 {
		return nil
	}
	ctx, cancel := h.requestContext()
	defer cancel()
	event, err := h.rosterUseCase.OpenEvent(ctx, eventID)
	if err != nil {
		h.logger.Debug("autocomplete: open event failed", zap.Uint("event_id", eventID), zap.Error(err))
		return nil
	}
	return attendeeChoices(event.Attendees, typed)
}

func eventChoices(events []entities.Event, typed string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.ToLower(strings.TrimSpace(typed))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(events), maxChoices))
	for idx := range events {
		label := pkgdiscord.EventLabel(&events[idx])
		if typed != "" && !strings.Contains(strings.ToLower(label), typed) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: label, Value: events[idx].ID})
		if len(choices) == maxChoices {
			break
		}
	}
	return choices
}

// attendeeChoices labels attendees "<roll>. <name>" and answers with an ID
// reference, so attendees sharing a roll number stay distinguishable.
func attendeeChoices(attendees []entities.Attendee, typed string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.ToLower(strings.TrimSpace(typed))
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(attendees), maxChoices))
	for _, a := range attendees {
		label := fmt.Sprintf("%d. %s", a.RollNo, a.Name)
		if typed != "" && !strings.Contains(strings.ToLower(label), typed) {
			continue
		}
		value := label
		if a.ID != 0 {
			value = roster.IDRef(a.ID)
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: pkgdiscord.Truncate(label, 100), Value: value})
		if len(choices) == maxChoices {
			break
		}
	}
	return choices
}
