package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
)

const (
	commandName = "manpower"

	subEvents = "events"
	subImport = "import"
	subReport = "report"
	subMark   = "mark"
	subFine   = "fine"
	subAdd    = "add"
	subEdit   = "edit"
	subRemove = "remove"
	subDelete = "delete"

	optEvent  = "event"
	optAttendee = "attendee"
	optAction = "action"
	optTag    = "tag"
	optName   = "name"
	optMobile = "mobile"
)

func eventOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionInteger,
		Name:         optEvent,
		Description:  "Event",
		Required:     required,
		Autocomplete: true,
	}
}

// attendeeOption takes a roll number ("3", or "3 Sam" when the number is
// shared); autocomplete fills in an exact reference.
func attendeeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         optAttendee,
		Description:  "Roll number, or roll number and name",
		Required:     true,
		Autocomplete: true,
	}
}

func stringChoices[T ~string](values []T) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(values))
	for _, v := range values {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(v), Value: string(v)})
	}
	return choices
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// commandDefinition is the /manpower command with one subcommand per roster
// operation.
func commandDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        commandName,
		Description: "Manage event manpower rosters",
		Options: []*discordgo.ApplicationCommandOption{
			subcommand(subEvents, "List saved events"),
			subcommand(subImport, "Paste a roster message into a new or existing event", eventOption(false)),
			subcommand(subReport, "Post the manpower report", eventOption(true)),
			subcommand(subMark, "Check in, mark uniform, check out or reset someone",
				eventOption(true), attendeeOption(),
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optAction,
					Description: "What to record",
					Required:    true,
					Choices:     stringChoices(roster.Actions),
				},
			),
			subcommand(subFine, "Toggle a fine on someone",
				eventOption(true), attendeeOption(),
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optTag,
					Description: "Fine",
					Required:    true,
					Choices:     stringChoices(entities.FineTags),
				},
			),
			subcommand(subAdd, "Add someone at the end of the list",
				eventOption(true),
				&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: optName, Description: "Name", Required: true},
				&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: optMobile, Description: "Mobile number"},
			),
			subcommand(subEdit, "Change someone's name or mobile number",
				eventOption(true), attendeeOption(),
				&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: optName, Description: "New name"},
				&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: optMobile, Description: "New mobile number"},
			),
			subcommand(subRemove, "Remove someone from the list", eventOption(true), attendeeOption()),
			subcommand(subDelete, "Delete an event and its roster (administrators)", eventOption(true)),
		},
	}
}

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func mapOptions(options []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	m := make(optionMap, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func (m optionMap) integer(name string) (int64, bool) {
	opt, ok := m[name]
	if !ok {
		return 0, false
	}
	return opt.IntValue(), true
}

func (m optionMap) str(name string) string {
	if opt, ok := m[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// optionalStr distinguishes an omitted option (nil) from an empty one.
func (m optionMap) optionalStr(name string) *string {
	opt, ok := m[name]
	if !ok {
		return nil
	}
	v := opt.StringValue()
	return &v
}

func (m optionMap) eventID() (uint, bool) {
	v, ok := m.integer(optEvent)
	if !ok || v <= 0 {
		return 0, false
	}
	return uint(v), true
}

func (m optionMap) ref() (roster.Ref, error) {
	return roster.ParseRef(m.str(optAttendee))
}

// HandleCommand routes a /manpower subcommand.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	opts := mapOptions(sub.Options)
	ctx, cancel := h.requestContext()
	defer cancel()

	switch sub.Name {
	case subEvents:
		h.handleListEvents(ctx, s, i)
	case subImport:
		h.handleOpenImportModal(s, i, opts)
	case subReport:
		h.handleReport(ctx, s, i, opts)
	case subMark:
		h.handleMark(ctx, s, i, opts)
	case subFine:
		h.handleFine(ctx, s, i, opts)
	case subAdd:
		h.handleAdd(ctx, s, i, opts)
	case subEdit:
		h.handleEdit(ctx, s, i, opts)
	case subRemove:
		h.handleRemove(ctx, s, i, opts)
	case subDelete:
		h.handleDelete(ctx, s, i, opts)
	}
}

// openEvent loads the event named by the "event" option, answering the
// interaction itself when that fails.
func (h *Handler) openEvent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) (*entities.Event, bool) {
	id, ok := opts.eventID()
	if !ok {
		h.respondEphemeral(s, i, h.t(i, "errors.event_not_found", nil))
		return nil, false
	}
	event, err := h.rosterUseCase.OpenEvent(ctx, id)
	if err != nil {
		h.respondError(s, i, "open event", err)
		return nil, false
	}
	return event, true
}
