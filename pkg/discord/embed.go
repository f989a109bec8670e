package discord

import (
	"fmt"
	"strings"

	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColor       = 0x5865F2
	embedColorFull   = 0x57F287
	maxChoiceNameLen = 100
)

// BuildRosterEmbed summarises an event and its counters. The full line-by-line
// roster goes in the message content, the embed only carries the header.
func BuildRosterEmbed(event *entities.Event, counts roster.Counts) *discordgo.MessageEmbed {
	color := embedColor
	if event.TargetCount > 0 && counts.Present >= event.TargetCount {
		color = embedColorFull
	}
	return &discordgo.MessageEmbed{
		Title:       EventLabel(event),
		Description: describeEvent(event),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: roster.IconIn + " Present", Value: fmt.Sprintf("%d/%d", counts.Present, event.TargetCount), Inline: true},
			{Name: roster.IconUniform + " Dressed", Value: fmt.Sprint(counts.Dressed), Inline: true},
			{Name: roster.IconOut + " Out", Value: fmt.Sprint(counts.Out), Inline: true},
			{Name: "👥 Total", Value: fmt.Sprint(counts.Total), Inline: true},
		},
	}
}

func describeEvent(event *entities.Event) string {
	var b strings.Builder
	if event.Date != "" {
		b.WriteString("📅 " + event.Date)
		if event.Day != "" {
			b.WriteString(" (" + event.Day + ")")
		}
		b.WriteString("\n")
	}
	if event.ReportTime != "" {
		b.WriteString("⏰ " + event.ReportTime + "\n")
	}
	if event.Schedule != "" {
		b.WriteString("🕒 " + event.Schedule + "\n")
	}
	if event.Location != "" {
		b.WriteString("📍 " + event.Location + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// EventLabel is the short one-line name of an event, used in embed titles and
// autocomplete choices. Discord caps choice names at 100 characters.
func EventLabel(event *entities.Event) string {
	parts := []string{fmt.Sprintf("#%d", event.ID)}
	if event.Date != "" {
		parts = append(parts, event.Date)
	}
	if event.Location != "" {
		parts = append(parts, event.Location)
	}
	return Truncate(strings.Join(parts, " · "), maxChoiceNameLen)
}

// FormatFines lists fine tags by name, or empty when there are none.
func FormatFines(fines entities.Fines) string {
	return strings.Join(fines.Strings(), ", ")
}
