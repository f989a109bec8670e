package discord

import (
	"strings"
	"testing"

	"manpower/internal/domain/entities"
	"manpower/internal/domain/roster"
)

func TestBuildRosterEmbed(t *testing.T) {
	ev := &entities.Event{
		ID:          7,
		Date:        "17/10/2026",
		Day:         "Saturday",
		Location:    "City Mall",
		ReportTime:  "9:00 AM",
		TargetCount: 2,
	}

	embed := BuildRosterEmbed(ev, roster.Counts{Present: 1, Dressed: 1, Out: 0, Total: 3})
	if embed.Title != "#7 · 17/10/2026 · City Mall" {
		t.Errorf("Title = %q", embed.Title)
	}
	if embed.Color != embedColor {
		t.Errorf("Color = %x, want %x", embed.Color, embedColor)
	}
	wantDesc := "📅 17/10/2026 (Saturday)\n⏰ 9:00 AM\n📍 City Mall"
	if embed.Description != wantDesc {
		t.Errorf("Description = %q, want %q", embed.Description, wantDesc)
	}
	if len(embed.Fields) != 4 || embed.Fields[0].Value != "1/2" || embed.Fields[3].Value != "3" {
		t.Errorf("unexpected fields: %+v", embed.Fields)
	}

	full := BuildRosterEmbed(ev, roster.Counts{Present: 2, Total: 2})
	if full.Color != embedColorFull {
		t.Errorf("Color when target reached = %x, want %x", full.Color, embedColorFull)
	}
}

func TestEventLabel(t *testing.T) {
	tests := []struct {
		name string
		ev   entities.Event
		want string
	}{
		{"id only", entities.Event{ID: 3}, "#3"},
		{"date only", entities.Event{ID: 3, Date: "1/2/2026"}, "#3 · 1/2/2026"},
		{"full", entities.Event{ID: 3, Date: "1/2/2026", Location: "Hall"}, "#3 · 1/2/2026 · Hall"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EventLabel(&tt.ev); got != tt.want {
				t.Errorf("EventLabel() = %q, want %q", got, tt.want)
			}
		})
	}

	long := EventLabel(&entities.Event{ID: 1, Location: strings.Repeat("é", 200)})
	if n := len([]rune(long)); n != maxChoiceNameLen {
		t.Errorf("long label has %d runes, want %d", n, maxChoiceNameLen)
	}
}

func TestFormatFines(t *testing.T) {
	if got := FormatFines(entities.NewFines(entities.FineLate, entities.FineShoe)); got != "shoe, late" {
		t.Errorf("FormatFines() = %q, want %q", got, "shoe, late")
	}
	if got := FormatFines(nil); got != "" {
		t.Errorf("FormatFines(nil) = %q, want empty", got)
	}
}
