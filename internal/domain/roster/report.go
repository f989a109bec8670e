package roster

import (
	"fmt"
	"strings"

	"manpower/internal/domain/entities"
)

const (
	IconOut     = "🚩"
	IconUniform = "🧥"
	IconIn      = "✅"
	IconPending = "⏳"
)

var fineIcons = map[entities.FineTag]string{
	entities.FineShoe: "👞",
	entities.FinePant: "👖",
	entities.FineLate: "⏰",
}

// Counts are the roster totals shown in the report.
type Counts struct {
	Present int // in or out
	Dressed int
	Out     int
	Total   int
}

func Count(attendees []entities.Attendee) Counts {
	c := Counts{Total: len(attendees)}
	for _, a := range attendees {
		if a.Status.Present() {
			c.Present++
		}
		if a.UniformChecked {
			c.Dressed++
		}
		if a.Status == entities.StatusOut {
			c.Out++
		}
	}
	return c
}

// StatusIcon picks the single marker shown next to a name. Checked out beats
// uniform, which beats checked in.
func StatusIcon(a entities.Attendee) string {
	switch {
	case a.Status == entities.StatusOut:
		return IconOut
	case a.UniformChecked:
		return IconUniform
	case a.Status == entities.StatusIn:
		return IconIn
	default:
		return IconPending
	}
}

// FineIcons renders a's fines in shoe, pant, late order.
func FineIcons(a entities.Attendee) string {
	var b strings.Builder
	for _, tag := range entities.FineTags {
		if a.Fines.Has(tag) {
			b.WriteString(fineIcons[tag])
		}
	}
	return b.String()
}

// Generate renders the status report that operators paste back into the
// group chat.
func Generate(ev *entities.Event, attendees []entities.Attendee) (string, Counts) {
	c := Count(attendees)

	var b strings.Builder
	b.WriteString("*MANPOWER REPORT*\n")

	b.WriteString("📅 " + orDash(ev.Date))
	if ev.Day != "" {
		b.WriteString(" (" + ev.Day + ")")
	}
	b.WriteString("\n")
	b.WriteString("⏰ Report time: " + orDash(ev.ReportTime) + "\n")
	if ev.Schedule != "" {
		b.WriteString("🕒 Schedule: " + ev.Schedule + "\n")
	}
	if ev.Location != "" {
		b.WriteString("📍 Location: " + ev.Location + "\n")
	}

	fmt.Fprintf(&b, "\n👥 Boys (%d/%d)\n", c.Present, c.Total)
	for _, a := range attendees {
		fmt.Fprintf(&b, "%d. %s %s%s\n", a.RollNo, StatusIcon(a), a.Name, FineIcons(a))
	}

	fmt.Fprintf(&b, "\n✅ Present: %d\n", c.Present)
	fmt.Fprintf(&b, "🧥 Dressed: %d\n", c.Dressed)
	fmt.Fprintf(&b, "🚩 Out: %d\n", c.Out)
	fmt.Fprintf(&b, "👥 Total: %d", c.Total)
	return b.String(), c
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
