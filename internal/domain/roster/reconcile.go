package roster

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"manpower/internal/domain/entities"
)

// NameKey is the identity used to match a pasted name against the existing
// roster: trimmed, inner whitespace collapsed, Unicode case-folded.
func NameKey(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// Reconcile builds the roster described by drafts, carrying over the live
// status, uniform flag, fines and mobile number of every attendee in current
// whose name matches. Attendees of current that are absent from drafts are
// dropped. When current holds the same name twice, the last one wins.
//
// Identifiers are never carried over; the result is in drafts order.
func Reconcile(current []entities.Attendee, drafts []AttendeeDraft) []entities.Attendee {
	byKey := make(map[string]entities.Attendee, len(current))
	for _, a := range current {
		byKey[NameKey(a.Name)] = a
	}

	out := make([]entities.Attendee, 0, len(drafts))
	for _, d := range drafts {
		a := entities.Attendee{
			RollNo: d.RollNo,
			Name:   strings.TrimSpace(d.Name),
			Mobile: d.Mobile,
			Status: entities.StatusPending,
			Fines:  entities.Fines{},
		}
		if prev, ok := byKey[NameKey(d.Name)]; ok {
			if a.Mobile == "" {
				a.Mobile = prev.Mobile
			}
			if prev.Status != "" {
				a.Status = prev.Status
			}
			a.UniformChecked = prev.UniformChecked
			a.Fines = prev.Fines.Clone()
		}
		out = append(out, a)
	}
	return out
}

// SortByRoll orders attendees by roll number, keeping list order for equal
// roll numbers.
func SortByRoll(attendees []entities.Attendee) {
	sort.SliceStable(attendees, func(i, j int) bool {
		return attendees[i].RollNo < attendees[j].RollNo
	})
}

// ApplyDraft copies the fields found in the pasted text onto ev. Fields the
// text did not mention keep their current value.
func ApplyDraft(ev *entities.Event, d EventDraft) {
	if d.Date != nil {
		ev.Date = *d.Date
	}
	if d.Day != nil {
		ev.Day = *d.Day
	}
	if d.Location != nil {
		ev.Location = *d.Location
	}
	if d.Schedule != nil {
		ev.Schedule = *d.Schedule
	}
	if d.ReportTime != nil {
		ev.ReportTime = *d.ReportTime
	}
	if d.TargetCount != nil {
		ev.TargetCount = *d.TargetCount
	}
}
