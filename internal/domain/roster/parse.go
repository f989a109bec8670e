// Package roster turns pasted chat rosters into attendees and keeps their
// attendance state consistent across re-pastes.
package roster

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Anything from the first footer marker onward is chat boilerplate.
var footerMarkers = []string{"🛑", "❌", "Interested boys", "READ THE DESCRIPTION"}

var (
	dateRe     = regexp.MustCompile(`(?i)\bdate[ \t]*[:\-]?[ \t]*\*?[ \t]*([0-9]+(?:[/.\-][0-9]+)*)`)
	dayRe      = regexp.MustCompile(`(?i)\bday[ \t]*[:\-][ \t]*\*?[ \t]*([A-Za-z]+)`)
	locationRe = regexp.MustCompile(`(?i)\blocation[ \t]*[:\-]?[ \t]*\*?[ \t]*([A-Za-z][A-Za-z \t]*)`)
	timeRe     = regexp.MustCompile(`(?i)\b(?:report[ \t]*time|time)[ \t]*[:\-]?[ \t]*\*?[ \t]*([^\s:*\-][^\n*]*)`)
	scheduleRe = regexp.MustCompile(`(?i)\b(?:schedule|shift)[ \t]*[:\-]?[ \t]*\*?[ \t]*([^\s:*\-][^\n*]*)`)
	targetRe   = regexp.MustCompile(`(?i)\bboys[ \t]*\([ \t]*(\d+)[ \t]*\)`)
	sectionRe  = regexp.MustCompile(`(?i)\bboys\b`)

	entryRe  = regexp.MustCompile(`^(\d+)[.)]\s*(.*)$`)
	mobileRe = regexp.MustCompile(`(?:\+?91[ \t\-]?)?[6-9]\d{4}[ \t\-]?\d{5}`)

	nameStripper = strings.NewReplacer("*", "", "-", "")
)

// dateLayouts are tried, after normalising separators to '/', to derive the
// weekday when the text has no explicit Day label.
var dateLayouts = []string{"2/1/2006", "2/1/06"}

// EventDraft holds the event fields found in pasted text. Nil means the label
// was absent.
type EventDraft struct {
	Date        *string
	Day         *string
	Location    *string
	Schedule    *string
	ReportTime  *string
	TargetCount *int

	// SectionStarted is set when a BOYS heading was seen. Numbered lines are
	// captured whether or not it is set.
	SectionStarted bool
}

// AttendeeDraft is one numbered roster line.
type AttendeeDraft struct {
	RollNo int
	Name   string
	Mobile string
}

// Parse extracts event metadata and numbered attendee lines from text. It
// never fails: unrecognised fields stay unset and unrecognised lines are
// skipped.
func Parse(text string) (EventDraft, []AttendeeDraft) {
	text = truncateFooter(text)

	var draft EventDraft
	draft.Date = firstMatch(dateRe, text)
	draft.Day = firstMatch(dayRe, text)
	draft.Location = firstMatch(locationRe, text)
	draft.ReportTime = firstMatch(timeRe, text)
	draft.Schedule = firstMatch(scheduleRe, text)
	if m := targetRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			draft.TargetCount = &n
		}
	}
	if draft.Day == nil && draft.Date != nil {
		draft.Day = weekday(*draft.Date)
	}

	var entries []AttendeeDraft
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "```", ""))
		if sectionRe.MatchString(line) {
			draft.SectionStarted = true
		}
		if entry, ok := parseEntry(line); ok {
			entries = append(entries, entry)
		}
	}
	return draft, entries
}

func truncateFooter(text string) string {
	cut := len(text)
	for _, marker := range footerMarkers {
		if i := strings.Index(text, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	return text[:cut]
}

func firstMatch(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return nil
	}
	return &v
}

func weekday(date string) *string {
	normalised := strings.NewReplacer(".", "/", "-", "/").Replace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, normalised); err == nil {
			day := t.Weekday().String()
			return &day
		}
	}
	return nil
}

func parseEntry(line string) (AttendeeDraft, bool) {
	m := entryRe.FindStringSubmatch(line)
	if m == nil {
		return AttendeeDraft{}, false
	}
	rollNo, err := strconv.Atoi(m[1])
	if err != nil {
		return AttendeeDraft{}, false
	}

	rest := m[2]
	var mobile string
	if loc := mobileRe.FindStringIndex(rest); loc != nil {
		digits := digitsOnly(rest[loc[0]:loc[1]])
		mobile = digits[len(digits)-10:]
		rest = rest[:loc[0]] + rest[loc[1]:]
	}

	name := strings.Join(strings.Fields(nameStripper.Replace(rest)), " ")
	if utf8.RuneCountInString(name) <= 2 {
		return AttendeeDraft{}, false
	}
	return AttendeeDraft{RollNo: rollNo, Name: name, Mobile: mobile}, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeMobile returns the 10-digit mobile number found in s, or the digits
// of s when it holds no recognisable mobile number.
func NormalizeMobile(s string) string {
	if loc := mobileRe.FindStringIndex(s); loc != nil {
		digits := digitsOnly(s[loc[0]:loc[1]])
		return digits[len(digits)-10:]
	}
	return digitsOnly(s)
}
