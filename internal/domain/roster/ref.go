package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"manpower/internal/domain"
	"manpower/internal/domain/entities"
)

const refIDPrefix = "id:"

// Ref points at one attendee. A stored ID wins; otherwise the roll number is
// used, narrowed by name when several attendees share it.
type Ref struct {
	ID     uint
	RollNo int
	Name   string
}

// Same shape as a roster line: "3", "3. Sam", "3) Sam", "3 Sam".
var refRe = regexp.MustCompile(`^(\d+)[.):]?\s*(.*)$`)

// ParseRef reads "id:<n>" or a roll number optionally followed by a name.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, refIDPrefix); ok {
		id, err := strconv.ParseUint(rest, 10, 64)
		if err != nil || id == 0 {
			return Ref{}, fmt.Errorf("%w: %q", domain.ErrAttendeeNotFound, s)
		}
		return Ref{ID: uint(id)}, nil
	}
	m := refRe.FindStringSubmatch(s)
	if m == nil {
		return Ref{}, fmt.Errorf("%w: %q", domain.ErrAttendeeNotFound, s)
	}
	roll, err := strconv.Atoi(m[1])
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q", domain.ErrAttendeeNotFound, s)
	}
	return Ref{RollNo: roll, Name: strings.Join(strings.Fields(m[2]), " ")}, nil
}

// IDRef is the unambiguous form handed out by autocomplete.
func IDRef(id uint) string {
	return refIDPrefix + strconv.FormatUint(uint64(id), 10)
}

// Locate returns the index of the attendee ref points at. Several attendees
// matching a roll-number ref is ErrAmbiguousRoll, never a silent first pick.
func Locate(attendees []entities.Attendee, ref Ref) (int, error) {
	if ref.ID != 0 {
		for i := range attendees {
			if attendees[i].ID == ref.ID {
				return i, nil
			}
		}
		return -1, domain.ErrAttendeeNotFound
	}

	key := NameKey(ref.Name)
	found, matches := -1, 0
	for i := range attendees {
		if attendees[i].RollNo != ref.RollNo {
			continue
		}
		if key != "" && NameKey(attendees[i].Name) != key {
			continue
		}
		if found < 0 {
			found = i
		}
		matches++
	}
	switch {
	case matches == 0:
		return -1, domain.ErrAttendeeNotFound
	case matches > 1:
		return -1, fmt.Errorf("%w: %d", domain.ErrAmbiguousRoll, ref.RollNo)
	}
	return found, nil
}
