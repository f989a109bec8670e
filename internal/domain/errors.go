package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrAttendeeNotFound = errors.New("attendee not found")
	ErrLocationRequired = errors.New("location is required before saving")
	ErrUnknownFineTag   = errors.New("unknown fine tag")
	ErrUnknownAction    = errors.New("unknown attendance action")
	ErrNotCheckedIn     = errors.New("attendee must be checked in first")
	ErrNameRequired     = errors.New("name is required")
	ErrAmbiguousRoll    = errors.New("several attendees share this roll number")
)

var codes = map[error]string{
	ErrEventNotFound:    "event_not_found",
	ErrAttendeeNotFound: "attendee_not_found",
	ErrLocationRequired: "location_required",
	ErrUnknownFineTag:   "unknown_fine_tag",
	ErrUnknownAction:    "unknown_action",
	ErrNotCheckedIn:     "not_checked_in",
	ErrNameRequired:     "name_required",
	ErrAmbiguousRoll:    "ambiguous_roll",
}

// Code returns the stable code of the domain error wrapped by err, or "" when
// err does not wrap one.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}
