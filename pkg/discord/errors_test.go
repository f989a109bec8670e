package discord

import (
	"errors"
	"fmt"
	"testing"

	"manpower/internal/domain"
)

func TestErrorMessageKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"domain", domain.ErrEventNotFound, "errors.event_not_found"},
		{"wrapped domain", fmt.Errorf("save roster: %w", domain.ErrLocationRequired), "errors.location_required"},
		{"other", errors.New("connection refused"), "errors.generic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessageKey(tt.err); got != tt.want {
				t.Errorf("ErrorMessageKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
