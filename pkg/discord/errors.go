package discord

import "manpower/internal/domain"

const genericErrorKey = "errors.generic"

// ErrorMessageKey maps an error to its translation key. Errors carrying a
// domain code get "errors.<code>", anything else the generic message.
func ErrorMessageKey(err error) string {
	if err == nil {
		return ""
	}
	if code := domain.Code(err); code != "" {
		return "errors." + code
	}
	return genericErrorKey
}
