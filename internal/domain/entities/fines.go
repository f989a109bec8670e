package entities

import (
	"fmt"
	"strings"

	"manpower/internal/domain"
)

type FineTag string

const (
	FineShoe FineTag = "shoe"
	FinePant FineTag = "pant"
	FineLate FineTag = "late"
)

// FineTags is the canonical order used for storage and rendering.
var FineTags = []FineTag{FineShoe, FinePant, FineLate}

func (t FineTag) Valid() bool {
	for _, known := range FineTags {
		if t == known {
			return true
		}
	}
	return false
}

// ParseFineTag accepts a tag in any case with surrounding spaces.
func ParseFineTag(s string) (FineTag, error) {
	tag := FineTag(strings.ToLower(strings.TrimSpace(s)))
	if tag.Valid() {
		return tag, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownFineTag, s)
}

// Fines is a set of fine tags. It is always kept in FineTags order without
// duplicates so two sets with the same members compare equal element-wise.
type Fines []FineTag

// NewFines builds a canonical set from arbitrary tags, dropping unknown ones.
func NewFines(tags ...FineTag) Fines {
	seen := make(map[FineTag]bool, len(tags))
	for _, t := range tags {
		seen[t] = true
	}
	out := Fines{}
	for _, t := range FineTags {
		if seen[t] {
			out = append(out, t)
		}
	}
	return out
}

// FinesFromStrings is the inverse of Strings; unknown values are dropped.
func FinesFromStrings(values []string) Fines {
	tags := make([]FineTag, 0, len(values))
	for _, v := range values {
		if t, err := ParseFineTag(v); err == nil {
			tags = append(tags, t)
		}
	}
	return NewFines(tags...)
}

func (f Fines) Has(tag FineTag) bool {
	for _, t := range f {
		if t == tag {
			return true
		}
	}
	return false
}

// Toggle returns a new set with tag removed if present, added otherwise.
func (f Fines) Toggle(tag FineTag) Fines {
	if f.Has(tag) {
		out := Fines{}
		for _, t := range f {
			if t != tag {
				out = append(out, t)
			}
		}
		return out
	}
	return NewFines(append(f.Clone(), tag)...)
}

func (f Fines) Clone() Fines {
	out := make(Fines, len(f))
	copy(out, f)
	return out
}

func (f Fines) Equal(other Fines) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

func (f Fines) Strings() []string {
	out := make([]string, len(f))
	for i, t := range f {
		out[i] = string(t)
	}
	return out
}
