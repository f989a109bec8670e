package discord

import "strings"

// MaxContentLength is Discord's cap on message content, in characters.
const MaxContentLength = 2000

// Truncate shortens s to at most limit runes, marking the cut with "…".
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit < 1 {
		return ""
	}
	return string(r[:limit-1]) + "…"
}

// SplitMessage cuts text into chunks of at most limit runes, breaking between
// lines. A single line longer than limit is cut mid-line.
func SplitMessage(text string, limit int) []string {
	if limit < 1 || text == "" {
		return nil
	}
	var (
		chunks []string
		cur    []rune
		open   bool // cur holds at least one line, possibly empty
	)
	for _, line := range strings.Split(text, "\n") {
		r := []rune(line)
		if open && len(cur)+1+len(r) <= limit {
			cur = append(cur, '\n')
			cur = append(cur, r...)
			continue
		}
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = cur[:0]
		}
		for len(r) > limit {
			chunks = append(chunks, string(r[:limit]))
			r = r[limit:]
		}
		cur = append(cur, r...)
		open = true
	}
	if len(cur) > 0 {
		chunks = append(chunks, string(cur))
	}
	return chunks
}
