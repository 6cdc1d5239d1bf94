package stats

import "strings"

// Abbreviate shortens a player name for the ticker. Multi-word names become
// the last name when it fits in maxLen, otherwise "F. Lastname". A single
// word is kept up to maxLen+2 characters.
func Abbreviate(fullName string, maxLen int) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}

	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if len(last) <= maxLen {
			return last
		}
		initial := []rune(parts[0])[0]
		return string(initial) + ". " + last
	}

	name := parts[0]
	limit := maxLen + 2
	if r := []rune(name); len(r) > limit {
		return string(r[:limit])
	}
	return name
}
