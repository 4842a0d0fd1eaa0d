package utils

import "unicode/utf8"

// TruncateString truncates a string to at most maxLength runes, marking the cut with "..."
func TruncateString(s string, maxLength int) string {
	if maxLength <= 3 || utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	runes := []rune(s)
	return string(runes[:maxLength-3]) + "..."
}
