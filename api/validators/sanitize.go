package validators

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SanitizeString trims input, normalizes it to NFC and cuts it to maxLen
// runes.
func SanitizeString(input string, maxLen int) string {
	trimmed := norm.NFC.String(strings.TrimSpace(input))
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return strings.TrimSpace(string(runes[:maxLen]))
	}
	return trimmed
}
