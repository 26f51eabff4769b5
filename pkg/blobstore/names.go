package blobstore

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Sanitize turns a client supplied file name into a flat, ASCII-only name:
// path separators and whitespace collapse into underscores, anything outside
// [A-Za-z0-9._-] is dropped, and leading/trailing dots and underscores are
// trimmed. The result may be empty.
func Sanitize(name string) string {
	decomposed := norm.NFKD.String(name)

	var ascii strings.Builder
	ascii.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r > 127:
			continue
		case r == '/' || r == '\\':
			ascii.WriteRune(' ')
		default:
			ascii.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(ascii.String()), "_")

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if isSafeRune(r) {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// IsSafeName reports whether name can be used verbatim as a stored name.
func IsSafeName(name string) bool {
	return name != "" && Sanitize(name) == name
}

// Extension returns the lowercased extension after the last dot, or "".
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	ext := strings.ToLower(name[idx+1:])
	if strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}
