package textutil

import "strings"

// SanitizeFileName makes a format tag or other free text safe to embed in a
// filename. ASCII letters, digits, '.', '-' and '_' are kept as-is. Path
// separators, colons, asterisks and whitespace become '-'. Everything else is
// dropped. Runs of '-' collapse and the result is trimmed of '-' and '.'.
func SanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastDash := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
			lastDash = false
		case r == '-', r == '/', r == '\\', r == ':', r == '*', r == ' ', r == '\t':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-.")
}
