package payments

import (
	"strings"
	"unicode"
)

// NormalizeReference uppercases raw, drops everything outside A-Z and 0-9,
// and truncates to max characters. max <= 0 disables truncation.
func NormalizeReference(raw string, max int) string {
	var b strings.Builder
	b.Grow(len(raw))

	n := 0
	for _, r := range raw {
		if max > 0 && n == max {
			break
		}
		r = unicode.ToUpper(r)
		if ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

func validateReference(ref string, min int) error {
	if len(ref) < min {
		return ErrReferenceTooShort
	}
	return nil
}
