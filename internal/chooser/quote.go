package chooser

import (
	"fmt"
	"strings"
)

// quoteReserved lists the characters that cannot appear verbatim in a quoted
// identifier. '_' is the escape prefix, so it is reserved too.
const quoteReserved = ":/_#?;@&=+$,\"[]<>%\n\\"

const hexDigits = "0123456789ABCDEF"

// Quote escapes id so it can be used as a single URL path segment. Every
// reserved character becomes '_' followed by two upper-case hex digits.
// An id made only of dots has every dot escaped, so it never forms a
// "." or ".." segment. Quote is injective and Unquote reverses it.
func Quote(id string) string {
	if id != "" && strings.Trim(id, ".") == "" {
		return strings.Repeat("_2E", len(id))
	}
	if !strings.ContainsAny(id, quoteReserved) {
		return id
	}
	var b strings.Builder
	b.Grow(len(id) + 8)
	for i := 0; i < len(id); i++ {
		c := id[i]
		if strings.IndexByte(quoteReserved, c) >= 0 {
			b.WriteByte('_')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Unquote reverses Quote. A '_' that is not followed by two hex digits is a
// ValidationError.
func Unquote(s string) (string, error) {
	if !strings.Contains(s, "_") {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(s) {
			return "", &ValidationError{Field: "id", Reason: fmt.Sprintf("truncated escape in %q", s)}
		}
		hi, okHi := unhex(s[i+1])
		lo, okLo := unhex(s[i+2])
		if !okHi || !okLo {
			return "", &ValidationError{Field: "id", Reason: fmt.Sprintf("bad escape %q", s[i:i+3])}
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
