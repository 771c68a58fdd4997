package validation

import (
	"errors"
	"strconv"
	"strings"
)

// IsNumeric reports whether s converts to a number the way a browser's Number()
// conversion does. Surrounding whitespace is ignored and a blank string counts as
// zero. Decimal, exponent and signed forms are accepted, as are "Infinity" and
// unsigned 0x/0o/0b integer literals. "NaN", underscores and trailing garbage are
// rejected.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}

	switch s {
	case "Infinity", "+Infinity", "-Infinity":
		return true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return isDigits(s[2:], base)
		}
	}

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == 'e', r == 'E', r == '+', r == '-':
		default:
			return false
		}
	}

	_, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return true
	}
	// Out of range values overflow to Infinity rather than NaN.
	return errors.Is(err, strconv.ErrRange)
}

func isDigits(s string, base int) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		d := digitValue(r)
		if d < 0 || d >= base {
			return false
		}
	}
	return true
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

// IsImageType reports whether a declared media type names an image.
func IsImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image")
}
