// Package closing recognises the message that closes a pending entry: a
// bare calorie count such as "650", "850 cal" or "1234 kcal".
package closing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minDigits = 2
	maxDigits = 5
)

// Detect reports whether msg is a closing message and returns its calorie
// value. The whole message must match
//
//	space* digit{2,5} space* (k?cal)? space*
//
// with ASCII digits and a case-insensitive unit. Values are not checked for
// plausibility.
func Detect(msg string) (int, bool) {
	rest := skipSpace(msg)

	n, kcal := 0, 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		if n == maxDigits {
			return 0, false
		}
		kcal = kcal*10 + int(rest[n]-'0')
		n++
	}
	if n < minDigits {
		return 0, false
	}
	rest = skipSpace(rest[n:])

	rest = trimUnit(rest)

	if skipSpace(rest) != "" {
		return 0, false
	}
	return kcal, true
}

func trimUnit(s string) string {
	for _, unit := range []string{"kcal", "cal"} {
		if len(s) >= len(unit) && strings.EqualFold(s[:len(unit)], unit) {
			return s[len(unit):]
		}
	}
	return s
}

func skipSpace(s string) string {
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		if !unicode.IsSpace(r) {
			break
		}
		s = s[size:]
	}
	return s
}
