package timecmd

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const marker = "/time"

// command is the syntactic content of "/time [dateword] <H> am|pm".
type command struct {
	dateWord string // as typed, empty when omitted
	hour     int
	pm       bool
}

// parse scans the trimmed input. It only checks the shape; hour range and
// date word vocabulary are validated later.
func parse(input string) (command, bool) {
	s := strings.TrimSpace(input)

	if !strings.HasPrefix(s, marker) {
		return command{}, false
	}
	s = s[len(marker):]

	s, n := skipSpace(s)
	if n == 0 {
		return command{}, false
	}

	var cmd command

	if word, rest := takeLetters(s); word != "" {
		rest, n := skipSpace(rest)
		if n == 0 {
			return command{}, false
		}
		cmd.dateWord = word
		s = rest
	}

	digits := 0
	for digits < len(s) && digits < 3 && s[digits] >= '0' && s[digits] <= '9' {
		cmd.hour = cmd.hour*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 || digits > 2 {
		return command{}, false
	}
	s, _ = skipSpace(s[digits:])

	if len(s) != 2 {
		return command{}, false
	}
	switch strings.ToLower(s) {
	case "am":
	case "pm":
		cmd.pm = true
	default:
		return command{}, false
	}

	return cmd, true
}

func takeLetters(s string) (word, rest string) {
	i := 0
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z') {
		i++
	}
	return s[:i], s[i:]
}

func skipSpace(s string) (string, int) {
	n := 0
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		if !unicode.IsSpace(r) {
			break
		}
		s = s[size:]
		n++
	}
	return s, n
}
