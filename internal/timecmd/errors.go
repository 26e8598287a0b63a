package timecmd

import "errors"

// Error kinds, match with errors.Is.
var (
	ErrFormat     = errors.New("time command format error")
	ErrValidation = errors.New("time command validation error")
	ErrRange      = errors.New("time command range error")
)

// Error carries a user-facing message and its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

const (
	msgFormat       = "Format: /time [today|yesterday|weekday] <H am/pm> (e.g., '/time yesterday 6 pm')."
	msgHour         = "Hour must be 1–12."
	msgDateWord     = "Unknown date word. Use today, yesterday, or a weekday (Mon..Sun)."
	msgWeekdayRange = "Weekday must refer to the past 6 days."
	msgWindow       = "Time must be within the past 6 days and not in the future."
)

func formatError() error {
	return &Error{Kind: ErrFormat, Msg: msgFormat}
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func rangeError() error {
	return &Error{Kind: ErrRange, Msg: msgWindow}
}
