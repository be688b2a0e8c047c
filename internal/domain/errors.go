package domain

import "fmt"

// Parser failure messages.
const (
	MsgWrongDateFormat      = "wrong date format"
	MsgWrongTimeFormat      = "wrong time format"
	MsgWrongTimeRangeFormat = "wrong time range format"
	MsgWrongInstantFormat   = "wrong date/time format"
)

// FormatError reports text that could not be parsed into a date, time or range.
type FormatError struct {
	Msg   string
	Input string
}

func (e *FormatError) Error() string {
	if e.Input == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %q", e.Msg, e.Input)
}

func NewFormatError(msg, input string) *FormatError {
	return &FormatError{Msg: msg, Input: input}
}
