// Package timeparse converts the date, clock and range strings found in meter
// load-profile exports and on the command line into normalized values.
//
// Parsing is strict: every numeric component must be an unsigned base-10
// integer within its calendar or clock range. Values carry no time zone; UTC
// is used as a zone-less carrier and no daylight-saving adjustment is made.
package timeparse

import (
	"strconv"
	"strings"
	"time"

	"github.com/milad/loadprofile/internal/domain"
)

// ParseDate parses a "DD/MM/YYYY" date as exported by the meter.
func ParseDate(text string) (time.Time, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return time.Time{}, domain.NewFormatError(domain.MsgWrongDateFormat, text)
	}

	day, ok1 := component(parts[0])
	month, ok2 := component(parts[1])
	year, ok3 := component(parts[2])
	if !ok1 || !ok2 || !ok3 {
		return time.Time{}, domain.NewFormatError(domain.MsgWrongDateFormat, text)
	}
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, domain.NewFormatError(domain.MsgWrongDateFormat, text)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ParseTime parses "HH:MM" or "HH:MM:SS". Seconds default to zero.
func ParseTime(text string) (domain.TimeOfDay, error) {
	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, domain.NewFormatError(domain.MsgWrongTimeFormat, text)
	}

	var hms [3]int
	for i, p := range parts {
		n, ok := component(p)
		if !ok {
			return 0, domain.NewFormatError(domain.MsgWrongTimeFormat, text)
		}
		hms[i] = n
	}
	d, err := domain.NewTimeOfDay(hms[0], hms[1], hms[2])
	if err != nil {
		return 0, domain.NewFormatError(domain.MsgWrongTimeFormat, text)
	}
	return d, nil
}

// ParseTimestamp combines a date and a clock string into a single instant.
func ParseTimestamp(date, clock string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	tod, err := ParseTime(clock)
	if err != nil {
		return time.Time{}, err
	}
	return tod.On(day), nil
}

// ParseTimeRange parses "HH:MM-HH:MM" into an inclusive daily range.
// The start must not be after the end; ranges crossing midnight are rejected.
func ParseTimeRange(text string) (domain.TimeRange, error) {
	bad := domain.NewFormatError(domain.MsgWrongTimeRangeFormat, text)

	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return domain.TimeRange{}, bad
	}
	start, err := ParseTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.TimeRange{}, bad
	}
	end, err := ParseTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.TimeRange{}, bad
	}
	if start > end {
		return domain.TimeRange{}, bad
	}
	return domain.TimeRange{Start: start, End: end}, nil
}

var instantLayouts = []string{
	"20060102T150405",
	"20060102T1504",
	"20060102T15",
	"20060102",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseInstant parses an ISO 8601 date and/or time without zone, in basic
// ("20240801T000000") or extended ("2024-08-01T00:00:00") form.
// A date alone means midnight.
func ParseInstant(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewFormatError(domain.MsgWrongInstantFormat, text)
}

// ParseOptionalInstant returns nil for empty text.
func ParseOptionalInstant(text string) (*time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	t, err := ParseInstant(text)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// component parses one unsigned decimal date or clock component.
func component(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
