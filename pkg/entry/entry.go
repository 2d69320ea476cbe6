// Package entry turns user input into timer durations.
//
// The widget's hour, minute and second fields are parsed leniently: leading
// digits are used and anything unparsable counts as zero. Each field is then
// clamped (hours to 0-99, minutes and seconds to 0-59) before the three are
// combined into whole seconds.
package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field limits.
const (
	MaxHours   = 99
	MaxMinutes = 59
	MaxSeconds = 59
)

// Input errors.
var (
	ErrEmptyDuration = errors.New("empty duration")
	ErrBadDuration   = errors.New("unrecognised duration")
)

// Fields is a clamped hours/minutes/seconds triple.
type Fields struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Clamped returns f with every field forced into its range.
func (f Fields) Clamped() Fields {
	return Fields{
		Hours:   ClampHours(f.Hours),
		Minutes: ClampMinutes(f.Minutes),
		Seconds: ClampSeconds(f.Seconds),
	}
}

// Total returns the clamped fields as whole seconds.
func (f Fields) Total() int {
	c := f.Clamped()
	return TotalSeconds(c.Hours, c.Minutes, c.Seconds)
}

// String renders the fields zero-padded as HH:MM:SS.
func (f Fields) String() string {
	c := f.Clamped()
	return fmt.Sprintf("%s:%s:%s", PadField(c.Hours), PadField(c.Minutes), PadField(c.Seconds))
}

// ParseField reads the leading integer of s. Surrounding spaces are ignored,
// a leading sign is honoured and anything that is not a number yields 0.
func ParseField(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow gets here; treat it as the largest value.
		if s[0] == '-' {
			return 0
		}
		return int(^uint(0) >> 1)
	}
	return n
}

// Clamp forces v into [0, max].
func Clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// ClampHours forces v into [0, MaxHours].
func ClampHours(v int) int { return Clamp(v, MaxHours) }

// ClampMinutes forces v into [0, MaxMinutes].
func ClampMinutes(v int) int { return Clamp(v, MaxMinutes) }

// ClampSeconds forces v into [0, MaxSeconds].
func ClampSeconds(v int) int { return Clamp(v, MaxSeconds) }

// PadField renders v with at least two digits.
func PadField(v int) string {
	return fmt.Sprintf("%02d", v)
}

// TotalSeconds combines already clamped fields.
func TotalSeconds(hours, minutes, seconds int) int {
	return hours*3600 + minutes*60 + seconds
}

// FromFields parses and clamps the three raw input fields.
func FromFields(hours, minutes, seconds string) Fields {
	return Fields{
		Hours:   ParseField(hours),
		Minutes: ParseField(minutes),
		Seconds: ParseField(seconds),
	}.Clamped()
}

// ParseDuration accepts the console's duration forms:
//
//	90        bare seconds (not clamped)
//	1:30      minutes and seconds
//	1:02:03   hours, minutes and seconds
//	1h2m3s    Go duration syntax, truncated to whole seconds
//
// Colon forms are clamped field by field like the widget inputs.
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyDuration
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		for _, p := range parts {
			if _, err := strconv.Atoi(strings.TrimSpace(p)); err != nil {
				return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
			}
		}
		switch len(parts) {
		case 2:
			return FromFields("0", parts[0], parts[1]).Total(), nil
		case 3:
			return FromFields(parts[0], parts[1], parts[2]).Total(), nil
		default:
			return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
	}
	return int(d / time.Second), nil
}
