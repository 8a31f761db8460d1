package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// LocalDateTime is a wall-clock date and time as the user typed it.
// It carries no zone: two values built from the same fields are equal
// regardless of the process timezone.
type LocalDateTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// localPrefix matches the leading YYYY-MM-DDTHH:MM of an ISO-like string.
// Anything after the minute (seconds, fraction, offset) is ignored.
var localPrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[T ](\d{2}):(\d{2})`)

// fallbackLayouts are tried when the input has no ISO date-time prefix.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
	"02/01/2006 15:04",
	"02/01/2006",
	time.RFC1123,
	time.RFC1123Z,
	"2 Jan 2006 15:04",
	"2 Jan 2006",
}

// ParseLocalDateTime reads raw without applying any timezone conversion.
// ok is false when raw is blank or unparseable.
func ParseLocalDateTime(raw string) (LocalDateTime, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return LocalDateTime{}, false
	}

	if m := localPrefix.FindStringSubmatch(raw); m != nil {
		var parts [5]int
		for i := range parts {
			n, err := strconv.Atoi(m[i+1])
			if err != nil {
				return LocalDateTime{}, false
			}
			parts[i] = n
		}
		l := LocalDateTime{
			Year:   parts[0],
			Month:  time.Month(parts[1]),
			Day:    parts[2],
			Hour:   parts[3],
			Minute: parts[4],
		}
		if !l.fieldsInRange() {
			return LocalDateTime{}, false
		}
		return l, true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return LocalFromTime(t), true
		}
	}
	return LocalDateTime{}, false
}

// MustParseLocalDateTime is ParseLocalDateTime for literals known to be valid.
func MustParseLocalDateTime(raw string) LocalDateTime {
	l, ok := ParseLocalDateTime(raw)
	if !ok {
		panic(fmt.Sprintf("invalid local date-time %q", raw))
	}
	return l
}

// LocalFromTime takes the wall-clock fields of t in its own location.
func LocalFromTime(t time.Time) LocalDateTime {
	return LocalDateTime{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// fieldsInRange rejects values like 2026-02-30 or 25:00 that time.Date
// would silently normalize.
func (l LocalDateTime) fieldsInRange() bool {
	if l.Hour > 23 || l.Minute > 59 {
		return false
	}
	t := l.instant()
	return t.Year() == l.Year && t.Month() == l.Month && t.Day() == l.Day
}

// instant builds the comparison instant in a fixed interpretation.
func (l LocalDateTime) instant() time.Time {
	return time.Date(l.Year, l.Month, l.Day, l.Hour, l.Minute, 0, 0, time.UTC)
}

// Time returns the value as a UTC time with identical wall-clock fields.
func (l LocalDateTime) Time() time.Time {
	return l.instant()
}

func (l LocalDateTime) Compare(o LocalDateTime) int {
	return l.instant().Compare(o.instant())
}

func (l LocalDateTime) Before(o LocalDateTime) bool { return l.Compare(o) < 0 }
func (l LocalDateTime) After(o LocalDateTime) bool  { return l.Compare(o) > 0 }
func (l LocalDateTime) Equal(o LocalDateTime) bool  { return l.Compare(o) == 0 }

// DateOnly truncates to midnight of the same day.
func (l LocalDateTime) DateOnly() LocalDateTime {
	l.Hour = 0
	l.Minute = 0
	return l
}

// WithOffsetHours shifts the value by h hours, rolling over days, months
// and years as needed.
func (l LocalDateTime) WithOffsetHours(h int) LocalDateTime {
	return LocalFromTime(l.instant().Add(time.Duration(h) * time.Hour))
}

// AddDays shifts the value by n calendar days.
func (l LocalDateTime) AddDays(n int) LocalDateTime {
	return LocalFromTime(l.instant().AddDate(0, 0, n))
}

// At returns the same date with the given clock time.
func (l LocalDateTime) At(hour, minute int) LocalDateTime {
	l.Hour = hour
	l.Minute = minute
	return l
}

// String renders the canonical YYYY-MM-DDTHH:MM form.
func (l LocalDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", l.Year, int(l.Month), l.Day, l.Hour, l.Minute)
}

// Today returns midnight of now's local calendar day.
func Today(now time.Time) LocalDateTime {
	return LocalFromTime(now).DateOnly()
}
