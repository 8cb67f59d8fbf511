package entry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DisplayLayout is the human-readable rendering stored in Entry.Date.
const DisplayLayout = "02/01/2006 15:04"

// ErrNoTimestamp is returned when neither CreatedAt nor Date yield an instant.
var ErrNoTimestamp = errors.New("entry: no usable timestamp")

// TimestampSource is either Authoritative or LegacyText.
type TimestampSource interface {
	timestampSource()
}

// Authoritative carries a stored epoch timestamp.
type Authoritative struct {
	At time.Time
}

// LegacyText carries only the dd/mm/yyyy[ hh:mm] rendering.
type LegacyText struct {
	Text string
}

func (Authoritative) timestampSource() {}
func (LegacyText) timestampSource()    {}

// StrictTimestamp resolves the entry's instant, failing with ErrNoTimestamp
// when a legacy Date cannot be parsed.
func StrictTimestamp(e *Entry) (time.Time, error) {
	switch src := e.Source().(type) {
	case Authoritative:
		return src.At, nil
	case LegacyText:
		t, err := ParseDisplay(src.Text, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrNoTimestamp, err)
		}
		return t, nil
	default:
		return time.Time{}, ErrNoTimestamp
	}
}

// DeriveTimestamp resolves the entry's instant, substituting now for legacy
// records whose Date cannot be parsed.
func DeriveTimestamp(e *Entry, now time.Time) time.Time {
	t, err := StrictTimestamp(e)
	if err != nil {
		return now
	}
	return t
}

// FormatDisplay renders t as dd/mm/yyyy hh:mm in its own location.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// ParseDisplay reads dd/mm/yyyy[ hh:mm] in loc. Parsing is lenient: a missing
// day or month becomes 1, a missing or unreadable time becomes 00:00, and out
// of range fields roll over the way time.Date normalizes them. The year is
// required; years 0 through 99 are read as 1900 through 1999.
func ParseDisplay(s string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if parts[0] == "" {
		return time.Time{}, fmt.Errorf("empty date %q", s)
	}

	fields := strings.Split(parts[0], "/")
	for len(fields) < 3 {
		fields = append(fields, "")
	}
	day, okDay := leadingInt(fields[0])
	month, okMonth := leadingInt(fields[1])
	year, okYear := leadingInt(fields[2])
	if !okYear {
		return time.Time{}, fmt.Errorf("date %q has no year", s)
	}
	if year >= 0 && year <= 99 {
		year += 1900
	}
	if !okDay || day == 0 {
		day = 1
	}
	if !okMonth || month == 0 {
		month = 1
	}

	hour, minute := 0, 0
	if len(parts) > 1 && parts[1] != "" {
		clock := strings.Split(parts[1], ":")
		if h, ok := leadingInt(clock[0]); ok {
			hour = h
		}
		if len(clock) > 1 {
			if m, ok := leadingInt(clock[1]); ok {
				minute = m
			}
		}
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc), nil
}

// leadingInt reads an optionally signed run of digits at the start of s,
// ignoring whatever follows.
func leadingInt(s string) (int, bool) {
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
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Millis is an epoch-milliseconds timestamp that tolerates the loose shapes
// found in older logs: null, floats and numeric strings decode, anything else
// leaves it invalid instead of failing the whole record.
type Millis struct {
	Value int64
	Valid bool
}

// MillisOf converts t to Millis.
func MillisOf(t time.Time) Millis {
	return Millis{Value: t.UnixMilli(), Valid: true}
}

// Time returns the instant in the local zone.
func (m Millis) Time() time.Time {
	return time.UnixMilli(m.Value)
}

func (m Millis) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(m.Value, 10)), nil
}

func (m *Millis) UnmarshalJSON(b []byte) error {
	*m = Millis{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*m = Millis{Value: int64(f), Valid: true}
	return nil
}
