// Package timeutil resolves the named date windows used to browse and export
// the dosing log, and enumerates the calendar days they cover.
package timeutil

import (
	"fmt"
	"time"
)

// Kind names a range selector.
type Kind int

const (
	Today Kind = iota
	CurrentWeek
	CurrentMonth
	LastNDays
	Custom
)

func (k Kind) String() string {
	switch k {
	case Today:
		return "today"
	case CurrentWeek:
		return "week"
	case CurrentMonth:
		return "month"
	case LastNDays:
		return "last"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Selector is a tagged choice of range. N is only read for LastNDays; Start
// and End only for Custom, where a zero time means the bound is absent.
type Selector struct {
	Kind  Kind
	N     int
	Start time.Time
	End   time.Time
}

// ForToday selects the current calendar day.
func ForToday() Selector { return Selector{Kind: Today} }

// ForWeek selects Monday through Friday of the current week.
func ForWeek() Selector { return Selector{Kind: CurrentWeek} }

// ForMonth selects the current calendar month.
func ForMonth() Selector { return Selector{Kind: CurrentMonth} }

// ForLastDays selects the n calendar days ending today.
func ForLastDays(n int) Selector { return Selector{Kind: LastNDays, N: n} }

// ForCustom selects the days between start and end. Either may be zero.
func ForCustom(start, end time.Time) Selector {
	return Selector{Kind: Custom, Start: start, End: end}
}

var (
	// Floor stands in for a missing custom start.
	Floor = time.UnixMilli(0)
	// Ceiling stands in for a missing custom end.
	Ceiling = time.UnixMilli(8640000000000000)
)

// Range is an inclusive pair of instants with Start <= End.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// OpenStart reports whether the start bound was absent when resolved.
func (r Range) OpenStart() bool { return r.Start.Equal(Floor) }

// OpenEnd reports whether the end bound was absent when resolved.
func (r Range) OpenEnd() bool { return r.End.Equal(Ceiling) }

// Days lists the calendar days the range touches. See ListDays.
func (r Range) Days() []time.Time { return ListDays(r) }

// Clamp replaces an open start with first's day and an open end with last's
// day, leaving bounded sides as they are. When the clamp point falls beyond
// the bounded side, the open side collapses onto the bounded day.
func (r Range) Clamp(first, last time.Time) Range {
	openStart, openEnd := r.OpenStart(), r.OpenEnd()
	if openStart {
		r.Start = StartOfDay(first)
	}
	if openEnd {
		r.End = EndOfDay(last)
	}
	if r.End.Before(r.Start) {
		switch {
		case openStart && !openEnd:
			r.Start = StartOfDay(r.End)
		case openEnd && !openStart:
			r.End = EndOfDay(r.Start)
		}
	}
	return r
}

// Resolve turns a selector into a concrete range relative to now. Calendar
// days are taken in now's location.
func Resolve(sel Selector, now time.Time) Range {
	switch sel.Kind {
	case CurrentWeek:
		return weekRange(now)
	case CurrentMonth:
		return monthRange(now)
	case LastNDays:
		if sel.N < 1 {
			return todayRange(now)
		}
		return lastDaysRange(now, sel.N)
	case Custom:
		return customRange(sel.Start, sel.End, now)
	default:
		return todayRange(now)
	}
}

// StartOfDay returns 00:00:00.000 of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func todayRange(now time.Time) Range {
	return Range{Start: StartOfDay(now), End: EndOfDay(now)}
}

func weekRange(now time.Time) Range {
	offset := 1 - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = -6
	}
	y, m, d := now.Date()
	monday := time.Date(y, m, d+offset, 0, 0, 0, 0, now.Location())
	friday := EndOfDay(time.Date(y, m, d+offset+4, 12, 0, 0, 0, now.Location()))
	return Range{Start: monday, End: friday}
}

func monthRange(now time.Time) Range {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	last := time.Date(y, m+1, 0, 12, 0, 0, 0, now.Location())
	return Range{Start: start, End: EndOfDay(last)}
}

func lastDaysRange(now time.Time, n int) Range {
	y, m, d := now.Date()
	start := time.Date(y, m, d-(n-1), 0, 0, 0, 0, now.Location())
	return Range{Start: start, End: EndOfDay(now)}
}

func customRange(start, end, now time.Time) Range {
	if start.IsZero() && end.IsZero() {
		return todayRange(now)
	}
	r := Range{Start: Floor, End: Ceiling}
	if !start.IsZero() {
		r.Start = StartOfDay(start)
	}
	if !end.IsZero() {
		r.End = EndOfDay(end)
	}
	if r.End.Before(r.Start) {
		r = Range{Start: StartOfDay(r.End), End: EndOfDay(r.Start)}
	}
	return r
}

// ListDays returns local midnight of every calendar day from r.Start's day
// through r.End's day inclusive, in order. Partially covered days count.
// Open ranges must be clamped first.
func ListDays(r Range) []time.Time {
	if r.End.Before(r.Start) {
		return nil
	}
	loc := r.Start.Location()
	y, m, d := r.Start.Date()
	last := civil(r.End.In(loc))

	days := make([]time.Time, 0, DaysBetweenInclusive(r.Start, r.End.In(loc)))
	for i := 0; ; i++ {
		cur := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		if civil(cur).After(last) {
			break
		}
		days = append(days, cur)
	}
	return days
}

// DaysBetweenInclusive counts the calendar days from a's day to b's day,
// both included, independent of argument order. The same day counts as 1.
// When both are zero the count is 0; a single zero argument takes the other's
// value.
func DaysBetweenInclusive(a, b time.Time) int {
	if a.IsZero() && b.IsZero() {
		return 0
	}
	if a.IsZero() {
		a = b
	}
	if b.IsZero() {
		b = a
	}
	ca, cb := civil(a), civil(b)
	if cb.Before(ca) {
		ca, cb = cb, ca
	}
	return int((cb.Unix()-ca.Unix())/secondsPerDay) + 1
}

const secondsPerDay = 24 * 60 * 60

// civil maps t's calendar day onto UTC midnight so day arithmetic is free of
// daylight saving shifts.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
