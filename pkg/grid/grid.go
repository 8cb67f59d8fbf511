// Package grid pivots the dosing log into a medicine by day chart.
package grid

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/medlog/pkg/entry"
	"tableflip.dev/medlog/pkg/timeutil"
)

const (
	// DayLabelLayout renders day columns as MM-DD-YY.
	DayLabelLayout = "01-02-06"
	dayKeyLayout   = "2006-01-02"
	nameHeader     = "name"
)

// Grid is a header row plus one row per catalog medicine. Cells hold the
// "pet - vet" labels of that medicine's doses on that day, one per line.
type Grid struct {
	Headers []string
	Rows    [][]string
	Days    []time.Time
}

// Build filters events into r and buckets them by medicine and local day.
// Every category gets a row, in catalog order, even without matches. An open
// side of r is clamped to the matching events so the day axis stays finite.
func Build(events []*entry.Entry, r timeutil.Range, categories []string, now time.Time) Grid {
	type match struct {
		e  *entry.Entry
		at time.Time
	}
	matches := make([]match, 0, len(events))
	var first, last time.Time
	for _, e := range events {
		if e == nil {
			continue
		}
		at := entry.DeriveTimestamp(e, now)
		if !r.Contains(at) {
			continue
		}
		if len(matches) == 0 || at.Before(first) {
			first = at
		}
		if len(matches) == 0 || at.After(last) {
			last = at
		}
		matches = append(matches, match{e: e, at: at})
	}
	if len(matches) == 0 {
		first, last = now, now
	}

	axis := r.Clamp(first, last)
	days := axis.Days()
	if len(days) == 0 {
		return Grid{}
	}
	loc := axis.Start.Location()

	buckets := make(map[string][]string)
	for _, m := range matches {
		k := bucketKey(m.e.Medicine, m.at.In(loc))
		buckets[k] = append(buckets[k], m.e.Label())
	}

	headers := make([]string, 0, len(days)+1)
	headers = append(headers, nameHeader)
	for _, d := range days {
		headers = append(headers, d.Format(DayLabelLayout))
	}

	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		row := make([]string, 0, len(days)+1)
		row = append(row, category)
		for _, d := range days {
			row = append(row, strings.Join(buckets[bucketKey(category, d)], "\n"))
		}
		rows = append(rows, row)
	}

	return Grid{Headers: headers, Rows: rows, Days: days}
}

func bucketKey(category string, day time.Time) string {
	return category + "|" + day.Format(dayKeyLayout)
}

// Empty reports whether the grid has no day columns.
func (g Grid) Empty() bool {
	return len(g.Days) == 0
}

// Matrix returns the header row followed by the data rows.
func (g Grid) Matrix() [][]string {
	out := make([][]string, 0, len(g.Rows)+1)
	out = append(out, g.Headers)
	return append(out, g.Rows...)
}

// Filename names the exported file after the first and last day, for
// example records_03-11-24_to_03-15-24.xlsx.
func (g Grid) Filename(ext string) string {
	if g.Empty() {
		return ""
	}
	first := g.Days[0].Format(DayLabelLayout)
	last := g.Days[len(g.Days)-1].Format(DayLabelLayout)
	return fmt.Sprintf("records_%s_to_%s.%s", first, last, strings.TrimPrefix(ext, "."))
}
