// Package printers renders the dosing log for the terminal.
package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/medlog/pkg/entry"
	"tableflip.dev/medlog/pkg/timeutil"
)

const (
	dayLayout  = "02/01/2006"
	cellWidth  = 28
	cellSuffix = "…"
)

// PrettyPrint writes colored tables to Out, defaulting to color.Output.
type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// TitleWithCount prints an underlined heading followed by an entry count.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// RangeTitle describes the window being shown.
func RangeTitle(kind timeutil.Kind, r timeutil.Range) string {
	switch {
	case r.OpenStart() && r.OpenEnd():
		return kind.String()
	case r.OpenStart():
		return fmt.Sprintf("%s · until %s", kind, r.End.Format(dayLayout))
	case r.OpenEnd():
		return fmt.Sprintf("%s · from %s", kind, r.Start.Format(dayLayout))
	}
	n := timeutil.DaysBetweenInclusive(r.Start, r.End)
	if n == 1 {
		return fmt.Sprintf("%s · %s", kind, r.Start.Format(dayLayout))
	}
	return fmt.Sprintf("%s · %s → %s (%d days)", kind, r.Start.Format(dayLayout), r.End.Format(dayLayout), n)
}

// Log prints one row per entry, most recent first as stored.
func (pp *PrettyPrint) Log(title string, entries []*entry.Entry, now time.Time) {
	pp.TitleWithCount(title, len(entries))
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Date"), bold.Sprint("Pet"), bold.Sprint("Medicine"), bold.Sprint("Qty"), bold.Sprint("Vet")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, e := range entries {
		row := []interface{}{
			entry.FormatDisplay(entry.DeriveTimestamp(e, now)),
			truncate.StringWithTail(e.Pet, cellWidth, cellSuffix),
			truncate.StringWithTail(e.Medicine, cellWidth, cellSuffix),
			strconv.FormatFloat(e.Quantity, 'f', -1, 64),
			e.Vet,
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Names prints a plain list, one per line.
func (pp *PrettyPrint) Names(title string, names []string) {
	pp.TitleWithCount(title, len(names))
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), strings.Join(names, "\n"))
	_, _ = fmt.Fprintln(pp.out(), "")
}
