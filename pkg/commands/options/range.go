// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO = "2006-01-02"

	// RememberedLast is the --last value used when the flag has no argument.
	RememberedLast = "remembered"
)

// RangeOptions selects the window of the log to show or export.
type RangeOptions struct {
	Today bool
	Week  bool
	Month bool
	Last  string
	From  string
	To    string
}

// AddRangeArgs wires the range selection flags on the provided command.
func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().BoolVarP(&o.Today, "today", "t", false,
		"Show today (the default).")
	cmd.Flags().BoolVarP(&o.Week, "week", "w", false,
		"Show Monday through Friday of the current week.")
	cmd.Flags().BoolVarP(&o.Month, "month", "m", false,
		"Show the current month.")
	cmd.Flags().StringVarP(&o.Last, "last", "l", "",
		`Show the last N days, example: --last=3, --last=1w2d. Without a value the last custom range length is used.`)
	cmd.Flags().Lookup("last").NoOptDefVal = RememberedLast
	cmd.Flags().StringVar(&o.From, "from", "",
		`Start of a custom range, example: --from="2024-03-01".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`End of a custom range, example: --to="2024-03-15".`)
}

// Custom reports whether a custom bound was given.
func (o *RangeOptions) Custom() bool {
	return o.From != "" || o.To != ""
}

// GetBounds parses --from and --to as local dates. Absent bounds are zero.
func (o *RangeOptions) GetBounds() (time.Time, time.Time, error) {
	from, err := parseDay("from", o.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDay("to", o.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDay(flag, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layoutISO, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected yyyy-mm-dd, got %q", flag, v)
	}
	return t, nil
}
