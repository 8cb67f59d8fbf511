package commands

import (
	"tableflip.dev/medlog/pkg/app"
	"tableflip.dev/medlog/pkg/commands/options"
	"tableflip.dev/medlog/pkg/timeutil"
)

// selectRange picks the window named by the flags. A custom bound wins over
// --last, then --month, --week and finally today.
func selectRange(svc *app.Service, ro *options.RangeOptions) (timeutil.Selector, error) {
	switch {
	case ro.Custom():
		from, to, err := ro.GetBounds()
		if err != nil {
			return timeutil.Selector{}, err
		}
		return svc.ApplyCustom(from, to), nil
	case ro.Last == options.RememberedLast:
		return svc.LastDays(), nil
	case ro.Last != "":
		n, err := timeutil.ParseDays(ro.Last)
		if err != nil {
			return timeutil.Selector{}, err
		}
		return timeutil.ForLastDays(n), nil
	case ro.Month:
		return timeutil.ForMonth(), nil
	case ro.Week:
		return timeutil.ForWeek(), nil
	default:
		return timeutil.ForToday(), nil
	}
}
