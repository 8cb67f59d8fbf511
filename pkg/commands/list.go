package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/medlog/pkg/commands/options"
	"tableflip.dev/medlog/pkg/printers"
)

func addList(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "log"},
		Short:   "Show the doses logged in a date range.",
		Example: `
medlog list
medlog list --week
medlog list --last 10
medlog list --from 2024-03-01 --to 2024-03-15 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(out, err)
			}
			sel, err := selectRange(svc, ro)
			if err != nil {
				return oo.HandleError(out, err)
			}
			r := svc.Resolve(sel)
			entries, err := svc.Filter(context.Background(), r)
			if err != nil {
				return oo.HandleError(out, err)
			}
			if oo.JSON {
				return oo.Print(out, entries)
			}
			pp := printers.PrettyPrint{ShowID: io.ShowID, Out: out}
			pp.Log(printers.RangeTitle(sel.Kind, r), entries, svc.Clock())
			return nil
		},
	}

	options.AddRangeArgs(cmd, ro)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
