package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/medlog/pkg/app"
	"tableflip.dev/medlog/pkg/commands/options"
	"tableflip.dev/medlog/pkg/export"
)

func addExport(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	format := "xlsx"
	dir := "."

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a spreadsheet of medicines by day for a date range.",
		Long: `Write a spreadsheet with one row per medicine and one column per day of
the range. Each cell lists who gave the medicine that day.`,
		Example: `
medlog export --month
medlog export --from 2024-03-01 --to 2024-03-15 --format csv --dir ~/Desktop
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := export.ForFormat(format)
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			sel, err := selectRange(svc, ro)
			if err != nil {
				return err
			}
			path, err := svc.Export(context.Background(), svc.Resolve(sel), w, dir)
			if errors.Is(err, app.ErrExportFailed) {
				// The cause has been logged, the notice is all the user sees.
				return errors.New("failed to generate the export")
			}
			if err != nil {
				return err
			}
			if path == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to export")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	options.AddRangeArgs(cmd, ro)
	cmd.Flags().StringVarP(&format, "format", "f", format, "File format. One of 'xlsx' or 'csv'.")
	cmd.Flags().StringVar(&dir, "dir", dir, "Directory the file is written to.")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"xlsx", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
