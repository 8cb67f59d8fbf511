package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/medlog/pkg/app"
	"tableflip.dev/medlog/pkg/commands/options"
	"tableflip.dev/medlog/pkg/entry"
)

func addEdit(topLevel *cobra.Command) {
	do := &options.DoseOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a logged dose.",
		Long: `Change a logged dose. Only the given flags are replaced; a date that
cannot be read keeps the previous one.`,
		Example: `
medlog edit 1b9d6bcd --quantity 2
medlog edit 1b9d6bcd --at "2024-03-15T09:30"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			ctx := context.Background()
			sub, err := svc.Draft(ctx, args[0])
			if err != nil {
				return err
			}
			sub = overlay(cmd, sub, do)

			e, err := svc.Edit(ctx, args[0], sub)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s for %s at %s [%s]\n",
				e.Medicine, e.Label(), entry.FormatDisplay(e.CreatedAt.Time()), e.ID)
			return nil
		},
	}

	options.AddDoseArgs(cmd, do, true)
	registerDoseCompletions(cmd)

	topLevel.AddCommand(cmd)
}

// overlay copies the flags the user set onto the draft.
func overlay(cmd *cobra.Command, sub app.Submission, do *options.DoseOptions) app.Submission {
	f := cmd.Flags()
	if f.Changed("pet") {
		sub.Pet = do.Pet
	}
	if f.Changed("medicine") {
		sub.Medicine = do.Medicine
	}
	if f.Changed("vet") {
		sub.Vet = do.Vet
	}
	if f.Changed("quantity") {
		sub.Quantity = do.Quantity
	}
	if f.Changed("at") {
		sub.At = do.At
	}
	return sub
}
