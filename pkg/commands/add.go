package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/medlog/pkg/app"
	"tableflip.dev/medlog/pkg/commands/options"
	"tableflip.dev/medlog/pkg/entry"
)

func addAdd(topLevel *cobra.Command) {
	do := &options.DoseOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a dose given now.",
		Example: `
medlog add --pet Rex --medicine Meloxicam --quantity 0.5
medlog add -p Mia -d Amoxicillin -v Thalles
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			ctx := context.Background()
			sub := app.Submission{
				Pet:      do.Pet,
				Medicine: do.Medicine,
				Vet:      do.Vet,
				Quantity: do.Quantity,
			}
			if !svc.Valid(ctx, sub) {
				vets, _ := svc.Vets(ctx)
				return fmt.Errorf("%w: pet, medicine, a positive quantity and one of the vets %v are required",
					app.ErrInvalidSubmission, vets)
			}
			e, err := svc.Add(ctx, sub)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s for %s at %s [%s]\n",
				e.Medicine, e.Label(), entry.FormatDisplay(e.CreatedAt.Time()), e.ID)
			return nil
		},
	}

	options.AddDoseArgs(cmd, do, false)
	registerDoseCompletions(cmd)

	topLevel.AddCommand(cmd)
}
