package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/medlog/pkg/commands/options"
	"tableflip.dev/medlog/pkg/printers"
)

func addMeds(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "meds [query]",
		Aliases: []string{"medicines"},
		Short:   "List the medicine catalog, optionally filtered.",
		Example: `
medlog meds
medlog meds cillin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), err)
			}
			return printNames(cmd, oo, "Medicines", svc.Medicines(strings.Join(args, " ")))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addPets(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "pets [query]",
		Short: "List the pets seen so far, most recent first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), err)
			}
			pets, err := svc.Pets(context.Background(), strings.Join(args, " "))
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), err)
			}
			return printNames(cmd, oo, "Pets", pets)
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addVets(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "vets",
		Short: "List the veterinarian roster.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), err)
			}
			vets, err := svc.Vets(context.Background())
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), err)
			}
			return printNames(cmd, oo, "Vets", vets)
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func printNames(cmd *cobra.Command, oo *options.OutputOptions, title string, names []string) error {
	if oo.JSON {
		return oo.Print(cmd.OutOrStdout(), names)
	}
	pp := printers.PrettyPrint{Out: cmd.OutOrStdout()}
	pp.Names(title, names)
	return nil
}
