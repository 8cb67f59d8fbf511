package options

import (
	"github.com/spf13/cobra"
)

// DoseOptions carries the fields of a dose submission.
type DoseOptions struct {
	Pet      string
	Medicine string
	Vet      string
	Quantity float64
	At       string
}

// AddDoseArgs wires the dose fields; at is only offered when editing.
func AddDoseArgs(cmd *cobra.Command, o *DoseOptions, at bool) {
	cmd.Flags().StringVarP(&o.Pet, "pet", "p", "",
		"Name of the pet.")
	cmd.Flags().StringVarP(&o.Medicine, "medicine", "d", "",
		"Medicine given, ideally from the catalog (see `medlog meds`).")
	cmd.Flags().StringVarP(&o.Vet, "vet", "v", "",
		"Veterinarian; defaults to the first of the roster.")
	cmd.Flags().Float64VarP(&o.Quantity, "quantity", "q", 1,
		"Quantity given.")
	if at {
		cmd.Flags().StringVar(&o.At, "at", "",
			`When the dose was given, example: --at="2024-03-15T09:30" or --at="15/03/2024 09:30".`)
	}
}
