package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(medlog completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(medlog completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// registerDoseCompletions completes --pet, --medicine and --vet from what the
// log already knows.
func registerDoseCompletions(cmd *cobra.Command) {
	complete := func(list func(toComplete string) []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return list(toComplete), cobra.ShellCompDirectiveNoFileComp
		}
	}
	_ = cmd.RegisterFlagCompletionFunc("pet", complete(petCompletions))
	_ = cmd.RegisterFlagCompletionFunc("medicine", complete(medicineCompletions))
	_ = cmd.RegisterFlagCompletionFunc("vet", complete(vetCompletions))
}

func petCompletions(toComplete string) []string {
	svc, err := loadService()
	if err != nil {
		return nil
	}
	pets, _ := svc.Pets(context.Background(), toComplete)
	return pets
}

func medicineCompletions(toComplete string) []string {
	svc, err := loadService()
	if err != nil {
		return nil
	}
	return svc.Medicines(toComplete)
}

func vetCompletions(toComplete string) []string {
	svc, err := loadService()
	if err != nil {
		return nil
	}
	vets, _ := svc.Vets(context.Background())
	out := make([]string, 0, len(vets))
	for _, v := range vets {
		if strings.HasPrefix(strings.ToLower(v), strings.ToLower(toComplete)) {
			out = append(out, v)
		}
	}
	return out
}
