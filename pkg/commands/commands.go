package commands

import (
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/medlog/pkg/app"
	"tableflip.dev/medlog/pkg/logging"
	"tableflip.dev/medlog/pkg/store"
)

// loadService is replaced in tests.
var loadService = newService

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "medlog",
		Short: base.Wrap80("Keep a log of the medicines given to your pets."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addList(topLevel)
	addExport(topLevel)
	addMeds(topLevel)
	addPets(topLevel)
	addVets(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func newService() (*app.Service, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.New(settings.LogLevel, settings.LogFormat, os.Stderr)
	p, err := store.Load(settings, settings.Vets, log)
	if err != nil {
		return nil, err
	}
	return &app.Service{
		Persistence: p,
		Catalog:     settings.Medicines,
		Log:         log,
	}, nil
}
