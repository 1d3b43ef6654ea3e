package cli

import (
	"strings"

	"github.com/alexanderramin/shopfloor/internal/live"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all services used by CLI commands.
type App struct {
	Sessions    service.SessionService
	Status      service.StatusService
	Workers     repository.WorkerRepo
	Assignments repository.AssignmentRepo
	Live        *live.Publisher
}

// NewRootCmd creates the top-level "shopfloor" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "shopfloor",
		Short: "Work-session tracking and live factory status",
	}

	// Accept underscores in flag names for muscle-memory parity with
	// the column names shown in status output.
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newWorkerCmd(app),
		newAssignCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newSessionsCmd(app),
		newBoardCmd(app),
	)

	return root
}
