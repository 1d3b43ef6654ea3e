package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

// runStartForm collects the clock-in fields interactively. Returns the
// selected worker id; stage/project values are written through the
// provided pointers.
func runStartForm(ctx context.Context, app *App, projectName, stageID, stageName *string) (string, error) {
	workers, err := app.Workers.List(ctx)
	if err != nil {
		return "", err
	}
	if len(workers) == 0 {
		return "", fmt.Errorf("no workers in the roster; run 'shopfloor worker add' first")
	}

	options := make([]huh.Option[string], 0, len(workers))
	for _, w := range workers {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", w.Name, w.Role), w.ID))
	}

	var workerID string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Worker").
				Options(options...).
				Value(&workerID),
			huh.NewInput().
				Title("Project").
				Placeholder("Hull 14").
				Value(projectName),
			huh.NewInput().
				Title("Stage ID").
				Placeholder("welding-01").
				Value(stageID).
				Validate(requireValue("stage id")),
			huh.NewInput().
				Title("Stage").
				Placeholder("welding").
				Value(stageName).
				Validate(requireValue("stage name")),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	return workerID, nil
}

func requireValue(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
