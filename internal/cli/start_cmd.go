package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var workerID, projectID, projectName, stageID, stageName string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Clock a worker in on a production stage",
		Long: `Clock a worker in. If the worker already has a running session it
is closed first, with payroll hours computed up to now.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// On a terminal with no worker given, fall back to an
			// interactive form.
			if workerID == "" && isatty.IsTerminal(os.Stdin.Fd()) {
				picked, err := runStartForm(ctx, app, &projectName, &stageID, &stageName)
				if err != nil {
					return err
				}
				workerID = picked
			}

			worker, err := app.Workers.GetByID(ctx, workerID)
			if err != nil {
				return err
			}

			sess, err := app.Sessions.Start(ctx, service.StartSessionInput{
				WorkerID:    worker.ID,
				WorkerName:  worker.Name,
				ProjectID:   projectID,
				ProjectName: projectName,
				StageID:     stageID,
				StageName:   stageName,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Started session %s: %s on %s / %s\n",
				sess.ID, worker.Name, sess.ProjectName, sess.StageName)
			if sess.Overtime {
				fmt.Println("Session flagged as overtime.")
			}

			app.Live.Notify(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	cmd.Flags().StringVar(&projectID, "project-id", "", "Project ID")
	cmd.Flags().StringVar(&projectName, "project", "", "Project display name")
	cmd.Flags().StringVar(&stageID, "stage-id", "", "Stage ID")
	cmd.Flags().StringVar(&stageName, "stage", "", "Stage display name")

	return cmd
}
