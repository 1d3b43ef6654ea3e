package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	var workerID, projectID, projectName, stageID, stageName string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a production stage to a worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := app.Workers.GetByID(ctx, workerID); err != nil {
				return err
			}

			now := time.Now().UTC()
			a := &domain.StageAssignment{
				ID:          uuid.New().String(),
				WorkerID:    workerID,
				ProjectID:   projectID,
				ProjectName: projectName,
				StageID:     stageID,
				StageName:   stageName,
				Status:      domain.StageAssigned,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := app.Assignments.Create(ctx, a); err != nil {
				return err
			}
			fmt.Printf("Assigned %s / %s to worker %s\n", projectName, stageName, workerID)

			app.Live.Notify(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	cmd.Flags().StringVar(&projectID, "project-id", "", "Project ID")
	cmd.Flags().StringVar(&projectName, "project", "", "Project display name")
	cmd.Flags().StringVar(&stageID, "stage-id", "", "Stage ID")
	cmd.Flags().StringVar(&stageName, "stage", "", "Stage display name")
	_ = cmd.MarkFlagRequired("worker")
	_ = cmd.MarkFlagRequired("stage-id")
	_ = cmd.MarkFlagRequired("stage")

	return cmd
}
