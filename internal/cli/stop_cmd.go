package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/spf13/cobra"
)

func newStopCmd(app *App) *cobra.Command {
	var workerID string

	cmd := &cobra.Command{
		Use:   "stop [session-id]",
		Short: "Clock a worker out",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sessionID := ""
			if len(args) > 0 {
				sessionID = args[0]
			}
			if sessionID == "" {
				if workerID == "" {
					return fmt.Errorf("pass a session id or --worker")
				}
				running, err := app.Sessions.GetRunning(ctx, workerID)
				if err != nil {
					return err
				}
				if running == nil {
					return fmt.Errorf("worker %s has no running session", workerID)
				}
				sessionID = running.ID
			}

			sess, err := app.Sessions.Stop(ctx, sessionID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("session already ended or unknown: %s", sessionID)
				}
				if errors.Is(err, service.ErrStorage) {
					return fmt.Errorf("could not stop the session, please retry: %w", err)
				}
				return err
			}

			fmt.Printf("Stopped session %s: %.2f h on %s / %s\n",
				sess.ID, sess.Hours, sess.ProjectName, sess.StageName)

			app.Live.Notify(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Stop this worker's running session")

	return cmd
}
