package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	var workerID, date string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List a worker's sessions for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
			}

			sessions, err := app.Sessions.ListDay(context.Background(), workerID, date)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Printf("No sessions for %s on %s\n", workerID, date)
				return nil
			}
			fmt.Print(formatter.FormatDayLog(date, sessions))
			return nil
		},
	}

	cmd.Flags().StringVar(&workerID, "worker", "", "Worker ID")
	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("worker")

	return cmd
}
