package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current factory status board",
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := app.Status.Snapshot(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBoard(board))
			return nil
		},
	}
}
