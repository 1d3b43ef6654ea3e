package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newWorkerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage the factory roster",
	}

	cmd.AddCommand(
		newWorkerAddCmd(app),
		newWorkerListCmd(app),
	)

	return cmd
}

func newWorkerAddCmd(app *App) *cobra.Command {
	var name, role, avatar string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a worker to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.Worker{
				ID:        uuid.New().String(),
				Name:      name,
				Role:      role,
				AvatarRef: avatar,
				CreatedAt: time.Now().UTC(),
			}
			if err := app.Workers.Create(context.Background(), w); err != nil {
				return err
			}
			fmt.Printf("Added worker %s (%s)\n", w.Name, w.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Worker name")
	cmd.Flags().StringVar(&role, "role", "operator", "Worker role")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar reference")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newWorkerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := app.Workers.List(context.Background())
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "ROLE"}
			rows := make([][]string, 0, len(workers))
			for _, w := range workers {
				rows = append(rows, []string{
					formatter.Dim(w.DisplayID()),
					formatter.Bold(w.Name),
					formatter.StyleFg.Render(w.Role),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}
