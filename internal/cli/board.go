package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/live"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Live factory status board (kiosk view)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sub := app.Live.Subscribe()
			defer sub.Cancel()

			m := newBoardModel(sub)
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// boardSnapshotMsg carries a fresh board from the live publisher.
type boardSnapshotMsg []domain.WorkerStatus

// boardClosedMsg signals the subscription was cancelled.
type boardClosedMsg struct{}

type boardModel struct {
	sub     *live.Subscription
	spinner spinner.Model
	rows    []domain.WorkerStatus
	loaded  bool
}

func newBoardModel(sub *live.Subscription) boardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorBlue)
	return boardModel{sub: sub, spinner: sp}
}

// waitForSnapshot blocks on the subscription channel and turns each
// delivery into a tea message.
func waitForSnapshot(sub *live.Subscription) tea.Cmd {
	return func() tea.Msg {
		ws, ok := <-sub.C
		if !ok {
			return boardClosedMsg{}
		}
		return boardSnapshotMsg(ws)
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForSnapshot(m.sub))
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.sub.Cancel()
			return m, tea.Quit
		}
	case boardSnapshotMsg:
		m.rows = msg
		m.loaded = true
		return m, waitForSnapshot(m.sub)
	case boardClosedMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m boardModel) View() string {
	title := formatter.StyleHeader.Render("FACTORY STATUS") +
		formatter.Dim(fmt.Sprintf("  %s", time.Now().Format("15:04:05")))

	if !m.loaded {
		return fmt.Sprintf("%s\n\n%s loading board...\n", title, m.spinner.View())
	}

	board := &service.StatusBoard{Workers: m.rows}
	return fmt.Sprintf("%s\n\n%s\n%s\n", title,
		formatter.FormatBoard(board),
		formatter.Dim("q to quit"))
}
