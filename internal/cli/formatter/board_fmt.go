package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/service"
)

// FormatBoard renders a status board as a styled table with a summary
// line and any aggregation failures appended.
func FormatBoard(board *service.StatusBoard) string {
	var b strings.Builder

	headers := []string{"WORKER", "ROLE", "STATUS", "CURRENT TASK", "ELAPSED", "NEW"}
	rows := make([][]string, 0, len(board.Workers))

	working := 0
	for _, w := range board.Workers {
		task := Dim("--")
		elapsed := Dim("--")
		if w.CurrentTask != nil {
			task = StyleFg.Render(fmt.Sprintf("%s / %s", w.CurrentTask.ProjectName, w.CurrentTask.StageName))
			elapsed = StyleBlue.Render(w.CurrentTask.Elapsed)
		}
		if w.State == domain.WorkerWorking {
			working++
		}
		newCount := Dim("0")
		if w.NewTaskCount > 0 {
			newCount = StyleYellow.Render(fmt.Sprintf("%d", w.NewTaskCount))
		}
		rows = append(rows, []string{
			Bold(w.WorkerName),
			StyleFg.Render(w.Role),
			StatePill(w.State),
			task,
			elapsed,
			newCount,
		})
	}

	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")

	workingPart := StyleGreen.Render(fmt.Sprintf("%d working", working))
	idlePart := StyleDim.Render(fmt.Sprintf("%d idle", len(board.Workers)-working))
	b.WriteString(fmt.Sprintf("%s, %s\n", workingPart, idlePart))

	if len(board.Failures) > 0 {
		b.WriteString("\n")
		for _, f := range board.Failures {
			b.WriteString(StyleRed.Render(fmt.Sprintf("! worker %s omitted: %v", f.WorkerID, f.Err)) + "\n")
		}
	}

	return b.String()
}

// FormatDayLog renders a worker's sessions for one day with the
// payroll total.
func FormatDayLog(date string, sessions []*domain.WorkSession) string {
	var b strings.Builder

	headers := []string{"SESSION", "PROJECT", "STAGE", "START", "END", "HOURS", "OT"}
	rows := make([][]string, 0, len(sessions))

	var total float64
	for _, s := range sessions {
		end := StyleGreen.Render("running")
		if s.EndedAt != nil {
			end = StyleFg.Render(s.EndedAt.Format("15:04"))
		}
		ot := Dim("")
		if s.Overtime {
			ot = StyleYellow.Render("OT")
		}
		total += s.Hours
		rows = append(rows, []string{
			Dim(shortID(s.ID)),
			StyleFg.Render(s.ProjectName),
			StyleFg.Render(s.StageName),
			StyleFg.Render(s.StartedAt.Format("15:04")),
			end,
			StyleFg.Render(fmt.Sprintf("%.2f", s.Hours)),
			ot,
		})
	}

	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Bold(date), StyleGreen.Render(fmt.Sprintf("%.2f h", total))))
	return b.String()
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
