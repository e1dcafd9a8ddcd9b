package console

import (
	"fmt"
	"strings"

	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/services"
)

// ClearScreen moves the cursor home and erases the terminal.
const ClearScreen = "\033[H\033[2J"

const (
	unscheduled = "unscheduled"
	noTasks     = "none"
	unknown     = "unknown"
)

// RenderTask renders tid/name/type/status/assignees/createdAt/dueTo.
func RenderTask(t models.Task, assignees []models.Member) string {
	names := make([]string, 0, len(assignees))
	for _, m := range assignees {
		names = append(names, m.Name)
	}
	due := unscheduled
	if t.Scheduled() {
		due = convert.FormatDate(*t.DueTo)
	}
	return strings.Join([]string{
		t.ID,
		t.Name,
		string(t.Type),
		string(t.Status),
		strings.Join(names, ","),
		convert.FormatDate(t.CreatedAt),
		due,
	}, FieldSeparator)
}

// RenderMember renders mid/name/auth/task-ids.
func RenderMember(m models.Member, tasks []models.Task) string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	assigned := noTasks
	if len(ids) > 0 {
		assigned = strings.Join(ids, ",")
	}
	return strings.Join([]string{m.ID, m.Name, string(m.Auth), assigned}, FieldSeparator)
}

func renderStatusCount(c services.StatusCount) string {
	return fmt.Sprintf("done=%d in_progress=%d not_started=%d total=%d", c.Done, c.InProgress, c.NotStarted, c.Total)
}

func renderAssignmentCount(c services.AssignmentCount) string {
	return fmt.Sprintf("assigned=%d total=%d", c.Assigned, c.Total)
}
