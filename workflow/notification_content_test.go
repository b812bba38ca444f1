package workflow_test

import (
	"testing"

	"github.com/eadminhq/eadmin_backend/models"
	"github.com/eadminhq/eadmin_backend/workflow"
)

func TestNotificationContent(t *testing.T) {
	cases := []struct {
		name   string
		action models.NotificationAction
		taskId int
		status models.ReportStatus
		want   string
	}{
		{"new report", models.ActionNewReport, 0, "", "A new report has just been submitted"},
		{"admin comment", models.ActionAdminComment, 0, "", "An administrator has commented on your report"},
		{"user comment", models.ActionUserComment, 0, "", "A user has just commented on a report"},
		{"status change", models.ActionStatusChange, 0, models.ReportStatusInProgress, "Your report status has been updated to InProgress"},
		{"new task", models.ActionNewTask, 7, "", "You have just been assigned a new task"},
		{"task status", models.ActionChangeStatusTask, 7, "", "Assignees just changed the status of the task with id 7"},
		{"cancel task", models.ActionCancelTask, 12, "", "Task with id 12 has just been canceled"},
		{"edit task", models.ActionEditTask, 3, "", "Task with id 3 has just been edited"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := workflow.NotificationContent(tc.action, tc.taskId, tc.status)
			if got != tc.want {
				t.Fatalf("NotificationContent(%s) = %q, want %q", tc.action, got, tc.want)
			}
		})
	}
}

func TestNotificationContentUnknownAction(t *testing.T) {
	if got := workflow.NotificationContent("Bogus", 0, ""); got != "" {
		t.Fatalf("unknown action produced content %q", got)
	}
}
