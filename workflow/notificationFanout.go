package workflow

import (
	"context"
	"fmt"

	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/models"
)

// Notification content per action type. The strings are part of the client
// contract; change them only together with the frontend.
func NotificationContent(action models.NotificationAction, taskId int, status models.ReportStatus) string {
	switch action {
	case models.ActionNewReport:
		return "A new report has just been submitted"
	case models.ActionAdminComment:
		return "An administrator has commented on your report"
	case models.ActionUserComment:
		return "A user has just commented on a report"
	case models.ActionStatusChange:
		return fmt.Sprintf("Your report status has been updated to %s", status)
	case models.ActionNewTask:
		return "You have just been assigned a new task"
	case models.ActionChangeStatusTask:
		return fmt.Sprintf("Assignees just changed the status of the task with id %d", taskId)
	case models.ActionCancelTask:
		return fmt.Sprintf("Task with id %d has just been canceled", taskId)
	case models.ActionEditTask:
		return fmt.Sprintf("Task with id %d has just been edited", taskId)
	default:
		return ""
	}
}

// notify appends one notification row. Best-effort: the primary mutation has
// already committed when this runs, so failures are logged and swallowed
// rather than failing the request.
func notify(ctx context.Context, senderId, receiverId int, content string, action models.NotificationAction, reportId, taskId *int) {
	err := models.CreateNotification(ctx, &models.Notification{
		Content:    content,
		SenderId:   senderId,
		ReceiverId: receiverId,
		ReportId:   reportId,
		TaskId:     taskId,
		ActionType: action,
	})
	if err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "notificationFanout.go", "notify", string(action), receiverId, err)
	}
}

// notifyAdmins fans one notification out to every active administrator.
func notifyAdmins(ctx context.Context, senderId int, content string, action models.NotificationAction, reportId, taskId *int) {
	admins, err := models.GetUsersByRole(ctx, models.UserRoleAdmin)
	if err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "notificationFanout.go", "notifyAdmins", string(action), nil, err)
		return
	}
	for _, admin := range admins {
		notify(ctx, senderId, admin.ID, content, action, reportId, taskId)
	}
}
