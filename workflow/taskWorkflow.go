package workflow

import (
	"context"

	"github.com/eadminhq/eadmin_backend/models"
	"github.com/eadminhq/eadmin_backend/utils"
)

// Task mutations, their role rules, and the notification fan-out.

func CreateTask(ctx context.Context, callerId int, callerRole models.UserRole, input *models.NewTask) (*models.Task, error) {

	if !callerRole.IsAdmin() {
		return nil, utils.ErrorUnauthorized
	}

	task, err := models.CreateTask(ctx, input)
	if err != nil {
		return nil, err
	}

	taskId := task.ID
	content := NotificationContent(models.ActionNewTask, taskId, "")
	notify(ctx, callerId, input.AssigneesId, content, models.ActionNewTask, input.ReportId, &taskId)

	return task, nil
}

// GetTask enforces visibility: non-administrators may only fetch tasks they
// are assigned to. The task existing but belonging to someone else is an
// authorization failure, not a missing record.
func GetTask(ctx context.Context, callerId int, callerRole models.UserRole, taskId int) (*models.Task, error) {

	task, err := models.GetTaskById(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if !CanViewTask(callerId, callerRole, task) {
		return nil, utils.ErrorUnauthorized
	}
	return task, nil
}

func CanViewTask(callerId int, callerRole models.UserRole, task *models.Task) bool {
	if callerRole.IsAdmin() {
		return true
	}
	return task.AssigneesId != nil && *task.AssigneesId == callerId
}

func ListTasks(ctx context.Context, callerId int, callerRole models.UserRole, filter *models.TaskFilter) ([]*models.Task, int, error) {

	if !callerRole.IsAdmin() {
		filter.AssigneesId = callerId
	}
	return models.ListTasks(ctx, filter)
}

// AdvanceTask moves the task one step forward and tells the administrators.
func AdvanceTask(ctx context.Context, callerId int, callerRole models.UserRole, taskId int) (*models.Task, error) {

	if _, err := models.GetUserById(ctx, callerId); err != nil {
		return nil, err
	}
	task, err := models.GetTaskById(ctx, taskId)
	if err != nil {
		return nil, err
	}
	if !callerRole.IsAdmin() {
		if task.AssigneesId == nil || *task.AssigneesId != callerId {
			return nil, utils.ErrorUnauthorized
		}
	}

	task, err = models.AdvanceTaskStatus(ctx, taskId)
	if err != nil {
		return nil, err
	}

	id := task.ID
	content := NotificationContent(models.ActionChangeStatusTask, id, "")
	notifyAdmins(ctx, callerId, content, models.ActionChangeStatusTask, task.ReportId, &id)

	return task, nil
}

// CancelTask is administrator-only and ignores the current status.
func CancelTask(ctx context.Context, callerId int, callerRole models.UserRole, taskId int) (*models.Task, error) {

	if !callerRole.IsAdmin() {
		return nil, utils.ErrorUnauthorized
	}

	task, err := models.CancelTask(ctx, taskId)
	if err != nil {
		return nil, err
	}

	if task.AssigneesId != nil {
		id := task.ID
		content := NotificationContent(models.ActionCancelTask, id, "")
		notify(ctx, callerId, *task.AssigneesId, content, models.ActionCancelTask, task.ReportId, &id)
	}
	return task, nil
}

// EditTask is administrator-only; the (possibly new) assignee is told.
func EditTask(ctx context.Context, callerId int, callerRole models.UserRole, input *models.EditTask) (*models.Task, error) {

	if !callerRole.IsAdmin() {
		return nil, utils.ErrorUnauthorized
	}

	task, err := models.UpdateTask(ctx, input)
	if err != nil {
		return nil, err
	}

	id := task.ID
	content := NotificationContent(models.ActionEditTask, id, "")
	notify(ctx, callerId, input.AssigneesId, content, models.ActionEditTask, task.ReportId, &id)

	return task, nil
}
