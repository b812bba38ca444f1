package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/utils"
)

type Task struct {
	ID          int        `gorm:"primary_key" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	AssigneesId *int       `gorm:"index" json:"assignees_id"`
	Assignees   *User      `gorm:"foreignKey:AssigneesId" json:"assignees,omitempty"`
	ReportId    *int       `gorm:"index" json:"report_id"`
	Status      TaskStatus `gorm:"type:enum('Pending', 'InProgress', 'Completed', 'Canceled');default:'Pending';index;size:20;not null" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	// The wire name keeps the misspelling the existing frontend depends on.
	ComplatedAt *time.Time `json:"complated_at"`
}

type NewTask struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	AssigneesId int    `json:"assigneesId"`
	ReportId    *int   `json:"reportId"`
}

// ValidateTaskFields reports every missing field at once, keyed the way the
// client expects.
func ValidateTaskFields(title, content string, assigneesId int) utils.FieldErrors {
	errors := utils.FieldErrors{}
	if strings.TrimSpace(title) == "" {
		errors["title"] = "Title is required"
	}
	if strings.TrimSpace(content) == "" {
		errors["content"] = "Content is required"
	}
	if assigneesId == 0 {
		errors["assigneesId"] = "Assignees is required"
	}
	if len(errors) == 0 {
		return nil
	}
	return errors
}

func CreateTask(ctx context.Context, input *NewTask) (*Task, error) {

	db := config.GetDB()

	if fieldErrs := ValidateTaskFields(input.Title, input.Content, input.AssigneesId); fieldErrs != nil {
		return nil, fieldErrs
	}

	assigneesId := input.AssigneesId
	task := Task{
		Title:       input.Title,
		Content:     input.Content,
		AssigneesId: &assigneesId,
		ReportId:    input.ReportId,
		Status:      TaskStatusPending,
	}
	if err := db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	task.Assignees, _ = GetUserById(ctx, assigneesId)
	return &task, nil
}

func GetTaskById(ctx context.Context, id int) (*Task, error) {
	return utils.FetchSingleModel[Task](ctx, id, "Assignees")
}

type TaskFilter struct {
	// Zero means unscoped (administrators); otherwise only tasks assigned to
	// this user are visible.
	AssigneesId int
	Status      *TaskStatus
	SearchValue string
	Page        int
}

// ListTasks returns one page of tasks plus the derived page count. When no
// explicit status is requested, canceled tasks are excluded from the default
// view.
func ListTasks(ctx context.Context, filter *TaskFilter) ([]*Task, int, error) {

	db := config.GetDB()

	dbCtx := db.WithContext(ctx).Model(&Task{})
	if filter.AssigneesId > 0 {
		dbCtx = dbCtx.Where("assignees_id = ?", filter.AssigneesId)
	}
	if filter.Status != nil {
		dbCtx = dbCtx.Where("status = ?", *filter.Status)
	} else {
		dbCtx = dbCtx.Where("status <> ?", TaskStatusCanceled)
	}
	if search := strings.TrimSpace(filter.SearchValue); search != "" {
		dbCtx = dbCtx.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var totalCount int64
	if err := dbCtx.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	page := utils.NormalizePage(filter.Page)
	var results []*Task
	err := dbCtx.Preload("Assignees").
		Order("created_at DESC").
		Offset((page - 1) * config.SearchLimit).
		Limit(config.SearchLimit).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, utils.TotalPages(totalCount, config.SearchLimit), nil
}

// AdvanceTaskStatus moves a task one step forward. Completing stamps the
// completion time; any state outside Pending/InProgress fails.
func AdvanceTaskStatus(ctx context.Context, id int) (*Task, error) {

	db := config.GetDB()

	task, err := utils.FetchSingleModel[Task](ctx, id, "Assignees")
	if err != nil {
		return nil, err
	}

	next, ok := NextTaskStatus(task.Status)
	if !ok {
		return nil, errors.New("failed to change task status")
	}

	task.Status = next
	if next == TaskStatusCompleted {
		now := time.Now().UTC()
		task.ComplatedAt = &now
	}
	if err := db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// CancelTask sets the status to Canceled regardless of the current state.
func CancelTask(ctx context.Context, id int) (*Task, error) {

	db := config.GetDB()

	task, err := utils.FetchSingleModel[Task](ctx, id, "Assignees")
	if err != nil {
		return nil, err
	}

	task.Status = TaskStatusCanceled
	if err := db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

type EditTask struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AssigneesId int    `json:"assigneesId"`
}

// UpdateTask overwrites title, content and assignee unconditionally.
func UpdateTask(ctx context.Context, input *EditTask) (*Task, error) {

	db := config.GetDB()

	if fieldErrs := ValidateTaskFields(input.Title, input.Content, input.AssigneesId); fieldErrs != nil {
		return nil, fieldErrs
	}

	task, err := utils.FetchSingleModel[Task](ctx, input.ID)
	if err != nil {
		return nil, err
	}

	assigneesId := input.AssigneesId
	task.Title = input.Title
	task.Content = input.Content
	task.AssigneesId = &assigneesId
	if err := db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, err
	}
	task.Assignees, _ = GetUserById(ctx, assigneesId)
	return task, nil
}
