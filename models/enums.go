package models

import "errors"

// Roles are compared structurally everywhere; the raw claim string from a
// token is parsed exactly once, at the auth boundary.
type UserRole string

const (
	UserRoleAdmin      UserRole = "Admin"
	UserRoleInstructor UserRole = "Instructor"
	UserRoleStudent    UserRole = "Student"
)

func ParseUserRole(s string) (UserRole, error) {
	switch s {
	case "Admin":
		return UserRoleAdmin, nil
	case "Instructor":
		return UserRoleInstructor, nil
	case "Student":
		return UserRoleStudent, nil
	default:
		return "", errors.New("invalid user role")
	}
}

func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }

// ReportCategory is the fixed set of report titles.
type ReportCategory string

const (
	ReportCategoryEquipment      ReportCategory = "Equipment"
	ReportCategorySoftware       ReportCategory = "Software"
	ReportCategoryInfrastructure ReportCategory = "Infrastructure"
	ReportCategoryOther          ReportCategory = "Other"
)

func ParseReportCategory(s string) (ReportCategory, error) {
	switch s {
	case "Equipment":
		return ReportCategoryEquipment, nil
	case "Software":
		return ReportCategorySoftware, nil
	case "Infrastructure":
		return ReportCategoryInfrastructure, nil
	case "Other":
		return ReportCategoryOther, nil
	default:
		return "", errors.New("invalid report title")
	}
}

type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "Pending"
	ReportStatusInProgress ReportStatus = "InProgress"
	ReportStatusResolved   ReportStatus = "Resolved"
	ReportStatusRejected   ReportStatus = "Rejected"
)

func ParseReportStatus(s string) (ReportStatus, error) {
	switch s {
	case "Pending":
		return ReportStatusPending, nil
	case "InProgress":
		return ReportStatusInProgress, nil
	case "Resolved":
		return ReportStatusResolved, nil
	case "Rejected":
		return ReportStatusRejected, nil
	default:
		return "", errors.New("invalid report status")
	}
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusCanceled   TaskStatus = "Canceled"
)

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch s {
	case "Pending":
		return TaskStatusPending, nil
	case "InProgress":
		return TaskStatusInProgress, nil
	case "Completed":
		return TaskStatusCompleted, nil
	case "Canceled":
		return TaskStatusCanceled, nil
	default:
		return "", errors.New("invalid task status")
	}
}

// NextTaskStatus is the advance rule: Pending -> InProgress -> Completed.
// Every other state has no forward transition.
func NextTaskStatus(current TaskStatus) (TaskStatus, bool) {
	switch current {
	case TaskStatusPending:
		return TaskStatusInProgress, true
	case TaskStatusInProgress:
		return TaskStatusCompleted, true
	default:
		return current, false
	}
}

// NotificationAction tags which workflow event produced a notification.
type NotificationAction string

const (
	ActionNewReport        NotificationAction = "NewReport"
	ActionAdminComment     NotificationAction = "AdminComment"
	ActionUserComment      NotificationAction = "UserComment"
	ActionStatusChange     NotificationAction = "StatusChange"
	ActionNewTask          NotificationAction = "NewTask"
	ActionChangeStatusTask NotificationAction = "ChangeStatusTask"
	ActionCancelTask       NotificationAction = "CancelTask"
	ActionEditTask         NotificationAction = "EditTask"
)
