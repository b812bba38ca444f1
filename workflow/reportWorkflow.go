package workflow

import (
	"context"

	"github.com/eadminhq/eadmin_backend/models"
)

// Report mutations and their notification fan-out. Notifications are emitted
// only after the primary write has committed; a crash in between loses the
// notification, never the mutation.

func CreateReport(ctx context.Context, input *models.NewReport) (*models.Report, error) {

	report, err := models.CreateReport(ctx, input)
	if err != nil {
		return nil, err
	}

	reportId := report.ID
	content := NotificationContent(models.ActionNewReport, 0, "")
	notifyAdmins(ctx, report.SenderId, content, models.ActionNewReport, &reportId, nil)

	return report, nil
}

func UpdateReportStatus(ctx context.Context, callerId int, reportId int, status models.ReportStatus) (*models.Report, error) {

	report, changed, err := models.UpdateReportStatus(ctx, reportId, status)
	if err != nil {
		return nil, err
	}
	// Re-setting the current status is a no-op success and stays silent.
	if changed {
		id := report.ID
		content := NotificationContent(models.ActionStatusChange, 0, status)
		notify(ctx, callerId, report.SenderId, content, models.ActionStatusChange, &id, nil)
	}
	return report, nil
}

// AddComment persists the comment, then notifies by the commenter's role
// alone: administrators alert the report's sender, everyone else alerts the
// administrators — even when a sender comments on their own report.
func AddComment(ctx context.Context, callerRole models.UserRole, reportId int, input *models.NewComment) (*models.Comment, error) {

	report, err := models.GetReportById(ctx, reportId)
	if err != nil {
		return nil, err
	}

	comment, err := models.CreateComment(ctx, reportId, input)
	if err != nil {
		return nil, err
	}

	id := report.ID
	if callerRole.IsAdmin() {
		content := NotificationContent(models.ActionAdminComment, 0, "")
		notify(ctx, input.UserId, report.SenderId, content, models.ActionAdminComment, &id, nil)
	} else {
		content := NotificationContent(models.ActionUserComment, 0, "")
		notifyAdmins(ctx, input.UserId, content, models.ActionUserComment, &id, nil)
	}
	return comment, nil
}

func DeleteReport(ctx context.Context, id int) error {
	return models.DeleteReport(ctx, id)
}
