package models

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Report struct {
	ID        int            `gorm:"primary_key" json:"id"`
	Title     ReportCategory `gorm:"type:enum('Equipment', 'Software', 'Infrastructure', 'Other');index;size:20;not null" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	Status    ReportStatus   `gorm:"type:enum('Pending', 'InProgress', 'Resolved', 'Rejected');default:'Pending';index;size:20;not null" json:"status"`
	Images    []string       `gorm:"serializer:json" json:"images"`
	SenderId  int            `gorm:"index;not null" json:"sender_id"`
	Sender    *User          `gorm:"foreignKey:SenderId" json:"sender,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"last_updated"`

	Comments []*Comment `gorm:"foreignKey:ReportId" json:"comments,omitempty"`
	Tasks    []*Task    `gorm:"foreignKey:ReportId" json:"tasks,omitempty"`
}

type NewReport struct {
	Title    string
	Content  string
	SenderId int
	Images   []*multipart.FileHeader
}

// CreateReport validates the sender and title, stores each image with the
// blob-storage collaborator, and persists the report with the returned object
// references. Content may be empty.
func CreateReport(ctx context.Context, input *NewReport) (*Report, error) {

	db := config.GetDB()

	if _, err := GetUserById(ctx, input.SenderId); err != nil {
		return nil, utils.FieldErrors{"senderId": "Invalid SenderId"}
	}
	title, err := ParseReportCategory(input.Title)
	if err != nil {
		return nil, utils.FieldErrors{"title": "Invalid ReportTitle"}
	}

	var references []string
	for _, image := range input.Images {
		ref, err := storeReportImage(ctx, image)
		if err != nil {
			return nil, err
		}
		references = append(references, ref)
	}

	report := Report{
		Title:    title,
		Content:  input.Content,
		Status:   ReportStatusPending,
		Images:   references,
		SenderId: input.SenderId,
	}
	if err := db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}
	report.Sender, _ = GetUserById(ctx, report.SenderId)
	return &report, nil
}

func storeReportImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	src, err := image.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(image.Filename)
	key := uuid.New().String()
	objectKey := "reports/" + key + ext
	if err := utils.StoreImageObject(ctx, objectKey, data); err != nil {
		return "", err
	}

	// The thumbnail is a nicety for the report list view; a failure here must
	// not lose the report itself.
	if thumb, err := generateThumbnail(data); err == nil {
		thumbKey := "reports/thumb_" + key + ".jpg"
		if err := utils.StoreBytesObject(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
			config.LogError(config.GetLogger(), "report.go", "storeReportImage", "store thumbnail", thumbKey, err)
		}
	} else {
		config.LogError(config.GetLogger(), "report.go", "storeReportImage", "generate thumbnail", objectKey, err)
	}
	return objectKey, nil
}

func generateThumbnail(originalData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(originalData))
	if err != nil {
		return nil, err
	}

	thumbnail := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func GetReportById(ctx context.Context, id int) (*Report, error) {
	return utils.FetchSingleModel[Report](ctx, id, "Sender", "Comments", "Comments.User", "Tasks")
}

type ReportFilter struct {
	SenderId int
	Category *ReportCategory
	Status   *ReportStatus
	Page     int
	PageSize int
}

// ListReports returns one page of reports plus the unpaged total. SenderId 0
// means "all senders" (the admin-only view).
func ListReports(ctx context.Context, filter *ReportFilter) ([]*Report, int64, error) {

	db := config.GetDB()

	dbCtx := db.WithContext(ctx).Model(&Report{})
	if filter.SenderId > 0 {
		dbCtx = dbCtx.Where("sender_id = ?", filter.SenderId)
	}
	if filter.Category != nil {
		dbCtx = dbCtx.Where("title = ?", *filter.Category)
	}
	if filter.Status != nil {
		dbCtx = dbCtx.Where("status = ?", *filter.Status)
	}

	var totalCount int64
	if err := dbCtx.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = config.SearchLimit
	}
	page := utils.NormalizePage(filter.Page)

	var results []*Report
	err := dbCtx.Preload("Sender").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, totalCount, nil
}

// UpdateReportStatus sets the new status and bumps the update timestamp.
// Setting the current status again is a no-op success; changed reports false
// so the caller can skip the notification.
func UpdateReportStatus(ctx context.Context, id int, status ReportStatus) (*Report, bool, error) {

	db := config.GetDB()

	report, err := utils.FetchSingleModel[Report](ctx, id)
	if err != nil {
		return nil, false, err
	}
	if report.Status == status {
		return report, false, nil
	}

	report.Status = status
	report.UpdatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Save(report).Error; err != nil {
		return nil, false, err
	}
	return report, true, nil
}

// DeleteReport removes the report and its comments, clears the weak report
// reference on dependent tasks, and best-effort deletes stored images.
// Notifications that point at the report are kept.
func DeleteReport(ctx context.Context, id int) error {

	db := config.GetDB()

	report, err := utils.FetchSingleModel[Report](ctx, id)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Task{}).Where("report_id = ?", id).
			Update("report_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Report{}, id).Error
	})
	if err != nil {
		return err
	}

	logger := config.GetLogger()
	for _, objectKey := range report.Images {
		if err := utils.RemoveObject(ctx, objectKey); err != nil {
			config.LogError(logger, "report.go", "DeleteReport", "RemoveObject", objectKey, err)
		}
		if err := utils.RemoveObject(ctx, thumbnailKey(objectKey)); err != nil {
			config.LogError(logger, "report.go", "DeleteReport", "RemoveObject", thumbnailKey(objectKey), err)
		}
	}
	return nil
}

// thumbnailKey derives the thumbnail object key from an original image key,
// e.g. "reports/abc.png" -> "reports/thumb_abc.jpg".
func thumbnailKey(objectKey string) string {
	dir, file := filepath.Split(objectKey)
	base := file[:len(file)-len(filepath.Ext(file))]
	return dir + "thumb_" + base + ".jpg"
}
