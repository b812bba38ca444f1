package models

import (
	"context"
	"time"

	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/utils"
)

// Comment rows are immutable once written and disappear only when their
// report is deleted. The user reference is deliberately not a cascade.
type Comment struct {
	ID        int       `gorm:"primary_key" json:"id"`
	ReportId  int       `gorm:"index;not null" json:"report_id"`
	UserId    int       `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserId;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewComment struct {
	UserId  int    `json:"userId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func CreateComment(ctx context.Context, reportId int, input *NewComment) (*Comment, error) {

	db := config.GetDB()

	if err := utils.ValidateResourceId[User](ctx, input.UserId); err != nil {
		return nil, err
	}
	if err := utils.ValidateResourceId[Report](ctx, reportId); err != nil {
		return nil, err
	}

	comment := Comment{
		ReportId: reportId,
		UserId:   input.UserId,
		Content:  input.Content,
	}
	if err := db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.User, _ = GetUserById(ctx, comment.UserId)
	return &comment, nil
}
