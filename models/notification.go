package models

import (
	"context"
	"strconv"
	"time"

	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/utils"
)

// The unread counter is shown on every page load, so it is cached in redis
// and invalidated by the two writes that can change it.
const unreadCountCacheKey = "notifications:unread-count"

// Notification is append-only: rows are created as a side effect of report
// and task mutations, flipped to viewed by mark-as-read, and never deleted.
type Notification struct {
	ID         int                `gorm:"primary_key" json:"id"`
	Content    string             `gorm:"size:255;not null" json:"content"`
	SenderId   int                `gorm:"index;not null" json:"sender_id"`
	ReceiverId int                `gorm:"index;not null" json:"receiver_id"`
	ReportId   *int               `gorm:"index" json:"report_id"`
	TaskId     *int               `gorm:"index" json:"task_id"`
	ActionType NotificationAction `gorm:"size:30;index;not null" json:"action_type"`
	Viewed     bool               `gorm:"not null;default:0" json:"viewed"`
	CreatedAt  time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

func CreateNotification(ctx context.Context, notification *Notification) error {
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(notification).Error; err != nil {
		return err
	}
	_ = config.RemoveRedisKey(unreadCountCacheKey)
	return nil
}

// ListNotifications returns the receiver's notifications newest-first plus
// the count of unread notifications. The unread counter is system-wide, not
// scoped to the receiver; the client UI was built against that behavior.
func ListNotifications(ctx context.Context, receiverId int) ([]*Notification, int64, error) {

	db := config.GetDB()

	var results []*Notification
	err := db.WithContext(ctx).
		Where("receiver_id = ?", receiverId).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}

	unreadCount, err := globalUnreadCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return results, unreadCount, nil
}

func globalUnreadCount(ctx context.Context) (int64, error) {
	if cached, ok, err := config.GetRedisValue(unreadCountCacheKey); err == nil && ok {
		if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return n, nil
		}
	}

	db := config.GetDB()
	var unreadCount int64
	err := db.WithContext(ctx).Model(&Notification{}).
		Where("viewed = ?", false).
		Count(&unreadCount).Error
	if err != nil {
		return 0, err
	}
	_ = config.SetRedisValue(unreadCountCacheKey, strconv.FormatInt(unreadCount, 10), time.Minute)
	return unreadCount, nil
}

// MarkNotificationAsRead flips the viewed flag. There is no ownership check;
// the id is enough.
func MarkNotificationAsRead(ctx context.Context, id int) (*Notification, error) {

	db := config.GetDB()

	notification, err := utils.FetchSingleModel[Notification](ctx, id)
	if err != nil {
		return nil, err
	}
	notification.Viewed = true
	if err := db.WithContext(ctx).Save(notification).Error; err != nil {
		return nil, err
	}
	_ = config.RemoveRedisKey(unreadCountCacheKey)
	return notification, nil
}
