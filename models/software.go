package models

import (
	"context"
	"time"

	"github.com/eadminhq/eadmin_backend/config"
)

type Lab struct {
	ID     int    `gorm:"primary_key" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Status bool   `gorm:"not null;default:1" json:"status"`
}

type Software struct {
	ID            int        `gorm:"primary_key" json:"id"`
	LabId         *int       `gorm:"index" json:"lab_id"`
	Lab           *Lab       `gorm:"foreignKey:LabId" json:"lab,omitempty"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	Type          string     `gorm:"size:50" json:"type"`
	Description   string     `gorm:"type:text" json:"description"`
	LicenseExpire *time.Time `gorm:"index" json:"license_expire"`
	Status        bool       `gorm:"not null;default:1" json:"status"`
}

type Schedule struct {
	ID        int       `gorm:"primary_key" json:"id"`
	UserId    int       `gorm:"index;not null" json:"user_id"`
	Course    string    `gorm:"size:100" json:"course"`
	Lab       string    `gorm:"size:100;index" json:"lab"`
	Class     string    `gorm:"size:100" json:"class"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Email records each outbound license reminder so the sweep can throttle resends.
type Email struct {
	ID       int        `gorm:"primary_key" json:"id"`
	ToEmail  string     `gorm:"size:100;index;not null" json:"to_email"`
	Subject  string     `gorm:"size:255;index;not null" json:"subject"`
	Body     string     `gorm:"type:text" json:"body"`
	Status   string     `gorm:"size:20;not null" json:"status"`
	SentDate *time.Time `json:"sent_date"`
}

// GetExpiringSoftware lists software whose license runs out within the window.
func GetExpiringSoftware(ctx context.Context, within time.Duration) ([]*Software, error) {

	db := config.GetDB()
	deadline := time.Now().UTC().Add(within)

	var results []*Software
	err := db.WithContext(ctx).
		Where("license_expire IS NOT NULL AND license_expire <= ?", deadline).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// InstructorEmailsForSoftware resolves who should be warned about a license:
// software without a lab concerns every active instructor, software tied to a
// lab concerns instructors scheduled in that lab.
func InstructorEmailsForSoftware(ctx context.Context, software *Software) ([]string, error) {

	db := config.GetDB()

	if software.LabId == nil {
		users, err := GetUsersByRole(ctx, UserRoleInstructor)
		if err != nil {
			return nil, err
		}
		return collectEmails(users), nil
	}

	var lab Lab
	if err := db.WithContext(ctx).First(&lab, *software.LabId).Error; err != nil {
		return nil, nil
	}

	var userIds []int
	err := db.WithContext(ctx).Model(&Schedule{}).
		Where("lab = ?", lab.Name).
		Distinct().
		Pluck("user_id", &userIds).Error
	if err != nil {
		return nil, err
	}
	if len(userIds) == 0 {
		return nil, nil
	}

	var users []*User
	err = db.WithContext(ctx).
		Where("id IN ? AND role = ? AND is_active = ?", userIds, UserRoleInstructor, true).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return collectEmails(users), nil
}

func collectEmails(users []*User) []string {
	var emails []string
	for _, user := range users {
		if user.Email != nil && *user.Email != "" {
			emails = append(emails, *user.Email)
		}
	}
	return emails
}

// LastEmailSentWithin reports whether the address already got this subject
// inside the throttle window.
func LastEmailSentWithin(ctx context.Context, toEmail, subject string, window time.Duration) (bool, error) {

	db := config.GetDB()

	var last Email
	err := db.WithContext(ctx).
		Where("to_email = ? AND subject = ? AND status = ?", toEmail, subject, "sent").
		Order("sent_date DESC").
		First(&last).Error
	if err != nil {
		return false, nil
	}
	if last.SentDate == nil {
		return false, nil
	}
	return last.SentDate.After(time.Now().UTC().Add(-window)), nil
}

func RecordEmail(ctx context.Context, toEmail, subject, body string) error {

	db := config.GetDB()
	now := time.Now().UTC()
	return db.WithContext(ctx).Create(&Email{
		ToEmail:  toEmail,
		Subject:  subject,
		Body:     body,
		Status:   "sent",
		SentDate: &now,
	}).Error
}
