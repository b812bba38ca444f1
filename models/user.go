package models

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/utils"
	"github.com/go-sql-driver/mysql"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	FullName  string    `gorm:"size:100;not null" json:"full_name"`
	Email     *string   `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"size:255" json:"address"`
	Avatar    string    `json:"avatar"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('Admin', 'Instructor', 'Student');default:'Student';index;size:20;not null" json:"role"`
	IsActive  *bool     `gorm:"not null;default:1" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username string   `json:"username" binding:"required"`
	FullName string   `json:"full_name" binding:"required"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role"`
}

const mysqlDuplicateEntry = 1062

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {

	db := config.GetDB()

	input.Username = html.EscapeString(strings.TrimSpace(input.Username))
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, errors.New("invalid phone number")
		}
	}
	if _, err := ParseUserRole(string(input.Role)); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	active := true
	user := User{
		Username: input.Username,
		FullName: input.FullName,
		Phone:    input.Phone,
		Address:  input.Address,
		Password: string(hashed),
		Role:     input.Role,
		IsActive: &active,
	}
	if input.Email != "" {
		email := strings.ToLower(input.Email)
		user.Email = &email
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, errors.New("username already taken")
		}
		return nil, err
	}
	return &user, nil
}

func GetUserById(ctx context.Context, id int) (*User, error) {
	return utils.FetchSingleModel[User](ctx, id)
}

// GetUsersByRole lists active users holding the given role. Fan-out to
// administrators goes through this.
func GetUsersByRole(ctx context.Context, role UserRole) ([]*User, error) {

	db := config.GetDB()
	var results []*User
	err := db.WithContext(ctx).
		Where("role = ? AND is_active = ?", role, true).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
