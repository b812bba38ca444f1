// seed-admin creates or updates the bootstrap administrator account so a
// fresh deployment has at least one user able to assign tasks and manage
// reports.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
//
// ADMIN_USERNAME / ADMIN_PASSWORD / ADMIN_FULL_NAME override the defaults.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/eadminhq/eadmin_backend/config"
	"github.com/eadminhq/eadmin_backend/models"
	"github.com/eadminhq/eadmin_backend/utils"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "eAdmin@2024"
	defaultAdminFullName = "System Administrator"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	username := envOr("ADMIN_USERNAME", defaultAdminUsername)
	password := envOr("ADMIN_PASSWORD", defaultAdminPassword)
	fullName := envOr("ADMIN_FULL_NAME", defaultAdminFullName)

	models.MigrateTable()

	var existing models.User
	err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		input := models.NewUser{
			Username: username,
			FullName: fullName,
			Password: password,
			Role:     models.UserRoleAdmin,
		}
		if _, err := models.CreateUser(ctx, &input); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: username=%q\n", username)
		return
	}

	// Re-seeding an existing admin resets the password and reactivates the
	// account.
	hashed, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Updates(map[string]any{
		"password":  string(hashed),
		"full_name": fullName,
		"is_active": true,
		"role":      models.UserRoleAdmin,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated admin user: username=%q\n", username)
}
