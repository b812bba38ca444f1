package models

import (
	"log"

	"github.com/eadminhq/eadmin_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Report{}, &Comment{},
		&Task{},
		&Notification{},
		&Lab{}, &Software{}, &Schedule{}, &Email{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
