package database

import (
	"gorm.io/gorm"

	"github.com/ivoicehq/ivoice-server/internal/models"
)

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
	)
}
