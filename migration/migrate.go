package migration

import (
	"insist-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserSession{},
		&models.Menu{},
		&models.RolePermission{},
		&models.Approval{},
		&models.ApprovalUser{},
	)
}
