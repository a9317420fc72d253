package models

import "gorm.io/gorm"

// RolePermission menyimpan flag akses per pasangan (role, menu).
// Tidak ada record berarti semua flag false (default deny).
type RolePermission struct {
	gorm.Model
	RoleID    uint `json:"role_id" gorm:"uniqueIndex:idx_role_menu"`
	MenuID    uint `json:"menu_id" gorm:"uniqueIndex:idx_role_menu"`
	IsCreate  bool `json:"is_create"`
	IsUpdate  bool `json:"is_update"`
	IsDelete  bool `json:"is_delete"`
	CreatedBy int  `json:"-"`
	UpdatedBy int  `json:"-"`
}
