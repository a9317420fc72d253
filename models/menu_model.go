package models

import "gorm.io/gorm"

// Menu adalah katalog resource yang bisa dinavigasi, berbentuk tree
// lewat ParentID (self-referencing).
type Menu struct {
	gorm.Model
	Name      string `json:"name"`
	Path      string `json:"path"`
	Icon      string `json:"icon"`
	MenuOrder int    `json:"menu_order" gorm:"column:menu_order"`
	ParentID  *uint  `json:"parent_id"`
	Parent    *Menu  `json:"-" gorm:"foreignKey:ParentID"`
	Children  []Menu `json:"children" gorm:"foreignKey:ParentID"`
	CreatedBy int    `json:"-"`
	UpdatedBy int    `json:"-"`
	DeletedBy int    `json:"-"`
}
