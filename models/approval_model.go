package models

import (
	"time"

	"insist-app/controllers/idgen"
	"insist-app/types"

	"gorm.io/gorm"
)

// Approval adalah satu level dalam rantai persetujuan sebuah menu.
// Level menentukan urutan, Count jumlah minimum approver yang harus
// menyetujui di level tersebut.
type Approval struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey"`
	IDMenu    uint              `json:"id_menu" gorm:"column:id_menu;index"`
	Status    string            `json:"status"`
	Action    string            `json:"action"`
	Level     int               `json:"level"`
	Count     int               `json:"count"`
	CreatedAt time.Time         `json:"created_at"`
	CreatedBy int               `json:"-"`
	UpdatedAt time.Time         `json:"updated_at"`
	UpdatedBy int               `json:"-"`
	DeletedAt gorm.DeletedAt    `json:"-"`
	DeletedBy int               `json:"-"`
}

func (a *Approval) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == 0 {
		a.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}

// ApprovalUser adalah record keanggotaan: user yang boleh bertindak
// pada satu level approval.
type ApprovalUser struct {
	gorm.Model
	ApprovalID types.SnowflakeID `json:"id_approval" gorm:"column:approval_id;uniqueIndex:idx_approval_user"`
	UserID     uint              `json:"id_user" gorm:"column:user_id;uniqueIndex:idx_approval_user"`
	CreatedBy  int               `json:"-"`
}
