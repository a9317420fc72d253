package repositories

import (
	"insist-app/models"
	"insist-app/types"

	"gorm.io/gorm"
)

type ApprovalRepository struct {
	DB *gorm.DB
}

func NewApprovalRepository(DB *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{DB: DB}
}

// ListByMenu mengembalikan semua level approval sebuah menu, terurut
// ascending by level.
func (r *ApprovalRepository) ListByMenu(menuID uint) ([]models.Approval, error) {
	var approvals []models.Approval
	err := r.DB.Where("id_menu = ?", menuID).Order("level asc").Find(&approvals).Error
	return approvals, err
}

func (r *ApprovalRepository) GetByID(id types.SnowflakeID) (*models.Approval, error) {
	var approval models.Approval
	err := r.DB.First(&approval, "id = ?", int64(id)).Error
	return &approval, err
}

func (r *ApprovalRepository) Create(approval *models.Approval) error {
	return r.DB.Create(approval).Error
}

func (r *ApprovalRepository) Update(approval *models.Approval) error {
	return r.DB.Save(approval).Error
}

// Delete menghapus approval beserta record approval user-nya dalam satu
// transaksi.
func (r *ApprovalRepository) Delete(id types.SnowflakeID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("approval_id = ?", int64(id)).Delete(&models.ApprovalUser{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Approval{}, "id = ?", int64(id)).Error
	})
}

// LevelExists cek apakah sudah ada approval lain dengan level sama di
// menu yang sama. exceptID dipakai saat update supaya tidak bentrok
// dengan dirinya sendiri.
func (r *ApprovalRepository) LevelExists(menuID uint, level int, exceptID types.SnowflakeID) (bool, error) {
	var count int64
	q := r.DB.Model(&models.Approval{}).Where("id_menu = ? AND level = ?", menuID, level)
	if exceptID != 0 {
		q = q.Where("id <> ?", int64(exceptID))
	}
	err := q.Count(&count).Error
	return count > 0, err
}
