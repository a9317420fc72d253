package repositories

import (
	"insist-app/models"
	"insist-app/types"

	"gorm.io/gorm"
)

type ApprovalUserRepository struct {
	DB *gorm.DB
}

func NewApprovalUserRepository(DB *gorm.DB) *ApprovalUserRepository {
	return &ApprovalUserRepository{DB: DB}
}

// ListByApproval mengembalikan ID user yang ditugaskan di satu level approval
func (r *ApprovalUserRepository) ListByApproval(approvalID types.SnowflakeID) ([]uint, error) {
	var rows []models.ApprovalUser
	if err := r.DB.Where("approval_id = ?", int64(approvalID)).Find(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	return ids, nil
}

// CountByApproval jumlah user yang ditugaskan di satu level
func (r *ApprovalUserRepository) CountByApproval(approvalID types.SnowflakeID) (int64, error) {
	var count int64
	err := r.DB.Model(&models.ApprovalUser{}).Where("approval_id = ?", int64(approvalID)).Count(&count).Error
	return count, err
}

// Replace mengganti keanggotaan satu level dengan set reconciliation:
// yang hilang dari list baru dihapus, yang baru di-insert, sisanya tidak
// disentuh sama sekali. Semuanya dalam satu transaksi.
func (r *ApprovalUserRepository) Replace(approvalID types.SnowflakeID, userIDs []uint, createdBy int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var current []models.ApprovalUser
		if err := tx.Where("approval_id = ?", int64(approvalID)).Find(&current).Error; err != nil {
			return err
		}

		wanted := make(map[uint]bool, len(userIDs))
		for _, id := range userIDs {
			wanted[id] = true
		}
		existing := make(map[uint]bool, len(current))
		for _, row := range current {
			existing[row.UserID] = true
		}

		var toRemove []uint
		for _, row := range current {
			if !wanted[row.UserID] {
				toRemove = append(toRemove, row.UserID)
			}
		}
		if len(toRemove) > 0 {
			if err := tx.Unscoped().
				Where("approval_id = ? AND user_id IN ?", int64(approvalID), toRemove).
				Delete(&models.ApprovalUser{}).Error; err != nil {
				return err
			}
		}

		for _, id := range userIDs {
			if existing[id] {
				continue
			}
			row := models.ApprovalUser{
				ApprovalID: approvalID,
				UserID:     id,
				CreatedBy:  createdBy,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
