package services

import (
	"errors"
	"fmt"

	"insist-app/models"
	"insist-app/repositories"
	"insist-app/types"

	"gorm.io/gorm"
)

// ApprovalService menjaga aturan konfigurasi rantai approval: level dan
// count wajib positif, level unik per menu, dan count tidak boleh
// melebihi jumlah user yang ditugaskan.
type ApprovalService struct {
	approvalRepo *repositories.ApprovalRepository
	userRepo     *repositories.ApprovalUserRepository
	menuRepo     *repositories.MenuRepository
}

func NewApprovalService(
	approvalRepo *repositories.ApprovalRepository,
	userRepo *repositories.ApprovalUserRepository,
	menuRepo *repositories.MenuRepository,
) *ApprovalService {
	return &ApprovalService{
		approvalRepo: approvalRepo,
		userRepo:     userRepo,
		menuRepo:     menuRepo,
	}
}

// ApprovalInput payload create/update approval
type ApprovalInput struct {
	IDMenu uint   `json:"id_menu" validate:"required"`
	Status string `json:"status" validate:"required"`
	Action string `json:"action" validate:"required"`
	Level  int    `json:"level" validate:"required,gt=0"`
	Count  int    `json:"count" validate:"required,gt=0"`
}

func (s *ApprovalService) ListByMenu(menuID uint) ([]models.Approval, error) {
	return s.approvalRepo.ListByMenu(menuID)
}

func (s *ApprovalService) Create(input ApprovalInput, userID int) (*models.Approval, error) {
	if _, err := s.menuRepo.GetByID(input.IDMenu); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("menu not found")
		}
		return nil, err
	}

	exists, err := s.approvalRepo.LevelExists(input.IDMenu, input.Level, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ConflictError(fmt.Sprintf("level %d already exists for this menu", input.Level))
	}

	approval := models.Approval{
		IDMenu:    input.IDMenu,
		Status:    input.Status,
		Action:    input.Action,
		Level:     input.Level,
		Count:     input.Count,
		CreatedBy: userID,
	}

	if err := s.approvalRepo.Create(&approval); err != nil {
		return nil, err
	}
	return &approval, nil
}

// ApprovalUpdateInput partial update; field nil tidak diubah
type ApprovalUpdateInput struct {
	Status *string `json:"status"`
	Action *string `json:"action"`
	Level  *int    `json:"level"`
	Count  *int    `json:"count"`
}

func (s *ApprovalService) Update(id types.SnowflakeID, input ApprovalUpdateInput, userID int) (*models.Approval, error) {
	approval, err := s.approvalRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("approval not found")
		}
		return nil, err
	}

	if input.Status != nil {
		approval.Status = *input.Status
	}
	if input.Action != nil {
		approval.Action = *input.Action
	}
	if input.Level != nil {
		if *input.Level <= 0 {
			return nil, ValidationError("level must be greater than zero")
		}
		exists, err := s.approvalRepo.LevelExists(approval.IDMenu, *input.Level, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ConflictError(fmt.Sprintf("level %d already exists for this menu", *input.Level))
		}
		approval.Level = *input.Level
	}
	if input.Count != nil {
		if *input.Count <= 0 {
			return nil, ValidationError("count must be greater than zero")
		}
		// count tidak boleh melebihi jumlah user yang sudah ditugaskan
		assigned, err := s.userRepo.CountByApproval(id)
		if err != nil {
			return nil, err
		}
		if assigned > 0 && int64(*input.Count) > assigned {
			return nil, ValidationError(
				fmt.Sprintf("count %d exceeds the %d assigned approvers", *input.Count, assigned))
		}
		approval.Count = *input.Count
	}

	approval.UpdatedBy = userID
	if err := s.approvalRepo.Update(approval); err != nil {
		return nil, err
	}
	return approval, nil
}

// Delete menghapus approval berikut assignment user-nya
func (s *ApprovalService) Delete(id types.SnowflakeID) error {
	if _, err := s.approvalRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("approval not found")
		}
		return err
	}
	return s.approvalRepo.Delete(id)
}

func (s *ApprovalService) ListUsers(approvalID types.SnowflakeID) ([]uint, error) {
	if _, err := s.approvalRepo.GetByID(approvalID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("approval not found")
		}
		return nil, err
	}
	return s.userRepo.ListByApproval(approvalID)
}

// ReplaceUsers mengganti set approver satu level. Kalau list baru lebih
// kecil dari count approval, konfigurasinya tidak akan pernah bisa
// terpenuhi, jadi ditolak sebagai validation error.
func (s *ApprovalService) ReplaceUsers(approvalID types.SnowflakeID, userIDs []uint, createdBy int) error {
	approval, err := s.approvalRepo.GetByID(approvalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("approval not found")
		}
		return err
	}

	// buang duplikat, pertahankan urutan
	seen := make(map[uint]bool, len(userIDs))
	unique := make([]uint, 0, len(userIDs))
	for _, id := range userIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	if len(unique) > 0 && len(unique) < approval.Count {
		return ValidationError(
			fmt.Sprintf("approval requires %d approvers, only %d assigned", approval.Count, len(unique)))
	}

	return s.userRepo.Replace(approvalID, unique, createdBy)
}
