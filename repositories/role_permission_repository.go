package repositories

import (
	"errors"

	"insist-app/models"

	"gorm.io/gorm"
)

type RolePermissionRepository struct {
	DB *gorm.DB
}

func NewRolePermissionRepository(DB *gorm.DB) *RolePermissionRepository {
	return &RolePermissionRepository{DB: DB}
}

// PermissionFlags nilai tiga flag untuk satu pasangan (role, menu).
// Pointer supaya partial update bisa bedakan "tidak dikirim" dan "false".
type PermissionFlags struct {
	IsCreate *bool `json:"is_create"`
	IsUpdate *bool `json:"is_update"`
	IsDelete *bool `json:"is_delete"`
}

// MenuPermissionNode node menu yang sudah dianotasi flag permission
type MenuPermissionNode struct {
	ID        uint                 `json:"id"`
	Name      string               `json:"name"`
	Path      string               `json:"path"`
	Icon      string               `json:"icon"`
	MenuOrder int                  `json:"menu_order"`
	ParentID  *uint                `json:"parent_id"`
	IsCreate  bool                 `json:"is_create"`
	IsUpdate  bool                 `json:"is_update"`
	IsDelete  bool                 `json:"is_delete"`
	Children  []MenuPermissionNode `json:"children"`
}

// GetByRole mengembalikan forest menu beranotasi flag permission role
// tersebut. Menu tanpa record dianggap false semua (default deny).
func (r *RolePermissionRepository) GetByRole(roleID uint, tree *MenuTree) ([]MenuPermissionNode, error) {
	var perms []models.RolePermission
	if err := r.DB.Where("role_id = ?", roleID).Find(&perms).Error; err != nil {
		return nil, err
	}

	byMenu := make(map[uint]models.RolePermission, len(perms))
	for _, p := range perms {
		byMenu[p.MenuID] = p
	}

	var annotate func(menus []models.Menu) []MenuPermissionNode
	annotate = func(menus []models.Menu) []MenuPermissionNode {
		nodes := make([]MenuPermissionNode, 0, len(menus))
		for _, m := range menus {
			p := byMenu[m.ID] // zero value kalau tidak ada record
			nodes = append(nodes, MenuPermissionNode{
				ID:        m.ID,
				Name:      m.Name,
				Path:      m.Path,
				Icon:      m.Icon,
				MenuOrder: m.MenuOrder,
				ParentID:  m.ParentID,
				IsCreate:  p.IsCreate,
				IsUpdate:  p.IsUpdate,
				IsDelete:  p.IsDelete,
				Children:  annotate(m.Children),
			})
		}
		return nodes
	}

	return annotate(tree.Roots), nil
}

// GrantedMenuIDs mengembalikan ID menu yang minimal punya satu flag aktif
func (r *RolePermissionRepository) GrantedMenuIDs(roleID uint) ([]uint, error) {
	var perms []models.RolePermission
	if err := r.DB.Where("role_id = ?", roleID).Find(&perms).Error; err != nil {
		return nil, err
	}

	var ids []uint
	for _, p := range perms {
		if p.IsCreate || p.IsUpdate || p.IsDelete {
			ids = append(ids, p.MenuID)
		}
	}
	return ids, nil
}

// GrantedMenuIDsByCapability memisahkan granted set per flag, supaya
// state centang tiap capability bisa dihitung sendiri-sendiri.
func (r *RolePermissionRepository) GrantedMenuIDsByCapability(roleID uint) (map[string][]uint, error) {
	var perms []models.RolePermission
	if err := r.DB.Where("role_id = ?", roleID).Find(&perms).Error; err != nil {
		return nil, err
	}

	byCap := map[string][]uint{
		"is_create": {},
		"is_update": {},
		"is_delete": {},
	}
	for _, p := range perms {
		if p.IsCreate {
			byCap["is_create"] = append(byCap["is_create"], p.MenuID)
		}
		if p.IsUpdate {
			byCap["is_update"] = append(byCap["is_update"], p.MenuID)
		}
		if p.IsDelete {
			byCap["is_delete"] = append(byCap["is_delete"], p.MenuID)
		}
	}
	return byCap, nil
}

// Set upsert tepat satu pasangan (role, menu). Record dibuat kalau belum
// ada, diupdate in place kalau sudah. Record dengan semua flag false
// tetap disimpan, tidak dihapus.
func (r *RolePermissionRepository) Set(roleID, menuID uint, flags PermissionFlags, userID int) (*models.RolePermission, error) {
	var perm models.RolePermission

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("role_id = ? AND menu_id = ?", roleID, menuID).First(&perm).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			perm = models.RolePermission{
				RoleID:    roleID,
				MenuID:    menuID,
				CreatedBy: userID,
			}
		}

		if flags.IsCreate != nil {
			perm.IsCreate = *flags.IsCreate
		}
		if flags.IsUpdate != nil {
			perm.IsUpdate = *flags.IsUpdate
		}
		if flags.IsDelete != nil {
			perm.IsDelete = *flags.IsDelete
		}
		perm.UpdatedBy = userID

		return tx.Save(&perm).Error
	})

	return &perm, err
}
