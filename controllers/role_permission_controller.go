package controllers

import (
	"errors"

	"insist-app/models"
	"insist-app/repositories"
	"insist-app/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RolePermissionController struct {
	DB       *gorm.DB
	repo     *repositories.RolePermissionRepository
	menuRepo *repositories.MenuRepository
}

func NewRolePermissionController(DB *gorm.DB) *RolePermissionController {
	return &RolePermissionController{
		DB:       DB,
		repo:     repositories.NewRolePermissionRepository(DB),
		menuRepo: repositories.NewMenuRepository(DB),
	}
}

// GetRolePermissions ambil forest menu beranotasi flag untuk satu role.
// Menu tanpa record permission dapat flag false semua. Field states
// berisi checked/unchecked/indeterminate per capability hasil derivasi,
// tidak pernah diambil dari storage. Derivasinya dipisah per flag
// supaya konsisten dengan toggle yang cascade per capability.
func (pc *RolePermissionController) GetRolePermissions(ctx *fiber.Ctx) error {
	roleID := ctx.QueryInt("role_id")
	if roleID <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "role_id is required"})
	}

	var role models.Role
	if err := pc.DB.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	tree, err := pc.menuRepo.GetTree()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	annotated, err := pc.repo.GetByRole(uint(roleID), tree)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	byCap, err := pc.repo.GrantedMenuIDsByCapability(uint(roleID))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	states := fiber.Map{}
	for capability, ids := range byCap {
		states[capability] = services.CheckStates(tree.Roots, services.BuildGrantedSet(ids))
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    annotated,
		"states":  states,
		"orphans": tree.Orphans,
	})
}

type RolePermissionInput struct {
	RoleID   uint  `json:"role_id" validate:"required"`
	MenuID   uint  `json:"menu_id" validate:"required"`
	IsCreate *bool `json:"is_create"`
	IsUpdate *bool `json:"is_update"`
	IsDelete *bool `json:"is_delete"`
}

// SetRolePermission upsert flag tepat satu pasangan (role, menu).
// Flag yang tidak dikirim tidak diubah.
func (pc *RolePermissionController) SetRolePermission(ctx *fiber.Ctx) error {
	var input RolePermissionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var role models.Role
	if err := pc.DB.First(&role, input.RoleID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
	}
	if _, err := pc.menuRepo.GetByID(input.MenuID); err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
	}

	flags := repositories.PermissionFlags{
		IsCreate: input.IsCreate,
		IsUpdate: input.IsUpdate,
		IsDelete: input.IsDelete,
	}

	perm, err := pc.repo.Set(input.RoleID, input.MenuID, flags, int(ctx.Locals("userID").(float64)))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Role permission updated successfully",
		"data":    perm,
	})
}

type ToggleInput struct {
	RoleID     uint   `json:"role_id" validate:"required"`
	MenuID     uint   `json:"menu_id" validate:"required"`
	Capability string `json:"capability" validate:"required,oneof=is_create is_update is_delete"`
}

// ToggleRolePermission centang/uncheck satu node untuk satu capability.
// Cascade dihitung murni di memory, lalu hasilnya dipersist satu
// pasangan (role, menu) per node supaya gagal parsial tidak merusak
// edit yang tidak terkait.
func (pc *RolePermissionController) ToggleRolePermission(ctx *fiber.Ctx) error {
	var input ToggleInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var role models.Role
	if err := pc.DB.First(&role, input.RoleID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
	}

	tree, err := pc.menuRepo.GetTree()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var perms []models.RolePermission
	if err := pc.DB.Where("role_id = ?", input.RoleID).Find(&perms).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	capOn := func(p models.RolePermission) bool {
		switch input.Capability {
		case "is_create":
			return p.IsCreate
		case "is_update":
			return p.IsUpdate
		default:
			return p.IsDelete
		}
	}

	var grantedIDs []uint
	for _, p := range perms {
		if capOn(p) {
			grantedIDs = append(grantedIDs, p.MenuID)
		}
	}

	granted := services.BuildGrantedSet(grantedIDs)
	newGranted := services.Toggle(tree.Roots, input.MenuID, granted)

	userID := int(ctx.Locals("userID").(float64))
	on, off := true, false

	// Persist hanya delta-nya, satu pasangan per node
	for id := range newGranted {
		if granted[id] {
			continue
		}
		flags := repositories.PermissionFlags{}
		switch input.Capability {
		case "is_create":
			flags.IsCreate = &on
		case "is_update":
			flags.IsUpdate = &on
		default:
			flags.IsDelete = &on
		}
		if _, err := pc.repo.Set(input.RoleID, id, flags, userID); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	for id := range granted {
		if newGranted[id] {
			continue
		}
		flags := repositories.PermissionFlags{}
		switch input.Capability {
		case "is_create":
			flags.IsCreate = &off
		case "is_update":
			flags.IsUpdate = &off
		default:
			flags.IsDelete = &off
		}
		if _, err := pc.repo.Set(input.RoleID, id, flags, userID); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	states := services.CheckStates(tree.Roots, newGranted)

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Permissions updated successfully",
		"data": fiber.Map{
			"granted": services.GrantedIDs(newGranted),
			"states":  states,
		},
	})
}
