package controllers

import (
	"errors"
	"strconv"

	"insist-app/models"
	"insist-app/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MenuController struct {
	DB   *gorm.DB
	repo *repositories.MenuRepository
}

func NewMenuController(DB *gorm.DB) *MenuController {
	return &MenuController{
		DB:   DB,
		repo: repositories.NewMenuRepository(DB),
	}
}

// GetMenuTree ambil seluruh katalog menu sebagai forest terurut.
// Node dengan parent tidak valid tetap dirender sebagai root dan
// dilaporkan lewat field orphans/cycles.
func (mc *MenuController) GetMenuTree(ctx *fiber.Ctx) error {
	tree, err := mc.repo.GetTree()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    tree.Roots,
		"orphans": tree.Orphans,
		"cycles":  tree.Cycles,
	})
}

// GetMenuPath ambil jalur ancestor dari root sampai node
func (mc *MenuController) GetMenuPath(ctx *fiber.Ctx) error {
	menuID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	path, err := mc.repo.FindPath(uint(menuID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"data": path, "success": true})
}

func (mc *MenuController) GetMenuByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	menuID, err := strconv.Atoi(id)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var menu models.Menu
	err = mc.DB.Preload("Children").First(&menu, menuID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"data": menu, "success": true})
}

type MenuInput struct {
	Name      string `json:"name" validate:"required"`
	Path      string `json:"path" validate:"required"`
	Icon      string `json:"icon"`
	MenuOrder int    `json:"menu_order"`
	ParentID  *uint  `json:"parent_id"`
}

func (mc *MenuController) CreateMenu(ctx *fiber.Ctx) error {
	var input MenuInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Parent harus ada kalau diisi
	if input.ParentID != nil {
		if _, err := mc.repo.GetByID(*input.ParentID); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parent menu not found"})
		}
	}

	menu := models.Menu{
		Name:      input.Name,
		Path:      input.Path,
		Icon:      input.Icon,
		MenuOrder: input.MenuOrder,
		ParentID:  input.ParentID,
		CreatedBy: int(ctx.Locals("userID").(float64)),
	}

	if err := mc.repo.Create(&menu); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Menu created successfully",
		"data":    menu,
		"success": true,
	})
}

func (mc *MenuController) UpdateMenu(ctx *fiber.Ctx) error {
	menuID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	menu, err := mc.repo.GetByID(uint(menuID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input MenuInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Menu tidak boleh jadi parent dirinya sendiri atau pindah ke bawah
	// keturunannya sendiri
	if input.ParentID != nil {
		if *input.ParentID == menu.ID {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Menu cannot be its own parent"})
		}
		if _, err := mc.repo.GetByID(*input.ParentID); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parent menu not found"})
		}
		cycle, err := mc.repo.WouldCycle(menu.ID, *input.ParentID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if cycle {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "Menu cannot be moved under its own descendant",
			})
		}
	}

	menu.Name = input.Name
	menu.Path = input.Path
	menu.Icon = input.Icon
	menu.MenuOrder = input.MenuOrder
	menu.ParentID = input.ParentID
	menu.UpdatedBy = int(ctx.Locals("userID").(float64))

	if err := mc.repo.Update(menu); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Menu updated successfully", "data": menu, "success": true})
}

// DeleteMenu menolak hapus kalau node masih punya anak atau masih
// direferensikan approval / role permission.
func (mc *MenuController) DeleteMenu(ctx *fiber.Ctx) error {
	menuID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if _, err := mc.repo.GetByID(uint(menuID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	hasChildren, err := mc.repo.HasChildren(uint(menuID))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if hasChildren {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Menu still has children",
		})
	}

	referenced, err := mc.repo.IsReferenced(uint(menuID))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if referenced {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Menu is still referenced by approvals or role permissions",
		})
	}

	if err := mc.repo.Delete(uint(menuID)); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Menu deleted successfully", "success": true})
}
