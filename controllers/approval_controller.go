package controllers

import (
	"strconv"

	"insist-app/repositories"
	"insist-app/services"
	"insist-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ApprovalController struct {
	DB      *gorm.DB
	service *services.ApprovalService
}

func NewApprovalController(DB *gorm.DB) *ApprovalController {
	return &ApprovalController{
		DB: DB,
		service: services.NewApprovalService(
			repositories.NewApprovalRepository(DB),
			repositories.NewApprovalUserRepository(DB),
			repositories.NewMenuRepository(DB),
		),
	}
}

func respondServiceError(ctx *fiber.Ctx, err error) error {
	if appErr, ok := services.AsAppError(err); ok {
		return ctx.Status(appErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   appErr.Message,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func parseApprovalID(ctx *fiber.Ctx) (types.SnowflakeID, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, err
	}
	return types.SnowflakeID(id), nil
}

// GetApprovals ambil rantai approval satu menu, terurut ascending by level
func (ac *ApprovalController) GetApprovals(ctx *fiber.Ctx) error {
	menuID := ctx.QueryInt("menu_id")
	if menuID <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "menu_id is required"})
	}

	approvals, err := ac.service.ListByMenu(uint(menuID))
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    approvals,
		"total":   len(approvals),
	})
}

func (ac *ApprovalController) CreateApproval(ctx *fiber.Ctx) error {
	var input services.ApprovalInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	approval, err := ac.service.Create(input, int(ctx.Locals("userID").(float64)))
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Approval created successfully",
		"data":    approval,
	})
}

func (ac *ApprovalController) UpdateApproval(ctx *fiber.Ctx) error {
	id, err := parseApprovalID(ctx)
	if err != nil || id == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input services.ApprovalUpdateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	approval, err := ac.service.Update(id, input, int(ctx.Locals("userID").(float64)))
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Approval updated successfully",
		"data":    approval,
	})
}

// DeleteApproval menghapus satu level approval berikut assignment user-nya
func (ac *ApprovalController) DeleteApproval(ctx *fiber.Ctx) error {
	id, err := parseApprovalID(ctx)
	if err != nil || id == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := ac.service.Delete(id); err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Approval deleted successfully",
	})
}

// GetApprovalUsers ambil user yang ditugaskan di satu level approval
func (ac *ApprovalController) GetApprovalUsers(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Query("approval_id"), 10, 64)
	if err != nil || id == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "approval_id is required"})
	}

	userIDs, err := ac.service.ListUsers(types.SnowflakeID(id))
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    userIDs,
	})
}

type ApprovalUserInput struct {
	IDUser []uint `json:"id_user"`
}

// ReplaceApprovalUsers full replace dengan set reconciliation: user yang
// hilang dari list dihapus, yang baru ditambah, sisanya tidak disentuh.
func (ac *ApprovalController) ReplaceApprovalUsers(ctx *fiber.Ctx) error {
	id, err := parseApprovalID(ctx)
	if err != nil || id == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input ApprovalUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := ac.service.ReplaceUsers(id, input.IDUser, int(ctx.Locals("userID").(float64))); err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Approval users updated successfully",
	})
}
