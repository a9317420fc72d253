package routes

import (
	"insist-app/config"
	"insist-app/controllers"
	"insist-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupApprovalRoutes(app *fiber.App, db *gorm.DB) {
	approvalController := controllers.NewApprovalController(db)

	api := app.Group(config.MAIN_ROUTES, middleware.AuthMiddleware)

	api.Get("/approvals", approvalController.GetApprovals)
	api.Post("/approvals", approvalController.CreateApproval)
	api.Put("/approvals/:id", approvalController.UpdateApproval)
	api.Delete("/approvals/:id", approvalController.DeleteApproval)

	api.Get("/approval-users", approvalController.GetApprovalUsers)
	api.Put("/approval-users/:id", approvalController.ReplaceApprovalUsers)
}
