package routes

import (
	"insist-app/config"
	"insist-app/controllers"
	"insist-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRolePermissionRoutes(app *fiber.App, db *gorm.DB) {
	permissionController := controllers.NewRolePermissionController(db)

	api := app.Group(config.MAIN_ROUTES+"/role-permissions", middleware.AuthMiddleware)

	api.Get("/", permissionController.GetRolePermissions)
	api.Put("/", permissionController.SetRolePermission)
	api.Post("/toggle", permissionController.ToggleRolePermission)
}
