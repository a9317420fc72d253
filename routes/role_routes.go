package routes

import (
	"insist-app/config"
	"insist-app/controllers"
	"insist-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoleRoutes(app *fiber.App, db *gorm.DB) {
	roleController := controllers.NewRoleController(db)

	api := app.Group(config.MAIN_ROUTES+"/roles", middleware.AuthMiddleware)

	api.Get("/", roleController.GetAllRoles)
	api.Get("/:id", roleController.GetRoleByID)
	api.Post("/", roleController.CreateRole)
	api.Put("/:id", roleController.UpdateRole)
	api.Delete("/:id", roleController.DeleteRole)
}
