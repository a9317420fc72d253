package routes

import (
	"insist-app/config"
	"insist-app/controllers"
	"insist-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMenuRoutes(app *fiber.App, db *gorm.DB) {
	menuController := controllers.NewMenuController(db)

	api := app.Group(
		config.MAIN_ROUTES+"/menus",
		middleware.AuthMiddleware,
	)

	api.Get("/paths/:id", menuController.GetMenuPath)
	api.Get("/", menuController.GetMenuTree)
	api.Get("/:id", menuController.GetMenuByID)
	api.Post("/", menuController.CreateMenu)
	api.Put("/:id", menuController.UpdateMenu)
	api.Delete("/:id", menuController.DeleteMenu)
}
