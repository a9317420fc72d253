package routes

import (
	"insist-app/config"
	"insist-app/controllers"
	"insist-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", authController.Login)
	api.Get("/isLoggedIn", middleware.AuthMiddleware, authController.IsLoggedIn)
	api.Get("/logout", middleware.AuthMiddleware, authController.Logout)
}
