package profileRoutes

import (
	profileController "portal/controllers/profile"
	"portal/middleware"
	profileValidator "portal/validators/profile"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App) {
	profile := app.Group("/profile")

	profile.Get("/", middleware.JWTMiddleware, profileController.Get)
	profile.Put("/", profileValidator.Update(), middleware.JWTMiddleware, profileController.Update)
	profile.Post("/change-password", profileValidator.ChangePassword(), middleware.JWTMiddleware, profileController.ChangePassword)
	profile.Post("/avatar", middleware.JWTMiddleware, profileController.UploadAvatar)
}
