package authRoutes

import (
	authController "portal/controllers/auth"
	"portal/middleware"
	authValidator "portal/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/register", authValidator.Register(), authController.Register)
	auth.Post("/login", authValidator.Login(), authController.Login)
	auth.Get("/me", middleware.JWTMiddleware, authController.Me)
}
