package statsRoutes

import (
	statsController "portal/controllers/stats"
	"portal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App) {
	app.Get("/stats", middleware.JWTMiddleware, statsController.Get)
}
