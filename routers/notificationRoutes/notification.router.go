package notificationRoutes

import (
	notificationController "portal/controllers/notification"
	"portal/middleware"
	notificationValidator "portal/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notifications := app.Group("/notifications")

	notifications.Get("/", notificationValidator.List(), middleware.JWTMiddleware, notificationController.List)
	// /read-all must be registered before /:id
	notifications.Put("/read-all", middleware.JWTMiddleware, notificationController.MarkAllRead)
	notifications.Put("/:id", middleware.JWTMiddleware, notificationController.MarkRead)
	notifications.Delete("/:id", middleware.JWTMiddleware, notificationController.Delete)
}
