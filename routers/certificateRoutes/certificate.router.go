package certificateRoutes

import (
	certificateController "portal/controllers/certificate"
	"portal/middleware"
	certificateValidator "portal/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(app *fiber.App) {
	certificates := app.Group("/certificates")

	// /types must be registered before /:id
	certificates.Get("/types", middleware.JWTMiddleware, certificateController.ListTypes)
	certificates.Get("/", certificateValidator.List(), middleware.JWTMiddleware, certificateController.List)
	certificates.Post("/", certificateValidator.Create(), middleware.JWTMiddleware, certificateController.Create)
	certificates.Get("/:id", middleware.JWTMiddleware, certificateController.Get)
	certificates.Put("/:id", certificateValidator.Update(), middleware.JWTMiddleware, certificateController.Update)
	certificates.Delete("/:id", middleware.JWTMiddleware, certificateController.Delete)
}
