package documentRoutes

import (
	documentController "portal/controllers/document"
	"portal/middleware"
	documentValidator "portal/validators/document"

	"github.com/gofiber/fiber/v2"
)

func SetupDocumentRoutes(app *fiber.App) {
	documents := app.Group("/documents")

	// /categories must be registered before /:id
	documents.Get("/categories", middleware.JWTMiddleware, documentController.ListCategories)
	documents.Get("/", documentValidator.List(), middleware.JWTMiddleware, documentController.List)
	documents.Post("/", documentValidator.Create(), middleware.JWTMiddleware, documentController.Create)
	documents.Get("/:id", middleware.JWTMiddleware, documentController.Get)
	documents.Put("/:id", documentValidator.Update(), middleware.JWTMiddleware, documentController.Update)
	documents.Delete("/:id", middleware.JWTMiddleware, documentController.Delete)
}
