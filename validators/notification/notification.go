package notificationValidator

import (
	"portal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ListRequest struct {
	UnreadOnly bool `query:"unread_only"`
	Limit      int  `query:"limit"`
	Offset     int  `query:"offset"`
}

func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Parámetros de consulta inválidos")
		}

		errors := make(map[string]string)

		if reqData.Limit < 0 || reqData.Limit > 100 {
			errors["limit"] = "Limit debe estar entre 1 y 100"
		}
		if reqData.Offset < 0 {
			errors["offset"] = "Offset no puede ser negativo"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Limit == 0 {
			reqData.Limit = 50
		}

		c.Locals("validatedNotificationList", reqData)
		return c.Next()
	}
}
