package profileValidator

import (
	"strings"

	"portal/middleware"

	"github.com/gofiber/fiber/v2"
)

// UpdateRequest carries the allow-listed profile fields. Email and
// numero_identificacion are immutable and deliberately absent.
type UpdateRequest struct {
	Nombres   *string `json:"nombres"`
	Apellidos *string `json:"apellidos"`
	Telefono  *string `json:"telefono"`
	AvatarURL *string `json:"avatar_url"`
}

func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
		}

		if reqData.Nombres == nil && reqData.Apellidos == nil &&
			reqData.Telefono == nil && reqData.AvatarURL == nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No hay campos válidos para actualizar")
		}

		errors := make(map[string]string)

		if reqData.Nombres != nil && strings.TrimSpace(*reqData.Nombres) == "" {
			errors["nombres"] = "Nombres no puede estar vacío"
		}
		if reqData.Apellidos != nil && strings.TrimSpace(*reqData.Apellidos) == "" {
			errors["apellidos"] = "Apellidos no puede estar vacío"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfileUpdate", reqData)
		return c.Next()
	}
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChangePasswordRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
		}

		if len(reqData.NewPassword) < 6 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		}

		c.Locals("validatedChangePassword", reqData)
		return c.Next()
	}
}
