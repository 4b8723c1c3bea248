package authValidator

import (
	"regexp"
	"strings"

	"portal/middleware"
	"portal/services"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type RegisterRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	NumeroIdentificacion string `json:"numero_identificacion"`
	Nombres              string `json:"nombres"`
	Apellidos            string `json:"apellidos"`
	Telefono             string `json:"telefono"`
	Role                 string `json:"role"`
}

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
		}

		errors := make(map[string]string)

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		if reqData.Email == "" {
			errors["email"] = "Email es requerido"
		} else if !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "Email inválido"
		}

		if len(reqData.Password) < 6 {
			errors["password"] = "La contraseña debe tener al menos 6 caracteres"
		}

		reqData.NumeroIdentificacion = strings.TrimSpace(reqData.NumeroIdentificacion)
		if reqData.NumeroIdentificacion == "" {
			errors["numero_identificacion"] = "Número de identificación es requerido"
		}

		reqData.Nombres = strings.TrimSpace(reqData.Nombres)
		if reqData.Nombres == "" {
			errors["nombres"] = "Nombres es requerido"
		}

		reqData.Apellidos = strings.TrimSpace(reqData.Apellidos)
		if reqData.Apellidos == "" {
			errors["apellidos"] = "Apellidos es requerido"
		}

		// Unknown roles are rejected at the boundary
		if reqData.Role != "" && !services.ValidRole(reqData.Role) {
			errors["role"] = "Rol inválido. Permitidos: admin, funcionario, instructor, aprendiz"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
		}

		errors := make(map[string]string)

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		if reqData.Email == "" {
			errors["email"] = "Email es requerido"
		}
		if reqData.Password == "" {
			errors["password"] = "Password es requerido"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
