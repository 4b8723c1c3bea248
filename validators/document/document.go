package documentValidator

import (
	"strings"

	"portal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateRequest struct {
	Nombre      string   `json:"nombre" form:"nombre"`
	Descripcion string   `json:"descripcion" form:"descripcion"`
	ArchivoURL  string   `json:"archivo_url"`
	TipoMime    string   `json:"tipo_mime"`
	TamanoBytes int64    `json:"tamano_bytes"`
	CategoryID  *uint    `json:"category_id" form:"category_id"`
	Etiquetas   []string `json:"etiquetas"`
}

// Create validates document metadata. The endpoint accepts either a
// multipart upload (file goes to the blob store) or a JSON body with an
// already-stored archivo_url; the file itself is checked in the
// controller, where the upload happens.
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRequest)
		multipart := strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data")

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
		}

		if multipart {
			if etiquetas := c.FormValue("etiquetas"); etiquetas != "" {
				for _, tag := range strings.Split(etiquetas, ",") {
					if tag = strings.TrimSpace(tag); tag != "" {
						reqData.Etiquetas = append(reqData.Etiquetas, tag)
					}
				}
			}
		}

		errors := make(map[string]string)

		reqData.Nombre = strings.TrimSpace(reqData.Nombre)
		if reqData.Nombre == "" {
			errors["nombre"] = "Nombre es requerido"
		}
		if !multipart && reqData.ArchivoURL == "" {
			errors["archivo_url"] = "nombre y archivo_url son requeridos"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDocumentCreate", reqData)
		return c.Next()
	}
}

type UpdateRequest struct {
	Nombre      *string   `json:"nombre"`
	Descripcion *string   `json:"descripcion"`
	CategoryID  *uint     `json:"category_id"`
	Etiquetas   *[]string `json:"etiquetas"`
}

func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
		}

		if reqData.Nombre == nil && reqData.Descripcion == nil &&
			reqData.CategoryID == nil && reqData.Etiquetas == nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No hay campos válidos para actualizar")
		}

		if reqData.Nombre != nil && strings.TrimSpace(*reqData.Nombre) == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Nombre no puede estar vacío")
		}

		c.Locals("validatedDocumentUpdate", reqData)
		return c.Next()
	}
}

type ListRequest struct {
	CategoryID *uint  `query:"category_id"`
	Search     string `query:"search"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
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

		c.Locals("validatedDocumentList", reqData)
		return c.Next()
	}
}
