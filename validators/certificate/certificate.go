package certificateValidator

import (
	"time"

	"portal/middleware"
	"portal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateRequest struct {
	CertificateTypeID uint   `json:"certificate_type_id"`
	Observaciones     string `json:"observaciones"`
}

func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
		}

		if reqData.CertificateTypeID == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "certificate_type_id es requerido")
		}

		c.Locals("validatedCertificateCreate", reqData)
		return c.Next()
	}
}

type UpdateRequest struct {
	Estado             *string    `json:"estado"`
	Observaciones      *string    `json:"observaciones"`
	ArchivoURL         *string    `json:"archivo_url"`
	FechaProcesamiento *time.Time `json:"fecha_procesamiento"`
	FechaEntrega       *time.Time `json:"fecha_entrega"`
}

func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
		}

		errors := make(map[string]string)

		if reqData.Estado != nil && !models.ValidEstado(*reqData.Estado) {
			errors["estado"] = "Estado inválido. Permitidos: pendiente, en_proceso, completado, rechazado"
		}

		if reqData.Estado == nil && reqData.Observaciones == nil && reqData.ArchivoURL == nil &&
			reqData.FechaProcesamiento == nil && reqData.FechaEntrega == nil {
			errors["body"] = "No hay campos válidos para actualizar"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCertificateUpdate", reqData)
		return c.Next()
	}
}

type ListRequest struct {
	Estado string `query:"estado"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Parámetros de consulta inválidos")
		}

		errors := make(map[string]string)

		if reqData.Estado != "" && !models.ValidEstado(reqData.Estado) {
			errors["estado"] = "Estado inválido. Permitidos: pendiente, en_proceso, completado, rechazado"
		}
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

		c.Locals("validatedCertificateList", reqData)
		return c.Next()
	}
}
