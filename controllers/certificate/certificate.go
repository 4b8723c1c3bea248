package certificateController

import (
	"portal/database"
	"portal/middleware"
	"portal/services"
	certificateValidator "portal/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// List returns certificate requests visible to the caller. Non-staff
// callers only ever see their own requests.
func List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	reqData, ok := c.Locals("validatedCertificateList").(*certificateValidator.ListRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db
	role := services.ResolveRole(db, userID)

	certs, total, err := services.ListRequests(db, userID, role, reqData.Estado, reqData.Limit, reqData.Offset)
	if err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  certs,
		"count": total,
	})
}

// Get returns one certificate request, owner or staff only.
func Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	certID, err := c.ParamsInt("id")
	if err != nil || certID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := database.Database.Db
	role := services.ResolveRole(db, userID)

	cert, err := services.GetRequest(db, uint(certID), userID, role)
	if err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", cert)
}

// Create registers a new certificate request for the caller.
func Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	reqData, ok := c.Locals("validatedCertificateCreate").(*certificateValidator.CreateRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db

	cert, err := services.CreateRequest(db, userID, reqData.CertificateTypeID, reqData.Observaciones)
	if err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Solicitud creada exitosamente", cert)
}

// Update applies a staff-only lifecycle transition.
func Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	certID, err := c.ParamsInt("id")
	if err != nil || certID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID inválido")
	}

	reqData, ok := c.Locals("validatedCertificateUpdate").(*certificateValidator.UpdateRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db
	role := services.ResolveRole(db, userID)

	cert, err := services.Transition(db, uint(certID), role, services.CertificatePatch{
		Estado:             reqData.Estado,
		Observaciones:      reqData.Observaciones,
		ArchivoURL:         reqData.ArchivoURL,
		FechaProcesamiento: reqData.FechaProcesamiento,
		FechaEntrega:       reqData.FechaEntrega,
	})
	if err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Certificado actualizado", cert)
}

// Delete removes a certificate request, owner (pendiente only) or admin.
func Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	certID, err := c.ParamsInt("id")
	if err != nil || certID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := database.Database.Db
	role := services.ResolveRole(db, userID)

	if err := services.DeleteRequest(db, uint(certID), userID, role); err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Certificado eliminado"})
}

// ListTypes returns the active certificate types.
func ListTypes(c *fiber.Ctx) error {
	db := database.Database.Db

	types, err := services.ListCertificateTypes(db)
	if err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", types)
}
