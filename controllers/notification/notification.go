package notificationController

import (
	"portal/database"
	"portal/middleware"
	"portal/services"
	notificationValidator "portal/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// List returns the caller's notifications, newest first, plus the
// unread count.
func List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	reqData, ok := c.Locals("validatedNotificationList").(*notificationValidator.ListRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db

	notifications, total, unread, err := services.ListNotifications(db, userID, reqData.UnreadOnly, reqData.Limit, reqData.Offset)
	if err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":         notifications,
		"count":        total,
		"unread_count": unread,
	})
}

// MarkRead flags one notification of the caller as read.
func MarkRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	notificationID, err := c.ParamsInt("id")
	if err != nil || notificationID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := database.Database.Db

	notification, err := services.MarkRead(db, uint(notificationID), userID)
	if err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Notificación marcada como leída", notification)
}

// MarkAllRead flags every unread notification of the caller as read.
func MarkAllRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	db := database.Database.Db

	count, err := services.MarkAllRead(db, userID)
	if err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Todas las notificaciones marcadas como leídas",
		"count":   count,
	})
}

// Delete removes one notification of the caller.
func Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	notificationID, err := c.ParamsInt("id")
	if err != nil || notificationID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := database.Database.Db

	if err := services.DeleteNotification(db, uint(notificationID), userID); err != nil {
		return middleware.ErrorResponse(c, services.StatusFor(err), services.Message(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notificación eliminada"})
}
