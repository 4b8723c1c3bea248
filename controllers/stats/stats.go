package statsController

import (
	"portal/database"
	"portal/middleware"
	"portal/models"
	"portal/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Get returns the dashboard numbers: certificate totals per state,
// document total, unread notifications and recent activity. Non-staff
// callers only see their own rows; staff additionally get the total
// user count.
func Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	db := database.Database.Db
	role := services.ResolveRole(db, userID)
	staff := services.IsStaff(role)

	scoped := func(q *gorm.DB) *gorm.DB {
		if !staff {
			return q.Where("user_id = ?", userID)
		}
		return q
	}

	var totalCerts, pendingCerts, inProcessCerts, completedCerts int64
	scoped(db.Model(&models.Certificate{})).Count(&totalCerts)
	scoped(db.Model(&models.Certificate{})).Where("estado = ?", models.EstadoPendiente).Count(&pendingCerts)
	scoped(db.Model(&models.Certificate{})).Where("estado = ?", models.EstadoEnProceso).Count(&inProcessCerts)
	scoped(db.Model(&models.Certificate{})).Where("estado = ?", models.EstadoCompletado).Count(&completedCerts)

	var totalDocuments int64
	scoped(db.Model(&models.Document{})).Count(&totalDocuments)

	var unreadNotifications int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND leida = ?", userID, false).
		Count(&unreadNotifications)

	var recentActivity []models.Certificate
	scoped(db.Model(&models.Certificate{})).
		Preload("CertificateType").
		Order("fecha_solicitud DESC").
		Limit(5).
		Find(&recentActivity)

	var staffStats interface{}
	if staff {
		var totalUsers int64
		db.Model(&models.Profile{}).Count(&totalUsers)
		staffStats = fiber.Map{"total_users": totalUsers}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"certificates": fiber.Map{
			"total":      totalCerts,
			"pending":    pendingCerts,
			"in_process": inProcessCerts,
			"completed":  completedCerts,
		},
		"documents": fiber.Map{
			"total": totalDocuments,
		},
		"notifications": fiber.Map{
			"unread": unreadNotifications,
		},
		"recent_activity": recentActivity,
		"staff_stats":     staffStats,
		"user_role":       role,
	})
}
