package utils

import (
	"log"
	"time"

	"portal/config"
	"portal/database"
	"portal/models"

	"github.com/robfig/cron/v3"
)

// InitializeNotificationScheduler sets up the daily notification
// retention job.
func InitializeNotificationScheduler() {
	log.Println("[NOTIFICATION-SCHEDULER] Initializing notification scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[NOTIFICATION-SCHEDULER] Running daily notification cleanup...")
		PurgeOldNotifications()
	})

	c.Start()
	log.Println("[NOTIFICATION-SCHEDULER] Notification scheduler started - runs daily at 3 AM")
}

// PurgeOldNotifications deletes read notifications older than the
// configured retention window. Unread notifications are kept.
func PurgeOldNotifications() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.NotificationRetentionDays)

	result := db.Unscoped().
		Where("leida = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("[NOTIFICATION-SCHEDULER] Error purging notifications: %v", result.Error)
		return
	}

	log.Printf("[NOTIFICATION-SCHEDULER] Purged %d read notifications older than %d days",
		result.RowsAffected, config.AppConfig.NotificationRetentionDays)
}
