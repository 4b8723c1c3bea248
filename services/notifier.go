package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"portal/config"
	"portal/models"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// Notify inserts a notification for a user. When NOTIFY_WEBHOOK_URL is
// configured the record is also posted there asynchronously,
// best-effort: webhook failures are logged and never surfaced.
func Notify(db *gorm.DB, userID uint, tipo, titulo, mensaje string) (*models.Notification, error) {
	notification := models.Notification{
		UserID:  userID,
		Tipo:    tipo,
		Titulo:  titulo,
		Mensaje: mensaje,
	}
	if err := db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if config.AppConfig != nil && config.AppConfig.NotifyWebhookURL != "" {
		go postNotificationWebhook(notification)
	}

	return &notification, nil
}

func postNotificationWebhook(notification models.Notification) {
	client := resty.New().SetTimeout(5 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(notification).
		Post(config.AppConfig.NotifyWebhookURL)
	if err != nil {
		log.Printf("Error posting notification %d to webhook: %v", notification.ID, err)
		return
	}
	if resp.IsError() {
		log.Printf("Webhook rejected notification %d: %s", notification.ID, resp.Status())
	}
}

// MarkRead flags one notification as read. A notification belonging to
// another user is reported as not found, never as forbidden, so the
// endpoint does not leak which IDs exist.
func MarkRead(db *gorm.DB, notificationID, callerID uint) (*models.Notification, error) {
	var notification models.Notification
	err := db.Where("id = ? AND user_id = ?", notificationID, callerID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: notificación no encontrada", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := db.Model(&notification).Update("leida", true).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &notification, nil
}

// MarkAllRead flags every unread notification of the caller as read and
// returns how many rows were flipped. Calling it again returns 0.
func MarkAllRead(db *gorm.DB, callerID uint) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND leida = ?", callerID, false).
		Update("leida", true)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteNotification removes one notification of the caller.
func DeleteNotification(db *gorm.DB, notificationID, callerID uint) error {
	var notification models.Notification
	err := db.Where("id = ? AND user_id = ?", notificationID, callerID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notificación no encontrada", ErrNotFound)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := db.Unscoped().Delete(&notification).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// ListNotifications returns the caller's notifications ordered by
// creation time descending, plus the total matching and unread counts.
func ListNotifications(db *gorm.DB, callerID uint, unreadOnly bool, limit, offset int) ([]models.Notification, int64, int64, error) {
	query := db.Model(&models.Notification{}).Where("user_id = ?", callerID)
	if unreadOnly {
		query = query.Where("leida = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var unread int64
	err = db.Model(&models.Notification{}).
		Where("user_id = ? AND leida = ?", callerID, false).
		Count(&unread).Error
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return notifications, total, unread, nil
}
