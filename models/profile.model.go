package models

import (
	"gorm.io/gorm"
)

// Profile holds the personal data linked one-to-one with a User.
// NumeroIdentificacion and Email are immutable after registration.
type Profile struct {
	gorm.Model
	UserID               uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	NumeroIdentificacion string `json:"numero_identificacion" gorm:"unique;not null"`
	Nombres              string `json:"nombres" gorm:"not null"`
	Apellidos            string `json:"apellidos" gorm:"not null"`
	Email                string `json:"email" gorm:"not null"`
	Telefono             string `json:"telefono" gorm:"default:''"`
	AvatarURL            string `json:"avatar_url" gorm:"default:''"`
}
