package models

import (
	"gorm.io/gorm"
)

// Notification kinds.
const (
	TipoInfo    = "info"
	TipoSuccess = "success"
	TipoError   = "error"
)

// Notification is written as a side effect of certificate lifecycle
// transitions and mutated only by its recipient (marking read).
type Notification struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index;not null"`
	Tipo    string `json:"tipo" gorm:"default:'info'"`
	Titulo  string `json:"titulo" gorm:"not null"`
	Mensaje string `json:"mensaje" gorm:"not null"`
	Leida   bool   `json:"leida" gorm:"default:false"`
}
