package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DocumentCategory is static reference data.
type DocumentCategory struct {
	gorm.Model
	Nombre      string `json:"nombre" gorm:"not null"`
	Descripcion string `json:"descripcion"`
}

// Document is a stored file owned by one user. There is no state
// machine: a document exists until its owner (or an admin) deletes it.
type Document struct {
	gorm.Model
	UserID      uint              `json:"user_id" gorm:"index;not null"`
	Nombre      string            `json:"nombre" gorm:"not null"`
	Descripcion string            `json:"descripcion"`
	ArchivoURL  string            `json:"archivo_url" gorm:"not null"`
	TipoMime    string            `json:"tipo_mime"`
	TamanoBytes int64             `json:"tamano_bytes"`
	CategoryID  *uint             `json:"category_id" gorm:"index"`
	Category    *DocumentCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Etiquetas   datatypes.JSON    `json:"etiquetas"`
}
