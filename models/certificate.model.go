package models

import (
	"time"

	"gorm.io/gorm"
)

// CertificateType is reference data managed by staff.
type CertificateType struct {
	gorm.Model
	Nombre                  string `json:"nombre" gorm:"not null"`
	Descripcion             string `json:"descripcion"`
	Activo                  bool   `json:"activo" gorm:"default:true"`
	TiempoProcesamientoDias int    `json:"tiempo_procesamiento_dias" gorm:"default:5"`
}

// Certificate states. Completado and rechazado are terminal.
const (
	EstadoPendiente  = "pendiente"
	EstadoEnProceso  = "en_proceso"
	EstadoCompletado = "completado"
	EstadoRechazado  = "rechazado"
)

// Certificate is a certificate request owned by one user.
// Only estado, observaciones, archivo_url and the two processing dates
// are mutable after creation, and only by staff.
type Certificate struct {
	gorm.Model
	UserID             uint             `json:"user_id" gorm:"index;not null"`
	CertificateTypeID  uint             `json:"certificate_type_id" gorm:"index;not null"`
	CertificateType    *CertificateType `json:"certificate_type,omitempty" gorm:"foreignKey:CertificateTypeID"`
	Estado             string           `json:"estado" gorm:"default:'pendiente'"`
	FechaSolicitud     time.Time        `json:"fecha_solicitud"`
	FechaProcesamiento *time.Time       `json:"fecha_procesamiento"`
	FechaEntrega       *time.Time       `json:"fecha_entrega"`
	Observaciones      string           `json:"observaciones"`
	ArchivoURL         string           `json:"archivo_url"`
}

// ValidEstado reports whether s is a member of the closed estado set.
func ValidEstado(s string) bool {
	switch s {
	case EstadoPendiente, EstadoEnProceso, EstadoCompletado, EstadoRechazado:
		return true
	}
	return false
}

// TerminalEstado reports whether no transition may leave s.
func TerminalEstado(s string) bool {
	return s == EstadoCompletado || s == EstadoRechazado
}
