package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"portal/models"

	"gorm.io/gorm"
)

// CertificatePatch carries the allow-listed mutable fields of a
// certificate request. Everything else is immutable after creation.
type CertificatePatch struct {
	Estado             *string
	Observaciones      *string
	ArchivoURL         *string
	FechaProcesamiento *time.Time
	FechaEntrega       *time.Time
}

var estadoMessages = map[string]string{
	models.EstadoEnProceso:  "está siendo procesada",
	models.EstadoCompletado: "ha sido completada",
	models.EstadoRechazado:  "ha sido rechazada",
}

// CreateRequest inserts a new certificate request in estado pendiente
// and notifies the owner. Notification failure is non-fatal: the
// request stays committed and the failure is only logged.
func CreateRequest(db *gorm.DB, ownerID, typeID uint, observaciones string) (*models.Certificate, error) {
	var certType models.CertificateType
	if err := db.Where("id = ?", typeID).First(&certType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tipo de certificado no encontrado", ErrValidation)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	cert := models.Certificate{
		UserID:            ownerID,
		CertificateTypeID: typeID,
		Estado:            models.EstadoPendiente,
		FechaSolicitud:    time.Now(),
		Observaciones:     observaciones,
	}
	if err := db.Create(&cert).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	cert.CertificateType = &certType

	mensaje := fmt.Sprintf("Tu solicitud de %s ha sido registrada.", certType.Nombre)
	if _, err := Notify(db, ownerID, models.TipoInfo, "Solicitud Creada", mensaje); err != nil {
		log.Printf("Error creating notification for certificate %d: %v", cert.ID, err)
	}

	return &cert, nil
}

// Transition applies a staff mutation to a certificate request. Only
// the allow-listed patch fields are written; a state change out of a
// terminal state or to an unknown estado fails with ErrValidation.
// Processing and delivery dates are auto-set once, on the transition
// that first reaches en_proceso or completado.
func Transition(db *gorm.DB, certID uint, callerRole string, patch CertificatePatch) (*models.Certificate, error) {
	if !CanMutateRequestState(callerRole) {
		return nil, fmt.Errorf("%w: no autorizado para actualizar certificados", ErrForbidden)
	}

	var cert models.Certificate
	if err := db.Preload("CertificateType").Where("id = ?", certID).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: certificado no encontrado", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	updates := map[string]interface{}{}
	stateChanged := false
	effectiveEstado := cert.Estado

	if patch.Estado != nil {
		newEstado := *patch.Estado
		if !models.ValidEstado(newEstado) {
			return nil, fmt.Errorf("%w: estado inválido: %s", ErrValidation, newEstado)
		}
		if models.TerminalEstado(cert.Estado) && newEstado != cert.Estado {
			return nil, fmt.Errorf("%w: la solicitud ya fue %s", ErrValidation, cert.Estado)
		}
		updates["estado"] = newEstado
		stateChanged = newEstado != cert.Estado
		effectiveEstado = newEstado

		if newEstado == models.EstadoEnProceso && patch.FechaProcesamiento == nil && cert.FechaProcesamiento == nil {
			now := time.Now()
			updates["fecha_procesamiento"] = &now
		}
		if newEstado == models.EstadoCompletado && patch.FechaEntrega == nil && cert.FechaEntrega == nil {
			now := time.Now()
			updates["fecha_entrega"] = &now
		}
	}

	// The date fields are patchable on their own, without an estado change.
	if patch.FechaProcesamiento != nil {
		updates["fecha_procesamiento"] = patch.FechaProcesamiento
	}
	if patch.FechaEntrega != nil {
		// A delivery date only makes sense on a completed request.
		if effectiveEstado != models.EstadoCompletado {
			return nil, fmt.Errorf("%w: fecha_entrega solo aplica a solicitudes completadas", ErrValidation)
		}
		updates["fecha_entrega"] = patch.FechaEntrega
	}

	if patch.Observaciones != nil {
		updates["observaciones"] = *patch.Observaciones
	}
	if patch.ArchivoURL != nil {
		updates["archivo_url"] = *patch.ArchivoURL
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no hay campos válidos para actualizar", ErrValidation)
	}

	if err := db.Model(&cert).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := db.Preload("CertificateType").Where("id = ?", certID).First(&cert).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if patch.Estado != nil && stateChanged {
		tipo := models.TipoSuccess
		if cert.Estado == models.EstadoRechazado {
			tipo = models.TipoError
		}
		verb, ok := estadoMessages[cert.Estado]
		if !ok {
			verb = "ha sido actualizada"
		}
		typeName := ""
		if cert.CertificateType != nil {
			typeName = cert.CertificateType.Nombre
		}
		mensaje := fmt.Sprintf("Tu solicitud de %s %s.", typeName, verb)
		if _, err := Notify(db, cert.UserID, tipo, "Actualización de Solicitud", mensaje); err != nil {
			log.Printf("Error creating notification for certificate %d: %v", cert.ID, err)
		}
	}

	return &cert, nil
}

// DeleteRequest removes a certificate request. Owners may delete only
// while the request is pendiente; admins may delete at any state.
// Notifications already sent are not cascaded.
func DeleteRequest(db *gorm.DB, certID, callerID uint, callerRole string) error {
	var cert models.Certificate
	if err := db.Where("id = ?", certID).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: certificado no encontrado", ErrNotFound)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if !CanDeleteRequest(callerRole, cert.Estado, cert.UserID == callerID) {
		return fmt.Errorf("%w: solo se pueden eliminar solicitudes pendientes", ErrForbidden)
	}

	if err := db.Unscoped().Delete(&cert).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// GetRequest fetches one certificate request, enforcing visibility.
func GetRequest(db *gorm.DB, certID, callerID uint, callerRole string) (*models.Certificate, error) {
	var cert models.Certificate
	if err := db.Preload("CertificateType").Where("id = ?", certID).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: certificado no encontrado", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !CanViewRequest(callerRole, cert.UserID, callerID) {
		return nil, fmt.Errorf("%w: no autorizado", ErrForbidden)
	}
	return &cert, nil
}

// ListRequests returns certificate requests ordered by fecha_solicitud
// descending. Non-staff callers are forcibly scoped to their own rows
// regardless of filters; estado and pagination are honored for everyone.
func ListRequests(db *gorm.DB, callerID uint, callerRole, estado string, limit, offset int) ([]models.Certificate, int64, error) {
	query := db.Model(&models.Certificate{})
	if !IsStaff(callerRole) {
		query = query.Where("user_id = ?", callerID)
	}
	if estado != "" {
		if !models.ValidEstado(estado) {
			return nil, 0, fmt.Errorf("%w: estado inválido: %s", ErrValidation, estado)
		}
		query = query.Where("estado = ?", estado)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var certs []models.Certificate
	err := query.Preload("CertificateType").
		Order("fecha_solicitud DESC").
		Limit(limit).Offset(offset).
		Find(&certs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return certs, total, nil
}

// ListCertificateTypes returns the active types ordered by name.
func ListCertificateTypes(db *gorm.DB) ([]models.CertificateType, error) {
	var types []models.CertificateType
	if err := db.Where("activo = ?", true).Order("nombre").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return types, nil
}
