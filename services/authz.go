package services

import (
	"portal/models"

	"gorm.io/gorm"
)

// ResolveRole returns the role assigned to a user. A user without a
// role row is treated as the lowest-privilege role, aprendiz.
func ResolveRole(db *gorm.DB, userID uint) string {
	var userRole models.UserRole
	if err := db.Where("user_id = ?", userID).First(&userRole).Error; err != nil {
		return models.RoleAprendiz
	}
	if userRole.Role == "" {
		return models.RoleAprendiz
	}
	return userRole.Role
}

// IsStaff reports whether the role carries staff privileges.
func IsStaff(role string) bool {
	return role == models.RoleAdmin || role == models.RoleFuncionario
}

// CanViewRequest reports whether the caller may read a certificate
// request owned by ownerID.
func CanViewRequest(role string, ownerID, callerID uint) bool {
	return ownerID == callerID || IsStaff(role)
}

// CanMutateRequestState reports whether the caller may change the state
// of any certificate request.
func CanMutateRequestState(role string) bool {
	return IsStaff(role)
}

// CanDeleteRequest reports whether the caller may delete a certificate
// request: admins always, owners only while the request is pendiente.
func CanDeleteRequest(role, estado string, isOwner bool) bool {
	if role == models.RoleAdmin {
		return true
	}
	return isOwner && estado == models.EstadoPendiente
}

// ValidRole reports whether role is a member of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleFuncionario, models.RoleInstructor, models.RoleAprendiz:
		return true
	}
	return false
}
