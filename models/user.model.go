package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"-" gorm:"not null"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// UserRole maps a user to a single portal role.
// Valid roles: admin, funcionario, instructor, aprendiz.
type UserRole struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Role   string `json:"role" gorm:"default:'aprendiz'"`
}

const (
	RoleAdmin       = "admin"
	RoleFuncionario = "funcionario"
	RoleInstructor  = "instructor"
	RoleAprendiz    = "aprendiz"
)
