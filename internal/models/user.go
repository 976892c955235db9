package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType is the single role label carried by a user. Roles form a total
// order: NORMAL < INSTRUCTOR < ADMIN < SUPERADMIN.
type UserType string

const (
	UserTypeNormal     UserType = "NORMAL"
	UserTypeInstructor UserType = "INSTRUCTOR"
	UserTypeAdmin      UserType = "ADMIN"
	UserTypeSuperAdmin UserType = "SUPERADMIN"
)

type User struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Password  string   `json:"-" gorm:"not null;size:255"`
	FirstName string   `json:"first_name" gorm:"size:100"`
	LastName  string   `json:"last_name" gorm:"size:100"`
	UserType  UserType `json:"user_type" gorm:"not null;size:20;default:NORMAL"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
