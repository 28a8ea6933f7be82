package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a quiz author. There is no authentication layer: handlers receive
// an admin_id and ownership checks compare it against CreatedBy fields. The
// identity is always an explicit argument, never ambient state.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:255"`
	FullName string `json:"full_name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
