// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is gorm model for an account that can log in. Every user holds
// exactly one role; what the role allows is resolved per request from the
// role's permission grants.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	FullName string    `gorm:"type:text;not null" json:"full_name"`
	Email    string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`

	RoleID uuid.UUID `gorm:"type:uuid;not null;index" json:"role_id"`
	Role   Role      `gorm:"foreignKey:RoleID;references:ID" json:"role"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
