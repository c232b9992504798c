package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Client is a hiring company managed by the agency's staff. Each client has
// exactly one assigned employee; employees only see clients assigned to them.
type Client struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name        string         `gorm:"type:text;not null" json:"name"`
	Email       string         `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Phone       string         `gorm:"type:text" json:"phone"`
	Industry    string         `gorm:"type:text" json:"industry"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Description string         `gorm:"type:text" json:"description"`

	AssignedEmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"assigned_employee_id"`
	AssignedEmployee   User      `gorm:"foreignKey:AssignedEmployeeID;references:ID" json:"-"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
