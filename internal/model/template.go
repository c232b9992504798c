package model

import (
	"time"

	"RecruitPilot-backend/internal/dynschema"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JobTemplate is a reusable intake form definition authored by employees and
// admins. Editing a template has no retroactive effect on vacancies already
// created from it; they keep their own snapshot of Fields.
type JobTemplate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	Fields datatypes.JSONSlice[dynschema.FieldDefinition] `json:"fields"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
