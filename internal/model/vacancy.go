package model

import (
	"time"

	"RecruitPilot-backend/internal/dynschema"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JobVacancy is a concrete opening for a client. Fields is a deep copy taken
// from the template at creation; only explicit vacancy-level edits may
// change it afterwards, template edits never reach it.
type JobVacancy struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   Client    `gorm:"foreignKey:ClientID;references:ID" json:"-"`

	JobTemplateID uuid.UUID   `gorm:"type:uuid;not null;index;<-:create" json:"job_template_id"`
	JobTemplate   JobTemplate `gorm:"foreignKey:JobTemplateID;references:ID" json:"-"`

	Fields datatypes.JSONSlice[dynschema.FieldDefinition] `json:"fields"`

	AssignedAgencies []User `gorm:"many2many:vacancy_agencies;" json:"assigned_agencies"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;references:ID" json:"-"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// HasAgency reports whether the given user is assigned to this vacancy.
// AssignedAgencies must be preloaded by the caller.
func (v JobVacancy) HasAgency(userID uuid.UUID) bool {
	for _, agency := range v.AssignedAgencies {
		if agency.ID == userID {
			return true
		}
	}
	return false
}
