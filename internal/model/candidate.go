package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Candidate statuses.
const (
	CandidateStatusPending     = "pending"
	CandidateStatusReviewed    = "reviewed"
	CandidateStatusShortlisted = "shortlisted"
	CandidateStatusRejected    = "rejected"
	CandidateStatusHired       = "hired"
)

// CandidateStatuses lists every accepted status value.
var CandidateStatuses = []string{
	CandidateStatusPending,
	CandidateStatusReviewed,
	CandidateStatusShortlisted,
	CandidateStatusRejected,
	CandidateStatusHired,
}

// Candidate is a submission by an agency for a vacancy. Data holds the
// free-form answers keyed by field key; it is validated against the owning
// vacancy's field snapshot on create and update.
type Candidate struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	JobVacancyID uuid.UUID  `gorm:"type:uuid;not null;index;<-:create" json:"job_vacancy_id"`
	JobVacancy   JobVacancy `gorm:"foreignKey:JobVacancyID;references:ID" json:"-"`

	Data datatypes.JSONMap `json:"data"`

	Status string `gorm:"type:text;default:'pending'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;references:ID" json:"-"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// ValidStatus reports whether s is one of the accepted candidate statuses.
func ValidStatus(s string) bool {
	for _, v := range CandidateStatuses {
		if v == s {
			return true
		}
	}
	return false
}
