package model

import (
	"time"

	"RecruitPilot-backend/internal/access"

	"github.com/google/uuid"
)

// Role groups permission grants under a unique name. A role with
// IsSuperAdmin set bypasses every role, permission and ownership check, so
// its permission list is irrelevant.
type Role struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name         string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
	IsSuperAdmin bool      `gorm:"default:false" json:"is_super_admin"`

	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// PermissionKeys collects the keys granted to the role, in the order loaded.
func (r Role) PermissionKeys() []string {
	keys := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		keys = append(keys, p.Key)
	}
	return keys
}

// Principal builds the request-scoped claim set for a user holding this
// role. The result is a value; nothing retains it across requests.
func (r Role) Principal(u User) access.Principal {
	return access.Principal{
		UserID:         u.ID,
		Email:          u.Email,
		RoleID:         r.ID,
		RoleName:       r.Name,
		IsSuperAdmin:   r.IsSuperAdmin,
		PermissionKeys: r.PermissionKeys(),
	}
}

// Permission is a single grantable capability, referenced by its unique key.
type Permission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Key         string    `gorm:"type:text;uniqueIndex;not null" json:"key"`
	Description string    `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
