// Package role provides HTTP handlers for role administration. Every
// endpoint here sits behind the super-admin-only authorization.
package role

import (
	"errors"
	"fmt"
	"net/http"

	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleController handles role related endpoints
type RoleController struct {
	DB *database.DBinstanceStruct
}

// NewRoleController creates a new instance of RoleController
func NewRoleController(db *database.DBinstanceStruct) *RoleController {
	return &RoleController{
		DB: db,
	}
}

type createRoleInfo struct {
	Name          string      `json:"name" binding:"required"`
	IsSuperAdmin  bool        `json:"is_super_admin"`
	PermissionIDs []uuid.UUID `json:"permission_ids"`
}

type updateRoleInfo struct {
	Name          string       `json:"name"`
	IsSuperAdmin  *bool        `json:"is_super_admin"`
	PermissionIDs *[]uuid.UUID `json:"permission_ids"`
}

type setPermissionsInfo struct {
	PermissionIDs []uuid.UUID `json:"permission_ids" binding:"required"`
}

// CreateRole adds a role with an optional initial permission grant set.
func (rc *RoleController) CreateRole(c *gin.Context) {
	var info createRoleInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	perms, ok := rc.loadPermissions(c, info.PermissionIDs)
	if !ok {
		return
	}

	role := model.Role{
		Name:         info.Name,
		IsSuperAdmin: info.IsSuperAdmin,
		Permissions:  perms,
	}
	if err := rc.DB.Create(&role).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Role with name '%s' already exists", info.Name),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create role: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, role)
}

// GetRoles lists every role with its permissions.
func (rc *RoleController) GetRoles(c *gin.Context) {
	var roles []model.Role
	if err := rc.DB.Preload("Permissions").Order("created_at ASC").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve roles: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, roles)
}

// GetRoleByID returns one role with its permissions.
func (rc *RoleController) GetRoleByID(c *gin.Context) {
	role, ok := rc.loadRole(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, role)
}

// UpdateRole renames a role, toggles the super-admin flag or replaces the
// permission grant set wholesale.
func (rc *RoleController) UpdateRole(c *gin.Context) {
	role, ok := rc.loadRole(c)
	if !ok {
		return
	}

	var info updateRoleInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Name != "" {
		role.Name = info.Name
	}
	if info.IsSuperAdmin != nil {
		role.IsSuperAdmin = *info.IsSuperAdmin
	}

	if info.PermissionIDs != nil {
		perms, ok := rc.loadPermissions(c, *info.PermissionIDs)
		if !ok {
			return
		}
		if err := rc.DB.Model(&role).Association("Permissions").Replace(perms); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to update role permissions: ", err),
			})
			return
		}
		role.Permissions = perms
	}

	if err := rc.DB.Omit("Permissions").Save(&role).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Role with name '%s' already exists", role.Name),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update role: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, role)
}

// DeleteRole removes a role.
func (rc *RoleController) DeleteRole(c *gin.Context) {
	role, ok := rc.loadRole(c)
	if !ok {
		return
	}

	if err := rc.DB.Select("Permissions").Delete(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to delete role: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Role deleted"})
}

// AddPermission grants a single permission, referenced by key, to a role.
func (rc *RoleController) AddPermission(c *gin.Context) {
	role, ok := rc.loadRole(c)
	if !ok {
		return
	}

	perm, ok := rc.loadPermissionByKey(c)
	if !ok {
		return
	}

	for _, existing := range role.Permissions {
		if existing.ID == perm.ID {
			c.JSON(http.StatusOK, role)
			return
		}
	}

	if err := rc.DB.Model(&role).Association("Permissions").Append(&perm); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to grant permission: ", err),
		})
		return
	}
	role.Permissions = append(role.Permissions, perm)

	c.JSON(http.StatusOK, role)
}

// RemovePermission revokes a single permission, referenced by key.
func (rc *RoleController) RemovePermission(c *gin.Context) {
	role, ok := rc.loadRole(c)
	if !ok {
		return
	}

	perm, ok := rc.loadPermissionByKey(c)
	if !ok {
		return
	}

	if err := rc.DB.Model(&role).Association("Permissions").Delete(&perm); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to revoke permission: ", err),
		})
		return
	}

	remaining := make([]model.Permission, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		if p.ID != perm.ID {
			remaining = append(remaining, p)
		}
	}
	role.Permissions = remaining

	c.JSON(http.StatusOK, role)
}

// SetPermissions replaces a role's permission grant set wholesale.
func (rc *RoleController) SetPermissions(c *gin.Context) {
	role, ok := rc.loadRole(c)
	if !ok {
		return
	}

	var info setPermissionsInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	perms, ok := rc.loadPermissions(c, info.PermissionIDs)
	if !ok {
		return
	}

	if err := rc.DB.Model(&role).Association("Permissions").Replace(perms); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to set permissions: ", err),
		})
		return
	}
	role.Permissions = perms

	c.JSON(http.StatusOK, role)
}

func (rc *RoleController) loadRole(c *gin.Context) (model.Role, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid role id"})
		return model.Role{}, false
	}

	var role model.Role
	if err := rc.DB.Preload("Permissions").Where("id = ?", id).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("Role with ID '%s' not found", id),
			})
			return model.Role{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve role: %s", err.Error()),
		})
		return model.Role{}, false
	}
	return role, true
}

func (rc *RoleController) loadPermissionByKey(c *gin.Context) (model.Permission, bool) {
	key := c.Param("key")

	var perm model.Permission
	if err := rc.DB.Where("key = ?", key).First(&perm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("Permission with key '%s' not found", key),
			})
			return model.Permission{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve permission: %s", err.Error()),
		})
		return model.Permission{}, false
	}
	return perm, true
}

func (rc *RoleController) loadPermissions(c *gin.Context, ids []uuid.UUID) ([]model.Permission, bool) {
	if len(ids) == 0 {
		return []model.Permission{}, true
	}

	var perms []model.Permission
	if err := rc.DB.Where("id IN ?", ids).Find(&perms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve permissions: %s", err.Error()),
		})
		return nil, false
	}
	if len(perms) != len(ids) {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: "One or more permission ids do not exist",
		})
		return nil, false
	}
	return perms, true
}
