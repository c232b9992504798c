// Package permission provides HTTP handlers for the permission catalog.
// Super-admin only.
package permission

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

// PermissionController handles permission related endpoints
type PermissionController struct {
	DB *database.DBinstanceStruct
}

// NewPermissionController creates a new instance of PermissionController
func NewPermissionController(db *database.DBinstanceStruct) *PermissionController {
	return &PermissionController{
		DB: db,
	}
}

type createPermissionInfo struct {
	Key         string `json:"key" binding:"required"`
	Description string `json:"description"`
}

type updatePermissionInfo struct {
	Description string `json:"description"`
}

// CreatePermission adds a new key to the permission catalog.
func (pc *PermissionController) CreatePermission(c *gin.Context) {
	var info createPermissionInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	perm := model.Permission{
		Key:         info.Key,
		Description: info.Description,
	}
	if err := pc.DB.Create(&perm).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Permission with key '%s' already exists", info.Key),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create permission: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, perm)
}

// GetPermissions lists the whole catalog.
func (pc *PermissionController) GetPermissions(c *gin.Context) {
	var perms []model.Permission
	if err := pc.DB.Order("key ASC").Find(&perms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve permissions: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, perms)
}

// GetPermissionByID returns one catalog entry.
func (pc *PermissionController) GetPermissionByID(c *gin.Context) {
	perm, ok := pc.loadPermission(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, perm)
}

// UpdatePermission changes the description. Keys are immutable; roles
// reference them by identity and code references them by literal.
func (pc *PermissionController) UpdatePermission(c *gin.Context) {
	perm, ok := pc.loadPermission(c)
	if !ok {
		return
	}

	var info updatePermissionInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Description != "" {
		perm.Description = info.Description
	}

	if err := pc.DB.Save(&perm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update permission: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, perm)
}

// DeletePermission removes a catalog entry and its role grants.
func (pc *PermissionController) DeletePermission(c *gin.Context) {
	perm, ok := pc.loadPermission(c)
	if !ok {
		return
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_permissions WHERE permission_id = ?", perm.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&perm).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to delete permission: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Permission deleted"})
}

func (pc *PermissionController) loadPermission(c *gin.Context) (model.Permission, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid permission id"})
		return model.Permission{}, false
	}

	var perm model.Permission
	if err := pc.DB.Where("id = ?", id).First(&perm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("Permission with ID '%s' not found", id),
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
