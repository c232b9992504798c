// Package user provides HTTP handlers for account administration.
// Super-admin only.
package user

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

// UserController handles user related endpoints
type UserController struct {
	DB *database.DBinstanceStruct
}

// NewUserController creates a new instance of UserController
func NewUserController(db *database.DBinstanceStruct) *UserController {
	return &UserController{
		DB: db,
	}
}

type createUserInfo struct {
	FullName string    `json:"full_name" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=8"`
	RoleID   uuid.UUID `json:"role_id" binding:"required"`
}

type updateUserInfo struct {
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	RoleID   uuid.UUID `json:"role_id"`
	IsActive *bool     `json:"is_active"`
}

// CreateUser registers an account with a role.
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param User body createUserInfo true "User data"
// @Success 201 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 404 {object} utilities.ErrorResponse "Unknown role"
// @Failure 409 {object} utilities.ErrorResponse "Email already in use"
// @Router /users [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	var info createUserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if !uc.checkRole(c, info.RoleID) {
		return
	}

	hashed, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to hash password: ", err),
		})
		return
	}

	user := model.User{
		FullName: info.FullName,
		Email:    info.Email,
		Password: hashed,
		RoleID:   info.RoleID,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("User with email '%s' already exists", info.Email),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create user: ", err),
		})
		return
	}

	uc.DB.Preload("Role").Where("id = ?", user.ID).First(&user)
	c.JSON(http.StatusCreated, user)
}

// GetUsers lists every account with its role.
// @Summary List users
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.User
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users [get]
func (uc *UserController) GetUsers(c *gin.Context) {
	var users []model.User
	if err := uc.DB.Preload("Role").Order("created_at ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve users: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID returns one account.
// @Summary Get a user by id
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User id"
// @Success 200 {object} model.User
// @Failure 404 {object} utilities.ErrorResponse "Unknown user"
// @Router /users/{id} [get]
func (uc *UserController) GetUserByID(c *gin.Context) {
	user, ok := uc.loadUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser edits an account. A new password is re-hashed; a new role id
// must exist.
// @Summary Update a user
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User id"
// @Param User body updateUserInfo true "Fields to change"
// @Success 200 {object} model.User
// @Failure 404 {object} utilities.ErrorResponse "Unknown user or role"
// @Failure 409 {object} utilities.ErrorResponse "Email already in use"
// @Router /users/{id} [patch]
func (uc *UserController) UpdateUser(c *gin.Context) {
	user, ok := uc.loadUser(c)
	if !ok {
		return
	}

	var info updateUserInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.FullName != "" {
		user.FullName = info.FullName
	}
	if info.Email != "" {
		user.Email = info.Email
	}
	if info.Password != "" {
		hashed, err := utilities.HashPassword(info.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to hash password: ", err),
			})
			return
		}
		user.Password = hashed
	}
	if info.RoleID != uuid.Nil {
		if !uc.checkRole(c, info.RoleID) {
			return
		}
		user.RoleID = info.RoleID
	}
	if info.IsActive != nil {
		user.IsActive = *info.IsActive
	}

	if err := uc.DB.Omit("Role").Save(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("User with email '%s' already exists", user.Email),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update user: ", err),
		})
		return
	}

	uc.DB.Preload("Role").Where("id = ?", user.ID).First(&user)
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account.
// @Summary Delete a user
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "User id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 404 {object} utilities.ErrorResponse "Unknown user"
// @Router /users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	user, ok := uc.loadUser(c)
	if !ok {
		return
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to delete user: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "User deleted"})
}

func (uc *UserController) checkRole(c *gin.Context, roleID uuid.UUID) bool {
	var count int64
	if err := uc.DB.Model(&model.Role{}).Where("id = ?", roleID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve role: %s", err.Error()),
		})
		return false
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: fmt.Sprintf("Role with ID '%s' not found", roleID),
		})
		return false
	}
	return true
}

func (uc *UserController) loadUser(c *gin.Context) (model.User, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid user id"})
		return model.User{}, false
	}

	var user model.User
	if err := uc.DB.Preload("Role").Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("User with ID '%s' not found", id),
			})
			return model.User{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user: %s", err.Error()),
		})
		return model.User{}, false
	}
	return user, true
}
