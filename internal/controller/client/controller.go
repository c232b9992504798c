// Package client provides HTTP handlers for hiring-client management.
package client

import (
	"errors"
	"fmt"
	"net/http"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientController handles client related endpoints
type ClientController struct {
	DB *database.DBinstanceStruct
}

// NewClientController creates a new instance of ClientController
func NewClientController(db *database.DBinstanceStruct) *ClientController {
	return &ClientController{
		DB: db,
	}
}

type createClientInfo struct {
	Name               string    `json:"name" binding:"required"`
	Email              string    `json:"email" binding:"required,email"`
	Phone              string    `json:"phone"`
	Industry           string    `json:"industry"`
	Tags               []string  `json:"tags"`
	Description        string    `json:"description"`
	AssignedEmployeeID uuid.UUID `json:"assigned_employee_id" binding:"required"`
}

type updateClientInfo struct {
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Industry           string    `json:"industry"`
	Tags               []string  `json:"tags"`
	Description        string    `json:"description"`
	AssignedEmployeeID uuid.UUID `json:"assigned_employee_id"`
	IsActive           *bool     `json:"is_active"`
}

// CreateClient registers a hiring client and assigns it to an employee.
// @Summary Create a client
// @Tags Client
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Client body createClientInfo true "Client data"
// @Success 201 {object} model.Client
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 403 {object} utilities.ErrorResponse "Assigned user is not an employee"
// @Failure 404 {object} utilities.ErrorResponse "Unknown employee"
// @Failure 409 {object} utilities.ErrorResponse "Email already in use"
// @Router /clients [post]
func (cc *ClientController) CreateClient(c *gin.Context) {
	var info createClientInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if !cc.checkEmployee(c, info.AssignedEmployeeID) {
		return
	}

	// Pre-check for a friendlier message; the unique index on email is the
	// real guard against concurrent creates.
	var count int64
	if err := cc.DB.Model(&model.Client{}).Where("email = ?", info.Email).Count(&count).Error; err == nil && count > 0 {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: fmt.Sprintf("Client with email '%s' already exists", info.Email),
		})
		return
	}

	client := model.Client{
		Name:               info.Name,
		Email:              info.Email,
		Phone:              info.Phone,
		Industry:           info.Industry,
		Tags:               info.Tags,
		Description:        info.Description,
		AssignedEmployeeID: info.AssignedEmployeeID,
	}
	if err := cc.DB.Create(&client).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Client with email '%s' already exists", info.Email),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create client: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients lists clients. Employees only see clients assigned to them.
// @Summary List clients
// @Tags Client
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Client
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /clients [get]
func (cc *ClientController) GetClients(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	query := cc.DB.Model(&model.Client{})
	if principal.RoleName == access.RoleEmployee {
		query = query.Where("assigned_employee_id = ?", principal.UserID)
	}

	var clients []model.Client
	if err := query.Order("created_at ASC").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve clients: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClientByID returns one client. An employee asking for a client
// assigned to someone else gets a 404, not a 403, so the record's existence
// is not leaked.
// @Summary Get a client by id
// @Tags Client
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Client id"
// @Success 200 {object} model.Client
// @Failure 404 {object} utilities.ErrorResponse "Unknown or unassigned client"
// @Router /clients/{id} [get]
func (cc *ClientController) GetClientByID(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	client, ok := cc.loadClient(c)
	if !ok {
		return
	}

	if principal.RoleName == access.RoleEmployee && client.AssignedEmployeeID != principal.UserID {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: fmt.Sprintf("Client with ID '%s' not found or not assigned to you", client.ID),
		})
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient edits a client record.
// @Summary Update a client
// @Tags Client
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Client id"
// @Param Client body updateClientInfo true "Fields to change"
// @Success 200 {object} model.Client
// @Failure 403 {object} utilities.ErrorResponse "Assigned user is not an employee"
// @Failure 404 {object} utilities.ErrorResponse "Unknown client"
// @Failure 409 {object} utilities.ErrorResponse "Email already in use"
// @Router /clients/{id} [patch]
func (cc *ClientController) UpdateClient(c *gin.Context) {
	client, ok := cc.loadClient(c)
	if !ok {
		return
	}

	var info updateClientInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Email != "" && info.Email != client.Email {
		var count int64
		if err := cc.DB.Model(&model.Client{}).Where("email = ? AND id <> ?", info.Email, client.ID).Count(&count).Error; err == nil && count > 0 {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Client with email '%s' already exists", info.Email),
			})
			return
		}
		client.Email = info.Email
	}

	if info.AssignedEmployeeID != uuid.Nil {
		if !cc.checkEmployee(c, info.AssignedEmployeeID) {
			return
		}
		client.AssignedEmployeeID = info.AssignedEmployeeID
	}

	if info.Name != "" {
		client.Name = info.Name
	}
	if info.Phone != "" {
		client.Phone = info.Phone
	}
	if info.Industry != "" {
		client.Industry = info.Industry
	}
	if info.Description != "" {
		client.Description = info.Description
	}
	if info.Tags != nil {
		client.Tags = info.Tags
	}
	if info.IsActive != nil {
		client.IsActive = *info.IsActive
	}

	if err := cc.DB.Save(&client).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: fmt.Sprintf("Client with email '%s' already exists", client.Email),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update client: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client record.
// @Summary Delete a client
// @Tags Client
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Client id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 404 {object} utilities.ErrorResponse "Unknown client"
// @Router /clients/{id} [delete]
func (cc *ClientController) DeleteClient(c *gin.Context) {
	client, ok := cc.loadClient(c)
	if !ok {
		return
	}

	if err := cc.DB.Delete(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to delete client: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Client deleted"})
}

// checkEmployee verifies the assignee exists and holds the EMPLOYEE role.
// Writes the error response and returns false otherwise.
func (cc *ClientController) checkEmployee(c *gin.Context, employeeID uuid.UUID) bool {
	var employee model.User
	if err := cc.DB.Preload("Role").Where("id = ?", employeeID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("Employee with ID '%s' not found", employeeID),
			})
			return false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employee: %s", err.Error()),
		})
		return false
	}

	if employee.Role.Name != access.RoleEmployee {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Assigned user must have EMPLOYEE role",
		})
		return false
	}
	return true
}

func (cc *ClientController) loadClient(c *gin.Context) (model.Client, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid client id"})
		return model.Client{}, false
	}

	var client model.Client
	if err := cc.DB.Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("Client with ID '%s' not found", id),
			})
			return model.Client{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve client: %s", err.Error()),
		})
		return model.Client{}, false
	}
	return client, true
}
