// Package template provides HTTP handlers for job template authoring.
package template

import (
	"errors"
	"fmt"
	"net/http"

	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/dynschema"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TemplateController handles job template related endpoints
type TemplateController struct {
	DB *database.DBinstanceStruct
}

// NewTemplateController creates a new instance of TemplateController
func NewTemplateController(db *database.DBinstanceStruct) *TemplateController {
	return &TemplateController{
		DB: db,
	}
}

type createTemplateInfo struct {
	Name        string                      `json:"name" binding:"required"`
	Description string                      `json:"description"`
	Fields      []dynschema.FieldDefinition `json:"fields" binding:"required"`
}

type updateTemplateInfo struct {
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Fields      []dynschema.FieldDefinition `json:"fields"`
	IsActive    *bool                       `json:"is_active"`
}

// CreateTemplate authors a new intake form template.
// @Summary Create a job template
// @Tags Template
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Template body createTemplateInfo true "Template data"
// @Success 201 {object} model.JobTemplate
// @Failure 400 {object} utilities.ErrorResponse "Malformed field list"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /templates [post]
func (tc *TemplateController) CreateTemplate(c *gin.Context) {
	var info createTemplateInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if err := dynschema.CheckFields(info.Fields); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	template := model.JobTemplate{
		Name:        info.Name,
		Description: info.Description,
		Fields:      datatypes.NewJSONSlice(info.Fields),
	}
	if err := tc.DB.Create(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job template: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplates lists every template.
// @Summary List job templates
// @Tags Template
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobTemplate
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /templates [get]
func (tc *TemplateController) GetTemplates(c *gin.Context) {
	var templates []model.JobTemplate
	if err := tc.DB.Order("created_at ASC").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job templates: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplateByID returns one template.
// @Summary Get a job template by id
// @Tags Template
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Template id"
// @Success 200 {object} model.JobTemplate
// @Failure 404 {object} utilities.ErrorResponse "Unknown template"
// @Router /templates/{id} [get]
func (tc *TemplateController) GetTemplateByID(c *gin.Context) {
	template, ok := tc.loadTemplate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, template)
}

// UpdateTemplate edits a template. Vacancies created earlier keep the field
// snapshot they were born with; nothing here touches them.
// @Summary Update a job template
// @Tags Template
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Template id"
// @Param Template body updateTemplateInfo true "Fields to change"
// @Success 200 {object} model.JobTemplate
// @Failure 400 {object} utilities.ErrorResponse "Malformed field list"
// @Failure 404 {object} utilities.ErrorResponse "Unknown template"
// @Router /templates/{id} [patch]
func (tc *TemplateController) UpdateTemplate(c *gin.Context) {
	template, ok := tc.loadTemplate(c)
	if !ok {
		return
	}

	var info updateTemplateInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Name != "" {
		template.Name = info.Name
	}
	if info.Description != "" {
		template.Description = info.Description
	}
	if info.IsActive != nil {
		template.IsActive = *info.IsActive
	}
	if info.Fields != nil {
		if err := dynschema.CheckFields(info.Fields); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		template.Fields = datatypes.NewJSONSlice(info.Fields)
	}

	if err := tc.DB.Save(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update job template: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate removes a template. Existing vacancies keep working; they
// carry their own copy of the fields.
// @Summary Delete a job template
// @Tags Template
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Template id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 404 {object} utilities.ErrorResponse "Unknown template"
// @Router /templates/{id} [delete]
func (tc *TemplateController) DeleteTemplate(c *gin.Context) {
	template, ok := tc.loadTemplate(c)
	if !ok {
		return
	}

	if err := tc.DB.Delete(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to delete job template: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job template deleted"})
}

func (tc *TemplateController) loadTemplate(c *gin.Context) (model.JobTemplate, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid template id"})
		return model.JobTemplate{}, false
	}

	var template model.JobTemplate
	if err := tc.DB.Where("id = ?", id).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("Job template with ID '%s' not found", id),
			})
			return model.JobTemplate{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job template: %s", err.Error()),
		})
		return model.JobTemplate{}, false
	}
	return template, true
}
