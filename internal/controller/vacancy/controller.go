// Package vacancy provides HTTP handlers for job vacancy operations,
// including the template snapshot taken at creation time.
package vacancy

import (
	"errors"
	"fmt"
	"net/http"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/dynschema"
	"RecruitPilot-backend/internal/middleware"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VacancyController handles job vacancy related endpoints
type VacancyController struct {
	DB *database.DBinstanceStruct
}

// NewVacancyController creates a new instance of VacancyController
func NewVacancyController(db *database.DBinstanceStruct) *VacancyController {
	return &VacancyController{
		DB: db,
	}
}

type createVacancyInfo struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	ClientID      uuid.UUID `json:"client_id" binding:"required"`
	JobTemplateID uuid.UUID `json:"job_template_id" binding:"required"`
}

type updateVacancyInfo struct {
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	ClientID    uuid.UUID                   `json:"client_id"`
	Fields      []dynschema.FieldDefinition `json:"fields"`
	IsActive    *bool                       `json:"is_active"`
}

func createdByPrincipal(vacancy model.JobVacancy) access.OwnershipCheck {
	return func(p access.Principal) bool {
		return vacancy.CreatedByID == p.UserID
	}
}

// CreateVacancy opens a vacancy for a client. The template's field list is
// snapshotted into the vacancy here, exactly once; later template edits do
// not reach vacancies that already exist.
// @Summary Create a job vacancy from a template
// @Tags Vacancy
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Vacancy body createVacancyInfo true "Vacancy data"
// @Success 201 {object} model.JobVacancy "Vacancy with its snapshotted fields"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 404 {object} utilities.ErrorResponse "Unknown template or client"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /vacancies [post]
func (vc *VacancyController) CreateVacancy(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info createVacancyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var template model.JobTemplate
	if err := vc.DB.Where("id = ?", info.JobTemplateID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job template: %s", err.Error()),
		})
		return
	}

	var client model.Client
	if err := vc.DB.Where("id = ?", info.ClientID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve client: %s", err.Error()),
		})
		return
	}

	vacancy := model.JobVacancy{
		Title:         info.Title,
		Description:   info.Description,
		ClientID:      client.ID,
		JobTemplateID: template.ID,
		Fields:        datatypes.NewJSONSlice(dynschema.Snapshot(template.Fields)),
		CreatedByID:   principal.UserID,
	}
	if err := vc.DB.Create(&vacancy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job vacancy: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, vacancy)
}

// GetVacancies lists vacancies. Agencies only see vacancies they are
// assigned to; admins and employees may filter by client.
// @Summary List job vacancies
// @Tags Vacancy
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param client_id query string false "Restrict to one client (ignored for agencies)"
// @Success 200 {array} model.JobVacancy
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /vacancies [get]
func (vc *VacancyController) GetVacancies(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	query := vc.DB.Preload("AssignedAgencies").Model(&model.JobVacancy{})

	if principal.RoleName == access.RoleAgency {
		query = query.Where(
			"id IN (SELECT job_vacancy_id FROM vacancy_agencies WHERE user_id = ?)",
			principal.UserID,
		)
	} else if rawClientID := c.Query("client_id"); rawClientID != "" {
		clientID, err := uuid.Parse(rawClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid client_id"})
			return
		}
		query = query.Where("client_id = ?", clientID)
	}

	var vacancies []model.JobVacancy
	if err := query.Order("created_at ASC").Find(&vacancies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job vacancies: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, vacancies)
}

// GetVacancyByID returns one vacancy. Agencies only reach vacancies they
// are assigned to.
// @Summary Get a job vacancy by id
// @Tags Vacancy
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Vacancy id"
// @Success 200 {object} model.JobVacancy
// @Failure 403 {object} utilities.ErrorResponse "Not assigned to this vacancy"
// @Failure 404 {object} utilities.ErrorResponse "Unknown vacancy"
// @Router /vacancies/{id} [get]
func (vc *VacancyController) GetVacancyByID(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	vacancy, ok := vc.loadVacancy(c)
	if !ok {
		return
	}

	if principal.RoleName == access.RoleAgency {
		decision := access.Decide(principal, access.Requirement{}, func(p access.Principal) bool {
			return vacancy.HasAgency(p.UserID)
		})
		if !decision.Allowed {
			middleware.RespondDenied(c, principal, decision)
			return
		}
	}

	c.JSON(http.StatusOK, vacancy)
}

// UpdateVacancy edits a vacancy. Creator only. A fields payload replaces
// the snapshot wholesale; it is never merged with or re-pulled from the
// template.
// @Summary Update a job vacancy
// @Tags Vacancy
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Vacancy id"
// @Param Vacancy body updateVacancyInfo true "Fields to change"
// @Success 200 {object} model.JobVacancy
// @Failure 400 {object} utilities.ErrorResponse "Malformed field list"
// @Failure 403 {object} utilities.ErrorResponse "Created by another employee"
// @Failure 404 {object} utilities.ErrorResponse "Unknown vacancy"
// @Router /vacancies/{id} [patch]
func (vc *VacancyController) UpdateVacancy(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	vacancy, ok := vc.loadVacancy(c)
	if !ok {
		return
	}

	decision := access.Decide(principal, access.Requirement{}, createdByPrincipal(vacancy))
	if !decision.Allowed {
		middleware.RespondDenied(c, principal, decision)
		return
	}

	var info updateVacancyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Title != "" {
		vacancy.Title = info.Title
	}
	if info.Description != "" {
		vacancy.Description = info.Description
	}
	if info.ClientID != uuid.Nil {
		vacancy.ClientID = info.ClientID
	}
	if info.IsActive != nil {
		vacancy.IsActive = *info.IsActive
	}
	if info.Fields != nil {
		if err := dynschema.CheckFields(info.Fields); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		vacancy.Fields = datatypes.NewJSONSlice(dynschema.Snapshot(info.Fields))
	}

	if err := vc.DB.Save(&vacancy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update job vacancy: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, vacancy)
}

// DeleteVacancy removes a vacancy. Creator only.
// @Summary Delete a job vacancy
// @Tags Vacancy
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Vacancy id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 403 {object} utilities.ErrorResponse "Created by another employee"
// @Failure 404 {object} utilities.ErrorResponse "Unknown vacancy"
// @Router /vacancies/{id} [delete]
func (vc *VacancyController) DeleteVacancy(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	vacancy, ok := vc.loadVacancy(c)
	if !ok {
		return
	}

	decision := access.Decide(principal, access.Requirement{}, createdByPrincipal(vacancy))
	if !decision.Allowed {
		middleware.RespondDenied(c, principal, decision)
		return
	}

	if err := vc.DB.Select("AssignedAgencies").Delete(&vacancy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to delete job vacancy: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job vacancy deleted"})
}

// AssignAgency adds an agency user to the vacancy's assignment set. The
// target must hold the AGENCY role.
// @Summary Assign an agency to a vacancy
// @Tags Vacancy
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Vacancy id"
// @Param agency_id path string true "Agency user id"
// @Success 200 {object} model.JobVacancy
// @Failure 400 {object} utilities.ErrorResponse "Target user is not an agency"
// @Failure 404 {object} utilities.ErrorResponse "Unknown vacancy or user"
// @Router /vacancies/{id}/agencies/{agency_id} [post]
func (vc *VacancyController) AssignAgency(c *gin.Context) {
	vacancy, ok := vc.loadVacancy(c)
	if !ok {
		return
	}

	agency, ok := vc.loadAgencyUser(c)
	if !ok {
		return
	}

	if !vacancy.HasAgency(agency.ID) {
		if err := vc.DB.Model(&vacancy).Association("AssignedAgencies").Append(&agency); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprint("Failed to assign agency: ", err),
			})
			return
		}
		vacancy.AssignedAgencies = append(vacancy.AssignedAgencies, agency)
	}

	c.JSON(http.StatusOK, vacancy)
}

// RemoveAgency drops an agency user from the vacancy's assignment set.
// @Summary Unassign an agency from a vacancy
// @Tags Vacancy
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Vacancy id"
// @Param agency_id path string true "Agency user id"
// @Success 200 {object} model.JobVacancy
// @Failure 404 {object} utilities.ErrorResponse "Unknown vacancy or user"
// @Router /vacancies/{id}/agencies/{agency_id} [delete]
func (vc *VacancyController) RemoveAgency(c *gin.Context) {
	vacancy, ok := vc.loadVacancy(c)
	if !ok {
		return
	}

	agency, ok := vc.loadAgencyUser(c)
	if !ok {
		return
	}

	if err := vc.DB.Model(&vacancy).Association("AssignedAgencies").Delete(&agency); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to unassign agency: ", err),
		})
		return
	}

	remaining := make([]model.User, 0, len(vacancy.AssignedAgencies))
	for _, u := range vacancy.AssignedAgencies {
		if u.ID != agency.ID {
			remaining = append(remaining, u)
		}
	}
	vacancy.AssignedAgencies = remaining

	c.JSON(http.StatusOK, vacancy)
}

func (vc *VacancyController) loadVacancy(c *gin.Context) (model.JobVacancy, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid vacancy id"})
		return model.JobVacancy{}, false
	}

	var vacancy model.JobVacancy
	if err := vc.DB.Preload("AssignedAgencies").Where("id = ?", id).First(&vacancy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("Job vacancy with ID '%s' not found", id),
			})
			return model.JobVacancy{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job vacancy: %s", err.Error()),
		})
		return model.JobVacancy{}, false
	}
	return vacancy, true
}

func (vc *VacancyController) loadAgencyUser(c *gin.Context) (model.User, bool) {
	agencyID, err := uuid.Parse(c.Param("agency_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid agency id"})
		return model.User{}, false
	}

	var agency model.User
	if err := vc.DB.Preload("Role").Where("id = ?", agencyID).First(&agency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("User with ID '%s' not found", agencyID),
			})
			return model.User{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user: %s", err.Error()),
		})
		return model.User{}, false
	}

	if agency.Role.Name != access.RoleAgency {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Assigned user must have AGENCY role",
		})
		return model.User{}, false
	}
	return agency, true
}
