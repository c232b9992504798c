// Package candidate provides HTTP handlers for candidate submissions.
package candidate

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

// CandidateController handles candidate related endpoints
type CandidateController struct {
	DB *database.DBinstanceStruct
}

// NewCandidateController creates a new instance of CandidateController
func NewCandidateController(db *database.DBinstanceStruct) *CandidateController {
	return &CandidateController{
		DB: db,
	}
}

type createCandidateInfo struct {
	JobVacancyID uuid.UUID      `json:"job_vacancy_id" binding:"required"`
	Data         map[string]any `json:"data" binding:"required"`
	Notes        string         `json:"notes"`
}

type updateCandidateInfo struct {
	Data   map[string]any `json:"data"`
	Status string         `json:"status"`
	Notes  string         `json:"notes"`
}

type validationFailedResponse struct {
	Error  string                 `json:"error"`
	Errors []dynschema.FieldError `json:"errors"`
}

// createdByPrincipal is the row-level rule for candidates: an agency may
// only touch submissions it created.
func createdByPrincipal(candidate model.Candidate) access.OwnershipCheck {
	return func(p access.Principal) bool {
		return candidate.CreatedByID == p.UserID
	}
}

// CreateCandidate submits a candidate for a vacancy.
// @Summary Submit a candidate for a job vacancy
// @Description Caller must be an agency assigned to the vacancy. The data payload is validated against the vacancy's field snapshot; every violation is reported.
// @Tags Candidate
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Candidate body createCandidateInfo true "Vacancy id and field answers"
// @Success 201 {object} model.Candidate "Candidate created"
// @Failure 400 {object} validationFailedResponse "Unknown vacancy or invalid data payload"
// @Failure 403 {object} utilities.ErrorResponse "Not assigned to this vacancy"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidates [post]
func (cc *CandidateController) CreateCandidate(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info createCandidateInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var vacancy model.JobVacancy
	if err := cc.DB.Preload("AssignedAgencies").Where("id = ?", info.JobVacancyID).First(&vacancy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Job vacancy not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job vacancy: %s", err.Error()),
		})
		return
	}

	decision := access.Decide(principal, access.Requirement{}, func(p access.Principal) bool {
		return vacancy.HasAgency(p.UserID)
	})
	if !decision.Allowed {
		middleware.RespondDenied(c, principal, decision)
		return
	}

	if violations := dynschema.Validate(info.Data, vacancy.Fields); violations != nil {
		c.JSON(http.StatusBadRequest, validationFailedResponse{
			Error:  "Candidate data is invalid",
			Errors: violations,
		})
		return
	}

	candidate := model.Candidate{
		JobVacancyID: vacancy.ID,
		Data:         datatypes.JSONMap(info.Data),
		Status:       model.CandidateStatusPending,
		Notes:        info.Notes,
		CreatedByID:  principal.UserID,
	}
	if err := cc.DB.Create(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create candidate: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

// GetCandidates lists candidates. Agencies only see their own submissions;
// admins and employees may filter by vacancy with the job_vacancy_id query.
// @Summary List candidates
// @Tags Candidate
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job_vacancy_id query string false "Restrict to one vacancy (ignored for agencies)"
// @Success 200 {array} model.Candidate
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidates [get]
func (cc *CandidateController) GetCandidates(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	query := cc.DB.Model(&model.Candidate{})

	if principal.RoleName == access.RoleAgency {
		query = query.Where("created_by_id = ?", principal.UserID)
	} else if rawVacancyID := c.Query("job_vacancy_id"); rawVacancyID != "" {
		vacancyID, err := uuid.Parse(rawVacancyID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job_vacancy_id"})
			return
		}
		query = query.Where("job_vacancy_id = ?", vacancyID)
	}

	var candidates []model.Candidate
	if err := query.Order("created_at ASC").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve candidates: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, candidates)
}

// GetCandidateByID returns one candidate. Agencies only reach their own.
// @Summary Get a candidate by id
// @Tags Candidate
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Candidate id"
// @Success 200 {object} model.Candidate
// @Failure 403 {object} utilities.ErrorResponse "Submitted by another agency"
// @Failure 404 {object} utilities.ErrorResponse "Unknown candidate"
// @Router /candidates/{id} [get]
func (cc *CandidateController) GetCandidateByID(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	candidate, ok := cc.loadCandidate(c)
	if !ok {
		return
	}

	if principal.RoleName == access.RoleAgency {
		decision := access.Decide(principal, access.Requirement{}, createdByPrincipal(candidate))
		if !decision.Allowed {
			middleware.RespondDenied(c, principal, decision)
			return
		}
	}

	c.JSON(http.StatusOK, candidate)
}

// UpdateCandidate edits a submission's data, status or notes. Only the
// agency that created the candidate may edit it; a changed data payload is
// re-validated against the vacancy's field snapshot.
// @Summary Update a candidate
// @Tags Candidate
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Candidate id"
// @Param Candidate body updateCandidateInfo true "Fields to change"
// @Success 200 {object} model.Candidate
// @Failure 400 {object} validationFailedResponse "Invalid data payload or status"
// @Failure 403 {object} utilities.ErrorResponse "Submitted by another agency"
// @Failure 404 {object} utilities.ErrorResponse "Unknown candidate"
// @Router /candidates/{id} [patch]
func (cc *CandidateController) UpdateCandidate(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	candidate, ok := cc.loadCandidate(c)
	if !ok {
		return
	}

	decision := access.Decide(principal, access.Requirement{}, createdByPrincipal(candidate))
	if !decision.Allowed {
		middleware.RespondDenied(c, principal, decision)
		return
	}

	var info updateCandidateInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Status != "" && !model.ValidStatus(info.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Status '%s' not allowed", info.Status),
		})
		return
	}

	if info.Data != nil {
		var vacancy model.JobVacancy
		if err := cc.DB.Where("id = ?", candidate.JobVacancyID).First(&vacancy).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve job vacancy: %s", err.Error()),
			})
			return
		}
		if violations := dynschema.Validate(info.Data, vacancy.Fields); violations != nil {
			c.JSON(http.StatusBadRequest, validationFailedResponse{
				Error:  "Candidate data is invalid",
				Errors: violations,
			})
			return
		}
		candidate.Data = datatypes.JSONMap(info.Data)
	}

	if info.Status != "" {
		candidate.Status = info.Status
	}
	if info.Notes != "" {
		candidate.Notes = info.Notes
	}

	if err := cc.DB.Save(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to update candidate: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// DeleteCandidate removes a submission. Creator only.
// @Summary Delete a candidate
// @Tags Candidate
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Candidate id"
// @Success 200 {object} utilities.MessageResponse
// @Failure 403 {object} utilities.ErrorResponse "Submitted by another agency"
// @Failure 404 {object} utilities.ErrorResponse "Unknown candidate"
// @Router /candidates/{id} [delete]
func (cc *CandidateController) DeleteCandidate(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	candidate, ok := cc.loadCandidate(c)
	if !ok {
		return
	}

	decision := access.Decide(principal, access.Requirement{}, createdByPrincipal(candidate))
	if !decision.Allowed {
		middleware.RespondDenied(c, principal, decision)
		return
	}

	if err := cc.DB.Delete(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to delete candidate: ", err),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Candidate deleted"})
}

// loadCandidate resolves the :id path param. Writes the error response and
// returns ok=false when the id is malformed or unknown.
func (cc *CandidateController) loadCandidate(c *gin.Context) (model.Candidate, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid candidate id"})
		return model.Candidate{}, false
	}

	var candidate model.Candidate
	if err := cc.DB.Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: fmt.Sprintf("Candidate with ID '%s' not found", id),
			})
			return model.Candidate{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve candidate: %s", err.Error()),
		})
		return model.Candidate{}, false
	}
	return candidate, true
}
