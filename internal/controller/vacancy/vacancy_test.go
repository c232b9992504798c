package vacancy

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/auth"
	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/dynschema"
	"RecruitPilot-backend/internal/middleware"
	"RecruitPilot-backend/internal/model"
	"RecruitPilot-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"gorm.io/datatypes"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func vacancyRouter() *gin.Engine {
	r := gin.Default()
	vc := &VacancyController{DB: testDB}
	r.POST("/vacancies", middleware.RequireAuth(testDB), middleware.Authorize(access.OpVacancyCreate), vc.CreateVacancy)
	r.GET("/vacancies", middleware.RequireAuth(testDB), middleware.Authorize(access.OpVacancyList), vc.GetVacancies)
	r.GET("/vacancies/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpVacancyGet), vc.GetVacancyByID)
	r.PATCH("/vacancies/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpVacancyUpdate), vc.UpdateVacancy)
	r.DELETE("/vacancies/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpVacancyDelete), vc.DeleteVacancy)
	r.POST("/vacancies/:id/agencies/:agency_id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpVacancyAssignAgency), vc.AssignAgency)
	r.DELETE("/vacancies/:id/agencies/:agency_id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpVacancyRemoveAgency), vc.RemoveAgency)
	return r
}

func createVacancy(t *testing.T, token string, r *gin.Engine, title string) string {
	body := gin.H{
		"title":           title,
		"description":     "Opened by test",
		"client_id":       database.TestClient1.ID.String(),
		"job_template_id": database.TestTemplate1.ID.String(),
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/vacancies", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	id, _ := resp["id"].(string)
	assert.NotEmpty(t, id)
	return id
}

func TestCreateVacancy_snapshotsTemplateFields(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	body := gin.H{
		"title":           "Platform Engineer",
		"description":     "Infra role",
		"client_id":       database.TestClient1.ID.String(),
		"job_template_id": database.TestTemplate1.ID.String(),
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/vacancies", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, database.TestEmployee1.ID.String(), resp["created_by"])

	fields, ok := resp["fields"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, fields, len(database.TestTemplateFields))
}

func TestCreateVacancy_unknownTemplate(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	body := gin.H{
		"title":           "Ghost Role",
		"client_id":       database.TestClient1.ID.String(),
		"job_template_id": "00000000-0000-0000-0000-000000000000",
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/vacancies", http.MethodPost)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job template not found", resp["error"])
}

func TestCreateVacancy_agencyRoleDenied(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestAgency1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	body := gin.H{
		"title":           "Not Allowed",
		"client_id":       database.TestClient1.ID.String(),
		"job_template_id": database.TestTemplate1.ID.String(),
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/vacancies", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User doesn't have permission to access", resp["error"])
}

func TestTemplateEditDoesNotReachExistingVacancy(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	vacancyID := createVacancy(t, token, r, "Snapshot Probe")

	// Edit the template directly after the vacancy exists.
	var template model.JobTemplate
	assert.NoError(t, testDB.Where("id = ?", database.TestTemplate1.ID).First(&template).Error)
	originalFields := template.Fields
	template.Fields = datatypes.NewJSONSlice([]dynschema.FieldDefinition{
		{Key: "only_field_left", Type: dynschema.TypeText, Required: true},
	})
	assert.NoError(t, testDB.Save(&template).Error)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/vacancies/"+vacancyID, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	fields, _ := resp["fields"].([]interface{})
	assert.Len(t, fields, len(database.TestTemplateFields), "vacancy must keep its snapshot")

	// Restore the shared fixture for other tests.
	template.Fields = originalFields
	assert.NoError(t, testDB.Save(&template).Error)
}

func TestGetVacancies_agencyOnlySeesAssigned(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestAgency1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/vacancies", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed []model.JobVacancy
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.NotEmpty(t, listed)
	for _, v := range listed {
		assert.True(t, v.HasAgency(database.TestAgency1.ID), "vacancy %s is not assigned to agency1", v.ID)
	}
}

func TestGetVacancyByID_unassignedAgencyDenied(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestAgency2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/vacancies/"+database.TestVacancy1.ID.String(), http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User doesn't have permission to access", resp["error"])
}

func TestUpdateVacancy_creatorOnly(t *testing.T) {
	creatorToken, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	vacancyID := createVacancy(t, creatorToken, r, "Ownership Probe")

	otherToken, err := auth.GetAccessToken(testDB, database.TestEmployee2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Hijacked"}, otherToken, r, "/vacancies/"+vacancyID, http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User doesn't have permission to access", resp["error"])

	rec, resp = testutil.MakeJSONRequest(gin.H{"title": "Renamed"}, creatorToken, r, "/vacancies/"+vacancyID, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", resp["title"])
}

func TestUpdateVacancy_fieldsReplacedWholesale(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	vacancyID := createVacancy(t, token, r, "Fields Probe")

	body := gin.H{
		"fields": []gin.H{
			{"key": "github", "type": "text", "required": true},
		},
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/vacancies/"+vacancyID, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	fields, _ := resp["fields"].([]interface{})
	assert.Len(t, fields, 1)
}

func TestUpdateVacancy_rejectsMalformedFields(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	vacancyID := createVacancy(t, token, r, "Bad Fields Probe")

	body := gin.H{
		"fields": []gin.H{
			{"key": "dup", "type": "text"},
			{"key": "dup", "type": "number"},
		},
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/vacancies/"+vacancyID, http.MethodPatch)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "duplicate field key")
}

func TestAssignAgency_roleEnforced(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	vacancyID := createVacancy(t, token, r, "Assignment Probe")

	// Employees cannot be assigned as agencies.
	rec, resp := testutil.MakeJSONRequest(nil, token, r,
		"/vacancies/"+vacancyID+"/agencies/"+database.TestEmployee2.ID.String(), http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Assigned user must have AGENCY role", resp["error"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r,
		"/vacancies/"+vacancyID+"/agencies/"+database.TestAgency2.ID.String(), http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	agencies, _ := resp["assigned_agencies"].([]interface{})
	assert.Len(t, agencies, 1)
}

func TestAssignAgency_idempotent(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	vacancyID := createVacancy(t, token, r, "Idempotent Assignment Probe")
	endpoint := "/vacancies/" + vacancyID + "/agencies/" + database.TestAgency1.ID.String()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, resp := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	agencies, _ := resp["assigned_agencies"].([]interface{})
	assert.Len(t, agencies, 1)
}

func TestRemoveAgency(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	vacancyID := createVacancy(t, token, r, "Removal Probe")
	endpoint := "/vacancies/" + vacancyID + "/agencies/" + database.TestAgency1.ID.String()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	agencies, _ := resp["assigned_agencies"].([]interface{})
	assert.Empty(t, agencies)
}

func TestDeleteVacancy_creatorOnly(t *testing.T) {
	creatorToken, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := vacancyRouter()

	vacancyID := createVacancy(t, creatorToken, r, "Deletion Probe")

	otherToken, err := auth.GetAccessToken(testDB, database.TestEmployee2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	rec, _ := testutil.MakeJSONRequest(nil, otherToken, r, "/vacancies/"+vacancyID, http.MethodDelete)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp := testutil.MakeJSONRequest(nil, creatorToken, r, "/vacancies/"+vacancyID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Job vacancy deleted", resp["message"])
}
