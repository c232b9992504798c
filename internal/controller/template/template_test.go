package template

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/auth"
	"RecruitPilot-backend/internal/database"
	"RecruitPilot-backend/internal/middleware"
	"RecruitPilot-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
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

func templateRouter() *gin.Engine {
	r := gin.Default()
	tc := &TemplateController{DB: testDB}
	r.POST("/templates", middleware.RequireAuth(testDB), middleware.Authorize(access.OpTemplateCreate), tc.CreateTemplate)
	r.GET("/templates", middleware.RequireAuth(testDB), middleware.Authorize(access.OpTemplateList), tc.GetTemplates)
	r.GET("/templates/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpTemplateGet), tc.GetTemplateByID)
	r.PATCH("/templates/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpTemplateUpdate), tc.UpdateTemplate)
	r.DELETE("/templates/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpTemplateDelete), tc.DeleteTemplate)
	return r
}

func TestCreateTemplate_success(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := templateRouter()

	body := gin.H{
		"name":        "Frontend Engineer Intake",
		"description": "Intake form for frontend roles",
		"fields": []gin.H{
			{"key": "full_name", "type": "text", "required": true},
			{"key": "portfolio", "type": "text"},
		},
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/templates", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Frontend Engineer Intake", resp["name"])
	fields, _ := resp["fields"].([]interface{})
	assert.Len(t, fields, 2)
}

func TestCreateTemplate_rejectsUnknownFieldType(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := templateRouter()

	body := gin.H{
		"name": "Broken Intake",
		"fields": []gin.H{
			{"key": "photo", "type": "image"},
		},
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/templates", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "unknown type")
}

func TestCreateTemplate_rejectsDuplicateKeys(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := templateRouter()

	body := gin.H{
		"name": "Broken Intake",
		"fields": []gin.H{
			{"key": "email", "type": "email"},
			{"key": "email", "type": "text"},
		},
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/templates", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "duplicate field key")
}

func TestCreateTemplate_agencyDenied(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestAgency1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := templateRouter()

	body := gin.H{
		"name":   "Agency Intake",
		"fields": []gin.H{{"key": "full_name", "type": "text"}},
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/templates", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User doesn't have permission to access", resp["error"])
}

func TestUpdateTemplate_replacesFields(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := templateRouter()

	body := gin.H{
		"name":   "Update Probe",
		"fields": []gin.H{{"key": "full_name", "type": "text", "required": true}},
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/templates", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	templateID, _ := resp["id"].(string)

	update := gin.H{
		"fields": []gin.H{
			{"key": "full_name", "type": "text", "required": true},
			{"key": "expected_salary", "type": "number"},
		},
	}
	rec, resp = testutil.MakeJSONRequest(update, token, r, "/templates/"+templateID, http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code)
	fields, _ := resp["fields"].([]interface{})
	assert.Len(t, fields, 2)
}

func TestGetTemplateByID_notFound(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := templateRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/templates/00000000-0000-0000-0000-000000000000", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTemplate(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	adminToken, err := auth.GetAccessToken(testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := templateRouter()

	body := gin.H{
		"name":   "Doomed Intake",
		"fields": []gin.H{{"key": "full_name", "type": "text"}},
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/templates", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	templateID, _ := resp["id"].(string)

	rec, resp = testutil.MakeJSONRequest(nil, adminToken, r, "/templates/"+templateID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Job template deleted", resp["message"])
}
