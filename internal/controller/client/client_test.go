package client

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
	"RecruitPilot-backend/internal/middleware"
	"RecruitPilot-backend/internal/model"
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

func clientRouter() *gin.Engine {
	r := gin.Default()
	cc := &ClientController{DB: testDB}
	r.POST("/clients", middleware.RequireAuth(testDB), middleware.Authorize(access.OpClientCreate), cc.CreateClient)
	r.GET("/clients", middleware.RequireAuth(testDB), middleware.Authorize(access.OpClientList), cc.GetClients)
	r.GET("/clients/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpClientGet), cc.GetClientByID)
	r.PATCH("/clients/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpClientUpdate), cc.UpdateClient)
	r.DELETE("/clients/:id", middleware.RequireAuth(testDB), middleware.Authorize(access.OpClientDelete), cc.DeleteClient)
	return r
}

func TestCreateClient_success(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := clientRouter()

	body := gin.H{
		"name":                 "Orbit Labs",
		"email":                "hello@orbitlabs.example.com",
		"industry":             "Aerospace",
		"tags":                 []string{"hardware"},
		"assigned_employee_id": database.TestEmployee2.ID.String(),
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/clients", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Orbit Labs", resp["name"])
	assert.Equal(t, database.TestEmployee2.ID.String(), resp["assigned_employee_id"])
}

func TestCreateClient_duplicateEmail(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := clientRouter()

	body := gin.H{
		"name":                 "TechNova Clone",
		"email":                database.TestClient1.Email,
		"assigned_employee_id": database.TestEmployee1.ID.String(),
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/clients", http.MethodPost)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp["error"], "already exists")
}

func TestCreateClient_assigneeMustBeEmployee(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := clientRouter()

	body := gin.H{
		"name":                 "Misassigned Inc",
		"email":                "misassigned@example.com",
		"assigned_employee_id": database.TestAgency1.ID.String(),
	}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/clients", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Assigned user must have EMPLOYEE role", resp["error"])
}

func TestGetClients_employeeScoped(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := clientRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/clients", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed []model.Client
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.NotEmpty(t, listed)
	for _, cl := range listed {
		assert.Equal(t, database.TestEmployee1.ID, cl.AssignedEmployeeID)
	}
}

func TestGetClientByID_unassignedEmployeeGets404(t *testing.T) {
	// 404 rather than 403 so existence is not leaked to other employees.
	token, err := auth.GetAccessToken(testDB, database.TestEmployee2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := clientRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/clients/"+database.TestClient1.ID.String(), http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "not found or not assigned to you")
}

func TestGetClientByID_assignedEmployee(t *testing.T) {
	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := clientRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/clients/"+database.TestClient1.ID.String(), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestClient1.Email, resp["email"])
}

func TestUpdateClient_reassignsEmployee(t *testing.T) {
	adminToken, err := auth.GetAccessToken(testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := clientRouter()

	// Work on a throwaway client so fixture assignments stay stable.
	body := gin.H{
		"name":                 "Shifting Sands",
		"email":                "shifting@example.com",
		"assigned_employee_id": database.TestEmployee1.ID.String(),
	}
	rec, resp := testutil.MakeJSONRequest(body, adminToken, r, "/clients", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	clientID, _ := resp["id"].(string)

	rec, resp = testutil.MakeJSONRequest(
		gin.H{"assigned_employee_id": database.TestEmployee2.ID.String()},
		adminToken, r, "/clients/"+clientID, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestEmployee2.ID.String(), resp["assigned_employee_id"])
}

func TestDeleteClient(t *testing.T) {
	adminToken, err := auth.GetAccessToken(testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := clientRouter()

	body := gin.H{
		"name":                 "Short Lived",
		"email":                "shortlived@example.com",
		"assigned_employee_id": database.TestEmployee1.ID.String(),
	}
	rec, resp := testutil.MakeJSONRequest(body, adminToken, r, "/clients", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	clientID, _ := resp["id"].(string)

	rec, resp = testutil.MakeJSONRequest(nil, adminToken, r, "/clients/"+clientID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Client deleted", resp["message"])

	rec, _ = testutil.MakeJSONRequest(nil, adminToken, r, "/clients/"+clientID, http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
