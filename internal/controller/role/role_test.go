package role

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

func roleRouter() *gin.Engine {
	r := gin.Default()
	rc := &RoleController{DB: testDB}
	guarded := r.Group("/roles", middleware.RequireAuth(testDB), middleware.Authorize(access.OpRoleManage))
	guarded.POST("", rc.CreateRole)
	guarded.GET("", rc.GetRoles)
	guarded.GET("/:id", rc.GetRoleByID)
	guarded.PATCH("/:id", rc.UpdateRole)
	guarded.DELETE("/:id", rc.DeleteRole)
	guarded.PUT("/:id/permissions", rc.SetPermissions)
	guarded.POST("/:id/permissions/:key", rc.AddPermission)
	guarded.DELETE("/:id/permissions/:key", rc.RemovePermission)
	return r
}

func adminToken(t *testing.T) string {
	token, err := auth.GetAccessToken(testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	return token
}

func TestCreateRole(t *testing.T) {
	r := roleRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"name": "REVIEWER"}, adminToken(t), r, "/roles", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "REVIEWER", resp["name"])
	assert.Equal(t, false, resp["is_super_admin"])
}

func TestCreateRole_duplicateName(t *testing.T) {
	r := roleRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{"name": "DUPLICATED"}, adminToken(t), r, "/roles", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{"name": "DUPLICATED"}, adminToken(t), r, "/roles", http.MethodPost)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp["error"], "already exists")
}

func TestRoleEndpoints_requireSuperAdmin(t *testing.T) {
	r := roleRouter()

	token, err := auth.GetAccessToken(testDB, database.TestEmployee1.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/roles", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User doesn't have permission to access", resp["error"])
}

func TestAddAndRemovePermissionByKey(t *testing.T) {
	r := roleRouter()
	token := adminToken(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"name": "GRANT_PROBE"}, token, r, "/roles", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	roleID, _ := resp["id"].(string)

	grantURL := "/roles/" + roleID + "/permissions/" + access.PermReadCandidate

	rec, resp = testutil.MakeJSONRequest(nil, token, r, grantURL, http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	perms, _ := resp["permissions"].([]interface{})
	assert.Len(t, perms, 1)

	// Granting the same key again stays a single grant.
	rec, resp = testutil.MakeJSONRequest(nil, token, r, grantURL, http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
	perms, _ = resp["permissions"].([]interface{})
	assert.Len(t, perms, 1)

	rec, resp = testutil.MakeJSONRequest(nil, token, r, grantURL, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	perms, _ = resp["permissions"].([]interface{})
	assert.Empty(t, perms)
}

func TestAddPermission_unknownKey(t *testing.T) {
	r := roleRouter()
	token := adminToken(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"name": "UNKNOWN_KEY_PROBE"}, token, r, "/roles", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	roleID, _ := resp["id"].(string)

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/roles/"+roleID+"/permissions/NO_SUCH_PERMISSION", http.MethodPost)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "not found")
}

func TestSetPermissions_wholesale(t *testing.T) {
	r := roleRouter()
	token := adminToken(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"name": "WHOLESALE_PROBE"}, token, r, "/roles", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	roleID, _ := resp["id"].(string)

	var perms []model.Permission
	assert.NoError(t, testDB.Where("key IN ?", []string{access.PermReadClient, access.PermReadJobVacancy}).Find(&perms).Error)
	assert.Len(t, perms, 2)

	ids := make([]string, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID.String())
	}

	rec, resp = testutil.MakeJSONRequest(gin.H{"permission_ids": ids}, token, r, "/roles/"+roleID+"/permissions", http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	granted, _ := resp["permissions"].([]interface{})
	assert.Len(t, granted, 2)
}

func TestDeleteRole(t *testing.T) {
	r := roleRouter()
	token := adminToken(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"name": "DOOMED_ROLE"}, token, r, "/roles", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	roleID, _ := resp["id"].(string)

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/roles/"+roleID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Role deleted", resp["message"])

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/roles/"+roleID, http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
