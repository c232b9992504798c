package server

import (
	"net/http"
	"os"
	"strings"

	"RecruitPilot-backend/internal/access"
	"RecruitPilot-backend/internal/auth"
	"RecruitPilot-backend/internal/controller/candidate"
	"RecruitPilot-backend/internal/controller/client"
	"RecruitPilot-backend/internal/controller/permission"
	"RecruitPilot-backend/internal/controller/role"
	"RecruitPilot-backend/internal/controller/template"
	"RecruitPilot-backend/internal/controller/user"
	"RecruitPilot-backend/internal/controller/vacancy"
	"RecruitPilot-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	lAuth := auth.NewLoginHandler(s.DB)
	candidateCtl := candidate.NewCandidateController(s.DB)
	clientCtl := client.NewClientController(s.DB)
	templateCtl := template.NewTemplateController(s.DB)
	vacancyCtl := vacancy.NewVacancyController(s.DB)
	userCtl := user.NewUserController(s.DB)
	roleCtl := role.NewRoleController(s.DB)
	permissionCtl := permission.NewPermissionController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("login", middleware.EnvRateLimitMiddleware(), lAuth.Login)
			authRoute.POST("refresh", lAuth.Refresh)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			needAuth.GET("/auth/profile", lAuth.Profile)
			needAuth.POST("/auth/logout", lAuth.Logout)

			clientRoute := needAuth.Group("/clients")
			{
				clientRoute.POST("", middleware.Authorize(access.OpClientCreate), clientCtl.CreateClient)
				clientRoute.GET("", middleware.Authorize(access.OpClientList), clientCtl.GetClients)
				clientRoute.GET(":id", middleware.Authorize(access.OpClientGet), clientCtl.GetClientByID)
				clientRoute.PATCH(":id", middleware.Authorize(access.OpClientUpdate), clientCtl.UpdateClient)
				clientRoute.DELETE(":id", middleware.Authorize(access.OpClientDelete), clientCtl.DeleteClient)
			}

			templateRoute := needAuth.Group("/templates")
			{
				templateRoute.POST("", middleware.Authorize(access.OpTemplateCreate), templateCtl.CreateTemplate)
				templateRoute.GET("", middleware.Authorize(access.OpTemplateList), templateCtl.GetTemplates)
				templateRoute.GET(":id", middleware.Authorize(access.OpTemplateGet), templateCtl.GetTemplateByID)
				templateRoute.PATCH(":id", middleware.Authorize(access.OpTemplateUpdate), templateCtl.UpdateTemplate)
				templateRoute.DELETE(":id", middleware.Authorize(access.OpTemplateDelete), templateCtl.DeleteTemplate)
			}

			vacancyRoute := needAuth.Group("/vacancies")
			{
				vacancyRoute.POST("", middleware.Authorize(access.OpVacancyCreate), vacancyCtl.CreateVacancy)
				vacancyRoute.GET("", middleware.Authorize(access.OpVacancyList), vacancyCtl.GetVacancies)
				vacancyRoute.GET(":id", middleware.Authorize(access.OpVacancyGet), vacancyCtl.GetVacancyByID)
				vacancyRoute.PATCH(":id", middleware.Authorize(access.OpVacancyUpdate), vacancyCtl.UpdateVacancy)
				vacancyRoute.DELETE(":id", middleware.Authorize(access.OpVacancyDelete), vacancyCtl.DeleteVacancy)
				vacancyRoute.POST(":id/agencies/:agency_id", middleware.Authorize(access.OpVacancyAssignAgency), vacancyCtl.AssignAgency)
				vacancyRoute.DELETE(":id/agencies/:agency_id", middleware.Authorize(access.OpVacancyRemoveAgency), vacancyCtl.RemoveAgency)
			}

			candidateRoute := needAuth.Group("/candidates")
			{
				candidateRoute.POST("", middleware.Authorize(access.OpCandidateCreate), middleware.SizeLimit(1<<20), candidateCtl.CreateCandidate)
				candidateRoute.GET("", middleware.Authorize(access.OpCandidateList), candidateCtl.GetCandidates)
				candidateRoute.GET(":id", middleware.Authorize(access.OpCandidateGet), candidateCtl.GetCandidateByID)
				candidateRoute.PATCH(":id", middleware.Authorize(access.OpCandidateUpdate), middleware.SizeLimit(1<<20), candidateCtl.UpdateCandidate)
				candidateRoute.DELETE(":id", middleware.Authorize(access.OpCandidateDelete), candidateCtl.DeleteCandidate)
			}

			userRoute := needAuth.Group("/users")
			{
				userRoute.Use(middleware.Authorize(access.OpUserManage))
				userRoute.POST("", userCtl.CreateUser)
				userRoute.GET("", userCtl.GetUsers)
				userRoute.GET(":id", userCtl.GetUserByID)
				userRoute.PATCH(":id", userCtl.UpdateUser)
				userRoute.DELETE(":id", userCtl.DeleteUser)
			}

			roleRoute := needAuth.Group("/roles")
			{
				roleRoute.Use(middleware.Authorize(access.OpRoleManage))
				roleRoute.POST("", roleCtl.CreateRole)
				roleRoute.GET("", roleCtl.GetRoles)
				roleRoute.GET(":id", roleCtl.GetRoleByID)
				roleRoute.PATCH(":id", roleCtl.UpdateRole)
				roleRoute.DELETE(":id", roleCtl.DeleteRole)
				roleRoute.PUT(":id/permissions", roleCtl.SetPermissions)
				roleRoute.POST(":id/permissions/:key", roleCtl.AddPermission)
				roleRoute.DELETE(":id/permissions/:key", roleCtl.RemovePermission)
			}

			permissionRoute := needAuth.Group("/permissions")
			{
				permissionRoute.Use(middleware.Authorize(access.OpPermissionManage))
				permissionRoute.POST("", permissionCtl.CreatePermission)
				permissionRoute.GET("", permissionCtl.GetPermissions)
				permissionRoute.GET(":id", permissionCtl.GetPermissionByID)
				permissionRoute.PATCH(":id", permissionCtl.UpdatePermission)
				permissionRoute.DELETE(":id", permissionCtl.DeletePermission)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return a greeting message
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "RecruitPilot API"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
