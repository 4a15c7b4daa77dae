// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "UniHire-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"UniHire-backend/internal/auth"
	"UniHire-backend/internal/controller/application"
	"UniHire-backend/internal/controller/employer"
	"UniHire-backend/internal/controller/file"
	"UniHire-backend/internal/controller/job"
	"UniHire-backend/internal/controller/student"
	"UniHire-backend/internal/middleware"
	"UniHire-backend/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	jobCtrl := job.NewJobController(s.DB)
	appCtrl := application.NewApplicationController(s.DB, s.Storage)
	studentCtrl := student.NewStudentController(s.DB, s.Storage)
	employerCtrl := employer.NewEmployerController(s.DB)
	fileCtrl := file.NewFileController(s.DB, s.Storage)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())
	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/health", s.healthHandler)

	s.registerPages(r)

	api := r.Group("/api")
	{
		authRoute := api.Group("/auth")
		{
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
		}

		needAuth := api.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.GET("", jobCtrl.GetJobs)
				jobRoute.GET(":id", jobCtrl.GetJobByID)

				needEmployer := jobRoute.Group("")
				{
					needEmployer.Use(middleware.CheckRole(model.RoleEmployer))
					needEmployer.POST("create", jobCtrl.CreateJobHandler)
					needEmployer.GET("my", jobCtrl.GetMyJobs)
					needEmployer.GET("stats", jobCtrl.GetJobStats)
					needEmployer.PATCH(":id", jobCtrl.EditJob)
					needEmployer.DELETE(":id", jobCtrl.DeleteJob)
				}
			}

			appRoute := needAuth.Group("/applications")
			{
				appRoute.POST("create", middleware.CheckRole(model.RoleStudent), appCtrl.CreateApplication)
				appRoute.GET("my", middleware.CheckRole(model.RoleStudent), appCtrl.GetMyApplications)
				appRoute.GET("job/:job_id", middleware.CheckRole(model.RoleEmployer), appCtrl.GetJobApplications)
				appRoute.PATCH(":id/update-status", middleware.CheckRole(model.RoleEmployer), appCtrl.UpdateApplicationStatus)
				appRoute.GET(":id", appCtrl.GetApplicationByID)
			}

			studentRoute := needAuth.Group("/students")
			{
				studentRoute.Use(middleware.CheckRole(model.RoleStudent))
				studentRoute.GET("my", studentCtrl.GetMyProfile)
				studentRoute.PATCH("my", studentCtrl.EditProfile)
				studentRoute.POST("my/cv", middleware.SizeLimit(10<<20), studentCtrl.UploadCV)
			}

			employerRoute := needAuth.Group("/employers")
			{
				employerRoute.Use(middleware.CheckRole(model.RoleEmployer))
				employerRoute.GET("my", employerCtrl.GetMyProfile)
				employerRoute.PATCH("my", employerCtrl.EditProfile)
			}

			fileRoute := needAuth.Group("/files")
			{
				fileRoute.GET(":id", fileCtrl.GetFile)
				fileRoute.POST("documents", middleware.SizeLimit(10<<20), fileCtrl.UploadDocument)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
