package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lgs_prep_backend/docs"
	"lgs_prep_backend/internal/config"
	"lgs_prep_backend/internal/middleware"
	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// Curriculum browsing, used by the scope pickers
		authGroup.GET("/subjects", c.curriculum.ListSubjects)
		authGroup.GET("/subjects/:id/topics", c.curriculum.ListTopics)

		// Exam sessions
		authGroup.POST("/exams", c.exam.Start)
		authGroup.GET("/exams", c.exam.ListSessions)
		authGroup.GET("/exams/:id", c.exam.GetSession)
		authGroup.POST("/exams/:id/answers", c.exam.SubmitAnswer)
		authGroup.POST("/exams/:id/abandon", c.exam.Abandon)

		// Dashboard
		authGroup.GET("/dashboard", c.dashboard.GetSummary)

		// Teacher views
		teacher := authGroup.Group("/")
		teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
		{
			teacher.GET("/students/:id/dashboard", c.dashboard.GetStudentSummary)
			teacher.GET("/questions", c.question.List)
			teacher.GET("/questions/:id", c.question.Get)
			teacher.POST("/questions", c.question.Create)
			teacher.POST("/questions/:id/image", c.question.UploadImage)
		}

		// Curriculum authoring, admin only
		admin := authGroup.Group("/")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/subjects", c.curriculum.CreateSubject)
			admin.POST("/units", c.curriculum.CreateUnit)
			admin.POST("/topics", c.curriculum.CreateTopic)
		}
	}
}
