package app

import (
	"studyhub_backend/docs"
	"studyhub_backend/internal/config"
	"studyhub_backend/internal/middleware"
	"studyhub_backend/internal/model"
	"studyhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
		}

		// Course catalog is browsable without an account; a token, when
		// present, lets instructors see their unpublished drafts.
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.ListCatalog)
		public.GET("/courses/:idOrSlug", middleware.TryAuthMiddleware(cfg), c.course.GetCourse)

		// Marketing pages.
		public.GET("/blog", c.content.ListPosts)
		public.GET("/blog/:slug", c.content.GetPost)
		public.GET("/faqs", c.content.ListFAQs)
		public.GET("/careers", c.content.ListJobs)
		public.POST("/contact", c.content.SubmitContact)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	rg.GET("/stats/dashboard", c.stats.GetDashboard)

	// Planner.
	rg.GET("/subjects", c.subject.ListSubjects)
	rg.POST("/subjects", c.subject.CreateSubject)
	rg.GET("/subjects/:id", c.subject.GetSubject)
	rg.PUT("/subjects/:id", c.subject.UpdateSubject)
	rg.DELETE("/subjects/:id", c.subject.DeleteSubject)

	rg.GET("/tasks", c.task.ListTasks)
	rg.POST("/tasks", c.task.CreateTask)
	rg.GET("/tasks/:id", c.task.GetTask)
	rg.PUT("/tasks/:id", c.task.UpdateTask)
	rg.PUT("/tasks/:id/status", c.task.UpdateTaskStatus)
	rg.DELETE("/tasks/:id", c.task.DeleteTask)

	// Learning.
	rg.GET("/modules/:id", c.course.GetModule)
	rg.PUT("/modules/:id/progress", c.progress.ToggleModule)
	rg.POST("/courses/:idOrSlug/enroll", c.progress.Enroll)
	rg.GET("/courses/:idOrSlug/progress", c.progress.GetCourseProgress)
	rg.GET("/enrollments", c.progress.ListEnrollments)

	rg.GET("/quizzes/:id", c.quiz.GetQuizForTaking)
	rg.POST("/quizzes/:id/attempts", c.quiz.SubmitAttempt)
	rg.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)
	rg.GET("/attempts", c.quiz.ListAttemptHistory)
	rg.GET("/attempts/:id", c.quiz.GetAttempt)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/courses", c.course.ListMyCourses)
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)
		instructor.POST("/courses/:id/cover", c.course.UploadCover)
		instructor.POST("/courses/:id/modules", c.course.CreateModule)

		instructor.PUT("/modules/:id", c.course.UpdateModule)
		instructor.DELETE("/modules/:id", c.course.DeleteModule)
		instructor.POST("/modules/:id/video", c.course.UploadModuleVideo)

		instructor.GET("/quizzes", c.quiz.ListMyQuizzes)
		instructor.POST("/quizzes", c.quiz.CreateQuiz)
		instructor.POST("/quizzes/generate", c.quiz.GenerateQuestions)
		instructor.GET("/quizzes/:id", c.quiz.GetQuiz)
		instructor.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		instructor.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetUserDisabled)
		admin.PUT("/users/:id/role", c.user.SetUserRole)

		admin.GET("/blog", c.content.AdminListPosts)
		admin.POST("/blog", c.content.CreatePost)
		admin.PUT("/blog/:id", c.content.UpdatePost)
		admin.DELETE("/blog/:id", c.content.DeletePost)

		admin.GET("/faqs", c.content.AdminListFAQs)
		admin.POST("/faqs", c.content.CreateFAQ)
		admin.PUT("/faqs/:id", c.content.UpdateFAQ)
		admin.DELETE("/faqs/:id", c.content.DeleteFAQ)

		admin.GET("/careers", c.content.AdminListJobs)
		admin.POST("/careers", c.content.CreateJob)
		admin.PUT("/careers/:id", c.content.UpdateJob)
		admin.DELETE("/careers/:id", c.content.DeleteJob)

		admin.GET("/contact", c.content.ListContactMessages)
		admin.PUT("/contact/:id/handled", c.content.MarkContactHandled)
	}
}
