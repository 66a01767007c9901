package app

import (
	"quiz_backend/docs"
	"quiz_backend/internal/middleware"
	"quiz_backend/internal/model"
	"quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的路由
	authGroup := router.Group("")
	authGroup.Use(middleware.AuthMiddleware(s.auth))
	{
		a.registerQuizRoutes(authGroup, c)

		// 3. 管理员接口
		admin := authGroup.Group("/users")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		{
			admin.GET("/", c.user.GetUsers)
			admin.POST("/create/", c.user.CreateUser)
			admin.GET("/:id/", c.user.GetUser)
			admin.PUT("/:id/update/", c.user.UpdateUser)
			admin.DELETE("/:id/delete/", c.user.DeleteUser)
		}
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	router.POST("/register/", c.auth.Register)
	router.POST("/login/", c.auth.Login)
	router.POST("/token/refresh/", c.auth.Refresh)
}

func (a *App) registerQuizRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/logout/", c.auth.Logout)
	group.GET("/profile/", c.auth.GetProfile)

	quizzes := group.Group("/quizzes")
	{
		quizzes.GET("/", c.quiz.GetQuizzes)
		quizzes.POST("/create/", c.quiz.CreateQuiz)
		quizzes.GET("/:id/", c.quiz.GetQuiz)
		quizzes.DELETE("/:id/", c.quiz.DeleteQuiz)
		quizzes.POST("/:id/take/", c.attempt.TakeQuiz)
		quizzes.GET("/:id/results/", c.attempt.GetResults)
	}

	group.GET("/attempts/", c.attempt.GetHistory)

	categories := group.Group("/quiz-categories")
	{
		categories.GET("/", c.category.GetCategories)
		categories.POST("/create/", c.category.CreateCategory)
	}

	group.GET("/analytics/", c.analytics.GetAnalytics)
}
