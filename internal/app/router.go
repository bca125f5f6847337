package app

import (
	"survey_backend/docs"
	"survey_backend/internal/config"
	"survey_backend/internal/middleware"
	"survey_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由，可选认证
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerCreatorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/surveys/public", c.survey.ListPublicSurveys)
		public.GET("/surveys/:id", c.survey.GetSurvey)
		public.GET("/weighted-surveys/:id", c.weightedSurvey.GetWeightedSurvey)
		public.POST("/surveys/:id/responses", c.response.SubmitResponses)
	}
}

func (a *App) registerCreatorRoutes(rg *gin.RouterGroup, c *controllers) {
	surveys := rg.Group("/surveys")
	{
		surveys.POST("", c.survey.CreateSurvey)
		surveys.GET("", c.survey.ListMySurveys)
		surveys.PATCH("/:id/status", c.survey.UpdateStatus)
		surveys.DELETE("/:id", c.survey.DeleteSurvey)
		surveys.GET("/:id/results", c.survey.GetResults)
	}

	weighted := rg.Group("/weighted-surveys")
	{
		weighted.POST("", c.weightedSurvey.CreateWeightedSurvey)
		weighted.GET("/:id/responses", c.weightedSurvey.GetWeightedResponses)
		weighted.GET("/:id/scores", c.weightedSurvey.GetWeightedScores)
	}
}
