package app

import (
	"dark_patterns_game/docs"
	"dark_patterns_game/internal/config"
	"dark_patterns_game/internal/middleware"
	"dark_patterns_game/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 游戏会话，需要会话令牌
	a.registerSessionRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/patterns", c.pattern.ListPatterns)

		public.POST("/register", c.score.Register)
		public.POST("/score", c.score.SubmitScore)
		public.GET("/scores", c.score.ListScores)
		public.GET("/scores/live", c.live.Stream)

		public.POST("/sessions", c.session.Start)
	}
}

func (a *App) registerSessionRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	sessions := router.Group("/api/sessions/:id")
	sessions.Use(middleware.SessionAuth(cfg.Session.Secret))
	{
		sessions.GET("", c.session.Get)
		sessions.POST("/steps", c.session.SubmitStep)
		sessions.DELETE("", c.session.Restart)
	}
}
