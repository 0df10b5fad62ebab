package app

import (
	"qna_community_backend/internal/config"
	"qna_community_backend/internal/middleware"
	"qna_community_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", c.auth.Register)
			auth.POST("/login", c.auth.Login)
		}

		// 游客可浏览，登录用户附带点赞/收藏状态
		public := api.Group("")
		public.Use(middleware.TryAuthMiddleware(cfg))
		{
			public.GET("/articles", c.article.Search)
			public.GET("/articles/:articleId", c.article.GetArticleDetail)
			public.GET("/articles/:articleId/answers", c.answer.GetAnswers)
			public.GET("/articles/:articleId/comments", c.comment.GetComments)
			public.GET("/categories", c.article.GetCategories)
			public.GET("/tags", c.article.GetTags)
		}

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(cfg))
		authed.Use(middleware.ActivityMiddleware(repos.user))
		{
			authed.GET("/profile", c.auth.GetProfile)
			authed.PUT("/user/profile", c.user.UpdateProfile)
			authed.POST("/user/avatar", c.user.UploadAvatar)
			authed.GET("/user/bookmarks", c.user.GetBookmarks)

			authed.POST("/articles", c.article.CreateArticle)
			authed.PUT("/articles/:articleId", c.article.UpdateArticle)
			authed.DELETE("/articles/:articleId", c.article.DeleteArticle)
			authed.POST("/articles/:articleId/close", c.article.CloseArticle)
			authed.POST("/articles/:articleId/bookmark", c.article.ToggleBookmark)

			authed.POST("/articles/:articleId/answers", c.answer.PostAnswer)
			authed.PUT("/answers/:answerId", c.answer.UpdateAnswer)
			authed.DELETE("/answers/:answerId", c.answer.DeleteAnswer)
			authed.POST("/articles/:articleId/answers/:answerId/pick", c.answer.PickAnswer)

			authed.POST("/articles/:articleId/comments", c.comment.CreateComment)
			authed.DELETE("/comments/:commentId", c.comment.DeleteComment)

			authed.POST("/likes/:type/:id", c.article.ToggleLike)

			authed.POST("/files", c.file.Upload)
		}
	}
}
