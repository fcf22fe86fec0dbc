package router

import (
	"vidtube-go/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由；authLimiter 作用于注册、登录、刷新令牌，logoutAuth 允许已吊销的令牌重复退出
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	commentHandler *handler.CommentHandler,
	authRequired gin.HandlerFunc,
	logoutAuth gin.HandlerFunc,
	authLimiter gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		public := users.Group("", authLimiter)
		{
			public.POST("/register", authHandler.Register)
			public.POST("/login", authHandler.Login)
			public.POST("/refresh-token", authHandler.RefreshToken)
		}

		users.POST("/logout", logoutAuth, authHandler.Logout)

		secured := users.Group("", authRequired)
		{
			secured.POST("/change-password", authHandler.ChangePassword)
			secured.GET("/current-user", userHandler.GetCurrentUser)
			secured.PATCH("/update-account", userHandler.UpdateAccount)
			secured.PATCH("/avatar", userHandler.UpdateAvatar)
			secured.PATCH("/cover-image", userHandler.UpdateCoverImage)
			secured.GET("/c/:username", userHandler.GetChannelProfile)
			secured.GET("/history", userHandler.GetWatchHistory)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", authRequired)
	{
		comments.GET("/search", commentHandler.Search)
		comments.GET("/:videoId", commentHandler.ListByVideo)
		comments.POST("/:videoId", commentHandler.Create)
		comments.PATCH("/c/:commentId", commentHandler.Update)
		comments.DELETE("/c/:commentId", commentHandler.Delete)
	}
}
