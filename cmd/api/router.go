package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"legalblog-backend/internal/shared/middleware"
	"legalblog-backend/pkg/container"
)

// SetupRouter wires every endpoint. Route groups, outermost first:
//
//	public        - optional auth, the visibility predicate decides what shows
//	auth          - registration, login, tokens
//	authenticated - valid access token required
//	author        - author or admin role
//	admin         - admin role only
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	// =====================================================
	// HEALTH
	// =====================================================
	v1.GET("/health", func(ctx *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}

		status := http.StatusOK
		if err := c.DB.Ping(ctx.Request.Context()); err != nil {
			health["status"] = "degraded"
			health["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			health["cache"] = err.Error()
		}

		ctx.JSON(status, health)
	})

	// =====================================================
	// AUTH
	// =====================================================
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.POST("/logout", c.UserHandler.Logout)
		auth.GET("/verify", c.UserHandler.VerifyEmail)
		auth.POST("/resend-verification", c.UserHandler.ResendVerification)
		auth.POST("/forgot-password", c.UserHandler.ForgotPassword)
		auth.POST("/reset-password", c.UserHandler.ResetPassword)
	}

	// =====================================================
	// PUBLIC (optional auth: identity sharpens visibility)
	// =====================================================
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(c.JWTManager))
	{
		public.GET("/posts", c.BlogHandler.ListPosts)
		public.GET("/posts/:id", c.BlogHandler.GetPost)
		public.GET("/posts/slug/:slug", c.BlogHandler.GetPostBySlug)
		public.GET("/posts/:id/comments", c.CommentHandler.ListComments)
		public.GET("/posts/:id/media", c.MediaHandler.ListMedia)
		public.GET("/categories", c.CategoryHandler.ListCategories)
		public.GET("/categories/:id", c.CategoryHandler.GetCategory)
		public.GET("/pages/:slug", c.PageHandler.GetPage)
	}

	// =====================================================
	// AUTHENTICATED
	// =====================================================
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authed.GET("/users/me", c.UserHandler.GetProfile)
		authed.PUT("/users/me", c.UserHandler.UpdateProfile)
		authed.POST("/users/me/password", c.UserHandler.ChangePassword)

		authed.POST("/posts/:id/comments", c.CommentHandler.CreateComment)
		authed.PUT("/comments/:id", c.CommentHandler.UpdateComment)
		authed.DELETE("/comments/:id", c.CommentHandler.DeleteComment)
	}

	// =====================================================
	// AUTHOR
	// =====================================================
	author := v1.Group("")
	author.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequireAuthorOrAdmin())
	{
		author.POST("/posts", c.BlogHandler.CreatePost)
		author.PUT("/posts/:id", c.BlogHandler.UpdatePost)
		author.PATCH("/posts/:id/status", c.BlogHandler.TransitionPost)
		author.DELETE("/posts/:id", c.BlogHandler.DeletePost)
		author.GET("/posts/mine", c.BlogHandler.ListMyPosts)

		author.POST("/posts/:id/media", c.MediaHandler.UploadMedia)
		author.DELETE("/media/:id", c.MediaHandler.DeleteMedia)
	}

	// =====================================================
	// ADMIN
	// =====================================================
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequireAdmin())
	{
		admin.GET("/users", c.UserHandler.ListUsers)
		admin.PATCH("/users/:id/role", c.UserHandler.UpdateUserRole)
		admin.PATCH("/users/:id/blocked", c.UserHandler.SetUserBlocked)

		admin.POST("/categories", c.CategoryHandler.CreateCategory)
		admin.PUT("/categories/:id", c.CategoryHandler.UpdateCategory)
		admin.PATCH("/categories/:id/active", c.CategoryHandler.SetCategoryActive)
		admin.DELETE("/categories/:id", c.CategoryHandler.DeleteCategory)

		admin.GET("/pages", c.PageHandler.ListPages)
		admin.POST("/pages", c.PageHandler.CreatePage)
		admin.PUT("/pages/:id", c.PageHandler.UpdatePage)
		admin.DELETE("/pages/:id", c.PageHandler.DeletePage)

		admin.GET("/posts/export", c.BlogHandler.ExportPosts)
	}

	return router
}
