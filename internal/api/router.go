package api

import (
	"github.com/gin-gonic/gin"

	"github.com/4bhisheksharma/book-swap3/internal/api/auth"
	"github.com/4bhisheksharma/book-swap3/internal/api/book"
	"github.com/4bhisheksharma/book-swap3/internal/api/swap"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/config"
)

// SetupRouter configures all routes
func SetupRouter(r *gin.Engine) {
	r.Use(CORSMiddleware())

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "BookSwap API is running",
			"version": "1.0.0",
		})
	})

	// Uploaded book images
	if cfg := config.Get(); cfg != nil {
		r.Static("/media", cfg.Media.Dir)
	}

	// Auth routes; registration and login are the only operations reachable
	// without a token
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", auth.Register)
		authRoutes.POST("/login", auth.Login)
		authRoutes.GET("/me", auth.AuthMiddleware(), auth.GetCurrentUser)
	}

	// Everything below requires authentication
	api := r.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		bookGroup := api.Group("/books")
		{
			bookGroup.GET("", book.List)
			bookGroup.POST("", book.Create)
			bookGroup.GET("/:book_id", book.Retrieve)
			bookGroup.PUT("/:book_id", book.Update)
			bookGroup.PATCH("/:book_id", book.Update)
			bookGroup.DELETE("/:book_id", book.Delete)
		}

		swapGroup := api.Group("/swaps")
		{
			swapGroup.GET("", swap.List)
			swapGroup.POST("", swap.Create)
			swapGroup.GET("/:swap_id", swap.Retrieve)
			swapGroup.PUT("/:swap_id", swap.Update)
			swapGroup.PATCH("/:swap_id", swap.Update)
			swapGroup.DELETE("/:swap_id", swap.Delete)
		}
	}
}

// CORSMiddleware provides CORS support
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
