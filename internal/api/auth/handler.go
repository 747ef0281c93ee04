package auth

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/4bhisheksharma/book-swap3/internal/model"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/config"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/jwt"
	"github.com/4bhisheksharma/book-swap3/internal/service"
)

var (
	limiterOnce sync.Once
	rateLimiter *service.RateLimiter
)

func limiter() *service.RateLimiter {
	limiterOnce.Do(func() {
		window := 5 * time.Minute
		maxReqs := 10
		if cfg := config.Get(); cfg != nil {
			window = time.Duration(cfg.Register.RateWindowMinutes) * time.Minute
			maxReqs = cfg.Register.RateMaxRequests
		}
		rateLimiter = service.NewRateLimiter("register:rate", window, maxReqs)
	})
	return rateLimiter
}

// Register handles user registration
func Register(c *gin.Context) {
	if !limiter().Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Too many registration attempts. Try again later."})
		return
	}

	var req model.UserRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	user, err := service.Register(req.Username, req.Email, req.Password)
	if err != nil {
		var fieldErrs service.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, fieldErrs)
			return
		}
		zap.L().Error("Registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login handles user login
func Login(c *gin.Context) {
	var req model.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	tokenResp, err := service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password"})
			return
		}
		zap.L().Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, tokenResp)
}

// GetCurrentUser returns the authenticated user's profile
func GetCurrentUser(c *gin.Context) {
	userID := c.GetInt("user_id")

	user, err := service.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		zap.L().Error("Failed to load current user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// AuthMiddleware validates the JWT bearer token and stores the caller's
// identity in the request context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header missing"})
			c.Abort()
			return
		}

		token, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
