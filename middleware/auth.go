package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/minhtran-dev/vietshop/config"
	"github.com/minhtran-dev/vietshop/models"
	"github.com/minhtran-dev/vietshop/utils"
)

func parseBearerToken(c *gin.Context) (*jwt.Token, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing Authorization header")
	}

	tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
	if tokenString == authHeader {
		return nil, fmt.Errorf("invalid Bearer token format")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token validation failed")
	}
	return token, nil
}

func userFromToken(token *jwt.Token) (*models.User, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("user ID not found in token claims")
	}

	var user models.User
	if err := config.DB.First(&user, uint(userID)).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}
	return &user, nil
}

// AuthMiddleware verifies the JWT and attaches the user to the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := parseBearerToken(c)
		if err != nil {
			utils.LogError("Auth failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		user, err := userFromToken(token)
		if err != nil {
			utils.LogError("Auth failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		if user.IsBlocked {
			utils.LogError("Blocked user attempted access: %d", user.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is blocked"})
			c.Abort()
			return
		}

		c.Set("user", *user)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is
// present but lets anonymous requests through. Cart routes use it so
// anonymous sessions can shop before logging in.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		token, err := parseBearerToken(c)
		if err != nil {
			c.Next()
			return
		}
		user, err := userFromToken(token)
		if err != nil || user.IsBlocked {
			c.Next()
			return
		}

		c.Set("user", *user)
		c.Next()
	}
}

// AdminMiddleware gates admin-only routes. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			utils.LogError("User not found in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			c.Abort()
			return
		}

		userModel, ok := user.(models.User)
		if !ok {
			utils.LogError("Invalid user type in context")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type"})
			c.Abort()
			return
		}

		if !userModel.IsAdmin {
			utils.LogError("Non-admin user attempted admin access: %d", userModel.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
