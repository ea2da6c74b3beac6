package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/home-harbor/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		claims, ok := parseClaims(authHeader)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches user claims when a valid token is
// present but lets anonymous requests through. The search surface is
// public; visibility rules downstream treat a missing user as the
// most restrictive caller, so a bad token degrades rather than
// rejects.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if claims, ok := parseClaims(authHeader); ok {
				c.Set(string(utils.UserContextKey), claims)
			}
		}
		c.Next()
	}
}

func parseClaims(authHeader string) (*utils.UserClaims, bool) {
	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 {
		return nil, false
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, false
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, false
	}
	role, _ := claims["role"].(string)

	return &utils.UserClaims{
		UserID: uint(userID),
		Role:   role,
	}, true
}
