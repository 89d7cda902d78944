package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Grupo5-Biologia-Marina/server/internal/api"
	"github.com/Grupo5-Biologia-Marina/server/internal/auth"
)

func identityFromHeader(c *gin.Context) *auth.Claims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := auth.ParseToken(tokenStr)
	if err != nil {
		return nil
	}
	return claims
}

// AuthMiddleware exige un token Bearer válido y guarda la identidad en el contexto.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := identityFromHeader(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Response{
				Success: false,
				Message: "Token inválido o ausente",
			})
			return
		}

		c.Set("user_id", claims.ID)
		c.Set("user_role", claims.Role)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuthMiddleware adjunta la identidad si hay token válido,
// pero deja pasar las peticiones anónimas (lecturas públicas).
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := identityFromHeader(c); claims != nil {
			c.Set("user_id", claims.ID)
			c.Set("user_role", claims.Role)
			c.Set("username", claims.Username)
		}
		c.Next()
	}
}
