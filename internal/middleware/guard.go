package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Grupo5-Biologia-Marina/server/internal/api"
	"github.com/Grupo5-Biologia-Marina/server/internal/logs"
)

// Policy describe quién puede entrar en una ruta. Se declara junto al
// registro de rutas para que la política de autorización quede en un
// único sitio auditable.
//
// Permite el paso si el rol del usuario está en Roles, o si el usuario es
// dueño del recurso: OwnerParam compara contra un parámetro de la ruta,
// OwnerOf resuelve al dueño consultando el recurso.
//
// Si FreshRole está definido, el rol se consulta en cada petición en vez de
// confiar en el del token: un admin degradado pierde el acceso de inmediato,
// sin esperar a que caduque su token.
type Policy struct {
	Roles      []string
	FreshRole  func(userID string) (string, error)
	OwnerParam string
	OwnerOf    func(c *gin.Context) (string, error)
}

// Guard se evalúa después de AuthMiddleware y antes del handler.
func Guard(p Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		userID := c.GetString("user_id")
		role := c.GetString("user_role")

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Response{
				Success: false,
				Message: "No autenticado",
			})
			return
		}

		if p.FreshRole != nil {
			fresh, err := p.FreshRole(userID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, api.Response{
					Success: false,
					Message: "Server error while checking permissions",
				})
				logs.LogJSON("ERROR", "Role lookup error", map[string]interface{}{
					"error":  err.Error(),
					"route":  route,
					"userID": userID,
				})
				return
			}
			role = fresh
		}

		for _, r := range p.Roles {
			if r == role {
				c.Next()
				return
			}
		}

		if p.OwnerParam != "" && c.Param(p.OwnerParam) == userID {
			c.Next()
			return
		}

		if p.OwnerOf != nil {
			owner, err := p.OwnerOf(c)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.AbortWithStatusJSON(http.StatusNotFound, api.Response{
						Success: false,
						Message: "Resource not found",
					})
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, api.Response{
					Success: false,
					Message: "Server error while checking permissions",
				})
				logs.LogJSON("ERROR", "Owner lookup error", map[string]interface{}{
					"error":  err.Error(),
					"route":  route,
					"userID": userID,
				})
				return
			}
			if owner == userID {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, api.Response{
			Success: false,
			Message: "No tienes permisos para acceder a este recurso",
		})
		logs.LogJSON("WARN", "Access denied", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"role":   role,
		})
	}
}
