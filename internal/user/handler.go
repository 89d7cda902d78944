package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Grupo5-Biologia-Marina/server/internal/api"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
	"github.com/Grupo5-Biologia-Marina/server/internal/logs"
)

// Public es el subconjunto de User que exponen los listados.
type Public struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// GetUsers GET /users (solo admin)
func GetUsers(c *gin.Context) {
	var users []Public
	if err := database.DB.Model(&User{}).Select("id, username, email, role").Find(&users).Error; err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while fetching users", err.Error())
		logs.LogJSON("ERROR", "User list error", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return
	}

	api.OK(c, http.StatusOK, "Users fetched successfully", users)
}

// GetUser GET /users/:id
func GetUser(c *gin.Context) {
	id := c.Param("id")

	var u User
	if err := database.DB.First(&u, "id = ?", id).Error; err != nil {
		api.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	api.OK(c, http.StatusOK, "User fetched successfully", Public{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	})
}

// UpdateUser PATCH /users/:id (admin o el propio usuario)
func UpdateUser(c *gin.Context) {
	route := c.FullPath()
	id := c.Param("id")

	var u User
	if err := database.DB.First(&u, "id = ?", id).Error; err != nil {
		api.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	var input map[string]interface{}
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}

	// Solo los campos de perfil; el rol se cambia por su propio endpoint.
	allowed := map[string]bool{"username": true, "firstname": true, "lastname": true, "email": true}
	updates := map[string]interface{}{}
	for k, v := range input {
		if allowed[k] {
			updates[k] = v
		}
	}

	if username, ok := updates["username"].(string); ok && username != u.Username && ExistsByUsername(username) {
		api.Fail(c, http.StatusConflict, "El nombre de usuario ya está en uso")
		return
	}
	if email, ok := updates["email"].(string); ok && email != u.Email && ExistsByEmail(email) {
		api.Fail(c, http.StatusConflict, "El email ya está registrado")
		return
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&u).Updates(updates).Error; err != nil {
			api.FailErr(c, http.StatusInternalServerError, "Server error while updating user", err.Error())
			logs.LogJSON("ERROR", "User update error", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": id,
			})
			return
		}
	}

	api.OK(c, http.StatusOK, "User updated successfully", Public{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	})
}

// UpdateUserRole PATCH /users/:id/role (solo admin)
func UpdateUserRole(c *gin.Context) {
	route := c.FullPath()
	id := c.Param("id")

	var input struct {
		Role string `json:"role"`
	}
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}

	if input.Role != RoleUser && input.Role != RoleAdmin {
		api.Fail(c, http.StatusBadRequest, "Rol inválido: debe ser 'user' o 'admin'")
		return
	}

	var u User
	if err := database.DB.First(&u, "id = ?", id).Error; err != nil {
		api.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	if err := database.DB.Model(&u).Update("role", input.Role).Error; err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while updating role", err.Error())
		logs.LogJSON("ERROR", "Role update error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": id,
		})
		return
	}

	logs.LogJSON("INFO", "User role updated", map[string]interface{}{
		"route":  route,
		"userID": id,
		"role":   input.Role,
	})

	api.OK(c, http.StatusOK, "User role updated successfully", gin.H{
		"id":       u.ID,
		"username": u.Username,
		"role":     input.Role,
	})
}
