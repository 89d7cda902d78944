package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Grupo5-Biologia-Marina/server/internal/api"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
	"github.com/Grupo5-Biologia-Marina/server/internal/logs"
	"github.com/Grupo5-Biologia-Marina/server/internal/mailer"
	"github.com/Grupo5-Biologia-Marina/server/internal/user"
)

// Register POST /auth/register
func Register(c *gin.Context) {
	route := c.FullPath()

	var input struct {
		Username  string `json:"username"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		api.Fail(c, http.StatusBadRequest, "Faltan datos obligatorios")
		return
	}

	if user.ExistsByEmail(input.Email) {
		api.Fail(c, http.StatusConflict, "El email ya está registrado")
		return
	}
	if user.ExistsByUsername(input.Username) {
		api.Fail(c, http.StatusConflict, "El nombre de usuario ya está en uso")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Error en el servidor durante el registro", err.Error())
		return
	}

	newUser := user.User{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Username:  input.Username,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      user.RoleUser,
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Error en el servidor durante el registro", err.Error())
		logs.LogJSON("ERROR", "User insert error", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	token, err := GenerateToken(newUser.ID, newUser.Role, newUser.Username)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Error en el servidor durante el registro", err.Error())
		return
	}

	// El correo de bienvenida no bloquea el registro.
	go func(email, username string) {
		if err := mailer.SendWelcomeEmail(email, username); err != nil {
			logs.LogJSON("ERROR", "Welcome email error", map[string]interface{}{
				"error": err.Error(),
				"email": email,
			})
		}
	}(newUser.Email, newUser.Username)

	logs.LogJSON("INFO", "User registered", map[string]interface{}{
		"route":  route,
		"userID": newUser.ID,
	})

	api.OK(c, http.StatusCreated, "Usuario registrado con éxito", gin.H{
		"token": token,
		"user": gin.H{
			"id":       newUser.ID,
			"username": newUser.Username,
			"email":    newUser.Email,
			"role":     newUser.Role,
		},
	})
}

// Login POST /auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}

	if input.Email == "" || input.Password == "" {
		api.Fail(c, http.StatusBadRequest, "Email y password son obligatorios")
		return
	}

	var u user.User
	err := database.DB.First(&u, "email = ?", input.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Mismo mensaje que con contraseña errónea: no revelamos
			// si el email existe.
			api.Fail(c, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		api.FailErr(c, http.StatusInternalServerError, "Error en el servidor durante el login", err.Error())
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)) != nil {
		api.Fail(c, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	token, err := GenerateToken(u.ID, u.Role, u.Username)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Error en el servidor durante el login", err.Error())
		return
	}

	api.OK(c, http.StatusOK, "Login exitoso", gin.H{"token": token})
}

// Logout POST /auth/logout
// Sin estado: borra la cookie, los tokens ya emitidos siguen siendo válidos
// hasta su caducidad.
func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	api.OK(c, http.StatusOK, "Sesión cerrada correctamente", nil)
}
