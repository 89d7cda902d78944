package api

import (
	"github.com/gin-gonic/gin"
)

// Response es el sobre común de todas las respuestas del API.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
}

func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// FailErr añade el detalle del error al sobre (p. ej. mensajes de validación).
func FailErr(c *gin.Context, status int, message, detail string) {
	c.JSON(status, Response{Success: false, Message: message, Error: detail})
}
