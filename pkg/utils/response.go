package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API answer. Clients test Success
// and show Error when it is false.
type Response struct {
	Success bool                `json:"success"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	ID      uint                `json:"id,omitempty"`
	Status  string              `json:"status,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, id uint) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		ID:      id,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Error: message,
	})
}

// ValidationFailed answers 400 with the per-field messages.
func ValidationFailed(c *gin.Context, message string, errors map[string][]string) {
	c.JSON(http.StatusBadRequest, Response{
		Error:  message,
		Errors: errors,
	})
}

const MsgInternalError = "Erreur interne du serveur"

// ServerError answers 500 with a generic message. err is attached to the
// context for the request logger and never sent to the client.
func ServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Response{
		Error: MsgInternalError,
	})
}
