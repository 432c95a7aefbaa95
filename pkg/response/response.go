// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errx "github.com/OFTGNOV/Sa-helper-bot/internal/core/error"
)

// Resp is the standard JSON response body.
type Resp struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{Success: true, Data: data})
}

// Error writes the status and safe message carried by err. Anything that is not
// an errx.AppError becomes a 500 with a generic message.
func Error(c *gin.Context, err error) {
	c.JSON(errx.StatusOf(err), Resp{Success: false, Message: errx.MessageOf(err)})
}

// Abort writes err and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func Unauthorized(c *gin.Context) {
	Abort(c, errx.New(nil, http.StatusUnauthorized, errx.UnauthorizedMessage))
}
