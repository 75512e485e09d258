package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/ivoicehq/ivoice-server/pkg/errors"
)

// Body is the flat payload shape used across the API. Every response carries
// a human-readable message; handlers merge additional fields as needed.
type Body struct {
	Message string `json:"message"`
}

// Message writes a JSON payload containing only a message.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Body{Message: message})
}

// Error writes a JSON error response derived from an AppError. Internal
// details never reach the client; only the public message is serialized.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, Body{Message: appErr.Message})
}
