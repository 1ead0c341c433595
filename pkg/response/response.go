package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/hardik88t/projman/pkg/errors"
)

// ErrorBody is the stable error payload returned to API clients.
type ErrorBody struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// JSON writes a success payload as-is. Handlers own their response shapes,
// matching the documented API contract (e.g. login returns {user, token}).
func JSON(c *gin.Context, statusCode int, payload any) {
	c.JSON(statusCode, payload)
}

// Message writes a {"message": ...} payload, used by flows that deliberately
// return the same body regardless of outcome.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// Error writes a JSON error response derived from an AppError. Internal
// causes are never serialised.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, ErrorBody{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}
