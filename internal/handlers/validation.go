package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	appErrors "github.com/hardik88t/projman/pkg/errors"
	"github.com/hardik88t/projman/pkg/response"
	appValidator "github.com/hardik88t/projman/pkg/validator"
)

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		var failures appValidator.ValidationErrors
		if errors.As(err, &failures) {
			response.Error(c, appErrors.NewValidation(failures.Messages()))
		} else {
			response.Error(c, appErrors.NewBadRequest("invalid request payload"))
		}
		return false
	}

	return true
}
