package problem

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentType is het media type voor Problem Details responses
const ContentType = "application/problem+json"

// ErrorHook is the tonic error hook: APIErrors keep their status, everything
// else becomes a 500.
func ErrorHook(c *gin.Context, err error) (int, interface{}) {
	c.Header("Content-Type", ContentType)

	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr
	}
	internal := NewInternalServerError(err.Error())
	return internal.Status, internal
}
