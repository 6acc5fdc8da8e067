package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// Error maps service sentinels onto HTTP statuses. Unknown errors become
// a 500 with a generic message so internals never leak.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "unauthorized"
	case errors.Is(err, apperr.ErrForbidden), errors.Is(err, apperr.ErrAccessDenied):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperr.ErrInvalidArgument):
		status = http.StatusBadRequest
		message = err.Error()
	}

	c.AbortWithStatusJSON(status, envelope{Success: false, Error: message})
}
