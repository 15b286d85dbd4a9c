package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"millionaire_level/internal/wealth"
	"millionaire_level/pkg/currencyapi"
	"millionaire_level/pkg/middleware"
)

type Error struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.WithFields(logrus.Fields{
		"status":     statusCode,
		"request_id": middleware.RequestID(c),
	}).Error(message)
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}

// statusFor maps domain and upstream errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, wealth.ErrInvalidInput),
		errors.Is(err, wealth.ErrDivisionByZero),
		errors.Is(err, currencyapi.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, currencyapi.ErrNetwork),
		errors.Is(err, currencyapi.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "something went wrong"
	}
	return err.Error()
}

func newServiceErrorResponse(c *gin.Context, err error) {
	status := statusFor(err)
	newErrorResponse(c, status, errorMessage(status, err))
}
