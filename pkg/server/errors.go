package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"droscher.com/Taproom/pkg/auth"
	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/repository"
)

var (
	ErrInvalidInput = fmt.Errorf("%w: invalid input", model.ErrValidation)
	errMissingQuery = errors.New("query parameter q is required")
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps an error kind onto its HTTP status and the short kind name reported to
// clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrOrderCompleted):
		return http.StatusConflict, "order_completed"
	default:
		return http.StatusInternalServerError, "store_failure"
	}
}

func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status, kind := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))

		message = "internal error"
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: kind, Message: message})
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func pathID(c *gin.Context, name string) (uint, error) {
	value := c.Param(name)

	id, err := strconv.ParseUint(value, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidInput, name, value)
	}

	return uint(id), nil
}
