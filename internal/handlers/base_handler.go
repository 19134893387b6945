package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
	"github.com/ielts-prep/admin-service/internal/validator"
)

// ErrorResponse is the error body for every endpoint.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// MessageResponse acknowledges a mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs at info level with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...interface{}) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

// parseIDParam parses a required numeric path parameter, writing a 400 and
// returning 0 when it is not a positive integer.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid " + param + " parameter"})
		return 0
	}
	return uint(id)
}

// bindAndValidate binds the JSON body and runs DTO validation, writing a 400
// on failure.
func (h *BaseHandler) bindAndValidate(c *gin.Context, v *validator.Validator, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid request payload: " + err.Error()})
		return false
	}
	if errs := v.Validate(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: errs})
		return false
	}
	return true
}

// handleServiceError maps service errors to HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: validationErrors})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Resource not found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "Invalid admin credentials"})
	default:
		utils.LoggerFromContext(c.Request.Context(), h.logger).Error("Unhandled service error",
			"error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal server error"})
	}
}
