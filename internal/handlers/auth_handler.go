package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ielts-prep/admin-service/internal/services"
	"github.com/ielts-prep/admin-service/internal/utils"
	"github.com/ielts-prep/admin-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	validator   *validator.Validator
}

func NewAuthHandler(authService services.AuthService, validator *validator.Validator, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		validator:   validator,
	}
}

// Login verifies the fixed admin credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.AdminLoginRequest
	if !h.bindAndValidate(c, h.validator, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
