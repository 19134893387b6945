package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ielts-prep/admin-service/internal/auth"
)

const principalContextKey = "principal"

// AdminAuthMiddleware gates every /admin route behind the bearer token. The
// repository layer is never touched for a rejected request.
type AdminAuthMiddleware struct {
	authenticator *auth.Authenticator
}

func NewAdminAuthMiddleware(authenticator *auth.Authenticator) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{authenticator: authenticator}
}

func (m *AdminAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := m.authenticator.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			status, detail := authFailureResponse(err)
			c.AbortWithStatusJSON(status, ErrorResponse{Detail: detail})
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func authFailureResponse(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, auth.ErrExpiredCredential):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, auth.ErrInsufficientPrivilege):
		return http.StatusForbidden, "Admin privileges required"
	default:
		return http.StatusUnauthorized, "Could not validate credentials"
	}
}

// PrincipalFromContext returns the authenticated admin principal.
func PrincipalFromContext(c *gin.Context) (*auth.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*auth.Principal)
	return principal, ok
}
