package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/UPTUZOVER/iiv-talim/internal/http/response"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/requestdata"
	"github.com/UPTUZOVER/iiv-talim/internal/services"
)

type Middleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func New(baseLog *logger.Logger, authService services.AuthService) *Middleware {
	return &Middleware{
		log:         baseLog.With("component", "middleware"),
		authService: authService,
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth validates the bearer token and installs the caller's
// identity on the request context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, apperr.ErrUnauthorized)
			return
		}
		ctx, err := m.authService.SetContextFromToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuth installs identity when a valid token is present and lets
// anonymous requests through untouched.
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if ctx, err := m.authService.SetContextFromToken(c.Request.Context(), token); err == nil {
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

func (m *Middleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			response.Error(c, apperr.ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if rd.Role == role {
				c.Next()
				return
			}
		}
		response.Error(c, apperr.ErrForbidden)
	}
}
