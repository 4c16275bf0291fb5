package middleware

import (
	"net/http"
	"strings"

	"github.com/adityamakwana707/globetrotter-sub000/core/config"
	"github.com/adityamakwana707/globetrotter-sub000/core/constants"
	"github.com/adityamakwana707/globetrotter-sub000/core/controller"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/logger"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the cross-cutting echo middlewares modules register routes with.
type Middleware struct {
	cfg *config.Config
}

// New creates the middleware bundle.
func New(cfg *config.Config) *Middleware {
	return &Middleware{cfg: cfg}
}

// AuthMiddleware validates the Bearer token and stores claims on the context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header {
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
			}

			claims, err := utils.ValidateToken(tokenString, m.cfg.Auth.JWTSecret)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return controller.NewErrorResponse(http.StatusUnauthorized,
					errors.ErrUnauthorized, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
