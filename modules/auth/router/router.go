package router

import (
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles auth routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

// NewAuthRouter creates a new router
func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers auth routes. Both are public by nature.
func (r *AuthRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	auth := v1.Group("/public/auth")

	auth.POST("/register", r.AuthController.Register)
	auth.POST("/login", r.AuthController.Login)
}
