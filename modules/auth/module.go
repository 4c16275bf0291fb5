package auth

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/config"
	"github.com/adityamakwana707/globetrotter-sub000/core/database"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/controller"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/repository"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/router"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, db database.IDatabase, cfg config.AuthConfig) {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, cfg)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e)
}
