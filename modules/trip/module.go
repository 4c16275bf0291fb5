package trip

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/database"
	"github.com/adityamakwana707/globetrotter-sub000/core/middleware"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/controller"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/repository"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/router"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the trip module and registers routes
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, drafts *itinservice.DraftManager) {
	repo := repository.NewTripRepository(db)
	svc := service.NewTripService(repo, drafts)
	ctrl := controller.NewTripController(svc)
	rtr := router.NewTripRouter(ctrl)

	rtr.Setup(e, mw)
}
