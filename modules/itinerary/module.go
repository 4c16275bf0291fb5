package itinerary

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/middleware"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/controller"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/router"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the itinerary module and registers routes. The draft
// manager is returned so sibling modules (trip submit, suggestion intake)
// can reach the in-memory drafts.
func Init(e *echo.Echo, mw *middleware.Middleware) *service.DraftManager {
	drafts := service.NewDraftManager()
	ctrl := controller.NewItineraryController(drafts)
	rtr := router.NewItineraryRouter(ctrl)

	rtr.Setup(e, mw)
	return drafts
}
