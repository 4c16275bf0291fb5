package router

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/middleware"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/controller"

	"github.com/labstack/echo/v4"
)

// ItineraryRouter handles draft editing routes
type ItineraryRouter struct {
	ItineraryController *controller.ItineraryController
}

// NewItineraryRouter creates a new router
func NewItineraryRouter(itineraryController *controller.ItineraryController) *ItineraryRouter {
	return &ItineraryRouter{
		ItineraryController: itineraryController,
	}
}

// Setup registers draft editing routes
func (r *ItineraryRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	drafts := privateRoutes.Group("/itineraries/drafts", mw.AuthMiddleware())

	drafts.POST("", r.ItineraryController.CreateDraft)
	drafts.GET("/:draftId", r.ItineraryController.GetDraft)
	drafts.DELETE("/:draftId", r.ItineraryController.DiscardDraft)

	// Day store mutations
	drafts.POST("/:draftId/days", r.ItineraryController.AddDay)
	drafts.PUT("/:draftId/days/:dayId", r.ItineraryController.UpdateDay)
	drafts.DELETE("/:draftId/days/:dayId", r.ItineraryController.RemoveDay)

	// Placement
	drafts.POST("/:draftId/days/:dayId/activities", r.ItineraryController.PlaceActivity)
	drafts.DELETE("/:draftId/days/:dayId/activities/:activityId", r.ItineraryController.RemoveActivity)
	drafts.PUT("/:draftId/days/:dayId/activities/:activityId/cost", r.ItineraryController.UpdateActivityCost)
	drafts.POST("/:draftId/days/:dayId/slots", r.ItineraryController.PlaceInSlot)
	drafts.DELETE("/:draftId/days/:dayId/slots/:slotId", r.ItineraryController.RemoveFromSlot)
	drafts.POST("/:draftId/moves", r.ItineraryController.Move)

	// Free-slot search
	drafts.GET("/:draftId/days/:dayId/free-starts", r.ItineraryController.FreeStarts)
}
