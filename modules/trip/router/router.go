package router

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/middleware"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/controller"

	"github.com/labstack/echo/v4"
)

// TripRouter handles trip routes
type TripRouter struct {
	TripController *controller.TripController
}

// NewTripRouter creates a new router
func NewTripRouter(tripController *controller.TripController) *TripRouter {
	return &TripRouter{
		TripController: tripController,
	}
}

// Setup registers trip routes
func (r *TripRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	privateRoutes := v1.Group("/private")
	trips := privateRoutes.Group("/trips", mw.AuthMiddleware())

	trips.POST("", r.TripController.SubmitDraft)
	trips.GET("", r.TripController.GetMyTrips)
	trips.GET("/:tripId", r.TripController.GetTrip)
	trips.PUT("/:tripId", r.TripController.UpdateFromDraft)
	trips.DELETE("/:tripId", r.TripController.DeleteTrip)
	trips.POST("/:tripId/edit", r.TripController.OpenForEditing)
	trips.PATCH("/:tripId/visibility", r.TripController.SetVisibility)

	// Shared links resolve without authentication
	publicRoutes := v1.Group("/public")
	publicRoutes.GET("/trips/:slug", r.TripController.GetPublicBySlug)
}
