package router

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/middleware"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/controller"

	"github.com/labstack/echo/v4"
)

// SuggestionRouter handles suggestion routes
type SuggestionRouter struct {
	SuggestionController *controller.SuggestionController
}

// NewSuggestionRouter creates a new router
func NewSuggestionRouter(suggestionController *controller.SuggestionController) *SuggestionRouter {
	return &SuggestionRouter{
		SuggestionController: suggestionController,
	}
}

// Setup registers suggestion routes under the draft they feed
func (r *SuggestionRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	suggestions := privateRoutes.Group("/itineraries/drafts/:draftId/suggestions", mw.AuthMiddleware())

	suggestions.POST("/fetch", r.SuggestionController.Fetch)
	suggestions.POST("/apply", r.SuggestionController.ApplyScheduled)
	suggestions.POST("/resolve", r.SuggestionController.Resolve)
	suggestions.POST("/confirm", r.SuggestionController.Confirm)
}
