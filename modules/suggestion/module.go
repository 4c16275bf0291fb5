package suggestion

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/config"
	"github.com/adityamakwana707/globetrotter-sub000/core/middleware"
	itinservice "github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/controller"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/router"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the suggestion module and registers routes. The cache and
// enqueuer may be nil; the service then works uncached and without
// background enrichment. The returned processor handles the enrichment tasks
// and is registered with the task server by the caller.
func Init(e *echo.Echo, mw *middleware.Middleware, drafts *itinservice.DraftManager, c service.SuggestionCache, enqueuer service.TaskEnqueuer, cfg config.SuggestionConfig) *service.EnrichmentProcessor {
	source := service.NewHTTPSource(cfg)
	svc := service.NewSuggestionService(source, c, enqueuer, drafts, cfg.CacheTTLMin)
	ctrl := controller.NewSuggestionController(svc)
	rtr := router.NewSuggestionRouter(ctrl)

	rtr.Setup(e, mw)
	return service.NewEnrichmentProcessor(drafts, source)
}
