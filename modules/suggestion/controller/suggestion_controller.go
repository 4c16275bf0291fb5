package controller

import (
	"github.com/labstack/echo/v4"

	"github.com/adityamakwana707/globetrotter-sub000/core/constants"
	"github.com/adityamakwana707/globetrotter-sub000/core/controller"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/dto"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/service"
)

// SuggestionController handles suggestion HTTP requests
type SuggestionController struct {
	controller.BaseController
	SuggestionService service.SuggestionServiceInterface
}

// NewSuggestionController creates a new controller
func NewSuggestionController(svc service.SuggestionServiceInterface) *SuggestionController {
	return &SuggestionController{
		BaseController:    controller.NewBaseController(),
		SuggestionService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *SuggestionController) getUserIDFromContext(ctx echo.Context) (string, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return "", errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return "", errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID.String(), nil
}

// Fetch handles POST /drafts/:draftId/suggestions/fetch
// @Summary Fetch suggestions for a destination
// @Description Returns provider recommendations; a newer fetch for the same draft supersedes this one
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body dto.FetchSuggestionsRequest true "Destination and interests"
// @Success 200 {object} dto.SuggestionListResponse
// @Failure 409 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/suggestions/fetch [post]
func (c *SuggestionController) Fetch(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.FetchSuggestionsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	resp, appErr := c.SuggestionService.FetchSuggestions(ctx.Request().Context(), ctx.Param("draftId"), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Success")
}

// ApplyScheduled handles POST /drafts/:draftId/suggestions/apply
// @Summary Drop a scheduled suggestion into its day
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body dto.ApplyScheduledRequest true "Scheduled suggestion"
// @Success 200 {object} dto.PlacedResponse
// @Failure 404 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/suggestions/apply [post]
func (c *SuggestionController) ApplyScheduled(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.ApplyScheduledRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	resp, appErr := c.SuggestionService.ApplyScheduled(ctx.Request().Context(), ctx.Param("draftId"), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Suggestion placed")
}

// Resolve handles POST /drafts/:draftId/suggestions/resolve
// @Summary List candidate starts for a suggestion
// @Description An empty candidate list means the day has no free slot of that length
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body dto.ResolveSuggestionRequest true "Suggestion and target day"
// @Success 200 {object} dto.CandidateStartsResponse
// @Failure 404 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/suggestions/resolve [post]
func (c *SuggestionController) Resolve(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.ResolveSuggestionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	resp, appErr := c.SuggestionService.ResolveCandidates(ctx.Request().Context(), ctx.Param("draftId"), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Success")
}

// Confirm handles POST /drafts/:draftId/suggestions/confirm
// @Summary Place a suggestion at a chosen start
// @Tags Suggestion
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body dto.ConfirmSuggestionRequest true "Suggestion and chosen start"
// @Success 200 {object} dto.PlacedResponse
// @Failure 404 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/suggestions/confirm [post]
func (c *SuggestionController) Confirm(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.ConfirmSuggestionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	resp, appErr := c.SuggestionService.ConfirmPlacement(ctx.Request().Context(), ctx.Param("draftId"), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Suggestion placed")
}
