package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/adityamakwana707/globetrotter-sub000/core/constants"
	"github.com/adityamakwana707/globetrotter-sub000/core/controller"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/dto"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip/service"
)

// TripController handles trip HTTP requests
type TripController struct {
	controller.BaseController
	TripService service.TripServiceInterface
}

// NewTripController creates a new controller
func NewTripController(svc service.TripServiceInterface) *TripController {
	return &TripController{
		BaseController: controller.NewBaseController(),
		TripService:    svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *TripController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// SubmitDraft handles POST /trips
// @Summary Save a draft as a trip
// @Description Serializes the draft and stores it; the draft is discarded on success
// @Tags Trip
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitTripRequest true "Draft reference and trip metadata"
// @Success 200 {object} dto.TripResponse
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/trips [post]
func (c *TripController) SubmitDraft(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.SubmitTripRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	resp, appErr := c.TripService.SubmitDraft(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Trip saved")
}

// UpdateFromDraft handles PUT /trips/:tripId
// @Summary Overwrite a trip from a draft
// @Tags Trip
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body dto.UpdateTripRequest true "Draft reference and trip metadata"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} errors.AppError
// @Router /private/trips/{tripId} [put]
func (c *TripController) UpdateFromDraft(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpdateTripRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	resp, appErr := c.TripService.UpdateFromDraft(ctx.Request().Context(), ctx.Param("tripId"), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Trip updated")
}

// OpenForEditing handles POST /trips/:tripId/edit
// @Summary Reopen a trip as a draft
// @Description Deserializes the stored itinerary into a fresh editing session
// @Tags Trip
// @Security BearerAuth
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} dto.OpenDraftResponse
// @Failure 404 {object} errors.AppError
// @Router /private/trips/{tripId}/edit [post]
func (c *TripController) OpenForEditing(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	resp, appErr := c.TripService.OpenForEditing(ctx.Request().Context(), ctx.Param("tripId"), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Draft opened")
}

// GetTrip handles GET /trips/:tripId
// @Summary Get one trip
// @Tags Trip
// @Security BearerAuth
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} errors.AppError
// @Router /private/trips/{tripId} [get]
func (c *TripController) GetTrip(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	resp, appErr := c.TripService.GetTrip(ctx.Request().Context(), ctx.Param("tripId"), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Success")
}

// GetMyTrips handles GET /trips
// @Summary List my trips
// @Tags Trip
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.TripSummaryResponse
// @Router /private/trips [get]
func (c *TripController) GetMyTrips(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	resp, appErr := c.TripService.GetMyTrips(ctx.Request().Context(), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Success")
}

// DeleteTrip handles DELETE /trips/:tripId
// @Summary Delete a trip
// @Tags Trip
// @Security BearerAuth
// @Param tripId path string true "Trip ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /private/trips/{tripId} [delete]
func (c *TripController) DeleteTrip(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := c.TripService.DeleteTrip(ctx.Request().Context(), ctx.Param("tripId"), ownerID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Trip deleted")
}

// SetVisibility handles PATCH /trips/:tripId/visibility
// @Summary Publish or unpublish a trip
// @Tags Trip
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body dto.PublishTripRequest true "Visibility flag"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} errors.AppError
// @Router /private/trips/{tripId}/visibility [patch]
func (c *TripController) SetVisibility(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.PublishTripRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	resp, appErr := c.TripService.SetVisibility(ctx.Request().Context(), ctx.Param("tripId"), ownerID, req.IsPublic)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Visibility updated")
}

// GetPublicBySlug handles GET /public/trips/:slug
// @Summary View a shared trip
// @Tags Trip
// @Produce json
// @Param slug path string true "Trip slug"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} errors.AppError
// @Router /public/trips/{slug} [get]
func (c *TripController) GetPublicBySlug(ctx echo.Context) error {
	resp, appErr := c.TripService.GetPublicBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Success")
}
