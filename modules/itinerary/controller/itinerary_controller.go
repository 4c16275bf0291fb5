package controller

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/constants"
	"github.com/adityamakwana707/globetrotter-sub000/core/controller"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/dto"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/entity"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary/service"

	"github.com/labstack/echo/v4"
)

// ItineraryController handles draft editing HTTP requests
type ItineraryController struct {
	controller.BaseController
	Drafts *service.DraftManager
}

// NewItineraryController creates a new controller
func NewItineraryController(drafts *service.DraftManager) *ItineraryController {
	return &ItineraryController{
		BaseController: controller.NewBaseController(),
		Drafts:         drafts,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *ItineraryController) getUserIDFromContext(ctx echo.Context) (string, error) {
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

func (c *ItineraryController) draft(ctx echo.Context) (*service.Draft, *errors.AppError) {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", err)
	}
	return c.Drafts.Get(ctx.Param("draftId"), ownerID)
}

// CreateDraft handles POST /itineraries/drafts
// @Summary Open a trip draft
// @Description Creates a draft and generates one day per date in the range
// @Tags Itinerary
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDraftRequest true "Date range"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} errors.AppError
// @Router /private/itineraries/drafts [post]
func (c *ItineraryController) CreateDraft(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateDraftRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start date")
	}
	endDate, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid end date")
	}

	draft := c.Drafts.Create(ownerID)
	draft.Lock()
	defer draft.Unlock()
	if appErr := draft.Store.GenerateDays(startDate, endDate, req.Location); appErr != nil {
		c.Drafts.Discard(draft.ID)
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.ToDraftResponse(draft), "Draft created")
}

// GetDraft handles GET /itineraries/drafts/:draftId
// @Summary Get a draft snapshot
// @Tags Itinerary
// @Security BearerAuth
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId} [get]
func (c *ItineraryController) GetDraft(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()
	return c.SuccessResponse(ctx, dto.ToDraftResponse(draft), "Success")
}

// DiscardDraft handles DELETE /itineraries/drafts/:draftId
// @Summary Discard a draft
// @Tags Itinerary
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/itineraries/drafts/{draftId} [delete]
func (c *ItineraryController) DiscardDraft(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()
	c.Drafts.Discard(draft.ID)
	return c.SuccessResponse(ctx, nil, "Draft discarded")
}

// AddDay handles POST /itineraries/drafts/:draftId/days
// @Summary Append a day
// @Tags Itinerary
// @Security BearerAuth
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 200 {object} dto.DayResponse
// @Router /private/itineraries/drafts/{draftId}/days [post]
func (c *ItineraryController) AddDay(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()
	day := draft.Store.AddDay()
	return c.SuccessResponse(ctx, dto.ToDayResponse(day), "Day added")
}

// UpdateDay handles PUT /itineraries/drafts/:draftId/days/:dayId
// @Summary Update day fields
// @Tags Itinerary
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param dayId path string true "Day ID"
// @Param request body dto.UpdateDayRequest true "Fields to merge"
// @Success 200 {object} dto.DayResponse
// @Failure 404 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/days/{dayId} [put]
func (c *ItineraryController) UpdateDay(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()

	var req dto.UpdateDayRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	patch := service.DayPatch{
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
		Location:    req.Location,
		Completed:   req.Completed,
	}
	if req.Date != nil {
		parsed, err := dto.ParseDate(*req.Date)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid date")
		}
		patch.Date = &parsed
	}
	if req.ActivityType != nil {
		activityType := entity.ActivityType(*req.ActivityType)
		patch.ActivityType = &activityType
	}

	dayID := ctx.Param("dayId")
	if appErr := draft.Store.UpdateDay(dayID, patch); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToDayResponse(draft.Store.DayByID(dayID)), "Day updated")
}

// RemoveDay handles DELETE /itineraries/drafts/:draftId/days/:dayId
// @Summary Remove a day and renumber the rest
// @Tags Itinerary
// @Security BearerAuth
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param dayId path string true "Day ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/days/{dayId} [delete]
func (c *ItineraryController) RemoveDay(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()
	if appErr := draft.Store.RemoveDay(ctx.Param("dayId")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToDraftResponse(draft), "Day removed")
}

// PlaceActivity handles POST /itineraries/drafts/:draftId/days/:dayId/activities
// @Summary Place an activity in a day
// @Tags Itinerary
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param dayId path string true "Day ID"
// @Param request body dto.PlaceActivityRequest true "Activity"
// @Success 200 {object} dto.DayResponse
// @Failure 404 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/days/{dayId}/activities [post]
func (c *ItineraryController) PlaceActivity(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()

	var req dto.PlaceActivityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	descriptor, err := req.ToDescriptor()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start time")
	}

	dayID := ctx.Param("dayId")
	if _, appErr := draft.Placement.PlaceInDay(dayID, descriptor, nil); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToDayResponse(draft.Store.DayByID(dayID)), "Activity placed")
}

// RemoveActivity handles DELETE /itineraries/drafts/:draftId/days/:dayId/activities/:activityId
// @Summary Remove a placed activity
// @Tags Itinerary
// @Security BearerAuth
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param dayId path string true "Day ID"
// @Param activityId path string true "Activity ID"
// @Success 200 {object} dto.DayResponse
// @Failure 404 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/days/{dayId}/activities/{activityId} [delete]
func (c *ItineraryController) RemoveActivity(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()
	dayID := ctx.Param("dayId")
	if appErr := draft.Placement.RemoveActivity(dayID, ctx.Param("activityId")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToDayResponse(draft.Store.DayByID(dayID)), "Activity removed")
}

// UpdateActivityCost handles PUT /itineraries/drafts/:draftId/days/:dayId/activities/:activityId/cost
// @Summary Edit a placed activity's estimated cost
// @Tags Itinerary
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param dayId path string true "Day ID"
// @Param activityId path string true "Activity ID"
// @Param request body dto.UpdateCostRequest true "New cost"
// @Success 200 {object} dto.DayResponse
// @Router /private/itineraries/drafts/{draftId}/days/{dayId}/activities/{activityId}/cost [put]
func (c *ItineraryController) UpdateActivityCost(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()

	var req dto.UpdateCostRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	dayID := ctx.Param("dayId")
	if appErr := draft.Placement.UpdateActivityCost(dayID, ctx.Param("activityId"), req.EstimatedCost); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToDayResponse(draft.Store.DayByID(dayID)), "Cost updated")
}

// PlaceInSlot handles POST /itineraries/drafts/:draftId/days/:dayId/slots
// @Summary Drop an activity onto a slot
// @Tags Itinerary
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param dayId path string true "Day ID"
// @Param request body dto.PlaceInSlotRequest true "Slot and activity"
// @Success 200 {object} dto.DayResponse
// @Failure 409 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/days/{dayId}/slots [post]
func (c *ItineraryController) PlaceInSlot(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()

	var req dto.PlaceInSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	descriptor, err := req.Activity.ToDescriptor()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid start time")
	}

	dayID := ctx.Param("dayId")
	activity := service.BuildActivity(descriptor, nil)
	if appErr := draft.Placement.PlaceInSlot(dayID, req.SlotID, activity); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToDayResponse(draft.Store.DayByID(dayID)), "Activity placed in slot")
}

// RemoveFromSlot handles DELETE /itineraries/drafts/:draftId/days/:dayId/slots/:slotId
// @Summary Clear a slot
// @Tags Itinerary
// @Security BearerAuth
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param dayId path string true "Day ID"
// @Param slotId path string true "Slot ID"
// @Success 200 {object} dto.DayResponse
// @Router /private/itineraries/drafts/{draftId}/days/{dayId}/slots/{slotId} [delete]
func (c *ItineraryController) RemoveFromSlot(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()
	dayID := ctx.Param("dayId")
	if appErr := draft.Placement.RemoveFromSlot(dayID, ctx.Param("slotId")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToDayResponse(draft.Store.DayByID(dayID)), "Slot cleared")
}

// Move handles POST /itineraries/drafts/:draftId/moves
// @Summary Move an activity between slots (drag-and-drop)
// @Tags Itinerary
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body dto.MoveRequest true "Source and target"
// @Success 200 {object} dto.DraftResponse
// @Failure 409 {object} errors.AppError
// @Router /private/itineraries/drafts/{draftId}/moves [post]
func (c *ItineraryController) Move(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()

	var req dto.MoveRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Validation failed", err.Error())
	}

	if appErr := draft.Placement.MoveBetweenSlots(req.SourceDayID, req.SourceSlotID, req.TargetDayID, req.TargetSlotID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToDraftResponse(draft), "Activity moved")
}

// FreeStarts handles GET /itineraries/drafts/:draftId/days/:dayId/free-starts
// @Summary List candidate start times for a duration
// @Tags Itinerary
// @Security BearerAuth
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param dayId path string true "Day ID"
// @Param duration_hours query number false "Duration in hours (default 2)"
// @Success 200 {object} dto.FreeStartsResponse
// @Router /private/itineraries/drafts/{draftId}/days/{dayId}/free-starts [get]
func (c *ItineraryController) FreeStarts(ctx echo.Context) error {
	draft, appErr := c.draft(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	draft.Lock()
	defer draft.Unlock()

	var req dto.FreeStartsRequest
	if err := echo.QueryParamsBinder(ctx).Float64("duration_hours", &req.DurationHours).BindError(); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid duration")
	}

	dayID := ctx.Param("dayId")
	starts, appErr := draft.Placement.ResolveSuggestion(dayID, req.DurationHours)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.ToFreeStartsResponse(dayID, req.DurationHours, starts), "Success")
}
