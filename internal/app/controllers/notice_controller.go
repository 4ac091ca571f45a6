package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
	"github.com/instracore/backend/internal/pkg/helpers"
)

const upcomingEventsLimit = 10

// NoticeController handles announcements and events
type NoticeController struct {
	noticeService *services.NoticeService
	logger        zerolog.Logger
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService *services.NoticeService, logger zerolog.Logger) *NoticeController {
	return &NoticeController{
		noticeService: noticeService,
		logger:        logger,
	}
}

// CreateNotice publishes an announcement
func (c *NoticeController) CreateNotice(ctx *gin.Context) {
	var req dto.CreateNoticeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.noticeService.CreateNotice(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("title", req.Title).Msg("Failed to create notice")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// GetNotice returns one notice by ID
func (c *NoticeController) GetNotice(ctx *gin.Context) {
	noticeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.noticeService.GetNotice(ctx.Request.Context(), noticeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// DeactivateNotice takes an announcement down
func (c *NoticeController) DeactivateNotice(ctx *gin.Context) {
	noticeID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noticeService.DeactivateNotice(ctx.Request.Context(), currentUserID(ctx), noticeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notice deactivated"))
}

// ListNotices lists the active notices visible to the current user's role
func (c *NoticeController) ListNotices(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.noticeService.ListNoticesForRole(ctx.Request.Context(), currentRole(ctx), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListAllNotices lists every notice, active or not
func (c *NoticeController) ListAllNotices(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.noticeService.ListAllNotices(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// CreateEvent schedules an institute event
func (c *NoticeController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.noticeService.CreateEvent(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("title", req.Title).Msg("Failed to create event")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// DeleteEvent removes an event
func (c *NoticeController) DeleteEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.noticeService.DeleteEvent(ctx.Request.Context(), currentUserID(ctx), eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Event deleted"))
}

// ListEvents lists events
func (c *NoticeController) ListEvents(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.noticeService.ListEvents(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpcomingEvents lists events that have not ended yet
func (c *NoticeController) UpcomingEvents(ctx *gin.Context) {
	resp, err := c.noticeService.UpcomingEvents(ctx.Request.Context(), upcomingEventsLimit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}
