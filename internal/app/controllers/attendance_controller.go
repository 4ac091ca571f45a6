package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// AttendanceController handles attendance tracking
type AttendanceController struct {
	attendanceService *services.AttendanceService
	logger            zerolog.Logger
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, logger zerolog.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// parseDateRange reads optional from/to query parameters. Missing values
// default to the last 30 days.
func parseDateRange(ctx *gin.Context) (from, to time.Time, ok bool) {
	now := helpers.TruncateToDay(time.Now())
	from = now.AddDate(0, 0, -30)
	to = now.AddDate(0, 0, 1)

	if v := ctx.Query("from"); v != "" {
		parsed, err := helpers.ParseDate(v)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid from date")
			errorDetail = errorDetail.WithDetails("from must be formatted as YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return from, to, false
		}
		from = parsed
	}
	if v := ctx.Query("to"); v != "" {
		parsed, err := helpers.ParseDate(v)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid to date")
			errorDetail = errorDetail.WithDetails("to must be formatted as YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1)
	}

	return from, to, true
}

// RecordAttendance records one user's attendance for a date
func (c *AttendanceController) RecordAttendance(ctx *gin.Context) {
	var req dto.RecordAttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.attendanceService.RecordAttendance(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", req.UserID).Str("date", req.Date).Msg("Failed to record attendance")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// CorrectAttendance fixes the status or note of an existing record
func (c *AttendanceController) CorrectAttendance(ctx *gin.Context) {
	recordID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CorrectAttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.attendanceService.CorrectAttendance(ctx.Request.Context(), currentUserID(ctx), recordID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Message: "Attendance updated"})
}

// RecordBulkAttendance records attendance for many users at once
func (c *AttendanceController) RecordBulkAttendance(ctx *gin.Context) {
	var req dto.BulkAttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.attendanceService.RecordBulkAttendance(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// ListUserAttendance lists one user's attendance over a date range
func (c *AttendanceController) ListUserAttendance(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	from, to, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.attendanceService.ListUserAttendance(ctx.Request.Context(), userID, from, to, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// MarkMyAttendance marks the current employee present for today
func (c *AttendanceController) MarkMyAttendance(ctx *gin.Context) {
	var req struct {
		Note string `json:"note,omitempty"`
	}
	if ctx.Request.ContentLength > 0 && !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.attendanceService.MarkSelfAttendance(ctx.Request.Context(), currentUserID(ctx), req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// MyAttendance lists the current user's attendance over a date range
func (c *AttendanceController) MyAttendance(ctx *gin.Context) {
	from, to, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.attendanceService.ListUserAttendance(ctx.Request.Context(), currentUserID(ctx), from, to, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListDailyAttendance lists everyone's attendance for one date
func (c *AttendanceController) ListDailyAttendance(ctx *gin.Context) {
	date := helpers.TruncateToDay(time.Now())
	if v := ctx.Query("date"); v != "" {
		parsed, err := helpers.ParseDate(v)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date")
			errorDetail = errorDetail.WithDetails("date must be formatted as YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		date = parsed
	}

	resp, err := c.attendanceService.ListDailyAttendance(ctx.Request.Context(), date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// AttendanceSummary aggregates one user's attendance over a date range
func (c *AttendanceController) AttendanceSummary(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	from, to, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	resp, err := c.attendanceService.Summary(ctx.Request.Context(), userID, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}
