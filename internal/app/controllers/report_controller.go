package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
)

// ReportController serves aggregate reports
type ReportController struct {
	reportService *services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// reportRequest reads the year/month query parameters. Values that do
// not parse fall back to the current period inside the service.
func reportRequest(ctx *gin.Context) *dto.ReportRequest {
	return &dto.ReportRequest{
		Year:  ctx.Query("year"),
		Month: ctx.Query("month"),
	}
}

// FinancialReport aggregates income, expenses and salaries per month
func (c *ReportController) FinancialReport(ctx *gin.Context) {
	resp, err := c.reportService.FinancialReport(ctx.Request.Context(), reportRequest(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// EnrollmentReport aggregates enrollments per course
func (c *ReportController) EnrollmentReport(ctx *gin.Context) {
	resp, err := c.reportService.EnrollmentReport(ctx.Request.Context(), reportRequest(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// AttendanceReport aggregates everyone's attendance for one month
func (c *ReportController) AttendanceReport(ctx *gin.Context) {
	resp, err := c.reportService.AttendanceReport(ctx.Request.Context(), reportRequest(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UserReport breaks the user base down per role and active flag
func (c *ReportController) UserReport(ctx *gin.Context) {
	resp, err := c.reportService.UserReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// RecruitmentReport aggregates the hiring pipeline for one year
func (c *ReportController) RecruitmentReport(ctx *gin.Context) {
	resp, err := c.reportService.RecruitmentReport(ctx.Request.Context(), reportRequest(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// SendGuardianReport emails a progress report to a student's guardian
func (c *ReportController) SendGuardianReport(ctx *gin.Context) {
	var req dto.SendGuardianReportRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.reportService.SendGuardianReport(ctx.Request.Context(), currentUserID(ctx), &req); err != nil {
		c.logger.Warn().Err(err).Int64("studentID", req.StudentID).Msg("Failed to send guardian report")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Guardian report sent"))
}
