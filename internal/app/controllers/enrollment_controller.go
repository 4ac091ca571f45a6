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

// EnrollmentController handles enrollments and exam results
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Enroll enrolls the current student into a course. Enrolling in a
// priced course also creates the first fee payment.
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.enrollmentService.Enroll(ctx.Request.Context(), currentUserID(ctx), req.CourseID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("courseID", req.CourseID).Msg("Enrollment failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("enrollmentID", resp.ID).Int64("courseID", req.CourseID).Msg("Student enrolled")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// MyEnrollments lists the current student's enrollments
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	resp, err := c.enrollmentService.ListStudentEnrollments(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// MyAcademics summarises the current student's attendance rate, pass
// rate and average marks
func (c *EnrollmentController) MyAcademics(ctx *gin.Context) {
	resp, err := c.enrollmentService.AcademicsSummary(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// GetEnrollment returns one enrollment by ID
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.enrollmentService.GetEnrollment(ctx.Request.Context(), enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListCourseEnrollments lists a course's enrollments
func (c *EnrollmentController) ListCourseEnrollments(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.enrollmentService.ListCourseEnrollments(ctx.Request.Context(), courseID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpdateEnrollmentStatus moves an enrollment along its lifecycle
func (c *EnrollmentController) UpdateEnrollmentStatus(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.enrollmentService.UpdateEnrollmentStatus(ctx.Request.Context(), currentUserID(ctx), enrollmentID, req.Status)
	if err != nil {
		c.logger.Warn().Err(err).Int64("enrollmentID", enrollmentID).Str("status", string(req.Status)).Msg("Enrollment status change rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpdateProgress sets an enrollment's completion percentage
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Progress float64 `json:"progress" binding:"min=0,max=100"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.enrollmentService.UpdateProgress(ctx.Request.Context(), enrollmentID, req.Progress); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Progress updated"))
}

// RecordExamResult records a graded exam for an enrollment
func (c *EnrollmentController) RecordExamResult(ctx *gin.Context) {
	var req dto.RecordExamResultRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.enrollmentService.RecordExamResult(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// ListExamResults lists an enrollment's exam results
func (c *EnrollmentController) ListExamResults(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.enrollmentService.ListExamResults(ctx.Request.Context(), enrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}
