package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
	"github.com/instracore/backend/internal/pkg/filestorage"
	"github.com/instracore/backend/internal/pkg/helpers"
)

const resumesDir = "resumes"

// RecruitmentController handles the hiring pipeline
type RecruitmentController struct {
	recruitmentService *services.RecruitmentService
	fileStorage        filestorage.FileStorage
	logger             zerolog.Logger
}

// NewRecruitmentController creates a new RecruitmentController
func NewRecruitmentController(recruitmentService *services.RecruitmentService, fileStorage filestorage.FileStorage, logger zerolog.Logger) *RecruitmentController {
	return &RecruitmentController{
		recruitmentService: recruitmentService,
		fileStorage:        fileStorage,
		logger:             logger,
	}
}

// CreateJobPost publishes an open position
func (c *RecruitmentController) CreateJobPost(ctx *gin.Context) {
	var req dto.CreateJobPostRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.recruitmentService.CreateJobPost(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("title", req.Title).Msg("Failed to create job post")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobPostID", resp.ID).Str("title", resp.Title).Msg("Job post created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// GetJobPost returns one job post by ID
func (c *RecruitmentController) GetJobPost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.recruitmentService.GetJobPost(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListJobPosts lists job posts. Pass open=true to see only positions
// still accepting applications.
func (c *RecruitmentController) ListJobPosts(ctx *gin.Context) {
	onlyOpen := ctx.Query("open") == "true"
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.recruitmentService.ListJobPosts(ctx.Request.Context(), onlyOpen, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListOpenJobPosts lists positions still accepting applications
func (c *RecruitmentController) ListOpenJobPosts(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.recruitmentService.ListJobPosts(ctx.Request.Context(), true, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// CloseJobPost stops a post from accepting applications
func (c *RecruitmentController) CloseJobPost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.recruitmentService.CloseJobPost(ctx.Request.Context(), currentUserID(ctx), postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Job post closed"))
}

// Apply submits the current candidate's application to an open post
func (c *RecruitmentController) Apply(ctx *gin.Context) {
	var req dto.ApplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.recruitmentService.Apply(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("jobPostID", req.JobPostID).Msg("Application rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", resp.ID).Int64("jobPostID", req.JobPostID).Msg("Application submitted")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// MyApplications lists the current candidate's applications
func (c *RecruitmentController) MyApplications(ctx *gin.Context) {
	resp, err := c.recruitmentService.ListCandidateApplications(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListPostApplications lists a post's applications
func (c *RecruitmentController) ListPostApplications(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	resp, err := c.recruitmentService.ListPostApplications(ctx.Request.Context(), postID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpdateApplicationStatus moves an application along the pipeline
func (c *RecruitmentController) UpdateApplicationStatus(ctx *gin.Context) {
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.recruitmentService.UpdateApplicationStatus(ctx.Request.Context(), currentUserID(ctx), applicationID, req.Status)
	if err != nil {
		c.logger.Warn().Err(err).Int64("applicationID", applicationID).Str("status", string(req.Status)).Msg("Application status change rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ScheduleInterview schedules an interview for an application and emails
// the candidate an invitation
func (c *RecruitmentController) ScheduleInterview(ctx *gin.Context) {
	var req dto.ScheduleInterviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.recruitmentService.ScheduleInterview(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("applicationID", req.ApplicationID).Msg("Failed to schedule interview")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// UpdateInterviewStatus marks an interview completed or cancelled
func (c *RecruitmentController) UpdateInterviewStatus(ctx *gin.Context) {
	interviewID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.InterviewStatus `json:"status" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.recruitmentService.UpdateInterviewStatus(ctx.Request.Context(), interviewID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Interview updated"))
}

// MyInterviews lists the current candidate's interview invitations
func (c *RecruitmentController) MyInterviews(ctx *gin.Context) {
	resp, err := c.recruitmentService.ListCandidateInterviews(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// GetCandidateProfile returns the current candidate's resume data
func (c *RecruitmentController) GetCandidateProfile(ctx *gin.Context) {
	resp, err := c.recruitmentService.GetCandidateProfile(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpdateCandidateProfile updates the current candidate's resume data
func (c *RecruitmentController) UpdateCandidateProfile(ctx *gin.Context) {
	var req dto.UpdateCandidateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.recruitmentService.UpdateCandidateProfile(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UploadResume replaces the current candidate's resume file
func (c *RecruitmentController) UploadResume(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("resume")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing resume file")
		errorDetail = errorDetail.WithDetails("A multipart form field named 'resume' is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resumePath, err := c.fileStorage.SaveFileWithPath(fileHeader, resumesDir)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to store resume")
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.recruitmentService.UpdateResume(ctx.Request.Context(), currentUserID(ctx), resumePath); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(map[string]string{"resumePath": resumePath}, "Resume uploaded"))
}
