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

// CourseController handles course catalog and teaching operations
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// CreateCourse creates a course in draft status
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.CreateCourse(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to create course")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("courseID", resp.ID).Str("title", resp.Title).Msg("Course created")
	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// GetCourse returns one course by ID
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListCourses lists courses with optional type, status and title filters
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var filter dto.CourseFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.courseService.ListCourses(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// ListActiveCourses lists only courses open for enrollment
func (c *CourseController) ListActiveCourses(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	resp, err := c.courseService.ListActiveCourses(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpdateCourse updates course fields other than status
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.UpdateCourse(ctx.Request.Context(), currentUserID(ctx), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// UpdateCourseStatus moves a course along its lifecycle
func (c *CourseController) UpdateCourseStatus(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.UpdateCourseStatus(ctx.Request.Context(), currentUserID(ctx), courseID, req.Status)
	if err != nil {
		c.logger.Warn().Err(err).Int64("courseID", courseID).Str("status", string(req.Status)).Msg("Course status change rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// DeleteCourse removes a draft course
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), currentUserID(ctx), courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Course deleted successfully"))
}

// AssignTeacher links a teacher to a course
func (c *CourseController) AssignTeacher(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignTeacherRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.courseService.AssignTeacher(ctx.Request.Context(), currentUserID(ctx), courseID, &req); err != nil {
		c.logger.Warn().Err(err).Int64("courseID", courseID).Int64("teacherID", req.TeacherID).Msg("Failed to assign teacher")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Teacher assigned successfully"))
}

// RemoveTeacher unlinks a teacher from a course
func (c *CourseController) RemoveTeacher(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	teacherID, ok := parseIDParam(ctx, "teacherId")
	if !ok {
		return
	}

	if err := c.courseService.RemoveTeacher(ctx.Request.Context(), courseID, teacherID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Teacher removed successfully"))
}

// MyCourses lists the courses assigned to the current teacher
func (c *CourseController) MyCourses(ctx *gin.Context) {
	resp, err := c.courseService.ListTeacherCourses(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// CreateAssignment adds coursework to a course
func (c *CourseController) CreateAssignment(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.CreateAssignment(ctx.Request.Context(), currentUserID(ctx), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// ListAssignments lists a course's assignments
func (c *CourseController) ListAssignments(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.courseService.ListAssignments(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// CreateLessonPlan adds a dated lesson plan to a course
func (c *CourseController) CreateLessonPlan(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateLessonPlanRequest
	if !bindJSON(ctx, &req) {
		return
	}

	planID, err := c.courseService.CreateLessonPlan(ctx.Request.Context(), currentUserID(ctx), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: map[string]int64{"id": planID}})
}

// ListLessonPlans lists a course's lesson plans
func (c *CourseController) ListLessonPlans(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.courseService.ListLessonPlans(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// CreateRoutine adds a weekly class slot for the current teacher
func (c *CourseController) CreateRoutine(ctx *gin.Context) {
	var req dto.CreateRoutineRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.CreateRoutine(ctx.Request.Context(), currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Success: true, Data: resp})
}

// MyRoutine lists the current teacher's weekly class slots,
// optionally limited to one day
func (c *CourseController) MyRoutine(ctx *gin.Context) {
	resp, err := c.courseService.ListRoutinesForTeacher(ctx.Request.Context(), currentUserID(ctx), ctx.Query("day"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}

// MyClassSchedule lists the weekly class slots for the current
// student's enrolled courses
func (c *CourseController) MyClassSchedule(ctx *gin.Context) {
	resp, err := c.courseService.ListRoutinesForStudent(ctx.Request.Context(), currentUserID(ctx), ctx.Query("day"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}
