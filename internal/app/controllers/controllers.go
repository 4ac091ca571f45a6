// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/pkg/filestorage"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController        *AuthController
	UserController        *UserController
	CourseController      *CourseController
	EnrollmentController  *EnrollmentController
	AttendanceController  *AttendanceController
	RecruitmentController *RecruitmentController
	FinanceController     *FinanceController
	CertificateController *CertificateController
	NoticeController      *NoticeController
	DashboardController   *DashboardController
	ReportController      *ReportController
}

// NewControllers initializes all controllers
func NewControllers(svcs *services.Services, fileStorage filestorage.FileStorage, logger zerolog.Logger) *Controllers {
	return &Controllers{
		AuthController:        NewAuthController(svcs.AuthService, logger),
		UserController:        NewUserController(svcs.UserService, fileStorage, logger),
		CourseController:      NewCourseController(svcs.CourseService, logger),
		EnrollmentController:  NewEnrollmentController(svcs.EnrollmentService, logger),
		AttendanceController:  NewAttendanceController(svcs.AttendanceService, logger),
		RecruitmentController: NewRecruitmentController(svcs.RecruitmentService, fileStorage, logger),
		FinanceController:     NewFinanceController(svcs.FinanceService, logger),
		CertificateController: NewCertificateController(svcs.CertificateService, logger),
		NoticeController:      NewNoticeController(svcs.NoticeService, logger),
		DashboardController:   NewDashboardController(svcs.DashboardService, logger),
		ReportController:      NewReportController(svcs.ReportService, logger),
	}
}

// bindJSON binds the request body and writes a 400 response on failure
func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// parseIDParam parses a numeric path parameter and writes a 400 response
// on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// currentUserID reads the authenticated user's ID set by the JWT middleware
func currentUserID(ctx *gin.Context) int64 {
	if v, exists := ctx.Get("userID"); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// currentRole reads the authenticated user's role set by the JWT middleware
func currentRole(ctx *gin.Context) models.Role {
	if v, exists := ctx.Get("role"); exists {
		if role, ok := v.(string); ok {
			return models.Role(role)
		}
	}
	return ""
}

// currentSubRole reads the authenticated employee's sub-role, if any
func currentSubRole(ctx *gin.Context) models.SubRole {
	if v, exists := ctx.Get("subRole"); exists {
		if subRole, ok := v.(string); ok {
			return models.SubRole(subRole)
		}
	}
	return ""
}
