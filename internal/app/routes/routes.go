// Package routes wires HTTP endpoints to controllers
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/instracore/backend/internal/app/controllers"
	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrls *controllers.Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: gin.H{"status": "ok"}})
	})

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.GET("/setup/status", ctrls.AuthController.SetupStatus)
		auth.POST("/setup", ctrls.AuthController.Setup)
		auth.POST("/register", ctrls.AuthController.Register)
		auth.POST("/login", ctrls.AuthController.Login)
		auth.POST("/refresh", ctrls.AuthController.RefreshToken)
		auth.GET("/verify-email/:token", ctrls.AuthController.VerifyEmail)
		auth.POST("/forgot-password", ctrls.AuthController.ForgotPassword)
		auth.POST("/reset-password", ctrls.AuthController.ResetPassword)
	}

	// --- Public catalog routes ---
	v1.GET("/courses", ctrls.CourseController.ListActiveCourses)
	v1.GET("/courses/:id", ctrls.CourseController.GetCourse)
	v1.GET("/jobs", ctrls.RecruitmentController.ListOpenJobPosts)
	v1.GET("/jobs/:id", ctrls.RecruitmentController.GetJobPost)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrls.AuthController.Logout)
		authenticated.POST("/auth/resend-verification", ctrls.AuthController.ResendVerification)
		authenticated.POST("/auth/change-password", ctrls.AuthController.ChangePassword)

		authenticated.GET("/profile", ctrls.UserController.GetProfile)
		authenticated.PUT("/profile", ctrls.UserController.UpdateProfile)
		authenticated.POST("/profile/image", ctrls.UserController.UploadProfileImage)
		authenticated.DELETE("/profile", ctrls.UserController.DeleteAccount)

		authenticated.GET("/notifications", ctrls.UserController.ListNotifications)
		authenticated.POST("/notifications/:id/read", ctrls.UserController.MarkNotificationRead)
		authenticated.POST("/notifications/read-all", ctrls.UserController.MarkAllNotificationsRead)

		authenticated.GET("/dashboard", ctrls.DashboardController.Dashboard)

		authenticated.GET("/notices", ctrls.NoticeController.ListNotices)
		authenticated.GET("/notices/:id", ctrls.NoticeController.GetNotice)
		authenticated.GET("/events", ctrls.NoticeController.ListEvents)
		authenticated.GET("/events/upcoming", ctrls.NoticeController.UpcomingEvents)

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/users", ctrls.UserController.CreateUser)
			admin.GET("/users", ctrls.UserController.ListUsers)
			admin.GET("/users/:id", ctrls.UserController.GetUser)
			admin.PUT("/users/:id", ctrls.UserController.UpdateUser)
			admin.DELETE("/users/:id", ctrls.UserController.DeleteUser)

			admin.GET("/audit-logs", ctrls.UserController.ListAuditLogs)
			admin.GET("/trash", ctrls.UserController.ListTrash)
			admin.POST("/trash/:id/restore", ctrls.UserController.RestoreTrashItem)
			admin.DELETE("/trash/:id", ctrls.UserController.PurgeTrashItem)

			admin.POST("/notices", ctrls.NoticeController.CreateNotice)
			admin.GET("/notices", ctrls.NoticeController.ListAllNotices)
			admin.DELETE("/notices/:id", ctrls.NoticeController.DeactivateNotice)
			admin.POST("/events", ctrls.NoticeController.CreateEvent)
			admin.DELETE("/events/:id", ctrls.NoticeController.DeleteEvent)

			admin.GET("/courses", ctrls.CourseController.ListCourses)

			admin.GET("/attendance/daily", ctrls.AttendanceController.ListDailyAttendance)
			admin.GET("/attendance/users/:id", ctrls.AttendanceController.ListUserAttendance)

			admin.GET("/overview", ctrls.FinanceController.GetOverview)
			admin.POST("/overview/generate", ctrls.FinanceController.GenerateOverview)

			admin.GET("/reports/users", ctrls.ReportController.UserReport)
			admin.GET("/reports/financial", ctrls.ReportController.FinancialReport)
			admin.GET("/reports/enrollments", ctrls.ReportController.EnrollmentReport)
			admin.GET("/reports/attendance", ctrls.ReportController.AttendanceReport)
			admin.GET("/reports/recruitment", ctrls.ReportController.RecruitmentReport)
			admin.POST("/reports/guardian", ctrls.ReportController.SendGuardianReport)

			admin.GET("/certificates", ctrls.CertificateController.ListCertificates)
			admin.GET("/certificates/:id", ctrls.CertificateController.GetCertificate)
			admin.PATCH("/certificates/:id/status", ctrls.CertificateController.UpdateCertificateStatus)
		}

		// --- Teaching routes (teacher or faculty employees) ---
		teaching := authenticated.Group("/teaching")
		teaching.Use(authMiddleware.SubRoleRequired(models.SubRoleTeacher, models.SubRoleFaculty))
		{
			teaching.GET("/courses", ctrls.CourseController.MyCourses)
			teaching.POST("/courses", ctrls.CourseController.CreateCourse)
			teaching.PUT("/courses/:id", ctrls.CourseController.UpdateCourse)
			teaching.PATCH("/courses/:id/status", ctrls.CourseController.UpdateCourseStatus)
			teaching.DELETE("/courses/:id", ctrls.CourseController.DeleteCourse)
			teaching.POST("/courses/:id/teachers", ctrls.CourseController.AssignTeacher)
			teaching.DELETE("/courses/:id/teachers/:teacherId", ctrls.CourseController.RemoveTeacher)

			teaching.POST("/courses/:id/assignments", ctrls.CourseController.CreateAssignment)
			teaching.GET("/courses/:id/assignments", ctrls.CourseController.ListAssignments)
			teaching.POST("/courses/:id/lesson-plans", ctrls.CourseController.CreateLessonPlan)
			teaching.GET("/courses/:id/lesson-plans", ctrls.CourseController.ListLessonPlans)

			teaching.POST("/routines", ctrls.CourseController.CreateRoutine)
			teaching.GET("/routines", ctrls.CourseController.MyRoutine)

			teaching.GET("/courses/:id/enrollments", ctrls.EnrollmentController.ListCourseEnrollments)
			teaching.GET("/enrollments/:id", ctrls.EnrollmentController.GetEnrollment)
			teaching.PATCH("/enrollments/:id/status", ctrls.EnrollmentController.UpdateEnrollmentStatus)
			teaching.PATCH("/enrollments/:id/progress", ctrls.EnrollmentController.UpdateProgress)
			teaching.POST("/exam-results", ctrls.EnrollmentController.RecordExamResult)
			teaching.GET("/enrollments/:id/exam-results", ctrls.EnrollmentController.ListExamResults)

			teaching.POST("/attendance", ctrls.AttendanceController.RecordAttendance)
			teaching.PUT("/attendance/:id", ctrls.AttendanceController.CorrectAttendance)
			teaching.POST("/attendance/bulk", ctrls.AttendanceController.RecordBulkAttendance)
			teaching.GET("/attendance/daily", ctrls.AttendanceController.ListDailyAttendance)
			teaching.GET("/attendance/users/:id", ctrls.AttendanceController.ListUserAttendance)
			teaching.GET("/attendance/users/:id/summary", ctrls.AttendanceController.AttendanceSummary)
		}

		// --- HR routes (hr employees) ---
		hr := authenticated.Group("/hr")
		hr.Use(authMiddleware.SubRoleRequired(models.SubRoleHR))
		{
			hr.POST("/jobs", ctrls.RecruitmentController.CreateJobPost)
			hr.GET("/jobs", ctrls.RecruitmentController.ListJobPosts)
			hr.POST("/jobs/:id/close", ctrls.RecruitmentController.CloseJobPost)
			hr.GET("/jobs/:id/applications", ctrls.RecruitmentController.ListPostApplications)
			hr.PATCH("/applications/:id/status", ctrls.RecruitmentController.UpdateApplicationStatus)
			hr.POST("/interviews", ctrls.RecruitmentController.ScheduleInterview)
			hr.PATCH("/interviews/:id/status", ctrls.RecruitmentController.UpdateInterviewStatus)

			hr.POST("/attendance", ctrls.AttendanceController.RecordAttendance)
			hr.PUT("/attendance/:id", ctrls.AttendanceController.CorrectAttendance)
			hr.POST("/attendance/bulk", ctrls.AttendanceController.RecordBulkAttendance)
			hr.GET("/attendance/daily", ctrls.AttendanceController.ListDailyAttendance)
			hr.GET("/attendance/users/:id", ctrls.AttendanceController.ListUserAttendance)
			hr.GET("/attendance/users/:id/summary", ctrls.AttendanceController.AttendanceSummary)
		}

		// --- Finance routes (finance employees) ---
		finance := authenticated.Group("/finance")
		finance.Use(authMiddleware.SubRoleRequired(models.SubRoleFinance))
		{
			finance.POST("/salaries", ctrls.FinanceController.CreateSalary)
			finance.GET("/salaries", ctrls.FinanceController.ListSalaries)
			finance.PATCH("/salaries/:id/status", ctrls.FinanceController.UpdateSalaryStatus)

			finance.POST("/expenses", ctrls.FinanceController.CreateExpense)
			finance.GET("/expenses", ctrls.FinanceController.ListExpenses)
			finance.PATCH("/expenses/:id/status", ctrls.FinanceController.UpdateExpenseStatus)

			finance.POST("/transactions", ctrls.FinanceController.CreateTransaction)
			finance.GET("/transactions", ctrls.FinanceController.ListTransactions)

			finance.GET("/students/:id/fees", ctrls.FinanceController.ListStudentFees)
			finance.POST("/fees/:id/pay", ctrls.FinanceController.PayFee)
			finance.POST("/fees/:id/cancel", ctrls.FinanceController.CancelFee)

			finance.GET("/overview", ctrls.FinanceController.GetOverview)
			finance.POST("/overview/generate", ctrls.FinanceController.GenerateOverview)
		}

		// --- Employee self-service routes ---
		employee := authenticated.Group("/employee")
		employee.Use(authMiddleware.RoleRequired(models.RoleEmployee))
		{
			employee.GET("/salaries", ctrls.FinanceController.MySalaries)
			employee.GET("/attendance", ctrls.AttendanceController.MyAttendance)
			employee.POST("/attendance", ctrls.AttendanceController.MarkMyAttendance)
		}

		// --- Student routes ---
		student := authenticated.Group("/student")
		student.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			student.POST("/enrollments", ctrls.EnrollmentController.Enroll)
			student.GET("/enrollments", ctrls.EnrollmentController.MyEnrollments)
			student.GET("/enrollments/:id/exam-results", ctrls.EnrollmentController.ListExamResults)
			student.GET("/academics", ctrls.EnrollmentController.MyAcademics)
			student.GET("/schedule", ctrls.CourseController.MyClassSchedule)
			student.GET("/attendance", ctrls.AttendanceController.MyAttendance)

			student.GET("/fees", ctrls.FinanceController.MyFees)
			student.POST("/fees/:id/pay", ctrls.FinanceController.PayMyFee)

			student.POST("/certificates", ctrls.CertificateController.RequestCertificate)
			student.GET("/certificates", ctrls.CertificateController.MyCertificates)
		}

		// --- Candidate routes ---
		candidate := authenticated.Group("/candidate")
		candidate.Use(authMiddleware.RoleRequired(models.RoleCandidate))
		{
			candidate.POST("/applications", ctrls.RecruitmentController.Apply)
			candidate.GET("/applications", ctrls.RecruitmentController.MyApplications)
			candidate.GET("/interviews", ctrls.RecruitmentController.MyInterviews)
			candidate.GET("/profile", ctrls.RecruitmentController.GetCandidateProfile)
			candidate.PUT("/profile", ctrls.RecruitmentController.UpdateCandidateProfile)
			candidate.POST("/resume", ctrls.RecruitmentController.UploadResume)
		}
	}
}
