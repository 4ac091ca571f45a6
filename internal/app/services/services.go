package services

import (
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/db"
	"github.com/instracore/backend/internal/pkg/auth"
	"github.com/instracore/backend/internal/pkg/email"
	"github.com/instracore/backend/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	UserService        *UserService
	CourseService      *CourseService
	EnrollmentService  *EnrollmentService
	AttendanceService  *AttendanceService
	RecruitmentService *RecruitmentService
	FinanceService     *FinanceService
	CertificateService *CertificateService
	NoticeService      *NoticeService
	DashboardService   *DashboardService
	ReportService      *ReportService
}

// NewServices wires every service against the repository container and
// the shared infrastructure
func NewServices(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.ActivityRepository,
			jwtService,
			emailService,
			logger,
		),
		UserService: NewUserService(
			repos.UserRepository,
			repos.ActivityRepository,
			fileStorage,
			logger,
		),
		CourseService: NewCourseService(
			repos.CourseRepository,
			repos.UserRepository,
			repos.ActivityRepository,
			logger,
		),
		EnrollmentService: NewEnrollmentService(
			database,
			repos.EnrollmentRepository,
			repos.CourseRepository,
			repos.FinanceRepository,
			repos.AttendanceRepository,
			repos.ActivityRepository,
			logger,
		),
		AttendanceService: NewAttendanceService(
			repos.AttendanceRepository,
			repos.UserRepository,
			logger,
		),
		RecruitmentService: NewRecruitmentService(
			repos.RecruitmentRepository,
			repos.UserRepository,
			repos.ActivityRepository,
			emailService,
			logger,
		),
		FinanceService: NewFinanceService(
			repos.FinanceRepository,
			repos.UserRepository,
			repos.ActivityRepository,
			logger,
		),
		CertificateService: NewCertificateService(
			repos.CertificateRepository,
			repos.EnrollmentRepository,
			repos.ActivityRepository,
			logger,
		),
		NoticeService: NewNoticeService(
			repos.NoticeRepository,
			repos.ActivityRepository,
			logger,
		),
		DashboardService: NewDashboardService(
			repos.UserRepository,
			repos.CourseRepository,
			repos.EnrollmentRepository,
			repos.AttendanceRepository,
			repos.RecruitmentRepository,
			repos.FinanceRepository,
			repos.NoticeRepository,
			repos.ActivityRepository,
			logger,
		),
		ReportService: NewReportService(
			repos.CourseRepository,
			repos.EnrollmentRepository,
			repos.AttendanceRepository,
			repos.RecruitmentRepository,
			repos.FinanceRepository,
			repos.UserRepository,
			emailService,
			logger,
		),
	}
}
