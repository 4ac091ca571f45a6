package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/email"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// ReportService builds yearly and monthly aggregate reports
type ReportService struct {
	courseRepo      *repositories.CourseRepository
	enrollmentRepo  *repositories.EnrollmentRepository
	attendanceRepo  *repositories.AttendanceRepository
	recruitmentRepo *repositories.RecruitmentRepository
	financeRepo     *repositories.FinanceRepository
	userRepo        *repositories.UserRepository
	emailService    email.EmailService
	logger          zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	courseRepo *repositories.CourseRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	attendanceRepo *repositories.AttendanceRepository,
	recruitmentRepo *repositories.RecruitmentRepository,
	financeRepo *repositories.FinanceRepository,
	userRepo *repositories.UserRepository,
	emailService email.EmailService,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		courseRepo:      courseRepo,
		enrollmentRepo:  enrollmentRepo,
		attendanceRepo:  attendanceRepo,
		recruitmentRepo: recruitmentRepo,
		financeRepo:     financeRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		logger:          logger,
	}
}

// parseReportWindow resolves the requested year and month. Unparsable or
// out-of-range values fall back to the current year and month rather
// than failing the report.
func parseReportWindow(yearStr, monthStr string, now time.Time) (year, month int) {
	year = now.Year()
	if y, err := strconv.Atoi(yearStr); err == nil && y >= 2000 && y <= 2200 {
		year = y
	}

	month = int(now.Month())
	if m, err := strconv.Atoi(monthStr); err == nil && m >= 1 && m <= 12 {
		month = m
	}

	return year, month
}

func yearWindow(year int) (from, to time.Time) {
	from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

// FinancialReport aggregates income, expenses and salaries per month
// over one year
func (s *ReportService) FinancialReport(ctx context.Context, req *dto.ReportRequest) (*dto.FinancialReportResponse, error) {
	year, _ := parseReportWindow(req.Year, req.Month, time.Now())
	from, to := yearWindow(year)

	income, expense, err := s.financeRepo.MonthlyTransactionTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	firstMonth := fmt.Sprintf("%04d-01", year)
	lastMonth := fmt.Sprintf("%04d-12", year)
	salaries, err := s.financeRepo.MonthlySalaryTotals(ctx, firstMonth, lastMonth)
	if err != nil {
		return nil, err
	}

	resp := &dto.FinancialReportResponse{Year: year}
	for m := 1; m <= 12; m++ {
		month := fmt.Sprintf("%04d-%02d", year, m)
		resp.Income = append(resp.Income, dto.MonthlyAmount{Month: month, Amount: income[month]})
		resp.Expenses = append(resp.Expenses, dto.MonthlyAmount{Month: month, Amount: expense[month]})
		resp.Salaries = append(resp.Salaries, dto.MonthlyAmount{Month: month, Amount: salaries[month]})
		resp.TotalIncome += income[month]
		resp.TotalExpense += expense[month] + salaries[month]
	}
	resp.NetBalance = resp.TotalIncome - resp.TotalExpense

	return resp, nil
}

// EnrollmentReport aggregates enrollments per course
func (s *ReportService) EnrollmentReport(ctx context.Context, req *dto.ReportRequest) (*dto.EnrollmentReportResponse, error) {
	year, _ := parseReportWindow(req.Year, req.Month, time.Now())

	courses, _, err := s.courseRepo.ListCourses(ctx, &dto.CourseFilterRequest{}, 0, helpers.MaxPageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.EnrollmentReportResponse{Year: year}
	for _, course := range courses {
		counts, err := s.enrollmentRepo.EnrollmentStatusCounts(ctx, course.ID)
		if err != nil {
			return nil, err
		}

		row := dto.EnrollmentReportRow{
			CourseID:    course.ID,
			CourseTitle: course.Title,
			Active:      counts[models.EnrollmentStatusApproved] + counts[models.EnrollmentStatusOngoing],
			Completed:   counts[models.EnrollmentStatusCompleted],
			Dropped:     counts[models.EnrollmentStatusDropped],
		}
		for _, c := range counts {
			row.Total += c
		}

		resp.Courses = append(resp.Courses, row)
		resp.Total += row.Total
	}

	return resp, nil
}

// AttendanceReport aggregates everyone's attendance for one month
func (s *ReportService) AttendanceReport(ctx context.Context, req *dto.ReportRequest) (*dto.AttendanceReportResponse, error) {
	year, month := parseReportWindow(req.Year, req.Month, time.Now())

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	byUser, err := s.attendanceRepo.MonthlyStatusCountsByUser(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.AttendanceReportResponse{Year: year, Month: month}
	for userID, counts := range byUser {
		row := dto.AttendanceReportRow{
			UserID:      userID,
			PresentDays: counts[models.AttendanceStatusPresent],
			AbsentDays:  counts[models.AttendanceStatusAbsent],
			LateDays:    counts[models.AttendanceStatusLate],
		}

		var total int64
		for _, c := range counts {
			total += c
		}
		if total > 0 {
			row.Percentage = float64(row.PresentDays+row.LateDays) / float64(total) * 100
		}

		if user, err := s.userRepo.GetUserByID(ctx, userID); err == nil {
			row.Name = user.FirstName + " " + user.LastName
		}

		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

// UserReport breaks the user base down per role with active and
// inactive counts
func (s *ReportService) UserReport(ctx context.Context) (*dto.UserReportResponse, error) {
	counts, err := s.userRepo.RoleActivityCounts(ctx)
	if err != nil {
		return nil, err
	}

	return buildUserReport(counts), nil
}

// buildUserReport shapes the grouped counts into report rows, one per
// role in a fixed order. Roles with no accounts still get a zero row.
func buildUserReport(counts map[models.Role]map[bool]int64) *dto.UserReportResponse {
	resp := &dto.UserReportResponse{}
	for _, role := range models.AllRoles() {
		row := dto.UserReportRow{
			Role:     role,
			Active:   counts[role][true],
			Inactive: counts[role][false],
		}
		row.Total = row.Active + row.Inactive

		resp.Rows = append(resp.Rows, row)
		resp.Total += row.Total
	}
	return resp
}

// RecruitmentReport aggregates the hiring pipeline for one year
func (s *ReportService) RecruitmentReport(ctx context.Context, req *dto.ReportRequest) (*dto.RecruitmentReportResponse, error) {
	year, _ := parseReportWindow(req.Year, req.Month, time.Now())
	from, to := yearWindow(year)

	posts, applications, interviews, hired, rejected, err := s.recruitmentRepo.YearlyRecruitmentCounts(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.RecruitmentReportResponse{
		Year:              year,
		TotalPosts:        posts,
		TotalApplications: applications,
		InterviewsHeld:    interviews,
		Hired:             hired,
		Rejected:          rejected,
	}, nil
}

// SendGuardianReport emails a progress report to a student's guardian
// and records the delivery
func (s *ReportService) SendGuardianReport(ctx context.Context, actorID int64, req *dto.SendGuardianReportRequest) error {
	student, err := s.userRepo.GetUserByID(ctx, req.StudentID)
	if err != nil {
		return err
	}

	period := helpers.ParseMonth(req.Period, time.Now())

	report := &models.GuardianReport{
		StudentID:     req.StudentID,
		GuardianEmail: req.GuardianEmail,
		Period:        period,
		Content:       req.Content,
		CreatedBy:     &actorID,
	}

	reportID, err := s.enrollmentRepo.CreateGuardianReport(ctx, report)
	if err != nil {
		return err
	}

	studentName := student.FirstName + " " + student.LastName
	if err := s.emailService.SendGuardianReport(req.GuardianEmail, studentName, period, req.Content); err != nil {
		return fmt.Errorf("failed to send guardian report: %w", err)
	}

	if err := s.enrollmentRepo.MarkGuardianReportSent(ctx, reportID); err != nil {
		s.logger.Warn().Err(err).Int64("reportID", reportID).Msg("Failed to mark guardian report sent")
	}

	return nil
}
