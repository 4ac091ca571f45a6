package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/helpers"
)

const dashboardRecentLimit = 5

// dashboardKey selects a dashboard builder. SubRole is empty for
// non-employee roles and for employees without a specialised dashboard.
type dashboardKey struct {
	Role    models.Role
	SubRole models.SubRole
}

// dashboardBuilder produces one role's landing page payload.
type dashboardBuilder func(ctx context.Context, s *DashboardService, userID int64) (interface{}, error)

// dashboardBuilders maps (role, sub-role) pairs to their builder. Lookup
// tries the exact pair first and falls back to the bare role, so employee
// sub-roles without an entry get the generic employee dashboard.
var dashboardBuilders = map[dashboardKey]dashboardBuilder{
	{Role: models.RoleAdmin}:                                       buildAdminDashboard,
	{Role: models.RoleEmployee}:                                    buildEmployeeDashboard,
	{Role: models.RoleEmployee, SubRole: models.SubRoleHR}:         buildHRDashboard,
	{Role: models.RoleEmployee, SubRole: models.SubRoleFinance}:    buildFinanceDashboard,
	{Role: models.RoleEmployee, SubRole: models.SubRoleTeacher}:    buildTeacherDashboard,
	{Role: models.RoleEmployee, SubRole: models.SubRoleFaculty}:    buildTeacherDashboard,
	{Role: models.RoleStudent}:                                     buildStudentDashboard,
	{Role: models.RoleCandidate}:                                   buildCandidateDashboard,
}

// DashboardService assembles per-role landing pages
type DashboardService struct {
	userRepo        *repositories.UserRepository
	courseRepo      *repositories.CourseRepository
	enrollmentRepo  *repositories.EnrollmentRepository
	attendanceRepo  *repositories.AttendanceRepository
	recruitmentRepo *repositories.RecruitmentRepository
	financeRepo     *repositories.FinanceRepository
	noticeRepo      *repositories.NoticeRepository
	activityRepo    *repositories.ActivityRepository
	logger          zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo *repositories.UserRepository,
	courseRepo *repositories.CourseRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	attendanceRepo *repositories.AttendanceRepository,
	recruitmentRepo *repositories.RecruitmentRepository,
	financeRepo *repositories.FinanceRepository,
	noticeRepo *repositories.NoticeRepository,
	activityRepo *repositories.ActivityRepository,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:        userRepo,
		courseRepo:      courseRepo,
		enrollmentRepo:  enrollmentRepo,
		attendanceRepo:  attendanceRepo,
		recruitmentRepo: recruitmentRepo,
		financeRepo:     financeRepo,
		noticeRepo:      noticeRepo,
		activityRepo:    activityRepo,
		logger:          logger,
	}
}

// Dashboard builds the landing page for a user based on role and sub-role
func (s *DashboardService) Dashboard(ctx context.Context, userID int64, role models.Role, subRole models.SubRole) (interface{}, error) {
	builder, ok := dashboardBuilders[dashboardKey{Role: role, SubRole: subRole}]
	if !ok {
		builder, ok = dashboardBuilders[dashboardKey{Role: role}]
	}
	if !ok {
		return nil, apperrors.NewForbiddenError("no dashboard for role " + string(role))
	}

	return builder(ctx, s, userID)
}

// financialSummary loads the current month's rollup. A missing row is
// not an error: every figure defaults to zero.
func (s *DashboardService) financialSummary(ctx context.Context, month string) (dto.FinancialSummary, error) {
	overview, err := s.financeRepo.GetOverviewByMonth(ctx, month)
	return overviewFinancialSummary(month, overview, err)
}

// overviewFinancialSummary maps an overview lookup onto the dashboard
// summary. A missing row yields zeros for every figure.
func overviewFinancialSummary(month string, overview *models.FinancialOverview, err error) (dto.FinancialSummary, error) {
	summary := dto.FinancialSummary{Month: month}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return summary, nil
		}
		return summary, err
	}

	summary.TotalIncome = overview.TotalIncome
	summary.TotalExpense = overview.TotalExpense
	summary.TotalSalaries = overview.TotalSalaries
	summary.NetBalance = overview.NetBalance
	return summary, nil
}

func (s *DashboardService) recentNotices(ctx context.Context, role models.Role) []dto.NoticeResponse {
	notices, err := s.noticeRepo.RecentNoticesForRole(ctx, role, dashboardRecentLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load recent notices for dashboard")
		return []dto.NoticeResponse{}
	}

	responses := make([]dto.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		responses = append(responses, dto.FromNotice(n))
	}
	return responses
}

func (s *DashboardService) upcomingEvents(ctx context.Context) []dto.EventResponse {
	events, err := s.noticeRepo.ListUpcomingEvents(ctx, dashboardRecentLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load upcoming events for dashboard")
		return []dto.EventResponse{}
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, dto.FromEvent(e))
	}
	return responses
}

func buildAdminDashboard(ctx context.Context, s *DashboardService, userID int64) (interface{}, error) {
	resp := &dto.AdminDashboardResponse{}

	var counts dto.UserCounts
	for role, target := range map[models.Role]*int64{
		models.RoleAdmin:     &counts.Admins,
		models.RoleEmployee:  &counts.Employees,
		models.RoleStudent:   &counts.Students,
		models.RoleCandidate: &counts.Candidates,
	} {
		n, err := s.userRepo.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		*target = n
		counts.Total += n
	}
	resp.Users = counts

	active, err := s.courseRepo.CountByStatus(ctx, models.CourseStatusActive)
	if err != nil {
		return nil, err
	}
	resp.ActiveCourses = active

	pending, err := s.courseRepo.CountByStatus(ctx, models.CourseStatusPendingApproval)
	if err != nil {
		return nil, err
	}
	resp.PendingCourses = pending

	open, err := s.recruitmentRepo.CountOpenJobPosts(ctx)
	if err != nil {
		return nil, err
	}
	resp.OpenJobPosts = open

	month := time.Now().Format(helpers.MonthLayout)
	financial, err := s.financialSummary(ctx, month)
	if err != nil {
		return nil, err
	}
	resp.Financial = financial

	resp.RecentNotices = s.recentNotices(ctx, models.RoleAdmin)
	resp.UpcomingEvents = s.upcomingEvents(ctx)

	return resp, nil
}

func buildHRDashboard(ctx context.Context, s *DashboardService, userID int64) (interface{}, error) {
	resp := &dto.HRDashboardResponse{}

	open, err := s.recruitmentRepo.CountOpenJobPosts(ctx)
	if err != nil {
		return nil, err
	}
	resp.OpenJobPosts = open

	pending, err := s.recruitmentRepo.CountApplicationsByStatus(ctx,
		models.ApplicationStatusApplied, models.ApplicationStatusUnderReview)
	if err != nil {
		return nil, err
	}
	resp.PendingApplications = pending

	interviews, err := s.recruitmentRepo.CountScheduledInterviews(ctx)
	if err != nil {
		return nil, err
	}
	resp.ScheduledInterviews = interviews

	employees, err := s.userRepo.CountByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, err
	}
	resp.TotalEmployees = employees

	recent, err := s.recruitmentRepo.RecentApplications(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	resp.RecentApplications = make([]dto.ApplicationResponse, 0, len(recent))
	for _, a := range recent {
		resp.RecentApplications = append(resp.RecentApplications, dto.FromApplication(a))
	}

	return resp, nil
}

func buildFinanceDashboard(ctx context.Context, s *DashboardService, userID int64) (interface{}, error) {
	resp := &dto.FinanceDashboardResponse{}

	now := time.Now()
	month := now.Format(helpers.MonthLayout)
	financial, err := s.financialSummary(ctx, month)
	if err != nil {
		return nil, err
	}
	resp.Financial = financial

	pendingSalaries, err := s.financeRepo.CountSalariesByStatus(ctx, models.SalaryStatusPending)
	if err != nil {
		return nil, err
	}
	resp.PendingSalaries = pendingSalaries

	pendingExpenses, err := s.financeRepo.CountExpensesByStatus(ctx, models.ExpenseStatusPending)
	if err != nil {
		return nil, err
	}
	resp.PendingExpenses = pendingExpenses

	overdue, err := s.financeRepo.CountOverdueFees(ctx)
	if err != nil {
		return nil, err
	}
	resp.OverdueFees = overdue

	monthStart, _ := time.Parse(helpers.MonthLayout, month)
	collected, err := s.financeRepo.CollectedFeeTotal(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	resp.CollectedFees = collected

	return resp, nil
}

func buildTeacherDashboard(ctx context.Context, s *DashboardService, userID int64) (interface{}, error) {
	resp := &dto.TeacherDashboardResponse{}

	courses, err := s.courseRepo.ListCoursesByTeacher(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.AssignedCourses = int64(len(courses))

	students, err := s.courseRepo.CountStudentsByTeacher(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.TotalStudents = students

	today := strings.ToLower(time.Now().Weekday().String())
	routines, err := s.courseRepo.ListRoutinesByTeacher(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	resp.TodayRoutine = routinesToResponses(routines)

	resp.RecentNotices = s.recentNotices(ctx, models.RoleEmployee)

	return resp, nil
}

func buildEmployeeDashboard(ctx context.Context, s *DashboardService, userID int64) (interface{}, error) {
	resp := &dto.EmployeeDashboardResponse{}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Profile = dto.FromUser(user)

	unread, err := s.activityRepo.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.UnreadMessages = unread

	resp.RecentNotices = s.recentNotices(ctx, models.RoleEmployee)
	resp.UpcomingEvents = s.upcomingEvents(ctx)

	return resp, nil
}

func buildStudentDashboard(ctx context.Context, s *DashboardService, userID int64) (interface{}, error) {
	resp := &dto.StudentDashboardResponse{}

	active, err := s.enrollmentRepo.CountActiveByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.ActiveEnrollments = active

	feeCount, feeAmount, err := s.financeRepo.PendingFeeTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.PendingFees = feeCount
	resp.PendingFeeAmount = feeAmount

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	counts, err := s.attendanceRepo.StatusCounts(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	resp.AttendanceRate = buildAttendanceSummary(userID, counts).Percentage

	enrollments, err := s.enrollmentRepo.ListEnrollmentsByStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Enrollments = make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		resp.Enrollments = append(resp.Enrollments, dto.FromEnrollment(e))
	}

	today := strings.ToLower(time.Now().Weekday().String())
	routines, err := s.courseRepo.ListRoutinesByStudent(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	resp.TodayRoutine = routinesToResponses(routines)

	resp.RecentNotices = s.recentNotices(ctx, models.RoleStudent)

	return resp, nil
}

func buildCandidateDashboard(ctx context.Context, s *DashboardService, userID int64) (interface{}, error) {
	resp := &dto.CandidateDashboardResponse{}

	open, err := s.recruitmentRepo.CountOpenJobPosts(ctx)
	if err != nil {
		return nil, err
	}
	resp.OpenJobPosts = open

	applications, err := s.recruitmentRepo.ListApplicationsByCandidate(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.MyApplications = int64(len(applications))

	resp.RecentApplications = make([]dto.ApplicationResponse, 0, len(applications))
	for i, a := range applications {
		if i >= dashboardRecentLimit {
			break
		}
		resp.RecentApplications = append(resp.RecentApplications, dto.FromApplication(a))
	}

	interviews, err := s.recruitmentRepo.ListUpcomingInterviewsByCandidate(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.UpcomingInterviews = make([]dto.InterviewResponse, 0, len(interviews))
	for _, iv := range interviews {
		resp.UpcomingInterviews = append(resp.UpcomingInterviews, dto.InterviewResponse{
			ID:            iv.ID,
			ApplicationID: iv.ApplicationID,
			ScheduledAt:   iv.ScheduledAt,
			Location:      iv.Location,
			Status:        iv.Status,
		})
	}

	profile, err := s.recruitmentRepo.GetCandidateProfile(ctx, userID)
	if err == nil {
		resp.ProfileComplete = profile.IsComplete()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	return resp, nil
}
