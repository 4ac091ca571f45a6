package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/db"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// feePaymentTerm is how long a student has to pay the enrollment fee.
const feePaymentTerm = 30 * 24 * time.Hour

// EnrollmentService handles enrollments, exam results and the fee
// record that accompanies enrollment into a priced course
type EnrollmentService struct {
	database       *db.PostgresDB
	enrollmentRepo *repositories.EnrollmentRepository
	courseRepo     *repositories.CourseRepository
	financeRepo    *repositories.FinanceRepository
	attendanceRepo *repositories.AttendanceRepository
	activityRepo   *repositories.ActivityRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	database *db.PostgresDB,
	enrollmentRepo *repositories.EnrollmentRepository,
	courseRepo *repositories.CourseRepository,
	financeRepo *repositories.FinanceRepository,
	attendanceRepo *repositories.AttendanceRepository,
	activityRepo *repositories.ActivityRepository,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		database:       database,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		financeRepo:    financeRepo,
		attendanceRepo: attendanceRepo,
		activityRepo:   activityRepo,
		logger:         logger,
	}
}

// FeeDueDate computes when an enrollment fee falls due.
func FeeDueDate(enrolledAt time.Time) time.Time {
	return enrolledAt.Add(feePaymentTerm)
}

// Enroll enrolls a student into an active course. For priced courses the
// enrollment and its fee record are written in one transaction, so a
// failed fee insert never leaves a feeless enrollment behind.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if course.Status != models.CourseStatusActive {
		return nil, apperrors.ErrCourseNotActive
	}

	now := time.Now()
	enrollment := &models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     models.EnrollmentStatusPending,
		EnrolledAt: now,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		enrollmentID, err := s.enrollmentRepo.CreateEnrollmentTx(ctx, tx, enrollment)
		if err != nil {
			return err
		}
		enrollment.ID = enrollmentID

		if course.Price > 0 {
			if _, err := s.financeRepo.CreateFeePaymentTx(ctx, tx, &models.FeePayment{
				StudentID: studentID,
				CourseID:  &courseID,
				Amount:    course.Price,
				Status:    models.FeePaymentStatusPending,
				DueDate:   FeeDueDate(now),
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activityRepo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:     studentID,
		Action:     "enroll",
		ObjectType: "courses",
		ObjectID:   fmt.Sprintf("%d", courseID),
	})

	resp := dto.FromEnrollment(enrollment)
	resp.CourseTitle = course.Title
	return &resp, nil
}

// GetEnrollment retrieves one enrollment by ID
func (s *EnrollmentService) GetEnrollment(ctx context.Context, enrollmentID int64) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromEnrollment(enrollment)
	return &resp, nil
}

// ListStudentEnrollments retrieves a student's enrollments with course titles
func (s *EnrollmentService) ListStudentEnrollments(ctx context.Context, studentID int64) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		resp := dto.FromEnrollment(e)
		if course, err := s.courseRepo.GetCourseByID(ctx, e.CourseID); err == nil {
			resp.CourseTitle = course.Title
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// ListCourseEnrollments retrieves a course's enrollments with pagination
func (s *EnrollmentService) ListCourseEnrollments(ctx context.Context, courseID int64, page, pageSize int) (*dto.EnrollmentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	enrollments, total, err := s.enrollmentRepo.ListEnrollmentsByCourse(ctx, courseID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.EnrollmentListResponse{
		Enrollments:    make([]dto.EnrollmentResponse, 0, len(enrollments)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, e := range enrollments {
		resp.Enrollments = append(resp.Enrollments, dto.FromEnrollment(e))
	}

	return resp, nil
}

// UpdateEnrollmentStatus moves an enrollment along its lifecycle. Illegal
// transitions are rejected against the enrollment transition table.
func (s *EnrollmentService) UpdateEnrollmentStatus(ctx context.Context, actorID, enrollmentID int64, next models.EnrollmentStatus) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	if !enrollment.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: enrollment cannot move from %s to %s",
			apperrors.ErrInvalidTransition, enrollment.Status, next)
	}

	if err := s.enrollmentRepo.UpdateEnrollmentStatus(ctx, enrollmentID, next); err != nil {
		return nil, err
	}
	enrollment.Status = next

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     fmt.Sprintf("status:%s", next),
		EntityName: "enrollments",
		ObjectID:   fmt.Sprintf("%d", enrollmentID),
	})

	message := fmt.Sprintf("Your enrollment is now %s", next)
	if _, err := s.activityRepo.CreateNotification(ctx, &models.Notification{
		UserID:  enrollment.StudentID,
		Message: message,
	}); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", enrollment.StudentID).Msg("Failed to notify student")
	}

	resp := dto.FromEnrollment(enrollment)
	return &resp, nil
}

// UpdateProgress sets the completion percentage of an enrollment
func (s *EnrollmentService) UpdateProgress(ctx context.Context, enrollmentID int64, progress float64) error {
	if progress < 0 || progress > 100 {
		return apperrors.NewBadRequestError("progress must be between 0 and 100")
	}
	return s.enrollmentRepo.UpdateProgress(ctx, enrollmentID, progress)
}

// RecordExamResult records a graded exam for an enrollment
func (s *EnrollmentService) RecordExamResult(ctx context.Context, recorderID int64, req *dto.RecordExamResultRequest) (*dto.ExamResultResponse, error) {
	enrollment, err := s.enrollmentRepo.GetEnrollmentByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}

	if req.MarksObtained > req.TotalMarks {
		return nil, apperrors.NewBadRequestError("marks obtained cannot exceed total marks")
	}

	examDate, err := helpers.ParseDate(req.ExamDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("examDate must be YYYY-MM-DD")
	}

	result := &models.ExamResult{
		EnrollmentID:  enrollment.ID,
		ExamName:      req.ExamName,
		MarksObtained: req.MarksObtained,
		TotalMarks:    req.TotalMarks,
		Grade:         req.Grade,
		ExamDate:      examDate,
		RecordedBy:    &recorderID,
	}

	resultID, err := s.enrollmentRepo.CreateExamResult(ctx, result)
	if err != nil {
		return nil, err
	}
	result.ID = resultID

	return &dto.ExamResultResponse{
		ID:            result.ID,
		EnrollmentID:  result.EnrollmentID,
		ExamName:      result.ExamName,
		MarksObtained: result.MarksObtained,
		TotalMarks:    result.TotalMarks,
		Grade:         result.Grade,
		ExamDate:      result.ExamDate,
	}, nil
}

// ListExamResults retrieves the graded exams for an enrollment
func (s *EnrollmentService) ListExamResults(ctx context.Context, enrollmentID int64) ([]dto.ExamResultResponse, error) {
	results, err := s.enrollmentRepo.ListExamResultsByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ExamResultResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, dto.ExamResultResponse{
			ID:            r.ID,
			EnrollmentID:  r.EnrollmentID,
			ExamName:      r.ExamName,
			MarksObtained: r.MarksObtained,
			TotalMarks:    r.TotalMarks,
			Grade:         r.Grade,
			ExamDate:      r.ExamDate,
		})
	}

	return responses, nil
}

// passMarkRatio is the share of total marks needed to pass an exam.
const passMarkRatio = 0.4

// AcademicsSummary reports a student's attendance rate, pass rate and
// average marks across all enrollments. Attendance covers the current
// calendar year.
func (s *EnrollmentService) AcademicsSummary(ctx context.Context, studentID int64) (*dto.AcademicsSummaryResponse, error) {
	results, err := s.enrollmentRepo.ListExamResultsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	counts, err := s.attendanceRepo.StatusCounts(ctx, studentID, yearStart, now)
	if err != nil {
		return nil, err
	}

	return buildAcademicsSummary(studentID, results, counts), nil
}

// buildAcademicsSummary folds exam results and attendance counts into
// the academics summary. Exams with zero total marks are skipped.
func buildAcademicsSummary(studentID int64, results []*models.ExamResult, counts map[models.AttendanceStatus]int64) *dto.AcademicsSummaryResponse {
	summary := &dto.AcademicsSummaryResponse{
		StudentID:      studentID,
		AttendanceRate: buildAttendanceSummary(studentID, counts).Percentage,
	}

	var markSum float64
	for _, r := range results {
		if r.TotalMarks <= 0 {
			continue
		}
		ratio := r.MarksObtained / r.TotalMarks
		summary.ExamsTaken++
		markSum += ratio * 100
		if ratio >= passMarkRatio {
			summary.ExamsPassed++
		}
	}

	if summary.ExamsTaken > 0 {
		summary.PassRate = float64(summary.ExamsPassed) / float64(summary.ExamsTaken) * 100
		summary.AverageMarks = markSum / float64(summary.ExamsTaken)
	}

	return summary
}
