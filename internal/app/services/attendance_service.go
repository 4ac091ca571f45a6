package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// AttendanceService records and summarizes daily attendance
type AttendanceService struct {
	attendanceRepo *repositories.AttendanceRepository
	userRepo       *repositories.UserRepository
	logger         zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendanceRepo *repositories.AttendanceRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// RecordAttendance records one user's attendance for a date. A second
// record for the same user and date is a conflict; corrections go
// through CorrectAttendance instead.
func (s *AttendanceService) RecordAttendance(ctx context.Context, recorderID int64, req *dto.RecordAttendanceRequest) (*dto.AttendanceResponse, error) {
	if !models.ValidAttendanceStatus(req.Status) {
		return nil, apperrors.NewBadRequestError("unknown attendance status")
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date must be YYYY-MM-DD")
	}

	if _, err := s.userRepo.GetUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	record := &models.Attendance{
		UserID:     req.UserID,
		CourseID:   req.CourseID,
		Date:       helpers.TruncateToDay(date),
		Status:     req.Status,
		RecordedBy: &recorderID,
		Note:       req.Note,
	}

	recordID, err := s.attendanceRepo.CreateAttendance(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = recordID

	resp := dto.FromAttendance(record)
	return &resp, nil
}

// MarkSelfAttendance marks the calling employee present for today.
// A second mark on the same day is a conflict; the pre-check gives the
// common case a friendly message, the insert's unique constraint covers
// the race.
func (s *AttendanceService) MarkSelfAttendance(ctx context.Context, userID int64, note string) (*dto.AttendanceResponse, error) {
	today := helpers.TruncateToDay(time.Now())

	_, err := s.attendanceRepo.GetAttendance(ctx, userID, today)
	if err == nil {
		return nil, apperrors.NewConflictError("attendance already recorded for today")
	}
	if !errors.Is(err, apperrors.ErrAttendanceNotFound) {
		return nil, err
	}

	record := &models.Attendance{
		UserID:     userID,
		Date:       today,
		Status:     models.AttendanceStatusPresent,
		RecordedBy: &userID,
		Note:       note,
	}

	recordID, err := s.attendanceRepo.CreateAttendance(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = recordID

	s.logger.Info().Int64("userID", userID).Msg("Self attendance marked")

	resp := dto.FromAttendance(record)
	return &resp, nil
}

// CorrectAttendance updates the status or note of an existing record
func (s *AttendanceService) CorrectAttendance(ctx context.Context, recorderID, recordID int64, req *dto.CorrectAttendanceRequest) error {
	if !models.ValidAttendanceStatus(req.Status) {
		return apperrors.NewBadRequestError("unknown attendance status")
	}

	return s.attendanceRepo.UpdateAttendance(ctx, recordID, req.Status, req.Note, recorderID)
}

// RecordBulkAttendance records attendance for many users on one date.
// Individual failures are logged and skipped so one bad row does not
// drop the whole class roster.
func (s *AttendanceService) RecordBulkAttendance(ctx context.Context, recorderID int64, req *dto.BulkAttendanceRequest) ([]dto.AttendanceResponse, error) {
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date must be YYYY-MM-DD")
	}
	date = helpers.TruncateToDay(date)

	responses := make([]dto.AttendanceResponse, 0, len(req.Records))
	for _, entry := range req.Records {
		if !models.ValidAttendanceStatus(entry.Status) {
			return nil, apperrors.NewBadRequestError("unknown attendance status")
		}

		record := &models.Attendance{
			UserID:     entry.UserID,
			CourseID:   req.CourseID,
			Date:       date,
			Status:     entry.Status,
			RecordedBy: &recorderID,
		}

		recordID, err := s.attendanceRepo.CreateAttendance(ctx, record)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userID", entry.UserID).Msg("Skipping attendance row")
			continue
		}
		record.ID = recordID
		responses = append(responses, dto.FromAttendance(record))
	}

	return responses, nil
}

// ListUserAttendance retrieves one user's attendance over a window
func (s *AttendanceService) ListUserAttendance(ctx context.Context, userID int64, from, to time.Time, page, pageSize int) (*dto.AttendanceListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	records, total, err := s.attendanceRepo.ListAttendanceByUser(ctx, userID, from, to, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.AttendanceListResponse{
		Records:        make([]dto.AttendanceResponse, 0, len(records)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, dto.FromAttendance(r))
	}

	return resp, nil
}

// ListDailyAttendance retrieves everyone's records for one date
func (s *AttendanceService) ListDailyAttendance(ctx context.Context, date time.Time) ([]dto.AttendanceResponse, error) {
	records, err := s.attendanceRepo.ListAttendanceByDate(ctx, helpers.TruncateToDay(date))
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, dto.FromAttendance(r))
	}

	return responses, nil
}

// Summary aggregates a user's attendance over a window
func (s *AttendanceService) Summary(ctx context.Context, userID int64, from, to time.Time) (*dto.AttendanceSummaryResponse, error) {
	counts, err := s.attendanceRepo.StatusCounts(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return buildAttendanceSummary(userID, counts), nil
}

func buildAttendanceSummary(userID int64, counts map[models.AttendanceStatus]int64) *dto.AttendanceSummaryResponse {
	summary := &dto.AttendanceSummaryResponse{
		UserID:      userID,
		PresentDays: counts[models.AttendanceStatusPresent],
		AbsentDays:  counts[models.AttendanceStatusAbsent],
		LateDays:    counts[models.AttendanceStatusLate],
	}
	for _, c := range counts {
		summary.TotalDays += c
	}
	if summary.TotalDays > 0 {
		attended := summary.PresentDays + summary.LateDays
		summary.Percentage = float64(attended) / float64(summary.TotalDays) * 100
	}
	return summary
}
