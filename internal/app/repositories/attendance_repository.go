package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/dberrors"
	"github.com/instracore/backend/internal/pkg/logger"
)

const attendanceColumns = "id, user_id, course_id, date, status, recorded_by, note, created_at"

// AttendanceRepository handles attendance persistence
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := row.Scan(&a.ID, &a.UserID, &a.CourseID, &a.Date, &a.Status, &a.RecordedBy, &a.Note, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAttendance inserts a user's attendance for a date. The unique
// constraint on (user_id, date) rejects a second record for the same day.
func (r *AttendanceRepository) CreateAttendance(ctx context.Context, a *models.Attendance) (int64, error) {
	sql, args, err := r.sb.Insert("attendance").
		Columns("user_id", "course_id", "date", "status", "recorded_by", "note", "created_at").
		Values(a.UserID, a.CourseID, a.Date, a.Status, a.RecordedBy, a.Note, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create attendance query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrAttendanceExists
		}
		logger.Error().Err(err).Int64("userID", a.UserID).Msg("Error creating attendance")
		return 0, fmt.Errorf("error creating attendance: %w", err)
	}

	return id, nil
}

// UpdateAttendance corrects an existing record's status and note
func (r *AttendanceRepository) UpdateAttendance(ctx context.Context, id int64, status models.AttendanceStatus, note string, recordedBy int64) error {
	sql, args, err := r.sb.Update("attendance").
		Set("status", status).
		Set("note", note).
		Set("recorded_by", recordedBy).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update attendance query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error updating attendance")
		return fmt.Errorf("error updating attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}

// GetAttendance retrieves one user's record for a date
func (r *AttendanceRepository) GetAttendance(ctx context.Context, userID int64, date time.Time) (*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns).
		From("attendance").
		Where(squirrel.Eq{"user_id": userID, "date": date}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	record, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning attendance row")
		return nil, fmt.Errorf("error getting attendance: %w", err)
	}

	return record, nil
}

// ListAttendanceByUser retrieves a user's records inside a date window with pagination
func (r *AttendanceRepository) ListAttendanceByUser(ctx context.Context, userID int64, from, to time.Time, offset uint64, limit int) ([]*models.Attendance, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("attendance").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count attendance query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error counting attendance")
		return nil, 0, fmt.Errorf("error counting attendance: %w", err)
	}

	sql, args, err := r.sb.Select(attendanceColumns).
		From("attendance").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error listing attendance")
		return nil, 0, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, record)
	}

	return records, total, rows.Err()
}

// ListAttendanceByDate retrieves every record for a date
func (r *AttendanceRepository) ListAttendanceByDate(ctx context.Context, date time.Time) ([]*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns).
		From("attendance").
		Where(squirrel.Eq{"date": date}).
		OrderBy("user_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list attendance by date query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Time("date", date).Msg("Error listing attendance by date")
		return nil, fmt.Errorf("error listing attendance by date: %w", err)
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// StatusCounts aggregates a user's attendance per status over a date window
func (r *AttendanceRepository) StatusCounts(ctx context.Context, userID int64, from, to time.Time) (map[models.AttendanceStatus]int64, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").
		From("attendance").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build attendance status counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error querying attendance status counts")
		return nil, fmt.Errorf("error querying attendance status counts: %w", err)
	}
	defer rows.Close()

	counts := map[models.AttendanceStatus]int64{}
	for rows.Next() {
		var status models.AttendanceStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning status count row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// MonthlyStatusCountsByUser aggregates attendance per user per status for a month,
// used by the monthly attendance report.
func (r *AttendanceRepository) MonthlyStatusCountsByUser(ctx context.Context, from, to time.Time) (map[int64]map[models.AttendanceStatus]int64, error) {
	sql, args, err := r.sb.Select("user_id", "status", "COUNT(*)").
		From("attendance").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		GroupBy("user_id", "status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build monthly attendance counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying monthly attendance counts")
		return nil, fmt.Errorf("error querying monthly attendance counts: %w", err)
	}
	defer rows.Close()

	counts := map[int64]map[models.AttendanceStatus]int64{}
	for rows.Next() {
		var userID int64
		var status models.AttendanceStatus
		var count int64
		if err := rows.Scan(&userID, &status, &count); err != nil {
			return nil, fmt.Errorf("error scanning monthly count row: %w", err)
		}
		if counts[userID] == nil {
			counts[userID] = map[models.AttendanceStatus]int64{}
		}
		counts[userID][status] = count
	}

	return counts, rows.Err()
}
