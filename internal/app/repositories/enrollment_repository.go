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

const enrollmentColumns = "id, student_id, course_id, status, progress, enrolled_at, updated_at"

// EnrollmentRepository handles enrollment and exam result persistence
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.Progress, &e.EnrolledAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEnrollmentTx inserts an enrollment inside an existing transaction.
// The unique constraint on (student_id, course_id) enforces one enrollment
// per student per course.
func (r *EnrollmentRepository) CreateEnrollmentTx(ctx context.Context, tx pgx.Tx, e *models.Enrollment) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "status", "progress", "enrolled_at", "updated_at").
		Values(e.StudentID, e.CourseID, e.Status, e.Progress, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		logger.Error().Err(err).Int64("studentID", e.StudentID).Int64("courseID", e.CourseID).Msg("Error creating enrollment")
		return 0, fmt.Errorf("error creating enrollment: %w", err)
	}

	return id, nil
}

// GetEnrollmentByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns).
		From("enrollments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error getting enrollment by ID: %w", err)
	}

	return enrollment, nil
}

// GetEnrollment retrieves an enrollment by student and course
func (r *EnrollmentRepository) GetEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns).
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}

	return enrollment, nil
}

// UpdateEnrollmentStatus sets an enrollment's status
func (r *EnrollmentRepository) UpdateEnrollmentStatus(ctx context.Context, enrollmentID int64, status models.EnrollmentStatus) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": enrollmentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update enrollment status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", enrollmentID).Msg("Error updating enrollment status")
		return fmt.Errorf("error updating enrollment status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// UpdateProgress sets an enrollment's progress percentage
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, enrollmentID int64, progress float64) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("progress", progress).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": enrollmentID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update progress query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", enrollmentID).Msg("Error updating enrollment progress")
		return fmt.Errorf("error updating enrollment progress: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// ListEnrollmentsByStudent retrieves all of a student's enrollments
func (r *EnrollmentRepository) ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns).
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("enrolled_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	return r.queryEnrollments(ctx, sql, args)
}

// ListEnrollmentsByCourse retrieves enrollments for a course with pagination
func (r *EnrollmentRepository) ListEnrollmentsByCourse(ctx context.Context, courseID int64, offset uint64, limit int) ([]*models.Enrollment, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count enrollments query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error counting enrollments")
		return nil, 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	sql, args, err := r.sb.Select(enrollmentColumns).
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("enrolled_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	enrollments, err := r.queryEnrollments(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

// CountActiveByStudent counts a student's approved or ongoing enrollments
func (r *EnrollmentRepository) CountActiveByStudent(ctx context.Context, studentID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		Where(squirrel.Eq{"status": []models.EnrollmentStatus{models.EnrollmentStatusApproved, models.EnrollmentStatusOngoing}}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count active enrollments query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error counting active enrollments")
		return 0, fmt.Errorf("error counting active enrollments: %w", err)
	}

	return count, nil
}

// EnrollmentStatusCounts aggregates enrollment counts per status for a course
func (r *EnrollmentRepository) EnrollmentStatusCounts(ctx context.Context, courseID int64) (map[models.EnrollmentStatus]int64, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment status counts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error querying enrollment status counts")
		return nil, fmt.Errorf("error querying enrollment status counts: %w", err)
	}
	defer rows.Close()

	counts := map[models.EnrollmentStatus]int64{}
	for rows.Next() {
		var status models.EnrollmentStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning status count row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *EnrollmentRepository) queryEnrollments(ctx context.Context, sql string, args []interface{}) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing enrollments query")
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments, rows.Err()
}

// CreateExamResult records a graded exam for an enrollment
func (r *EnrollmentRepository) CreateExamResult(ctx context.Context, result *models.ExamResult) (int64, error) {
	sql, args, err := r.sb.Insert("exam_results").
		Columns("enrollment_id", "exam_name", "marks_obtained", "total_marks", "grade", "exam_date", "recorded_by", "created_at").
		Values(result.EnrollmentID, result.ExamName, result.MarksObtained, result.TotalMarks,
			result.Grade, result.ExamDate, result.RecordedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create exam result query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", result.EnrollmentID).Msg("Error creating exam result")
		return 0, fmt.Errorf("error creating exam result: %w", err)
	}

	return id, nil
}

// ListExamResultsByEnrollment retrieves exam results for an enrollment
func (r *EnrollmentRepository) ListExamResultsByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.ExamResult, error) {
	sql, args, err := r.sb.Select("id", "enrollment_id", "exam_name", "marks_obtained", "total_marks", "grade", "exam_date", "recorded_by", "created_at").
		From("exam_results").
		Where(squirrel.Eq{"enrollment_id": enrollmentID}).
		OrderBy("exam_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list exam results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", enrollmentID).Msg("Error listing exam results")
		return nil, fmt.Errorf("error listing exam results: %w", err)
	}
	defer rows.Close()

	results := []*models.ExamResult{}
	for rows.Next() {
		er := &models.ExamResult{}
		err := rows.Scan(&er.ID, &er.EnrollmentID, &er.ExamName, &er.MarksObtained, &er.TotalMarks,
			&er.Grade, &er.ExamDate, &er.RecordedBy, &er.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning exam result row: %w", err)
		}
		results = append(results, er)
	}

	return results, rows.Err()
}

// ListExamResultsByStudent retrieves every exam result across a
// student's enrollments
func (r *EnrollmentRepository) ListExamResultsByStudent(ctx context.Context, studentID int64) ([]*models.ExamResult, error) {
	sql, args, err := r.sb.Select("er.id", "er.enrollment_id", "er.exam_name", "er.marks_obtained", "er.total_marks",
		"er.grade", "er.exam_date", "er.recorded_by", "er.created_at").
		From("exam_results er").
		Join("enrollments e ON e.id = er.enrollment_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("er.exam_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list exam results by student query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error listing exam results by student")
		return nil, fmt.Errorf("error listing exam results by student: %w", err)
	}
	defer rows.Close()

	results := []*models.ExamResult{}
	for rows.Next() {
		er := &models.ExamResult{}
		err := rows.Scan(&er.ID, &er.EnrollmentID, &er.ExamName, &er.MarksObtained, &er.TotalMarks,
			&er.Grade, &er.ExamDate, &er.RecordedBy, &er.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning exam result row: %w", err)
		}
		results = append(results, er)
	}

	return results, rows.Err()
}

// CreateGuardianReport stores a progress report addressed to a guardian
func (r *EnrollmentRepository) CreateGuardianReport(ctx context.Context, report *models.GuardianReport) (int64, error) {
	sql, args, err := r.sb.Insert("guardian_reports").
		Columns("student_id", "guardian_email", "period", "content", "created_by", "created_at").
		Values(report.StudentID, report.GuardianEmail, report.Period, report.Content, report.CreatedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create guardian report query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", report.StudentID).Msg("Error creating guardian report")
		return 0, fmt.Errorf("error creating guardian report: %w", err)
	}

	return id, nil
}

// MarkGuardianReportSent stamps the delivery time on a guardian report
func (r *EnrollmentRepository) MarkGuardianReportSent(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("guardian_reports").
		Set("sent_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build mark guardian report sent query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reportID", id).Msg("Error marking guardian report sent")
		return fmt.Errorf("error marking guardian report sent: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
