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
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/dberrors"
	"github.com/instracore/backend/internal/pkg/logger"
)

const courseColumns = "id, title, description, course_type, price, duration, status, syllabus_path, created_by, created_at"

// CourseRepository handles course, teacher assignment, assignment plan and routine persistence
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &course.CourseType,
		&course.Price, &course.Duration, &course.Status, &course.SyllabusPath,
		&course.CreatedBy, &course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// CreateCourse creates a new course
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "description", "course_type", "price", "duration", "status", "syllabus_path", "created_by", "created_at").
		Values(course.Title, course.Description, course.CourseType, course.Price,
			course.Duration, course.Status, course.SyllabusPath, course.CreatedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("title", course.Title).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// GetCourseByID retrieves a course by ID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// UpdateCourse updates course fields other than status
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("title", course.Title).
		Set("description", course.Description).
		Set("course_type", course.CourseType).
		Set("price", course.Price).
		Set("duration", course.Duration).
		Set("syllabus_path", course.SyllabusPath).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// UpdateCourseStatus sets a course's status
func (r *CourseRepository) UpdateCourseStatus(ctx context.Context, courseID int64, status models.CourseStatus) error {
	sql, args, err := r.sb.Update("courses").
		Set("status", status).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update course status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing update course status query")
		return fmt.Errorf("error updating course status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// DeleteCourse removes a course
func (r *CourseRepository) DeleteCourse(ctx context.Context, courseID int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": courseID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// ListCourses retrieves courses matching the filter with pagination
func (r *CourseRepository) ListCourses(ctx context.Context, filter *dto.CourseFilterRequest, offset uint64, limit int) ([]*models.Course, int64, error) {
	base := r.sb.Select(courseColumns).From("courses")
	countQuery := r.sb.Select("COUNT(*)").From("courses")

	if filter != nil {
		if filter.CourseType != nil && *filter.CourseType != "" {
			base = base.Where(squirrel.Eq{"course_type": *filter.CourseType})
			countQuery = countQuery.Where(squirrel.Eq{"course_type": *filter.CourseType})
		}
		if filter.Status != nil && *filter.Status != "" {
			base = base.Where(squirrel.Eq{"status": *filter.Status})
			countQuery = countQuery.Where(squirrel.Eq{"status": *filter.Status})
		}
		if filter.Title != nil && *filter.Title != "" {
			base = base.Where(squirrel.ILike{"title": "%" + *filter.Title + "%"})
			countQuery = countQuery.Where(squirrel.ILike{"title": "%" + *filter.Title + "%"})
		}
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, total, rows.Err()
}

// CountByStatus returns the number of courses in a status
func (r *CourseRepository) CountByStatus(ctx context.Context, status models.CourseStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("courses").
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("status", string(status)).Msg("Error counting courses by status")
		return 0, fmt.Errorf("error counting courses by status: %w", err)
	}

	return count, nil
}

// AssignTeacher links a teacher to a course
func (r *CourseRepository) AssignTeacher(ctx context.Context, ct *models.CourseTeacher) (int64, error) {
	sql, args, err := r.sb.Insert("course_teachers").
		Columns("course_id", "teacher_id", "is_primary", "assigned_by", "assigned_at").
		Values(ct.CourseID, ct.TeacherID, ct.IsPrimary, ct.AssignedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build assign teacher query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrTeacherAssigned
		}
		logger.Error().Err(err).Int64("courseID", ct.CourseID).Int64("teacherID", ct.TeacherID).Msg("Error assigning teacher")
		return 0, fmt.Errorf("error assigning teacher: %w", err)
	}

	return id, nil
}

// RemoveTeacher unlinks a teacher from a course
func (r *CourseRepository) RemoveTeacher(ctx context.Context, courseID, teacherID int64) error {
	sql, args, err := r.sb.Delete("course_teachers").
		Where(squirrel.Eq{"course_id": courseID, "teacher_id": teacherID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build remove teacher query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error removing teacher")
		return fmt.Errorf("error removing teacher: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListCoursesByTeacher retrieves all courses a teacher is assigned to
func (r *CourseRepository) ListCoursesByTeacher(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title", "c.description", "c.course_type", "c.price",
		"c.duration", "c.status", "c.syllabus_path", "c.created_by", "c.created_at").
		From("courses c").
		Join("course_teachers ct ON ct.course_id = c.id").
		Where(squirrel.Eq{"ct.teacher_id": teacherID}).
		OrderBy("c.created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list courses by teacher query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", teacherID).Msg("Error listing courses by teacher")
		return nil, fmt.Errorf("error listing courses by teacher: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

// CountStudentsByTeacher counts distinct students enrolled in a teacher's courses
func (r *CourseRepository) CountStudentsByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(DISTINCT e.student_id)").
		From("enrollments e").
		Join("course_teachers ct ON ct.course_id = e.course_id").
		Where(squirrel.Eq{"ct.teacher_id": teacherID}).
		Where(squirrel.Eq{"e.status": []models.EnrollmentStatus{models.EnrollmentStatusApproved, models.EnrollmentStatusOngoing}}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("teacherID", teacherID).Msg("Error counting students by teacher")
		return 0, fmt.Errorf("error counting students by teacher: %w", err)
	}

	return count, nil
}

// CreateAssignment adds coursework to a course
func (r *CourseRepository) CreateAssignment(ctx context.Context, a *models.Assignment) (int64, error) {
	sql, args, err := r.sb.Insert("assignments").
		Columns("course_id", "title", "description", "due_date", "total_marks", "created_by", "is_active", "created_at").
		Values(a.CourseID, a.Title, a.Description, a.DueDate, a.TotalMarks, a.CreatedBy, true, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create assignment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", a.CourseID).Msg("Error creating assignment")
		return 0, fmt.Errorf("error creating assignment: %w", err)
	}

	return id, nil
}

// ListAssignmentsByCourse retrieves active assignments for a course
func (r *CourseRepository) ListAssignmentsByCourse(ctx context.Context, courseID int64) ([]*models.Assignment, error) {
	sql, args, err := r.sb.Select("id", "course_id", "title", "description", "due_date", "total_marks", "created_by", "is_active", "created_at").
		From("assignments").
		Where(squirrel.Eq{"course_id": courseID, "is_active": true}).
		OrderBy("due_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error listing assignments")
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	assignments := []*models.Assignment{}
	for rows.Next() {
		a := &models.Assignment{}
		err := rows.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &a.DueDate, &a.TotalMarks, &a.CreatedBy, &a.IsActive, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

// CreateLessonPlan adds a dated lesson plan to a course
func (r *CourseRepository) CreateLessonPlan(ctx context.Context, lp *models.LessonPlan) (int64, error) {
	sql, args, err := r.sb.Insert("lesson_plans").
		Columns("course_id", "title", "content", "date", "created_by", "created_at").
		Values(lp.CourseID, lp.Title, lp.Content, lp.Date, lp.CreatedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create lesson plan query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", lp.CourseID).Msg("Error creating lesson plan")
		return 0, fmt.Errorf("error creating lesson plan: %w", err)
	}

	return id, nil
}

// ListLessonPlansByCourse retrieves lesson plans for a course
func (r *CourseRepository) ListLessonPlansByCourse(ctx context.Context, courseID int64) ([]*models.LessonPlan, error) {
	sql, args, err := r.sb.Select("id", "course_id", "title", "content", "date", "created_by", "created_at").
		From("lesson_plans").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list lesson plans query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error listing lesson plans")
		return nil, fmt.Errorf("error listing lesson plans: %w", err)
	}
	defer rows.Close()

	plans := []*models.LessonPlan{}
	for rows.Next() {
		lp := &models.LessonPlan{}
		err := rows.Scan(&lp.ID, &lp.CourseID, &lp.Title, &lp.Content, &lp.Date, &lp.CreatedBy, &lp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning lesson plan row: %w", err)
		}
		plans = append(plans, lp)
	}

	return plans, rows.Err()
}

// CreateRoutine adds a weekly class slot for a teacher
func (r *CourseRepository) CreateRoutine(ctx context.Context, routine *models.ClassRoutine) (int64, error) {
	sql, args, err := r.sb.Insert("class_routines").
		Columns("teacher_id", "course_id", "day_of_week", "start_time", "end_time", "room", "is_active").
		Values(routine.TeacherID, routine.CourseID, routine.DayOfWeek, routine.StartTime, routine.EndTime, routine.Room, true).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create routine query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Int64("teacherID", routine.TeacherID).Msg("Error creating routine")
		return 0, fmt.Errorf("error creating routine: %w", err)
	}

	return id, nil
}

// ListRoutinesByTeacher retrieves active routines for a teacher, optionally for one day
func (r *CourseRepository) ListRoutinesByTeacher(ctx context.Context, teacherID int64, dayOfWeek string) ([]*models.ClassRoutine, error) {
	base := r.sb.Select("id", "teacher_id", "course_id", "day_of_week", "start_time", "end_time", "room", "is_active").
		From("class_routines").
		Where(squirrel.Eq{"teacher_id": teacherID, "is_active": true})

	if dayOfWeek != "" {
		base = base.Where(squirrel.Eq{"day_of_week": dayOfWeek})
	}

	sql, args, err := base.OrderBy("start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list routines query: %w", err)
	}

	return r.queryRoutines(ctx, sql, args)
}

// ListRoutinesByStudent retrieves routines for the courses a student is actively enrolled in
func (r *CourseRepository) ListRoutinesByStudent(ctx context.Context, studentID int64, dayOfWeek string) ([]*models.ClassRoutine, error) {
	base := r.sb.Select("cr.id", "cr.teacher_id", "cr.course_id", "cr.day_of_week", "cr.start_time", "cr.end_time", "cr.room", "cr.is_active").
		From("class_routines cr").
		Join("enrollments e ON e.course_id = cr.course_id").
		Where(squirrel.Eq{"e.student_id": studentID, "cr.is_active": true}).
		Where(squirrel.Eq{"e.status": []models.EnrollmentStatus{models.EnrollmentStatusApproved, models.EnrollmentStatusOngoing}})

	if dayOfWeek != "" {
		base = base.Where(squirrel.Eq{"cr.day_of_week": dayOfWeek})
	}

	sql, args, err := base.OrderBy("cr.start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list student routines query: %w", err)
	}

	return r.queryRoutines(ctx, sql, args)
}

func (r *CourseRepository) queryRoutines(ctx context.Context, sql string, args []interface{}) ([]*models.ClassRoutine, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing routines query")
		return nil, fmt.Errorf("error listing routines: %w", err)
	}
	defer rows.Close()

	routines := []*models.ClassRoutine{}
	for rows.Next() {
		routine := &models.ClassRoutine{}
		err := rows.Scan(&routine.ID, &routine.TeacherID, &routine.CourseID, &routine.DayOfWeek,
			&routine.StartTime, &routine.EndTime, &routine.Room, &routine.IsActive)
		if err != nil {
			return nil, fmt.Errorf("error scanning routine row: %w", err)
		}
		routines = append(routines, routine)
	}

	return routines, rows.Err()
}
