package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// CourseService handles the course catalog, teacher assignments,
// assignments, lesson plans and class routines
type CourseService struct {
	courseRepo   *repositories.CourseRepository
	userRepo     *repositories.UserRepository
	activityRepo *repositories.ActivityRepository
	logger       zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	userRepo *repositories.UserRepository,
	activityRepo *repositories.ActivityRepository,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:   courseRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// CreateCourse creates a course in draft status
func (s *CourseService) CreateCourse(ctx context.Context, actorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		CourseType:  req.CourseType,
		Price:       req.Price,
		Duration:    req.Duration,
		Status:      models.CourseStatusDraft,
		CreatedBy:   &actorID,
	}

	courseID, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = courseID

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "create",
		EntityName: "courses",
		ObjectID:   fmt.Sprintf("%d", courseID),
	})

	resp := dto.FromCourse(course)
	return &resp, nil
}

// GetCourse retrieves one course by ID
func (s *CourseService) GetCourse(ctx context.Context, courseID int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromCourse(course)
	return &resp, nil
}

// ListCourses retrieves courses matching the filter with pagination
func (s *CourseService) ListCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	courses, total, err := s.courseRepo.ListCourses(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.CourseListResponse{
		Courses:        make([]dto.CourseResponse, 0, len(courses)),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}
	for _, c := range courses {
		resp.Courses = append(resp.Courses, dto.FromCourse(c))
	}

	return resp, nil
}

// ListActiveCourses retrieves only courses open for enrollment
func (s *CourseService) ListActiveCourses(ctx context.Context, page, pageSize int) (*dto.CourseListResponse, error) {
	active := string(models.CourseStatusActive)
	return s.ListCourses(ctx, &dto.CourseFilterRequest{
		Status:   &active,
		Page:     page,
		PageSize: pageSize,
	})
}

// UpdateCourse updates course fields other than status
func (s *CourseService) UpdateCourse(ctx context.Context, actorID, courseID int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.CourseType = req.CourseType
	course.Price = req.Price
	course.Duration = req.Duration

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "update",
		EntityName: "courses",
		ObjectID:   fmt.Sprintf("%d", courseID),
	})

	resp := dto.FromCourse(course)
	return &resp, nil
}

// UpdateCourseStatus moves a course along its lifecycle. Illegal
// transitions are rejected against the course transition table.
func (s *CourseService) UpdateCourseStatus(ctx context.Context, actorID, courseID int64, next models.CourseStatus) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !course.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: course cannot move from %s to %s",
			apperrors.ErrInvalidTransition, course.Status, next)
	}

	if err := s.courseRepo.UpdateCourseStatus(ctx, courseID, next); err != nil {
		return nil, err
	}
	course.Status = next

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     fmt.Sprintf("status:%s", next),
		EntityName: "courses",
		ObjectID:   fmt.Sprintf("%d", courseID),
	})

	resp := dto.FromCourse(course)
	return &resp, nil
}

// snapshotCourse serializes a course for the trash so the record can be
// inspected after deletion. Course snapshots are kept for reference only
// and are not restorable.
func snapshotCourse(c *models.Course) ([]byte, error) {
	return json.Marshal(c)
}

// DeleteCourse removes a course. Only draft courses can be deleted;
// anything further along is closed via its status instead.
func (s *CourseService) DeleteCourse(ctx context.Context, actorID, courseID int64) error {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return err
	}

	if course.Status != models.CourseStatusDraft {
		return apperrors.NewConflictError("only draft courses can be deleted")
	}

	snapshot, err := snapshotCourse(course)
	if err != nil {
		return fmt.Errorf("failed to snapshot course: %w", err)
	}

	if _, err := s.activityRepo.CreateTrashItem(ctx, &models.Trash{
		EntityName: "courses",
		ObjectData: snapshot,
		DeletedBy:  &actorID,
	}); err != nil {
		return fmt.Errorf("failed to move course to trash: %w", err)
	}

	if err := s.courseRepo.DeleteCourse(ctx, courseID); err != nil {
		return err
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "delete",
		EntityName: "courses",
		ObjectID:   fmt.Sprintf("%d", courseID),
	})

	return nil
}

// AssignTeacher links a teacher to a course after checking the target
// user actually teaches
func (s *CourseService) AssignTeacher(ctx context.Context, actorID, courseID int64, req *dto.AssignTeacherRequest) error {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return err
	}

	teacher, err := s.userRepo.GetUserByID(ctx, req.TeacherID)
	if err != nil {
		return err
	}

	if !teacher.HasSubRole(models.SubRoleTeacher) && !teacher.HasSubRole(models.SubRoleFaculty) {
		return apperrors.NewBadRequestError("user is not a teacher")
	}

	if _, err := s.courseRepo.AssignTeacher(ctx, &models.CourseTeacher{
		CourseID:   courseID,
		TeacherID:  req.TeacherID,
		IsPrimary:  req.IsPrimary,
		AssignedBy: &actorID,
	}); err != nil {
		return err
	}

	s.activityRepo.CreateNotification(ctx, &models.Notification{
		UserID:  req.TeacherID,
		Message: "You have been assigned to a course",
	})

	return nil
}

// RemoveTeacher unlinks a teacher from a course
func (s *CourseService) RemoveTeacher(ctx context.Context, courseID, teacherID int64) error {
	return s.courseRepo.RemoveTeacher(ctx, courseID, teacherID)
}

// ListTeacherCourses retrieves courses a teacher is assigned to
func (s *CourseService) ListTeacherCourses(ctx context.Context, teacherID int64) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.ListCoursesByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, dto.FromCourse(c))
	}

	return responses, nil
}

// CreateAssignment adds coursework to a course
func (s *CourseService) CreateAssignment(ctx context.Context, actorID, courseID int64, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	dueDate, err := helpers.ParseDate(req.DueDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("dueDate must be YYYY-MM-DD")
	}

	assignment := &models.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		TotalMarks:  req.TotalMarks,
		CreatedBy:   &actorID,
		IsActive:    true,
	}

	assignmentID, err := s.courseRepo.CreateAssignment(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = assignmentID

	return &dto.AssignmentResponse{
		ID:         assignment.ID,
		CourseID:   assignment.CourseID,
		Title:      assignment.Title,
		DueDate:    assignment.DueDate,
		TotalMarks: assignment.TotalMarks,
		IsActive:   assignment.IsActive,
	}, nil
}

// ListAssignments retrieves a course's assignments
func (s *CourseService) ListAssignments(ctx context.Context, courseID int64) ([]dto.AssignmentResponse, error) {
	assignments, err := s.courseRepo.ListAssignmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, dto.AssignmentResponse{
			ID:         a.ID,
			CourseID:   a.CourseID,
			Title:      a.Title,
			DueDate:    a.DueDate,
			TotalMarks: a.TotalMarks,
			IsActive:   a.IsActive,
		})
	}

	return responses, nil
}

// CreateLessonPlan adds a dated teaching plan to a course
func (s *CourseService) CreateLessonPlan(ctx context.Context, actorID, courseID int64, req *dto.CreateLessonPlanRequest) (int64, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return 0, err
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return 0, apperrors.NewBadRequestError("date must be YYYY-MM-DD")
	}

	return s.courseRepo.CreateLessonPlan(ctx, &models.LessonPlan{
		CourseID:  courseID,
		Title:     req.Title,
		Content:   req.Content,
		Date:      date,
		CreatedBy: &actorID,
	})
}

// ListLessonPlans retrieves a course's lesson plans
func (s *CourseService) ListLessonPlans(ctx context.Context, courseID int64) ([]*models.LessonPlan, error) {
	return s.courseRepo.ListLessonPlansByCourse(ctx, courseID)
}

// CreateRoutine adds a weekly class slot for a teacher
func (s *CourseService) CreateRoutine(ctx context.Context, teacherID int64, req *dto.CreateRoutineRequest) (*dto.RoutineResponse, error) {
	if !validWeekday(req.DayOfWeek) {
		return nil, apperrors.NewBadRequestError("unknown day of week")
	}

	if _, err := s.courseRepo.GetCourseByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	routine := &models.ClassRoutine{
		TeacherID: teacherID,
		CourseID:  req.CourseID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
		IsActive:  true,
	}

	routineID, err := s.courseRepo.CreateRoutine(ctx, routine)
	if err != nil {
		return nil, err
	}
	routine.ID = routineID

	return routineToResponse(routine), nil
}

// ListRoutinesForTeacher retrieves a teacher's weekly schedule
func (s *CourseService) ListRoutinesForTeacher(ctx context.Context, teacherID int64, dayOfWeek string) ([]dto.RoutineResponse, error) {
	routines, err := s.courseRepo.ListRoutinesByTeacher(ctx, teacherID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	return routinesToResponses(routines), nil
}

// ListRoutinesForStudent retrieves the schedule for a student's enrolled courses
func (s *CourseService) ListRoutinesForStudent(ctx context.Context, studentID int64, dayOfWeek string) ([]dto.RoutineResponse, error) {
	routines, err := s.courseRepo.ListRoutinesByStudent(ctx, studentID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	return routinesToResponses(routines), nil
}

func validWeekday(day string) bool {
	switch day {
	case models.Monday, models.Tuesday, models.Wednesday, models.Thursday,
		models.Friday, models.Saturday, models.Sunday:
		return true
	}
	return false
}

func routineToResponse(r *models.ClassRoutine) *dto.RoutineResponse {
	return &dto.RoutineResponse{
		ID:        r.ID,
		CourseID:  r.CourseID,
		TeacherID: r.TeacherID,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Room:      r.Room,
	}
}

func routinesToResponses(routines []*models.ClassRoutine) []dto.RoutineResponse {
	responses := make([]dto.RoutineResponse, 0, len(routines))
	for _, r := range routines {
		responses = append(responses, *routineToResponse(r))
	}
	return responses
}
