package models

import "time"

// CourseType classifies how a course is delivered
type CourseType string

const (
	CourseTypeOnline  CourseType = "online"
	CourseTypeRegular CourseType = "regular"
	CourseTypeDiploma CourseType = "diploma"
	CourseTypeOffline CourseType = "offline"
)

// CourseStatus is the lifecycle state of a course
type CourseStatus string

const (
	CourseStatusDraft           CourseStatus = "draft"
	CourseStatusPendingApproval CourseStatus = "pending_approval"
	CourseStatusActive          CourseStatus = "active"
	CourseStatusInactive        CourseStatus = "inactive"
	CourseStatusClosed          CourseStatus = "closed"
)

// courseTransitions is the table of legal course status changes.
var courseTransitions = map[CourseStatus][]CourseStatus{
	CourseStatusDraft:           {CourseStatusPendingApproval},
	CourseStatusPendingApproval: {CourseStatusActive, CourseStatusInactive},
	CourseStatusActive:          {CourseStatusInactive, CourseStatusClosed},
	CourseStatusInactive:        {CourseStatusActive, CourseStatusClosed},
	CourseStatusClosed:          {},
}

// CanTransitionTo reports whether the status change is allowed.
func (s CourseStatus) CanTransitionTo(next CourseStatus) bool {
	return contains(courseTransitions[s], next)
}

// Course is a teachable unit owned by its creator
type Course struct {
	ID           int64        `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Description  string       `json:"description" db:"description"`
	CourseType   CourseType   `json:"courseType" db:"course_type"`
	Price        float64      `json:"price" db:"price"`
	Duration     string       `json:"duration" db:"duration"` // e.g. "8 weeks"
	Status       CourseStatus `json:"status" db:"status"`
	SyllabusPath *string      `json:"syllabusPath,omitempty" db:"syllabus_path"`
	CreatedBy    *int64       `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}

// CourseTeacher links a teacher to a course; unique per (course, teacher)
type CourseTeacher struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	TeacherID  int64     `json:"teacherId" db:"teacher_id"`
	IsPrimary  bool      `json:"isPrimary" db:"is_primary"`
	AssignedBy *int64    `json:"assignedBy,omitempty" db:"assigned_by"`
	AssignedAt time.Time `json:"assignedAt" db:"assigned_at"`
}

// Assignment is coursework with a due date
type Assignment struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`
	TotalMarks  float64   `json:"totalMarks" db:"total_marks"`
	CreatedBy   *int64    `json:"createdBy,omitempty" db:"created_by"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// LessonPlan is a dated teaching plan for a course
type LessonPlan struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Date      time.Time `json:"date" db:"date"`
	CreatedBy *int64    `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Weekday names used by class routines, lowercase per the routine table.
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// ClassRoutine is a weekly teaching slot; unique per (teacher, course, day, start)
type ClassRoutine struct {
	ID        int64  `json:"id" db:"id"`
	TeacherID int64  `json:"teacherId" db:"teacher_id"`
	CourseID  int64  `json:"courseId" db:"course_id"`
	DayOfWeek string `json:"dayOfWeek" db:"day_of_week"`
	StartTime string `json:"startTime" db:"start_time"` // HH:MM
	EndTime   string `json:"endTime" db:"end_time"`
	Room      string `json:"room,omitempty" db:"room"`
	IsActive  bool   `json:"isActive" db:"is_active"`
}
