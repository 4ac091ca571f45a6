package dto

import (
	"time"

	"github.com/instracore/backend/internal/app/models"
)

// CreateCourseRequest creates a new course in draft status
type CreateCourseRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	CourseType  models.CourseType `json:"courseType" binding:"required"`
	Price       float64           `json:"price" binding:"min=0"`
	Duration    string            `json:"duration,omitempty"`
}

// UpdateCourseRequest updates course fields other than status
type UpdateCourseRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	CourseType  models.CourseType `json:"courseType" binding:"required"`
	Price       float64           `json:"price" binding:"min=0"`
	Duration    string            `json:"duration,omitempty"`
}

// UpdateCourseStatusRequest moves a course along its lifecycle
type UpdateCourseStatusRequest struct {
	Status models.CourseStatus `json:"status" binding:"required"`
}

// AssignTeacherRequest links a teacher to a course
type AssignTeacherRequest struct {
	TeacherID int64 `json:"teacherId" binding:"required,min=1"`
	IsPrimary bool  `json:"isPrimary"`
}

// CourseResponse represents course information
type CourseResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CourseType  models.CourseType   `json:"courseType"`
	Price       float64             `json:"price"`
	Duration    string              `json:"duration,omitempty"`
	Status      models.CourseStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// FromCourse converts a models.Course to a CourseResponse
func FromCourse(c *models.Course) CourseResponse {
	if c == nil {
		return CourseResponse{}
	}
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CourseType:  c.CourseType,
		Price:       c.Price,
		Duration:    c.Duration,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
}

// CourseFilterRequest represents course filtering parameters
type CourseFilterRequest struct {
	CourseType *string `form:"courseType,omitempty"`
	Status     *string `form:"status,omitempty"`
	Title      *string `form:"title,omitempty"`
	Page       int     `form:"page,default=1" binding:"min=1"`
	PageSize   int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// CourseListResponse represents a list of courses with pagination
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	PaginationInfo
}

// CreateAssignmentRequest adds coursework to a course
type CreateAssignmentRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	DueDate     string  `json:"dueDate" binding:"required"` // YYYY-MM-DD
	TotalMarks  float64 `json:"totalMarks" binding:"required,min=1"`
}

// AssignmentResponse represents one assignment
type AssignmentResponse struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"courseId"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"dueDate"`
	TotalMarks float64   `json:"totalMarks"`
	IsActive   bool      `json:"isActive"`
}

// CreateLessonPlanRequest adds a dated lesson plan to a course
type CreateLessonPlanRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
}

// CreateRoutineRequest adds a weekly class slot for a teacher
type CreateRoutineRequest struct {
	CourseID  int64  `json:"courseId" binding:"required,min=1"`
	DayOfWeek string `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime" binding:"required"` // HH:MM
	EndTime   string `json:"endTime" binding:"required"`
	Room      string `json:"room,omitempty"`
}

// RoutineResponse represents one weekly class slot
type RoutineResponse struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"courseId"`
	TeacherID int64  `json:"teacherId"`
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Room      string `json:"room,omitempty"`
}
