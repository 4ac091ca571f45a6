package dto

import (
	"time"

	"github.com/instracore/backend/internal/app/models"
)

// EnrollRequest enrolls the current student into a course
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// UpdateEnrollmentStatusRequest moves an enrollment along its lifecycle
type UpdateEnrollmentStatusRequest struct {
	Status models.EnrollmentStatus `json:"status" binding:"required"`
}

// EnrollmentResponse represents one enrollment
type EnrollmentResponse struct {
	ID          int64                   `json:"id"`
	StudentID   int64                   `json:"studentId"`
	CourseID    int64                   `json:"courseId"`
	CourseTitle string                  `json:"courseTitle,omitempty"`
	Status      models.EnrollmentStatus `json:"status"`
	Progress    float64                 `json:"progress"`
	EnrolledAt  time.Time               `json:"enrolledAt"`
}

// FromEnrollment converts a models.Enrollment to an EnrollmentResponse
func FromEnrollment(e *models.Enrollment) EnrollmentResponse {
	if e == nil {
		return EnrollmentResponse{}
	}
	return EnrollmentResponse{
		ID:         e.ID,
		StudentID:  e.StudentID,
		CourseID:   e.CourseID,
		Status:     e.Status,
		Progress:   e.Progress,
		EnrolledAt: e.EnrolledAt,
	}
}

// EnrollmentListResponse represents enrollments with pagination
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	PaginationInfo
}

// RecordAttendanceRequest records one user's attendance for a date.
// Recording the same user twice for a date updates the existing record.
type RecordAttendanceRequest struct {
	UserID   int64                   `json:"userId" binding:"required,min=1"`
	CourseID *int64                  `json:"courseId,omitempty"`
	Date     string                  `json:"date" binding:"required"` // YYYY-MM-DD
	Status   models.AttendanceStatus `json:"status" binding:"required"`
	Note     string                  `json:"note,omitempty"`
}

// CorrectAttendanceRequest fixes an already recorded day
type CorrectAttendanceRequest struct {
	Status models.AttendanceStatus `json:"status" binding:"required"`
	Note   string                  `json:"note,omitempty"`
}

// BulkAttendanceRequest records attendance for many users at once
type BulkAttendanceRequest struct {
	CourseID *int64                             `json:"courseId,omitempty"`
	Date     string                             `json:"date" binding:"required"`
	Records  []BulkAttendanceEntry              `json:"records" binding:"required,min=1,dive"`
}

// BulkAttendanceEntry is one row of a bulk attendance submission
type BulkAttendanceEntry struct {
	UserID int64                   `json:"userId" binding:"required,min=1"`
	Status models.AttendanceStatus `json:"status" binding:"required"`
}

// AttendanceResponse represents one attendance record
type AttendanceResponse struct {
	ID     int64                   `json:"id"`
	UserID int64                   `json:"userId"`
	Date   time.Time               `json:"date"`
	Status models.AttendanceStatus `json:"status"`
	Note   string                  `json:"note,omitempty"`
}

// FromAttendance converts a models.Attendance to an AttendanceResponse
func FromAttendance(a *models.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:     a.ID,
		UserID: a.UserID,
		Date:   a.Date,
		Status: a.Status,
		Note:   a.Note,
	}
}

// AttendanceListResponse represents attendance records with pagination
type AttendanceListResponse struct {
	Records []AttendanceResponse `json:"records"`
	PaginationInfo
}

// AttendanceSummaryResponse aggregates a user's attendance over a window
type AttendanceSummaryResponse struct {
	UserID      int64   `json:"userId"`
	TotalDays   int64   `json:"totalDays"`
	PresentDays int64   `json:"presentDays"`
	AbsentDays  int64   `json:"absentDays"`
	LateDays    int64   `json:"lateDays"`
	Percentage  float64 `json:"percentage"`
}

// AcademicsSummaryResponse summarises a student's academic standing
// across all enrollments
type AcademicsSummaryResponse struct {
	StudentID      int64   `json:"studentId"`
	AttendanceRate float64 `json:"attendanceRate"` // percent, year to date
	ExamsTaken     int64   `json:"examsTaken"`
	ExamsPassed    int64   `json:"examsPassed"`
	PassRate       float64 `json:"passRate"`     // percent
	AverageMarks   float64 `json:"averageMarks"` // percent of total marks
}

// RecordExamResultRequest records a graded exam for an enrollment
type RecordExamResultRequest struct {
	EnrollmentID  int64   `json:"enrollmentId" binding:"required,min=1"`
	ExamName      string  `json:"examName" binding:"required"`
	MarksObtained float64 `json:"marksObtained" binding:"min=0"`
	TotalMarks    float64 `json:"totalMarks" binding:"required,min=1"`
	Grade         string  `json:"grade,omitempty"`
	ExamDate      string  `json:"examDate" binding:"required"` // YYYY-MM-DD
}

// ExamResultResponse represents one exam result
type ExamResultResponse struct {
	ID            int64     `json:"id"`
	EnrollmentID  int64     `json:"enrollmentId"`
	ExamName      string    `json:"examName"`
	MarksObtained float64   `json:"marksObtained"`
	TotalMarks    float64   `json:"totalMarks"`
	Grade         string    `json:"grade"`
	ExamDate      time.Time `json:"examDate"`
}
