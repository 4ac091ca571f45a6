package dto

import "github.com/instracore/backend/internal/app/models"

// ReportRequest selects a report window. Year and month are accepted as
// strings; unparsable values fall back to the current year and month.
type ReportRequest struct {
	Year  string `form:"year,omitempty"`
	Month string `form:"month,omitempty"`
}

// MonthlyAmount is one month's total inside a yearly report
type MonthlyAmount struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}

// FinancialReportResponse aggregates income and expense for a year
type FinancialReportResponse struct {
	Year         int             `json:"year"`
	Income       []MonthlyAmount `json:"income"`
	Expenses     []MonthlyAmount `json:"expenses"`
	Salaries     []MonthlyAmount `json:"salaries"`
	TotalIncome  float64         `json:"totalIncome"`
	TotalExpense float64         `json:"totalExpense"`
	NetBalance   float64         `json:"netBalance"`
}

// EnrollmentReportRow is per-course enrollment figures
type EnrollmentReportRow struct {
	CourseID    int64  `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	Total       int64  `json:"total"`
	Active      int64  `json:"active"`
	Completed   int64  `json:"completed"`
	Dropped     int64  `json:"dropped"`
}

// EnrollmentReportResponse aggregates enrollments per course for a year
type EnrollmentReportResponse struct {
	Year    int                   `json:"year"`
	Courses []EnrollmentReportRow `json:"courses"`
	Total   int64                 `json:"total"`
}

// AttendanceReportRow is one user's attendance figures for a month
type AttendanceReportRow struct {
	UserID      int64   `json:"userId"`
	Name        string  `json:"name"`
	PresentDays int64   `json:"presentDays"`
	AbsentDays  int64   `json:"absentDays"`
	LateDays    int64   `json:"lateDays"`
	Percentage  float64 `json:"percentage"`
}

// AttendanceReportResponse aggregates attendance for a month
type AttendanceReportResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Rows  []AttendanceReportRow `json:"rows"`
}

// RecruitmentReportResponse aggregates the hiring pipeline for a year
type RecruitmentReportResponse struct {
	Year               int   `json:"year"`
	TotalPosts         int64 `json:"totalPosts"`
	TotalApplications  int64 `json:"totalApplications"`
	InterviewsHeld     int64 `json:"interviewsHeld"`
	Hired              int64 `json:"hired"`
	Rejected           int64 `json:"rejected"`
}

// UserReportRow is one role's account counts inside the user report
type UserReportRow struct {
	Role     models.Role `json:"role"`
	Active   int64       `json:"active"`
	Inactive int64       `json:"inactive"`
	Total    int64       `json:"total"`
}

// UserReportResponse breaks the user base down per role and active flag
type UserReportResponse struct {
	Rows  []UserReportRow `json:"rows"`
	Total int64           `json:"total"`
}

// SendGuardianReportRequest emails a progress report to a student's guardian
type SendGuardianReportRequest struct {
	StudentID     int64  `json:"studentId" binding:"required,min=1"`
	GuardianEmail string `json:"guardianEmail" binding:"required,email"`
	Period        string `json:"period,omitempty"` // YYYY-MM, defaults to current
	Content       string `json:"content" binding:"required"`
}
