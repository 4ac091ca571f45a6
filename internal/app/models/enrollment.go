package models

import "time"

// EnrollmentStatus is the lifecycle state of a student's enrollment
type EnrollmentStatus string

const (
	EnrollmentStatusPending   EnrollmentStatus = "pending"
	EnrollmentStatusApproved  EnrollmentStatus = "approved"
	EnrollmentStatusRejected  EnrollmentStatus = "rejected"
	EnrollmentStatusOngoing   EnrollmentStatus = "ongoing"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
)

var enrollmentTransitions = map[EnrollmentStatus][]EnrollmentStatus{
	EnrollmentStatusPending:   {EnrollmentStatusApproved, EnrollmentStatusRejected},
	EnrollmentStatusApproved:  {EnrollmentStatusOngoing, EnrollmentStatusDropped},
	EnrollmentStatusOngoing:   {EnrollmentStatusCompleted, EnrollmentStatusDropped},
	EnrollmentStatusRejected:  {},
	EnrollmentStatusCompleted: {},
	EnrollmentStatusDropped:   {},
}

// CanTransitionTo reports whether the status change is allowed.
func (s EnrollmentStatus) CanTransitionTo(next EnrollmentStatus) bool {
	return contains(enrollmentTransitions[s], next)
}

// Enrollment ties a student to a course; unique per (student, course)
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	Progress   float64          `json:"progress" db:"progress"` // 0..100
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`
}

// AttendanceStatus marks a single day's attendance record
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusLeave   AttendanceStatus = "leave"
)

// ValidAttendanceStatus reports whether the value is a known status.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusLeave:
		return true
	}
	return false
}

// Attendance is one user's record for one date; unique per (user, date)
type Attendance struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"userId" db:"user_id"`
	CourseID   *int64           `json:"courseId,omitempty" db:"course_id"`
	Date       time.Time        `json:"date" db:"date"`
	Status     AttendanceStatus `json:"status" db:"status"`
	RecordedBy *int64           `json:"recordedBy,omitempty" db:"recorded_by"`
	Note       string           `json:"note,omitempty" db:"note"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
}

// ExamResult stores a graded exam for an enrollment
type ExamResult struct {
	ID            int64     `json:"id" db:"id"`
	EnrollmentID  int64     `json:"enrollmentId" db:"enrollment_id"`
	ExamName      string    `json:"examName" db:"exam_name"`
	MarksObtained float64   `json:"marksObtained" db:"marks_obtained"`
	TotalMarks    float64   `json:"totalMarks" db:"total_marks"`
	Grade         string    `json:"grade" db:"grade"`
	ExamDate      time.Time `json:"examDate" db:"exam_date"`
	RecordedBy    *int64    `json:"recordedBy,omitempty" db:"recorded_by"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// FeePaymentStatus is the lifecycle state of a student fee
type FeePaymentStatus string

const (
	FeePaymentStatusPending   FeePaymentStatus = "pending"
	FeePaymentStatusPaid      FeePaymentStatus = "paid"
	FeePaymentStatusOverdue   FeePaymentStatus = "overdue"
	FeePaymentStatusCancelled FeePaymentStatus = "cancelled"
)

var feePaymentTransitions = map[FeePaymentStatus][]FeePaymentStatus{
	FeePaymentStatusPending:   {FeePaymentStatusPaid, FeePaymentStatusOverdue, FeePaymentStatusCancelled},
	FeePaymentStatusOverdue:   {FeePaymentStatusPaid, FeePaymentStatusCancelled},
	FeePaymentStatusPaid:      {},
	FeePaymentStatusCancelled: {},
}

// CanTransitionTo reports whether the status change is allowed.
func (s FeePaymentStatus) CanTransitionTo(next FeePaymentStatus) bool {
	return contains(feePaymentTransitions[s], next)
}

// FeePayment is a fee owed by a student for a course
type FeePayment struct {
	ID        int64            `json:"id" db:"id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	CourseID  *int64           `json:"courseId,omitempty" db:"course_id"`
	Amount    float64          `json:"amount" db:"amount"`
	Status    FeePaymentStatus `json:"status" db:"status"`
	DueDate   time.Time        `json:"dueDate" db:"due_date"`
	PaidAt    *time.Time       `json:"paidAt,omitempty" db:"paid_at"`
	Method    string           `json:"method,omitempty" db:"method"`
	Reference string           `json:"reference,omitempty" db:"reference"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// GuardianReport is a periodic progress report sent to a student's guardian
type GuardianReport struct {
	ID            int64      `json:"id" db:"id"`
	StudentID     int64      `json:"studentId" db:"student_id"`
	GuardianEmail string     `json:"guardianEmail" db:"guardian_email"`
	Period        string     `json:"period" db:"period"` // YYYY-MM
	Content       string     `json:"content" db:"content"`
	SentAt        *time.Time `json:"sentAt,omitempty" db:"sent_at"`
	CreatedBy     *int64     `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}
