package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    CourseStatus
		to      CourseStatus
		allowed bool
	}{
		{"draft to pending approval", CourseStatusDraft, CourseStatusPendingApproval, true},
		{"draft straight to active", CourseStatusDraft, CourseStatusActive, false},
		{"pending approval to active", CourseStatusPendingApproval, CourseStatusActive, true},
		{"pending approval to inactive", CourseStatusPendingApproval, CourseStatusInactive, true},
		{"active to inactive", CourseStatusActive, CourseStatusInactive, true},
		{"active to closed", CourseStatusActive, CourseStatusClosed, true},
		{"inactive back to active", CourseStatusInactive, CourseStatusActive, true},
		{"closed is terminal", CourseStatusClosed, CourseStatusActive, false},
		{"active back to draft", CourseStatusActive, CourseStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestEnrollmentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    EnrollmentStatus
		to      EnrollmentStatus
		allowed bool
	}{
		{"pending to approved", EnrollmentStatusPending, EnrollmentStatusApproved, true},
		{"pending to rejected", EnrollmentStatusPending, EnrollmentStatusRejected, true},
		{"pending straight to completed", EnrollmentStatusPending, EnrollmentStatusCompleted, false},
		{"approved to ongoing", EnrollmentStatusApproved, EnrollmentStatusOngoing, true},
		{"approved to dropped", EnrollmentStatusApproved, EnrollmentStatusDropped, true},
		{"ongoing to completed", EnrollmentStatusOngoing, EnrollmentStatusCompleted, true},
		{"ongoing to dropped", EnrollmentStatusOngoing, EnrollmentStatusDropped, true},
		{"rejected is terminal", EnrollmentStatusRejected, EnrollmentStatusApproved, false},
		{"completed is terminal", EnrollmentStatusCompleted, EnrollmentStatusOngoing, false},
		{"dropped is terminal", EnrollmentStatusDropped, EnrollmentStatusOngoing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestFeePaymentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    FeePaymentStatus
		to      FeePaymentStatus
		allowed bool
	}{
		{"pending to paid", FeePaymentStatusPending, FeePaymentStatusPaid, true},
		{"pending to overdue", FeePaymentStatusPending, FeePaymentStatusOverdue, true},
		{"pending to cancelled", FeePaymentStatusPending, FeePaymentStatusCancelled, true},
		{"overdue to paid", FeePaymentStatusOverdue, FeePaymentStatusPaid, true},
		{"overdue to cancelled", FeePaymentStatusOverdue, FeePaymentStatusCancelled, true},
		{"paid is terminal", FeePaymentStatusPaid, FeePaymentStatusPending, false},
		{"cancelled is terminal", FeePaymentStatusCancelled, FeePaymentStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSalaryStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    SalaryStatus
		to      SalaryStatus
		allowed bool
	}{
		{"pending to approved", SalaryStatusPending, SalaryStatusApproved, true},
		{"pending to rejected", SalaryStatusPending, SalaryStatusRejected, true},
		{"pending straight to paid", SalaryStatusPending, SalaryStatusPaid, false},
		{"approved to paid", SalaryStatusApproved, SalaryStatusPaid, true},
		{"paid is terminal", SalaryStatusPaid, SalaryStatusApproved, false},
		{"rejected is terminal", SalaryStatusRejected, SalaryStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestExpenseStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ExpenseStatus
		to      ExpenseStatus
		allowed bool
	}{
		{"pending to approved", ExpenseStatusPending, ExpenseStatusApproved, true},
		{"pending to rejected", ExpenseStatusPending, ExpenseStatusRejected, true},
		{"approved is terminal", ExpenseStatusApproved, ExpenseStatusRejected, false},
		{"rejected is terminal", ExpenseStatusRejected, ExpenseStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestApplicationStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"applied to under review", ApplicationStatusApplied, ApplicationStatusUnderReview, true},
		{"applied to rejected", ApplicationStatusApplied, ApplicationStatusRejected, true},
		{"applied straight to hired", ApplicationStatusApplied, ApplicationStatusHired, false},
		{"under review to interview", ApplicationStatusUnderReview, ApplicationStatusInterviewScheduled, true},
		{"interview to hired", ApplicationStatusInterviewScheduled, ApplicationStatusHired, true},
		{"interview to rejected", ApplicationStatusInterviewScheduled, ApplicationStatusRejected, true},
		{"hired is terminal", ApplicationStatusHired, ApplicationStatusRejected, false},
		{"rejected is terminal", ApplicationStatusRejected, ApplicationStatusUnderReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCertificateStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    CertificateStatus
		to      CertificateStatus
		allowed bool
	}{
		{"pending to approved", CertificateStatusPending, CertificateStatusApproved, true},
		{"pending to rejected", CertificateStatusPending, CertificateStatusRejected, true},
		{"pending straight to issued", CertificateStatusPending, CertificateStatusIssued, false},
		{"approved to issued", CertificateStatusApproved, CertificateStatusIssued, true},
		{"issued is terminal", CertificateStatusIssued, CertificateStatusApproved, false},
		{"rejected is terminal", CertificateStatusRejected, CertificateStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleEmployee))
	assert.True(t, ValidRole(RoleStudent))
	assert.True(t, ValidRole(RoleCandidate))
	assert.False(t, ValidRole(Role("superuser")))
	assert.False(t, ValidRole(Role("")))
}

func TestValidSubRole(t *testing.T) {
	for _, s := range AllSubRoles() {
		assert.True(t, ValidSubRole(s), string(s))
	}
	assert.False(t, ValidSubRole(SubRole("janitor")))
	assert.False(t, ValidSubRole(SubRole("")))
}

func TestValidAttendanceStatus(t *testing.T) {
	for _, s := range []AttendanceStatus{
		AttendanceStatusPresent,
		AttendanceStatusAbsent,
		AttendanceStatusLate,
		AttendanceStatusLeave,
	} {
		assert.True(t, ValidAttendanceStatus(s), string(s))
	}
	assert.Equal(t, AttendanceStatus("leave"), AttendanceStatusLeave)
	assert.False(t, ValidAttendanceStatus(AttendanceStatus("excused")))
	assert.False(t, ValidAttendanceStatus(AttendanceStatus("")))
}

func TestUserHasSubRole(t *testing.T) {
	teacher := SubRoleTeacher
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"employee with matching sub-role", User{Role: RoleEmployee, SubRole: &teacher}, true},
		{"employee without sub-role", User{Role: RoleEmployee}, false},
		{"student with sub-role set", User{Role: RoleStudent, SubRole: &teacher}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.HasSubRole(SubRoleTeacher))
		})
	}
}

func TestSalaryNetAmount(t *testing.T) {
	s := &Salary{BaseAmount: 5000, Bonus: 750, Deductions: 320}
	assert.InDelta(t, 5430.0, s.NetAmount(), 0.001)
}
