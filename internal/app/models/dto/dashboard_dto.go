package dto

// FinancialSummary is the dashboard financial block. All figures fall back
// to zero when no monthly overview row exists yet.
type FinancialSummary struct {
	Month         string  `json:"month"`
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpense  float64 `json:"totalExpense"`
	TotalSalaries float64 `json:"totalSalaries"`
	NetBalance    float64 `json:"netBalance"`
}

// UserCounts breaks down accounts by role
type UserCounts struct {
	Total      int64 `json:"total"`
	Admins     int64 `json:"admins"`
	Employees  int64 `json:"employees"`
	Students   int64 `json:"students"`
	Candidates int64 `json:"candidates"`
}

// AdminDashboardResponse is the admin landing page payload
type AdminDashboardResponse struct {
	Users          UserCounts       `json:"users"`
	ActiveCourses  int64            `json:"activeCourses"`
	PendingCourses int64            `json:"pendingCourses"`
	OpenJobPosts   int64            `json:"openJobPosts"`
	Financial      FinancialSummary `json:"financial"`
	RecentNotices  []NoticeResponse `json:"recentNotices"`
	UpcomingEvents []EventResponse  `json:"upcomingEvents"`
}

// HRDashboardResponse is the landing page for HR employees
type HRDashboardResponse struct {
	OpenJobPosts        int64               `json:"openJobPosts"`
	PendingApplications int64               `json:"pendingApplications"`
	ScheduledInterviews int64               `json:"scheduledInterviews"`
	TotalEmployees      int64               `json:"totalEmployees"`
	RecentApplications  []ApplicationResponse `json:"recentApplications"`
}

// FinanceDashboardResponse is the landing page for finance employees
type FinanceDashboardResponse struct {
	Financial       FinancialSummary `json:"financial"`
	PendingSalaries int64            `json:"pendingSalaries"`
	PendingExpenses int64            `json:"pendingExpenses"`
	OverdueFees     int64            `json:"overdueFees"`
	CollectedFees   float64          `json:"collectedFees"`
}

// TeacherDashboardResponse is the landing page for teachers and faculty
type TeacherDashboardResponse struct {
	AssignedCourses int64             `json:"assignedCourses"`
	TotalStudents   int64             `json:"totalStudents"`
	TodayRoutine    []RoutineResponse `json:"todayRoutine"`
	RecentNotices   []NoticeResponse  `json:"recentNotices"`
}

// EmployeeDashboardResponse is the generic landing page for employees whose
// sub-role has no specialised dashboard
type EmployeeDashboardResponse struct {
	Profile        UserResponse     `json:"profile"`
	RecentNotices  []NoticeResponse `json:"recentNotices"`
	UpcomingEvents []EventResponse  `json:"upcomingEvents"`
	UnreadMessages int64            `json:"unreadMessages"`
}

// StudentDashboardResponse is the student landing page payload
type StudentDashboardResponse struct {
	ActiveEnrollments int64                `json:"activeEnrollments"`
	PendingFees       int64                `json:"pendingFees"`
	PendingFeeAmount  float64              `json:"pendingFeeAmount"`
	AttendanceRate    float64              `json:"attendanceRate"`
	Enrollments       []EnrollmentResponse `json:"enrollments"`
	TodayRoutine      []RoutineResponse    `json:"todayRoutine"`
	RecentNotices     []NoticeResponse     `json:"recentNotices"`
}

// CandidateDashboardResponse is the candidate landing page payload
type CandidateDashboardResponse struct {
	OpenJobPosts       int64                 `json:"openJobPosts"`
	MyApplications     int64                 `json:"myApplications"`
	UpcomingInterviews []InterviewResponse   `json:"upcomingInterviews"`
	RecentApplications []ApplicationResponse `json:"recentApplications"`
	ProfileComplete    bool                  `json:"profileComplete"`
}
