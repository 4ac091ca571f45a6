package models

import "time"

// JobPostStatus is the publication state of a job post
type JobPostStatus string

const (
	JobPostStatusOpen   JobPostStatus = "open"
	JobPostStatusClosed JobPostStatus = "closed"
)

// JobPost is an open position candidates can apply to
type JobPost struct {
	ID           int64         `json:"id" db:"id"`
	Title        string        `json:"title" db:"title"`
	Description  string        `json:"description" db:"description"`
	Department   string        `json:"department" db:"department"`
	Requirements string        `json:"requirements" db:"requirements"`
	SalaryRange  string        `json:"salaryRange,omitempty" db:"salary_range"`
	Deadline     time.Time     `json:"deadline" db:"deadline"`
	Status       JobPostStatus `json:"status" db:"status"`
	PostedBy     *int64        `json:"postedBy,omitempty" db:"posted_by"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
}

// IsOpen reports whether applications are still accepted at the given time.
func (p *JobPost) IsOpen(now time.Time) bool {
	return p.Status == JobPostStatusOpen && now.Before(p.Deadline)
}

// ApplicationStatus is the pipeline state of a job application
type ApplicationStatus string

const (
	ApplicationStatusApplied            ApplicationStatus = "applied"
	ApplicationStatusUnderReview        ApplicationStatus = "under_review"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusHired              ApplicationStatus = "hired"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusApplied:            {ApplicationStatusUnderReview, ApplicationStatusRejected},
	ApplicationStatusUnderReview:        {ApplicationStatusInterviewScheduled, ApplicationStatusRejected},
	ApplicationStatusInterviewScheduled: {ApplicationStatusHired, ApplicationStatusRejected},
	ApplicationStatusHired:              {},
	ApplicationStatusRejected:           {},
}

// CanTransitionTo reports whether the status change is allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return contains(applicationTransitions[s], next)
}

// JobApplication is one candidate's application to one post; unique per pair
type JobApplication struct {
	ID          int64             `json:"id" db:"id"`
	CandidateID int64             `json:"candidateId" db:"candidate_id"`
	JobPostID   int64             `json:"jobPostId" db:"job_post_id"`
	CoverLetter string            `json:"coverLetter,omitempty" db:"cover_letter"`
	Status      ApplicationStatus `json:"status" db:"status"`
	AppliedAt   time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}

// InterviewStatus is the state of a scheduled interview
type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

// InterviewInvitation schedules an interview for an application
type InterviewInvitation struct {
	ID            int64           `json:"id" db:"id"`
	ApplicationID int64           `json:"applicationId" db:"application_id"`
	ScheduledAt   time.Time       `json:"scheduledAt" db:"scheduled_at"`
	Location      string          `json:"location" db:"location"`
	Notes         string          `json:"notes,omitempty" db:"notes"`
	Status        InterviewStatus `json:"status" db:"status"`
	CreatedBy     *int64          `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// CandidateProfile carries the resume data required before applying
type CandidateProfile struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	ResumePath *string   `json:"resumePath,omitempty" db:"resume_path"`
	Skills     string    `json:"skills" db:"skills"`
	Education  string    `json:"education" db:"education"`
	Experience string    `json:"experience" db:"experience"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// IsComplete reports whether the profile meets the minimum needed to apply.
func (p *CandidateProfile) IsComplete() bool {
	return p.ResumePath != nil && *p.ResumePath != "" && p.Skills != "" && p.Education != ""
}
