package dto

import (
	"time"

	"github.com/instracore/backend/internal/app/models"
)

// CreateJobPostRequest publishes an open position
type CreateJobPostRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Department   string `json:"department" binding:"required"`
	Requirements string `json:"requirements,omitempty"`
	SalaryRange  string `json:"salaryRange,omitempty"`
	Deadline     string `json:"deadline" binding:"required"` // YYYY-MM-DD
}

// JobPostResponse represents one job post
type JobPostResponse struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Department  string               `json:"department"`
	SalaryRange string               `json:"salaryRange,omitempty"`
	Deadline    time.Time            `json:"deadline"`
	Status      models.JobPostStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// FromJobPost converts a models.JobPost to a JobPostResponse
func FromJobPost(p *models.JobPost) JobPostResponse {
	if p == nil {
		return JobPostResponse{}
	}
	return JobPostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Department:  p.Department,
		SalaryRange: p.SalaryRange,
		Deadline:    p.Deadline,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

// JobPostListResponse represents job posts with pagination
type JobPostListResponse struct {
	Posts []JobPostResponse `json:"posts"`
	PaginationInfo
}

// ApplyRequest submits an application to an open job post
type ApplyRequest struct {
	JobPostID   int64  `json:"jobPostId" binding:"required,min=1"`
	CoverLetter string `json:"coverLetter,omitempty"`
}

// UpdateApplicationStatusRequest moves an application along the pipeline
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

// ApplicationResponse represents one job application
type ApplicationResponse struct {
	ID          int64                    `json:"id"`
	CandidateID int64                    `json:"candidateId"`
	JobPostID   int64                    `json:"jobPostId"`
	JobTitle    string                   `json:"jobTitle,omitempty"`
	Status      models.ApplicationStatus `json:"status"`
	AppliedAt   time.Time                `json:"appliedAt"`
}

// FromApplication converts a models.JobApplication to an ApplicationResponse
func FromApplication(a *models.JobApplication) ApplicationResponse {
	if a == nil {
		return ApplicationResponse{}
	}
	return ApplicationResponse{
		ID:          a.ID,
		CandidateID: a.CandidateID,
		JobPostID:   a.JobPostID,
		Status:      a.Status,
		AppliedAt:   a.AppliedAt,
	}
}

// ApplicationListResponse represents applications with pagination
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	PaginationInfo
}

// ScheduleInterviewRequest schedules an interview for an application
type ScheduleInterviewRequest struct {
	ApplicationID int64  `json:"applicationId" binding:"required,min=1"`
	ScheduledAt   string `json:"scheduledAt" binding:"required"` // RFC 3339
	Location      string `json:"location" binding:"required"`
	Notes         string `json:"notes,omitempty"`
}

// InterviewResponse represents one interview invitation
type InterviewResponse struct {
	ID            int64                  `json:"id"`
	ApplicationID int64                  `json:"applicationId"`
	ScheduledAt   time.Time              `json:"scheduledAt"`
	Location      string                 `json:"location"`
	Status        models.InterviewStatus `json:"status"`
}

// UpdateCandidateProfileRequest updates the current candidate's resume data
type UpdateCandidateProfileRequest struct {
	Skills     string `json:"skills" binding:"required"`
	Education  string `json:"education" binding:"required"`
	Experience string `json:"experience,omitempty"`
}

// CandidateProfileResponse represents a candidate's resume data
type CandidateProfileResponse struct {
	UserID     int64   `json:"userId"`
	ResumePath *string `json:"resumePath,omitempty"`
	Skills     string  `json:"skills"`
	Education  string  `json:"education"`
	Experience string  `json:"experience,omitempty"`
	IsComplete bool    `json:"isComplete"`
}
