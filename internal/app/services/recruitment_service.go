package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/email"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// RecruitmentService handles job posts, applications, interviews
// and candidate profiles
type RecruitmentService struct {
	recruitmentRepo *repositories.RecruitmentRepository
	userRepo        *repositories.UserRepository
	activityRepo    *repositories.ActivityRepository
	emailService    email.EmailService
	logger          zerolog.Logger
}

// NewRecruitmentService creates a new RecruitmentService
func NewRecruitmentService(
	recruitmentRepo *repositories.RecruitmentRepository,
	userRepo *repositories.UserRepository,
	activityRepo *repositories.ActivityRepository,
	emailService email.EmailService,
	logger zerolog.Logger,
) *RecruitmentService {
	return &RecruitmentService{
		recruitmentRepo: recruitmentRepo,
		userRepo:        userRepo,
		activityRepo:    activityRepo,
		emailService:    emailService,
		logger:          logger,
	}
}

// CreateJobPost publishes an open position
func (s *RecruitmentService) CreateJobPost(ctx context.Context, actorID int64, req *dto.CreateJobPostRequest) (*dto.JobPostResponse, error) {
	deadline, err := helpers.ParseDate(req.Deadline)
	if err != nil {
		return nil, apperrors.NewBadRequestError("deadline must be YYYY-MM-DD")
	}
	if !deadline.After(time.Now()) {
		return nil, apperrors.NewBadRequestError("deadline must be in the future")
	}

	post := &models.JobPost{
		Title:        req.Title,
		Description:  req.Description,
		Department:   req.Department,
		Requirements: req.Requirements,
		SalaryRange:  req.SalaryRange,
		Deadline:     deadline,
		Status:       models.JobPostStatusOpen,
		PostedBy:     &actorID,
	}

	postID, err := s.recruitmentRepo.CreateJobPost(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = postID

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "create",
		EntityName: "job_posts",
		ObjectID:   fmt.Sprintf("%d", postID),
	})

	resp := dto.FromJobPost(post)
	return &resp, nil
}

// GetJobPost retrieves one job post by ID
func (s *RecruitmentService) GetJobPost(ctx context.Context, postID int64) (*dto.JobPostResponse, error) {
	post, err := s.recruitmentRepo.GetJobPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromJobPost(post)
	return &resp, nil
}

// ListJobPosts retrieves job posts. Candidates only see open posts with
// deadlines still ahead; staff see everything.
func (s *RecruitmentService) ListJobPosts(ctx context.Context, onlyOpen bool, page, pageSize int) (*dto.JobPostListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	posts, total, err := s.recruitmentRepo.ListJobPosts(ctx, onlyOpen, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.JobPostListResponse{
		Posts:          make([]dto.JobPostResponse, 0, len(posts)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, dto.FromJobPost(p))
	}

	return resp, nil
}

// CloseJobPost stops accepting applications for a post
func (s *RecruitmentService) CloseJobPost(ctx context.Context, actorID, postID int64) error {
	if err := s.recruitmentRepo.UpdateJobPostStatus(ctx, postID, models.JobPostStatusClosed); err != nil {
		return err
	}

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     "close",
		EntityName: "job_posts",
		ObjectID:   fmt.Sprintf("%d", postID),
	})

	return nil
}

// Apply submits an application. The post must still be open, the
// candidate's profile must be complete, and double applications to the
// same post are rejected.
func (s *RecruitmentService) Apply(ctx context.Context, candidateID int64, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	post, err := s.recruitmentRepo.GetJobPostByID(ctx, req.JobPostID)
	if err != nil {
		return nil, err
	}

	if !post.IsOpen(time.Now()) {
		return nil, apperrors.ErrDeadlinePassed
	}

	profile, err := s.recruitmentRepo.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProfileIncomplete
		}
		return nil, err
	}
	if !profile.IsComplete() {
		return nil, apperrors.ErrProfileIncomplete
	}

	application := &models.JobApplication{
		CandidateID: candidateID,
		JobPostID:   req.JobPostID,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationStatusApplied,
		AppliedAt:   time.Now(),
	}

	applicationID, err := s.recruitmentRepo.CreateApplication(ctx, application)
	if err != nil {
		return nil, err
	}
	application.ID = applicationID

	s.activityRepo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:     candidateID,
		Action:     "apply",
		ObjectType: "job_posts",
		ObjectID:   fmt.Sprintf("%d", req.JobPostID),
	})

	resp := dto.FromApplication(application)
	resp.JobTitle = post.Title
	return &resp, nil
}

// ListCandidateApplications retrieves one candidate's applications
func (s *RecruitmentService) ListCandidateApplications(ctx context.Context, candidateID int64) ([]dto.ApplicationResponse, error) {
	applications, err := s.recruitmentRepo.ListApplicationsByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		resp := dto.FromApplication(a)
		if post, err := s.recruitmentRepo.GetJobPostByID(ctx, a.JobPostID); err == nil {
			resp.JobTitle = post.Title
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// ListPostApplications retrieves a job post's applications with pagination
func (s *RecruitmentService) ListPostApplications(ctx context.Context, postID int64, page, pageSize int) (*dto.ApplicationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	applications, total, err := s.recruitmentRepo.ListApplicationsByJobPost(ctx, postID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.ApplicationListResponse{
		Applications:   make([]dto.ApplicationResponse, 0, len(applications)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, a := range applications {
		resp.Applications = append(resp.Applications, dto.FromApplication(a))
	}

	return resp, nil
}

// UpdateApplicationStatus moves an application along the pipeline.
// Illegal transitions are rejected against the application transition table.
func (s *RecruitmentService) UpdateApplicationStatus(ctx context.Context, actorID, applicationID int64, next models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	application, err := s.recruitmentRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if !application.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: application cannot move from %s to %s",
			apperrors.ErrInvalidTransition, application.Status, next)
	}

	if err := s.recruitmentRepo.UpdateApplicationStatus(ctx, applicationID, next); err != nil {
		return nil, err
	}
	application.Status = next

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     fmt.Sprintf("status:%s", next),
		EntityName: "job_applications",
		ObjectID:   fmt.Sprintf("%d", applicationID),
	})

	message := fmt.Sprintf("Your application is now %s", next)
	if _, err := s.activityRepo.CreateNotification(ctx, &models.Notification{
		UserID:  application.CandidateID,
		Message: message,
	}); err != nil {
		s.logger.Warn().Err(err).Int64("candidateID", application.CandidateID).Msg("Failed to notify candidate")
	}

	resp := dto.FromApplication(application)
	return &resp, nil
}

// ScheduleInterview schedules an interview for an application and moves
// the application into interview_scheduled. The candidate gets an email.
func (s *RecruitmentService) ScheduleInterview(ctx context.Context, actorID int64, req *dto.ScheduleInterviewRequest) (*dto.InterviewResponse, error) {
	application, err := s.recruitmentRepo.GetApplicationByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}

	if !application.Status.CanTransitionTo(models.ApplicationStatusInterviewScheduled) {
		return nil, fmt.Errorf("%w: application cannot move from %s to %s",
			apperrors.ErrInvalidTransition, application.Status, models.ApplicationStatusInterviewScheduled)
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperrors.NewBadRequestError("scheduledAt must be RFC 3339")
	}
	if !scheduledAt.After(time.Now()) {
		return nil, apperrors.NewBadRequestError("scheduledAt must be in the future")
	}

	interview := &models.InterviewInvitation{
		ApplicationID: req.ApplicationID,
		ScheduledAt:   scheduledAt,
		Location:      req.Location,
		Notes:         req.Notes,
		Status:        models.InterviewStatusScheduled,
		CreatedBy:     &actorID,
	}

	interviewID, err := s.recruitmentRepo.CreateInterview(ctx, interview)
	if err != nil {
		return nil, err
	}
	interview.ID = interviewID

	if err := s.recruitmentRepo.UpdateApplicationStatus(ctx, req.ApplicationID, models.ApplicationStatusInterviewScheduled); err != nil {
		return nil, err
	}

	candidate, err := s.userRepo.GetUserByID(ctx, application.CandidateID)
	if err == nil {
		post, postErr := s.recruitmentRepo.GetJobPostByID(ctx, application.JobPostID)
		jobTitle := ""
		if postErr == nil {
			jobTitle = post.Title
		}
		if err := s.emailService.SendInterviewInvitation(candidate.Email, candidate.FirstName, jobTitle, req.Location, scheduledAt); err != nil {
			s.logger.Warn().Err(err).Int64("candidateID", candidate.ID).Msg("Failed to send interview invitation")
		}
	}

	if _, err := s.activityRepo.CreateNotification(ctx, &models.Notification{
		UserID:  application.CandidateID,
		Message: fmt.Sprintf("Interview scheduled for %s", scheduledAt.Format("2006-01-02 15:04")),
	}); err != nil {
		s.logger.Warn().Err(err).Int64("candidateID", application.CandidateID).Msg("Failed to notify candidate")
	}

	return &dto.InterviewResponse{
		ID:            interview.ID,
		ApplicationID: interview.ApplicationID,
		ScheduledAt:   interview.ScheduledAt,
		Location:      interview.Location,
		Status:        interview.Status,
	}, nil
}

// UpdateInterviewStatus marks an interview completed or cancelled
func (s *RecruitmentService) UpdateInterviewStatus(ctx context.Context, interviewID int64, status models.InterviewStatus) error {
	return s.recruitmentRepo.UpdateInterviewStatus(ctx, interviewID, status)
}

// ListCandidateInterviews retrieves a candidate's upcoming interviews
func (s *RecruitmentService) ListCandidateInterviews(ctx context.Context, candidateID int64) ([]dto.InterviewResponse, error) {
	interviews, err := s.recruitmentRepo.ListUpcomingInterviewsByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.InterviewResponse, 0, len(interviews))
	for _, iv := range interviews {
		responses = append(responses, dto.InterviewResponse{
			ID:            iv.ID,
			ApplicationID: iv.ApplicationID,
			ScheduledAt:   iv.ScheduledAt,
			Location:      iv.Location,
			Status:        iv.Status,
		})
	}

	return responses, nil
}

// GetCandidateProfile retrieves a candidate's resume data. A missing
// profile is returned empty rather than as an error.
func (s *RecruitmentService) GetCandidateProfile(ctx context.Context, candidateID int64) (*dto.CandidateProfileResponse, error) {
	profile, err := s.recruitmentRepo.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &dto.CandidateProfileResponse{UserID: candidateID}, nil
		}
		return nil, err
	}

	return candidateProfileToResponse(profile), nil
}

// UpdateCandidateProfile writes the candidate's resume data
func (s *RecruitmentService) UpdateCandidateProfile(ctx context.Context, candidateID int64, req *dto.UpdateCandidateProfileRequest) (*dto.CandidateProfileResponse, error) {
	profile := &models.CandidateProfile{
		UserID:     candidateID,
		Skills:     req.Skills,
		Education:  req.Education,
		Experience: req.Experience,
	}

	if err := s.recruitmentRepo.UpsertCandidateProfile(ctx, profile); err != nil {
		return nil, err
	}

	// Re-read to pick up the resume path kept by the upsert.
	stored, err := s.recruitmentRepo.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	return candidateProfileToResponse(stored), nil
}

// UpdateResume stores the path of a freshly uploaded resume
func (s *RecruitmentService) UpdateResume(ctx context.Context, candidateID int64, resumePath string) error {
	return s.recruitmentRepo.UpdateResumePath(ctx, candidateID, resumePath)
}

func candidateProfileToResponse(p *models.CandidateProfile) *dto.CandidateProfileResponse {
	return &dto.CandidateProfileResponse{
		UserID:     p.UserID,
		ResumePath: p.ResumePath,
		Skills:     p.Skills,
		Education:  p.Education,
		Experience: p.Experience,
		IsComplete: p.IsComplete(),
	}
}
