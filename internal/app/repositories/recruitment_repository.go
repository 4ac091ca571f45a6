package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/dberrors"
	"github.com/instracore/backend/internal/pkg/logger"
)

const jobPostColumns = "id, title, description, department, requirements, salary_range, deadline, status, posted_by, created_at"
const applicationColumns = "id, candidate_id, job_post_id, cover_letter, status, applied_at, updated_at"

// RecruitmentRepository handles job post, application, interview and candidate profile persistence
type RecruitmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRecruitmentRepository creates a new RecruitmentRepository
func NewRecruitmentRepository(db *pgxpool.Pool) *RecruitmentRepository {
	return &RecruitmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanJobPost(row pgx.Row) (*models.JobPost, error) {
	p := &models.JobPost{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Department, &p.Requirements,
		&p.SalaryRange, &p.Deadline, &p.Status, &p.PostedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanApplication(row pgx.Row) (*models.JobApplication, error) {
	a := &models.JobApplication{}
	err := row.Scan(&a.ID, &a.CandidateID, &a.JobPostID, &a.CoverLetter, &a.Status, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateJobPost publishes a new job post
func (r *RecruitmentRepository) CreateJobPost(ctx context.Context, post *models.JobPost) (int64, error) {
	sql, args, err := r.sb.Insert("job_posts").
		Columns("title", "description", "department", "requirements", "salary_range", "deadline", "status", "posted_by", "created_at").
		Values(post.Title, post.Description, post.Department, post.Requirements,
			post.SalaryRange, post.Deadline, post.Status, post.PostedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create job post query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Str("title", post.Title).Msg("Error creating job post")
		return 0, fmt.Errorf("error creating job post: %w", err)
	}

	return id, nil
}

// GetJobPostByID retrieves a job post by ID
func (r *RecruitmentRepository) GetJobPostByID(ctx context.Context, id int64) (*models.JobPost, error) {
	sql, args, err := r.sb.Select(jobPostColumns).
		From("job_posts").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get job post query: %w", err)
	}

	post, err := scanJobPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobPostNotFound
		}
		logger.Error().Err(err).Int64("jobPostID", id).Msg("Error scanning job post row")
		return nil, fmt.Errorf("error getting job post by ID: %w", err)
	}

	return post, nil
}

// UpdateJobPostStatus opens or closes a job post
func (r *RecruitmentRepository) UpdateJobPostStatus(ctx context.Context, id int64, status models.JobPostStatus) error {
	sql, args, err := r.sb.Update("job_posts").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update job post status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobPostID", id).Msg("Error updating job post status")
		return fmt.Errorf("error updating job post status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrJobPostNotFound
	}

	return nil
}

// ListJobPosts retrieves job posts with pagination, optionally only open ones
func (r *RecruitmentRepository) ListJobPosts(ctx context.Context, onlyOpen bool, offset uint64, limit int) ([]*models.JobPost, int64, error) {
	base := r.sb.Select(jobPostColumns).From("job_posts")
	countQuery := r.sb.Select("COUNT(*)").From("job_posts")

	if onlyOpen {
		base = base.Where(squirrel.Eq{"status": models.JobPostStatusOpen}).Where(squirrel.Gt{"deadline": time.Now()})
		countQuery = countQuery.Where(squirrel.Eq{"status": models.JobPostStatusOpen}).Where(squirrel.Gt{"deadline": time.Now()})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count job posts query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting job posts")
		return nil, 0, fmt.Errorf("error counting job posts: %w", err)
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list job posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing job posts")
		return nil, 0, fmt.Errorf("error listing job posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.JobPost{}
	for rows.Next() {
		post, err := scanJobPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning job post row: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, total, rows.Err()
}

// CountOpenJobPosts counts posts still accepting applications
func (r *RecruitmentRepository) CountOpenJobPosts(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("job_posts").
		Where(squirrel.Eq{"status": models.JobPostStatusOpen}).
		Where(squirrel.Gt{"deadline": time.Now()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count open job posts query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting open job posts")
		return 0, fmt.Errorf("error counting open job posts: %w", err)
	}

	return count, nil
}

// CreateApplication submits a candidate's application. The unique constraint
// on (candidate_id, job_post_id) enforces one application per candidate per post.
func (r *RecruitmentRepository) CreateApplication(ctx context.Context, app *models.JobApplication) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("job_applications").
		Columns("candidate_id", "job_post_id", "cover_letter", "status", "applied_at", "updated_at").
		Values(app.CandidateID, app.JobPostID, app.CoverLetter, app.Status, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).Int64("candidateID", app.CandidateID).Int64("jobPostID", app.JobPostID).Msg("Error creating application")
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	return id, nil
}

// GetApplicationByID retrieves an application by ID
func (r *RecruitmentRepository) GetApplicationByID(ctx context.Context, id int64) (*models.JobApplication, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("job_applications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationMissing
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application by ID: %w", err)
	}

	return app, nil
}

// UpdateApplicationStatus moves an application along the pipeline
func (r *RecruitmentRepository) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	sql, args, err := r.sb.Update("job_applications").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update application status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error updating application status")
		return fmt.Errorf("error updating application status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationMissing
	}

	return nil
}

// ListApplicationsByCandidate retrieves a candidate's applications
func (r *RecruitmentRepository) ListApplicationsByCandidate(ctx context.Context, candidateID int64) ([]*models.JobApplication, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("job_applications").
		Where(squirrel.Eq{"candidate_id": candidateID}).
		OrderBy("applied_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	return r.queryApplications(ctx, sql, args)
}

// ListApplicationsByJobPost retrieves applications for a post with pagination
func (r *RecruitmentRepository) ListApplicationsByJobPost(ctx context.Context, jobPostID int64, offset uint64, limit int) ([]*models.JobApplication, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("job_applications").
		Where(squirrel.Eq{"job_post_id": jobPostID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("jobPostID", jobPostID).Msg("Error counting applications")
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	sql, args, err := r.sb.Select(applicationColumns).
		From("job_applications").
		Where(squirrel.Eq{"job_post_id": jobPostID}).
		OrderBy("applied_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	apps, err := r.queryApplications(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// CountApplicationsByStatus counts applications in the given statuses
func (r *RecruitmentRepository) CountApplicationsByStatus(ctx context.Context, statuses ...models.ApplicationStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("job_applications").
		Where(squirrel.Eq{"status": statuses}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting applications by status")
		return 0, fmt.Errorf("error counting applications by status: %w", err)
	}

	return count, nil
}

// RecentApplications retrieves the latest applications across all posts
func (r *RecruitmentRepository) RecentApplications(ctx context.Context, limit int) ([]*models.JobApplication, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("job_applications").
		OrderBy("applied_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build recent applications query: %w", err)
	}

	return r.queryApplications(ctx, sql, args)
}

func (r *RecruitmentRepository) queryApplications(ctx context.Context, sql string, args []interface{}) ([]*models.JobApplication, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing applications query")
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.JobApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

// CreateInterview schedules an interview for an application
func (r *RecruitmentRepository) CreateInterview(ctx context.Context, iv *models.InterviewInvitation) (int64, error) {
	sql, args, err := r.sb.Insert("interview_invitations").
		Columns("application_id", "scheduled_at", "location", "notes", "status", "created_by", "created_at").
		Values(iv.ApplicationID, iv.ScheduledAt, iv.Location, iv.Notes, iv.Status, iv.CreatedBy, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create interview query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", iv.ApplicationID).Msg("Error creating interview")
		return 0, fmt.Errorf("error creating interview: %w", err)
	}

	return id, nil
}

// UpdateInterviewStatus completes or cancels an interview
func (r *RecruitmentRepository) UpdateInterviewStatus(ctx context.Context, id int64, status models.InterviewStatus) error {
	sql, args, err := r.sb.Update("interview_invitations").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update interview status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("interviewID", id).Msg("Error updating interview status")
		return fmt.Errorf("error updating interview status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListUpcomingInterviewsByCandidate retrieves a candidate's scheduled interviews
func (r *RecruitmentRepository) ListUpcomingInterviewsByCandidate(ctx context.Context, candidateID int64) ([]*models.InterviewInvitation, error) {
	sql, args, err := r.sb.Select("iv.id", "iv.application_id", "iv.scheduled_at", "iv.location", "iv.notes", "iv.status", "iv.created_by", "iv.created_at").
		From("interview_invitations iv").
		Join("job_applications a ON a.id = iv.application_id").
		Where(squirrel.Eq{"a.candidate_id": candidateID, "iv.status": models.InterviewStatusScheduled}).
		Where(squirrel.Gt{"iv.scheduled_at": time.Now()}).
		OrderBy("iv.scheduled_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list interviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("candidateID", candidateID).Msg("Error listing interviews")
		return nil, fmt.Errorf("error listing interviews: %w", err)
	}
	defer rows.Close()

	interviews := []*models.InterviewInvitation{}
	for rows.Next() {
		iv := &models.InterviewInvitation{}
		err := rows.Scan(&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.Location, &iv.Notes, &iv.Status, &iv.CreatedBy, &iv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning interview row: %w", err)
		}
		interviews = append(interviews, iv)
	}

	return interviews, rows.Err()
}

// CountScheduledInterviews counts interviews still to be held
func (r *RecruitmentRepository) CountScheduledInterviews(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("interview_invitations").
		Where(squirrel.Eq{"status": models.InterviewStatusScheduled}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count interviews query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting scheduled interviews")
		return 0, fmt.Errorf("error counting scheduled interviews: %w", err)
	}

	return count, nil
}

// GetCandidateProfile retrieves a candidate's resume data
func (r *RecruitmentRepository) GetCandidateProfile(ctx context.Context, userID int64) (*models.CandidateProfile, error) {
	sql, args, err := r.sb.Select("id", "user_id", "resume_path", "skills", "education", "experience", "updated_at").
		From("candidate_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get candidate profile query: %w", err)
	}

	profile := &models.CandidateProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&profile.ID, &profile.UserID, &profile.ResumePath,
		&profile.Skills, &profile.Education, &profile.Experience, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning candidate profile row")
		return nil, fmt.Errorf("error getting candidate profile: %w", err)
	}

	return profile, nil
}

// UpsertCandidateProfile creates or updates a candidate's resume data
func (r *RecruitmentRepository) UpsertCandidateProfile(ctx context.Context, profile *models.CandidateProfile) error {
	sql, args, err := r.sb.Insert("candidate_profiles").
		Columns("user_id", "resume_path", "skills", "education", "experience", "updated_at").
		Values(profile.UserID, profile.ResumePath, profile.Skills, profile.Education, profile.Experience, time.Now()).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET resume_path = COALESCE(EXCLUDED.resume_path, candidate_profiles.resume_path), skills = EXCLUDED.skills, education = EXCLUDED.education, experience = EXCLUDED.experience, updated_at = EXCLUDED.updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build upsert candidate profile query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", profile.UserID).Msg("Error upserting candidate profile")
		return fmt.Errorf("error upserting candidate profile: %w", err)
	}

	return nil
}

// UpdateResumePath stores the uploaded resume location
func (r *RecruitmentRepository) UpdateResumePath(ctx context.Context, userID int64, path string) error {
	sql, args, err := r.sb.Insert("candidate_profiles").
		Columns("user_id", "resume_path", "skills", "education", "experience", "updated_at").
		Values(userID, path, "", "", "", time.Now()).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET resume_path = EXCLUDED.resume_path, updated_at = EXCLUDED.updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update resume path query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating resume path")
		return fmt.Errorf("error updating resume path: %w", err)
	}

	return nil
}

// YearlyRecruitmentCounts aggregates the hiring pipeline over a year window
func (r *RecruitmentRepository) YearlyRecruitmentCounts(ctx context.Context, from, to time.Time) (posts, applications, interviews, hired, rejected int64, err error) {
	postSQL, postArgs, err := r.sb.Select("COUNT(*)").
		From("job_posts").
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		ToSql()
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("failed to build recruitment report query: %w", err)
	}
	if err = r.db.QueryRow(ctx, postSQL, postArgs...).Scan(&posts); err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("error counting posts: %w", err)
	}

	appSQL, appArgs, err := r.sb.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'hired')",
		"COUNT(*) FILTER (WHERE status = 'rejected')").
		From("job_applications").
		Where(squirrel.GtOrEq{"applied_at": from}).
		Where(squirrel.Lt{"applied_at": to}).
		ToSql()
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("failed to build applications report query: %w", err)
	}
	if err = r.db.QueryRow(ctx, appSQL, appArgs...).Scan(&applications, &hired, &rejected); err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("error counting applications: %w", err)
	}

	ivSQL, ivArgs, err := r.sb.Select("COUNT(*)").
		From("interview_invitations").
		Where(squirrel.Eq{"status": models.InterviewStatusCompleted}).
		Where(squirrel.GtOrEq{"scheduled_at": from}).
		Where(squirrel.Lt{"scheduled_at": to}).
		ToSql()
	if err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("failed to build interviews report query: %w", err)
	}
	if err = r.db.QueryRow(ctx, ivSQL, ivArgs...).Scan(&interviews); err != nil {
		return 0, 0, 0, 0, 0, fmt.Errorf("error counting interviews: %w", err)
	}

	return posts, applications, interviews, hired, rejected, nil
}
