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

const certificateColumns = "id, enrollment_id, certificate_number, status, issued_at, approved_by, file_path, created_at"

// CertificateRepository handles certificate persistence
type CertificateRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	c := &models.Certificate{}
	err := row.Scan(&c.ID, &c.EnrollmentID, &c.CertificateNumber, &c.Status,
		&c.IssuedAt, &c.ApprovedBy, &c.FilePath, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCertificate records a certificate request. Both the enrollment and the
// certificate number carry unique constraints.
func (r *CertificateRepository) CreateCertificate(ctx context.Context, c *models.Certificate) (int64, error) {
	sql, args, err := r.sb.Insert("certificates").
		Columns("enrollment_id", "certificate_number", "status", "created_at").
		Values(c.EnrollmentID, c.CertificateNumber, c.Status, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create certificate query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrCertificateExists
		}
		logger.Error().Err(err).Int64("enrollmentID", c.EnrollmentID).Msg("Error creating certificate")
		return 0, fmt.Errorf("error creating certificate: %w", err)
	}

	return id, nil
}

// GetCertificateByID retrieves a certificate by ID
func (r *CertificateRepository) GetCertificateByID(ctx context.Context, id int64) (*models.Certificate, error) {
	sql, args, err := r.sb.Select(certificateColumns).
		From("certificates").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get certificate query: %w", err)
	}

	cert, err := scanCertificate(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		logger.Error().Err(err).Int64("certificateID", id).Msg("Error scanning certificate row")
		return nil, fmt.Errorf("error getting certificate by ID: %w", err)
	}

	return cert, nil
}

// GetCertificateByEnrollment retrieves the certificate tied to an enrollment
func (r *CertificateRepository) GetCertificateByEnrollment(ctx context.Context, enrollmentID int64) (*models.Certificate, error) {
	sql, args, err := r.sb.Select(certificateColumns).
		From("certificates").
		Where(squirrel.Eq{"enrollment_id": enrollmentID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get certificate query: %w", err)
	}

	cert, err := scanCertificate(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error getting certificate by enrollment: %w", err)
	}

	return cert, nil
}

// UpdateCertificateStatus sets a certificate's status, stamping issued_at on issue
func (r *CertificateRepository) UpdateCertificateStatus(ctx context.Context, id int64, status models.CertificateStatus, approvedBy int64) error {
	update := r.sb.Update("certificates").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	switch status {
	case models.CertificateStatusApproved, models.CertificateStatusRejected:
		update = update.Set("approved_by", approvedBy)
	case models.CertificateStatusIssued:
		update = update.Set("issued_at", time.Now())
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update certificate status query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("certificateID", id).Msg("Error updating certificate status")
		return fmt.Errorf("error updating certificate status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCertificateNotFound
	}

	return nil
}

// UpdateFilePath stores the path to the generated certificate file
func (r *CertificateRepository) UpdateFilePath(ctx context.Context, id int64, filePath string) error {
	sql, args, err := r.sb.Update("certificates").
		Set("file_path", filePath).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update certificate file query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating certificate file path: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCertificateNotFound
	}

	return nil
}

// ListCertificates retrieves certificates with pagination, optionally by status
func (r *CertificateRepository) ListCertificates(ctx context.Context, status models.CertificateStatus, offset uint64, limit int) ([]*models.Certificate, int64, error) {
	base := r.sb.Select(certificateColumns).From("certificates")
	countQuery := r.sb.Select("COUNT(*)").From("certificates")

	if status != "" {
		base = base.Where(squirrel.Eq{"status": status})
		countQuery = countQuery.Where(squirrel.Eq{"status": status})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count certificates query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting certificates")
		return nil, 0, fmt.Errorf("error counting certificates: %w", err)
	}

	sql, args, err := base.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list certificates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing certificates")
		return nil, 0, fmt.Errorf("error listing certificates: %w", err)
	}
	defer rows.Close()

	certs := []*models.Certificate{}
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning certificate row: %w", err)
		}
		certs = append(certs, cert)
	}

	return certs, total, rows.Err()
}

// ListCertificatesByStudent retrieves a student's certificates via their enrollments
func (r *CertificateRepository) ListCertificatesByStudent(ctx context.Context, studentID int64) ([]*models.Certificate, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.enrollment_id", "c.certificate_number", "c.status",
		"c.issued_at", "c.approved_by", "c.file_path", "c.created_at").
		From("certificates c").
		Join("enrollments e ON e.id = c.enrollment_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("c.created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list student certificates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error listing student certificates")
		return nil, fmt.Errorf("error listing student certificates: %w", err)
	}
	defer rows.Close()

	certs := []*models.Certificate{}
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning certificate row: %w", err)
		}
		certs = append(certs, cert)
	}

	return certs, rows.Err()
}
