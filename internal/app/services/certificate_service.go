package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
	"github.com/instracore/backend/internal/pkg/helpers"
)

// CertificateService handles completion certificate requests and issuance
type CertificateService struct {
	certificateRepo *repositories.CertificateRepository
	enrollmentRepo  *repositories.EnrollmentRepository
	activityRepo    *repositories.ActivityRepository
	logger          zerolog.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	certificateRepo *repositories.CertificateRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	activityRepo *repositories.ActivityRepository,
	logger zerolog.Logger,
) *CertificateService {
	return &CertificateService{
		certificateRepo: certificateRepo,
		enrollmentRepo:  enrollmentRepo,
		activityRepo:    activityRepo,
		logger:          logger,
	}
}

// RequestCertificate asks for a certificate on one of the student's own
// completed enrollments. Incomplete courses and repeat requests are rejected.
func (s *CertificateService) RequestCertificate(ctx context.Context, studentID, enrollmentID int64) (*dto.CertificateResponse, error) {
	enrollment, err := s.enrollmentRepo.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	if enrollment.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}

	if enrollment.Status != models.EnrollmentStatusCompleted {
		return nil, apperrors.ErrCourseNotCompleted
	}

	certificate := &models.Certificate{
		EnrollmentID:      enrollmentID,
		CertificateNumber: newCertificateNumber(time.Now()),
		Status:            models.CertificateStatusPending,
	}

	certificateID, err := s.certificateRepo.CreateCertificate(ctx, certificate)
	if err != nil {
		return nil, err
	}
	certificate.ID = certificateID

	s.activityRepo.CreateActivityLog(ctx, &models.ActivityLog{
		UserID:     studentID,
		Action:     "request_certificate",
		ObjectType: "enrollments",
		ObjectID:   fmt.Sprintf("%d", enrollmentID),
	})

	resp := dto.FromCertificate(certificate)
	return &resp, nil
}

// UpdateCertificateStatus approves, rejects or issues a certificate.
// Illegal transitions are rejected against the certificate transition table.
func (s *CertificateService) UpdateCertificateStatus(ctx context.Context, actorID, certificateID int64, next models.CertificateStatus) (*dto.CertificateResponse, error) {
	certificate, err := s.certificateRepo.GetCertificateByID(ctx, certificateID)
	if err != nil {
		return nil, err
	}

	if !certificate.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: certificate cannot move from %s to %s",
			apperrors.ErrInvalidTransition, certificate.Status, next)
	}

	if err := s.certificateRepo.UpdateCertificateStatus(ctx, certificateID, next, actorID); err != nil {
		return nil, err
	}
	certificate.Status = next

	s.activityRepo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     fmt.Sprintf("status:%s", next),
		EntityName: "certificates",
		ObjectID:   fmt.Sprintf("%d", certificateID),
	})

	if enrollment, err := s.enrollmentRepo.GetEnrollmentByID(ctx, certificate.EnrollmentID); err == nil {
		message := fmt.Sprintf("Your certificate request is now %s", next)
		if _, err := s.activityRepo.CreateNotification(ctx, &models.Notification{
			UserID:  enrollment.StudentID,
			Message: message,
		}); err != nil {
			s.logger.Warn().Err(err).Int64("studentID", enrollment.StudentID).Msg("Failed to notify student")
		}
	}

	resp := dto.FromCertificate(certificate)
	return &resp, nil
}

// GetCertificate retrieves one certificate by ID
func (s *CertificateService) GetCertificate(ctx context.Context, certificateID int64) (*dto.CertificateResponse, error) {
	certificate, err := s.certificateRepo.GetCertificateByID(ctx, certificateID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromCertificate(certificate)
	return &resp, nil
}

// ListCertificates retrieves certificates with pagination, optionally by status
func (s *CertificateService) ListCertificates(ctx context.Context, status models.CertificateStatus, page, pageSize int) (*dto.CertificateListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	certificates, total, err := s.certificateRepo.ListCertificates(ctx, status, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.CertificateListResponse{
		Certificates:   make([]dto.CertificateResponse, 0, len(certificates)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, c := range certificates {
		resp.Certificates = append(resp.Certificates, dto.FromCertificate(c))
	}

	return resp, nil
}

// ListStudentCertificates retrieves a student's certificates
func (s *CertificateService) ListStudentCertificates(ctx context.Context, studentID int64) ([]dto.CertificateResponse, error) {
	certificates, err := s.certificateRepo.ListCertificatesByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CertificateResponse, 0, len(certificates))
	for _, c := range certificates {
		responses = append(responses, dto.FromCertificate(c))
	}

	return responses, nil
}

// newCertificateNumber builds a globally unique certificate number,
// year-scoped for readability.
func newCertificateNumber(now time.Time) string {
	return fmt.Sprintf("CERT-%d-%s", now.Year(), uuid.New().String()[:8])
}
