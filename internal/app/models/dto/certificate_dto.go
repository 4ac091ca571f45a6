package dto

import (
	"time"

	"github.com/instracore/backend/internal/app/models"
)

// RequestCertificateRequest asks for a certificate on a completed enrollment
type RequestCertificateRequest struct {
	EnrollmentID int64 `json:"enrollmentId" binding:"required,min=1"`
}

// UpdateCertificateStatusRequest approves, rejects or issues a certificate
type UpdateCertificateStatusRequest struct {
	Status models.CertificateStatus `json:"status" binding:"required"`
}

// CertificateResponse represents one certificate
type CertificateResponse struct {
	ID                int64                    `json:"id"`
	EnrollmentID      int64                    `json:"enrollmentId"`
	CertificateNumber string                   `json:"certificateNumber"`
	Status            models.CertificateStatus `json:"status"`
	IssuedAt          *time.Time               `json:"issuedAt,omitempty"`
}

// FromCertificate converts a models.Certificate to a CertificateResponse
func FromCertificate(c *models.Certificate) CertificateResponse {
	if c == nil {
		return CertificateResponse{}
	}
	return CertificateResponse{
		ID:                c.ID,
		EnrollmentID:      c.EnrollmentID,
		CertificateNumber: c.CertificateNumber,
		Status:            c.Status,
		IssuedAt:          c.IssuedAt,
	}
}

// CertificateListResponse represents certificates with pagination
type CertificateListResponse struct {
	Certificates []CertificateResponse `json:"certificates"`
	PaginationInfo
}
