package models

import "time"

// CertificateStatus is the issuance state of a certificate request
type CertificateStatus string

const (
	CertificateStatusPending  CertificateStatus = "pending"
	CertificateStatusApproved CertificateStatus = "approved"
	CertificateStatusIssued   CertificateStatus = "issued"
	CertificateStatusRejected CertificateStatus = "rejected"
)

var certificateTransitions = map[CertificateStatus][]CertificateStatus{
	CertificateStatusPending:  {CertificateStatusApproved, CertificateStatusRejected},
	CertificateStatusApproved: {CertificateStatusIssued},
	CertificateStatusIssued:   {},
	CertificateStatusRejected: {},
}

// CanTransitionTo reports whether the status change is allowed.
func (s CertificateStatus) CanTransitionTo(next CertificateStatus) bool {
	return contains(certificateTransitions[s], next)
}

// Certificate is a completion certificate tied to an enrollment;
// certificate numbers are globally unique
type Certificate struct {
	ID                int64             `json:"id" db:"id"`
	EnrollmentID      int64             `json:"enrollmentId" db:"enrollment_id"`
	CertificateNumber string            `json:"certificateNumber" db:"certificate_number"`
	Status            CertificateStatus `json:"status" db:"status"`
	IssuedAt          *time.Time        `json:"issuedAt,omitempty" db:"issued_at"`
	ApprovedBy        *int64            `json:"approvedBy,omitempty" db:"approved_by"`
	FilePath          *string           `json:"filePath,omitempty" db:"file_path"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
}
