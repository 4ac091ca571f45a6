package repositories

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/instracore/backend/internal/pkg/apperrors"
)

// ErrNotFound is the shared not-found sentinel used by all repositories.
// It wraps the application taxonomy so the HTTP layer maps it to 404.
var ErrNotFound = fmt.Errorf("record not found: %w", apperrors.ErrResourceNotFound)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	CourseRepository      *CourseRepository
	EnrollmentRepository  *EnrollmentRepository
	AttendanceRepository  *AttendanceRepository
	RecruitmentRepository *RecruitmentRepository
	FinanceRepository     *FinanceRepository
	CertificateRepository *CertificateRepository
	NoticeRepository      *NoticeRepository
	ActivityRepository    *ActivityRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		CourseRepository:      NewCourseRepository(db),
		EnrollmentRepository:  NewEnrollmentRepository(db),
		AttendanceRepository:  NewAttendanceRepository(db),
		RecruitmentRepository: NewRecruitmentRepository(db),
		FinanceRepository:     NewFinanceRepository(db),
		CertificateRepository: NewCertificateRepository(db),
		NoticeRepository:      NewNoticeRepository(db),
		ActivityRepository:    NewActivityRepository(db),
	}
}
