package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/instracore/backend/internal/app/repositories"
	"github.com/instracore/backend/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound},
		{"enrollment not found", apperrors.ErrEnrollmentNotFound, http.StatusNotFound},
		{"attendance not found", apperrors.ErrAttendanceNotFound, http.StatusNotFound},
		{"job post not found", apperrors.ErrJobPostNotFound, http.StatusNotFound},
		{"application not found", apperrors.ErrApplicationMissing, http.StatusNotFound},
		{"fee payment not found", apperrors.ErrFeePaymentNotFound, http.StatusNotFound},
		{"certificate not found", apperrors.ErrCertificateNotFound, http.StatusNotFound},
		{"shared repository not found", repositories.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("loading course: %w", apperrors.ErrCourseNotFound), http.StatusNotFound},

		{"already enrolled", apperrors.ErrAlreadyEnrolled, http.StatusConflict},
		{"attendance exists", apperrors.ErrAttendanceExists, http.StatusConflict},
		{"teacher assigned", apperrors.ErrTeacherAssigned, http.StatusConflict},
		{"already applied", apperrors.ErrAlreadyApplied, http.StatusConflict},
		{"salary exists", apperrors.ErrSalaryExists, http.StatusConflict},
		{"overview exists", apperrors.ErrOverviewAlreadyExists, http.StatusConflict},
		{"certificate exists", apperrors.ErrCertificateExists, http.StatusConflict},
		{"course not active", apperrors.ErrCourseNotActive, http.StatusConflict},
		{"deadline passed", apperrors.ErrDeadlinePassed, http.StatusConflict},
		{"course not completed", apperrors.ErrCourseNotCompleted, http.StatusConflict},
		{"email already verified", apperrors.ErrEmailAlreadyVerified, http.StatusConflict},
		{"not initialized", apperrors.ErrNotInitialized, http.StatusConflict},
		{"already initialized", apperrors.ErrAlreadyInitialized, http.StatusConflict},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"username exists", apperrors.ErrUsernameExists, http.StatusConflict},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict},
		{"conflict custom error", apperrors.NewConflictError("attendance already recorded for today"), http.StatusConflict},

		{"invalid email token", apperrors.ErrInvalidEmailToken, http.StatusUnauthorized},
		{"invalid reset token", apperrors.ErrInvalidPasswordResetToken, http.StatusUnauthorized},
		{"used reset token", apperrors.ErrPasswordResetTokenUsed, http.StatusUnauthorized},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},

		{"email not verified", apperrors.ErrEmailNotVerified, http.StatusForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},

		{"profile incomplete", apperrors.ErrProfileIncomplete, http.StatusBadRequest},
		{"bad request custom error", apperrors.NewBadRequestError("date must be YYYY-MM-DD"), http.StatusBadRequest},

		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
