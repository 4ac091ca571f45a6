package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/pkg/apperrors"
)

func TestRecordAttendanceRejectsUnknownStatus(t *testing.T) {
	s := &AttendanceService{}
	_, err := s.RecordAttendance(context.Background(), 1, &dto.RecordAttendanceRequest{
		UserID: 2,
		Date:   "2026-09-01",
		Status: models.AttendanceStatus("vacationing"),
	})

	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestRecordAttendanceRejectsBadDate(t *testing.T) {
	s := &AttendanceService{}
	_, err := s.RecordAttendance(context.Background(), 1, &dto.RecordAttendanceRequest{
		UserID: 2,
		Date:   "September 1st",
		Status: models.AttendanceStatusPresent,
	})

	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestCorrectAttendanceRejectsUnknownStatus(t *testing.T) {
	s := &AttendanceService{}
	err := s.CorrectAttendance(context.Background(), 1, 9, &dto.CorrectAttendanceRequest{
		Status: models.AttendanceStatus("excused"),
	})

	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestDuplicateAttendanceMapsToConflict(t *testing.T) {
	// A second record for the same user and date surfaces the uniqueness
	// sentinel, which the HTTP layer maps to 409.
	assert.True(t, errors.Is(apperrors.ErrAttendanceExists, apperrors.ErrResourceAlreadyExists))
}
