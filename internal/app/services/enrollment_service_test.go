package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/instracore/backend/internal/app/models"
)

func TestBuildAcademicsSummary(t *testing.T) {
	results := []*models.ExamResult{
		{ExamName: "Midterm", MarksObtained: 72, TotalMarks: 100},
		{ExamName: "Final", MarksObtained: 30, TotalMarks: 100},
		{ExamName: "Quiz", MarksObtained: 18, TotalMarks: 20},
		{ExamName: "Unmarked", MarksObtained: 0, TotalMarks: 0}, // skipped
	}
	counts := map[models.AttendanceStatus]int64{
		models.AttendanceStatusPresent: 18,
		models.AttendanceStatusLate:    2,
		models.AttendanceStatusAbsent:  5,
	}

	summary := buildAcademicsSummary(7, results, counts)

	assert.Equal(t, int64(7), summary.StudentID)
	assert.Equal(t, int64(3), summary.ExamsTaken)
	// 72% and 90% pass the 40% mark, 30% does not.
	assert.Equal(t, int64(2), summary.ExamsPassed)
	assert.InDelta(t, 66.67, summary.PassRate, 0.01)
	assert.InDelta(t, 64.0, summary.AverageMarks, 0.01) // (72+30+90)/3
	assert.InDelta(t, 80.0, summary.AttendanceRate, 0.01)
}

func TestBuildAcademicsSummaryEmpty(t *testing.T) {
	summary := buildAcademicsSummary(3, nil, nil)

	assert.Zero(t, summary.ExamsTaken)
	assert.Zero(t, summary.PassRate)
	assert.Zero(t, summary.AverageMarks)
	assert.Zero(t, summary.AttendanceRate)
}
