package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instracore/backend/internal/app/models"
)

func TestSnapshotCourseRoundTrip(t *testing.T) {
	creator := int64(7)
	course := &models.Course{
		ID:          42,
		Title:       "Go Fundamentals",
		Description: "Introductory programming course",
		CourseType:  models.CourseTypeOnline,
		Price:       199.99,
		Duration:    "8 weeks",
		Status:      models.CourseStatusDraft,
		CreatedBy:   &creator,
	}

	data, err := snapshotCourse(course)
	require.NoError(t, err)

	var restored models.Course
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, course.ID, restored.ID)
	assert.Equal(t, course.Title, restored.Title)
	assert.Equal(t, course.CourseType, restored.CourseType)
	assert.Equal(t, course.Price, restored.Price)
	assert.Equal(t, course.Status, restored.Status)
	require.NotNil(t, restored.CreatedBy)
	assert.Equal(t, creator, *restored.CreatedBy)
}
