package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instracore/backend/internal/app/models"
)

func TestSnapshotUserKeepsPasswordHash(t *testing.T) {
	finance := models.SubRoleFinance
	original := &models.User{
		ID:        42,
		Username:  "jdoe",
		Email:     "jdoe@institute.edu",
		Password:  "$2a$12$abcdefghijklmnopqrstuv",
		FirstName: "John",
		LastName:  "Doe",
		Role:      models.RoleEmployee,
		SubRole:   &finance,
		IsActive:  true,
		CreatedAt: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := snapshotUser(original)
	require.NoError(t, err)

	var snap userSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	restored := snap.User
	restored.Password = snap.PasswordHash

	assert.Equal(t, original.Password, restored.Password)
	assert.Equal(t, original.Username, restored.Username)
	assert.Equal(t, original.Email, restored.Email)
	assert.Equal(t, original.Role, restored.Role)
	require.NotNil(t, restored.SubRole)
	assert.Equal(t, finance, *restored.SubRole)
}

func TestSnapshotUserHidesHashFromPlainDecode(t *testing.T) {
	data, err := snapshotUser(&models.User{ID: 7, Password: "$2a$12$hash"})
	require.NoError(t, err)

	// The model's own JSON shape still never exposes the hash.
	var plain models.User
	require.NoError(t, json.Unmarshal(data, &plain))
	assert.Empty(t, plain.Password)
}

func TestDefaultPassword(t *testing.T) {
	hr := models.SubRoleHR
	tests := []struct {
		name    string
		role    models.Role
		subRole *models.SubRole
		want    string
	}{
		{"student", models.RoleStudent, nil, "student@123"},
		{"candidate", models.RoleCandidate, nil, "candidate@123"},
		{"employee with sub-role", models.RoleEmployee, &hr, "hr@123"},
		{"employee without sub-role", models.RoleEmployee, nil, "employee@123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultPassword(tt.role, tt.subRole))
		})
	}
}
