package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/instracore/backend/internal/app/models"
)

func TestParseReportWindow(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		yearStr   string
		monthStr  string
		wantYear  int
		wantMonth int
	}{
		{"valid year and month", "2025", "3", 2025, 3},
		{"empty inputs fall back to now", "", "", 2026, 9},
		{"garbage year falls back", "twenty", "5", 2026, 5},
		{"garbage month falls back", "2024", "spring", 2024, 9},
		{"year below range falls back", "1999", "7", 2026, 7},
		{"year above range falls back", "2300", "7", 2026, 7},
		{"month zero falls back", "2024", "0", 2024, 9},
		{"month above twelve falls back", "2024", "13", 2024, 9},
		{"negative month falls back", "2024", "-2", 2024, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month := parseReportWindow(tt.yearStr, tt.monthStr, now)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}

func TestYearWindow(t *testing.T) {
	from, to := yearWindow(2025)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestFeeDueDate(t *testing.T) {
	enrolledAt := time.Date(2026, time.February, 10, 15, 30, 0, 0, time.UTC)
	due := FeeDueDate(enrolledAt)
	assert.Equal(t, enrolledAt.AddDate(0, 0, 30), due)
}

func TestBuildUserReport(t *testing.T) {
	counts := map[models.Role]map[bool]int64{
		models.RoleAdmin:    {true: 1},
		models.RoleEmployee: {true: 12, false: 3},
		models.RoleStudent:  {true: 140, false: 10},
	}

	resp := buildUserReport(counts)

	assert.Len(t, resp.Rows, 4)
	assert.Equal(t, int64(166), resp.Total)

	byRole := map[models.Role]int{}
	for i, row := range resp.Rows {
		byRole[row.Role] = i
	}

	employees := resp.Rows[byRole[models.RoleEmployee]]
	assert.Equal(t, int64(12), employees.Active)
	assert.Equal(t, int64(3), employees.Inactive)
	assert.Equal(t, int64(15), employees.Total)

	// Roles with no accounts still get a zero row.
	candidates := resp.Rows[byRole[models.RoleCandidate]]
	assert.Zero(t, candidates.Active)
	assert.Zero(t, candidates.Inactive)
	assert.Zero(t, candidates.Total)
}
