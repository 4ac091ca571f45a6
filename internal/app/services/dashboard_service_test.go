package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/app/repositories"
)

func builderName(b dashboardBuilder) uintptr {
	return reflect.ValueOf(b).Pointer()
}

func TestDashboardBuilderSelection(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		subRole models.SubRole
		want    dashboardBuilder
	}{
		{"admin", models.RoleAdmin, "", buildAdminDashboard},
		{"hr employee", models.RoleEmployee, models.SubRoleHR, buildHRDashboard},
		{"finance employee", models.RoleEmployee, models.SubRoleFinance, buildFinanceDashboard},
		{"teacher employee", models.RoleEmployee, models.SubRoleTeacher, buildTeacherDashboard},
		{"faculty shares teacher dashboard", models.RoleEmployee, models.SubRoleFaculty, buildTeacherDashboard},
		{"it employee falls back to generic", models.RoleEmployee, models.SubRoleIT, buildEmployeeDashboard},
		{"marketing employee falls back to generic", models.RoleEmployee, models.SubRoleMarketing, buildEmployeeDashboard},
		{"student", models.RoleStudent, "", buildStudentDashboard},
		{"candidate", models.RoleCandidate, "", buildCandidateDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder, ok := dashboardBuilders[dashboardKey{Role: tt.role, SubRole: tt.subRole}]
			if !ok {
				builder = dashboardBuilders[dashboardKey{Role: tt.role}]
			}
			assert.Equal(t, builderName(tt.want), builderName(builder))
		})
	}
}

func TestDashboardUnknownRole(t *testing.T) {
	s := &DashboardService{}
	_, err := s.Dashboard(context.Background(), 1, models.Role("ghost"), "")
	assert.Error(t, err)
}

func TestOverviewFinancialSummary(t *testing.T) {
	t.Run("missing month defaults every figure to zero", func(t *testing.T) {
		summary, err := overviewFinancialSummary("2026-09", nil, repositories.ErrNotFound)
		assert.NoError(t, err)
		assert.Equal(t, "2026-09", summary.Month)
		assert.Zero(t, summary.TotalIncome)
		assert.Zero(t, summary.TotalExpense)
		assert.Zero(t, summary.TotalSalaries)
		assert.Zero(t, summary.NetBalance)
	})

	t.Run("existing month maps the rollup", func(t *testing.T) {
		overview := &models.FinancialOverview{
			Month:         "2026-08",
			TotalIncome:   12500,
			TotalExpense:  4300,
			TotalSalaries: 6100,
			NetBalance:    2100,
		}
		summary, err := overviewFinancialSummary("2026-08", overview, nil)
		assert.NoError(t, err)
		assert.Equal(t, 12500.0, summary.TotalIncome)
		assert.Equal(t, 4300.0, summary.TotalExpense)
		assert.Equal(t, 6100.0, summary.TotalSalaries)
		assert.Equal(t, 2100.0, summary.NetBalance)
	})

	t.Run("other lookup errors pass through", func(t *testing.T) {
		_, err := overviewFinancialSummary("2026-09", nil, errors.New("connection refused"))
		assert.Error(t, err)
	})
}
