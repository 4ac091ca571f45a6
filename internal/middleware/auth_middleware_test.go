package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instracore/backend/internal/app/models"
	"github.com/instracore/backend/internal/pkg/auth"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestRoleRequired(t *testing.T) {
	m := NewAuthMiddleware(nil, nil)

	tests := []struct {
		name       string
		role       string
		required   models.Role
		wantAbort  bool
		wantStatus int
	}{
		{"matching role passes", "admin", models.RoleAdmin, false, http.StatusOK},
		{"wrong role forbidden", "student", models.RoleAdmin, true, http.StatusForbidden},
		{"employee cannot reach admin routes", "employee", models.RoleAdmin, true, http.StatusForbidden},
		{"admin cannot use student self-service gate", "admin", models.RoleStudent, true, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			c.Set("role", tt.role)

			m.RoleRequired(tt.required)(c)

			assert.Equal(t, tt.wantAbort, c.IsAborted())
			if tt.wantAbort {
				assert.Equal(t, tt.wantStatus, w.Code)
			}
		})
	}
}

func TestRoleRequiredWithoutAuthContext(t *testing.T) {
	m := NewAuthMiddleware(nil, nil)
	c, w := newTestContext(t)

	m.RoleRequired(models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubRoleRequired(t *testing.T) {
	m := NewAuthMiddleware(nil, nil)

	tests := []struct {
		name      string
		role      string
		subRole   string
		allowed   []models.SubRole
		wantAbort bool
	}{
		{"employee with listed sub-role passes", "employee", "teacher", []models.SubRole{models.SubRoleTeacher, models.SubRoleFaculty}, false},
		{"employee with second listed sub-role passes", "employee", "faculty", []models.SubRole{models.SubRoleTeacher, models.SubRoleFaculty}, false},
		{"admin does not pass employee gates", "admin", "", []models.SubRole{models.SubRoleFinance}, true},
		{"employee with unlisted sub-role forbidden", "employee", "marketing", []models.SubRole{models.SubRoleFinance}, true},
		{"employee without sub-role forbidden", "employee", "", []models.SubRole{models.SubRoleHR}, true},
		{"student never passes sub-role gate", "student", "teacher", []models.SubRole{models.SubRoleTeacher}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			c.Set("role", tt.role)
			c.Set("subRole", tt.subRole)

			m.SubRoleRequired(tt.allowed...)(c)

			assert.Equal(t, tt.wantAbort, c.IsAborted())
			if tt.wantAbort {
				assert.Equal(t, http.StatusForbidden, w.Code)
			}
		})
	}
}

func TestJWTAuthSetsIdentityKeys(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	m := NewAuthMiddleware(jwtService, nil)

	subRole := models.SubRoleFinance
	user := &models.User{
		ID:      42,
		Email:   "fin@institute.edu",
		Role:    models.RoleEmployee,
		SubRole: &subRole,
	}
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	c, _ := newTestContext(t)
	c.Request.Header.Set("Authorization", "Bearer "+accessToken)

	m.JWTAuth()(c)

	require.False(t, c.IsAborted())
	assert.Equal(t, int64(42), c.GetInt64("userID"))
	assert.Equal(t, "employee", c.GetString("role"))
	assert.Equal(t, "finance", c.GetString("subRole"))
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	m := NewAuthMiddleware(jwtService, nil)

	t.Run("missing header", func(t *testing.T) {
		c, w := newTestContext(t)
		m.JWTAuth()(c)
		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request.Header.Set("Authorization", "Bearer not.a.jwt")
		m.JWTAuth()(c)
		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
