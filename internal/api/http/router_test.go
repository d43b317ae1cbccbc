package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"debtmates-backend/internal/domain"
	"debtmates-backend/internal/security"
)

// testEnv wires the full router over mocked services so handler tests go
// through the real middleware and route table.
type testEnv struct {
	auth      *MockAuthService
	groups    *MockGroupService
	debts     *MockDebtService
	rotations *MockRotationService
	savings   *MockSavingsService
	notes     *MockNotificationService
	admin     *MockAdminService
	tokens    security.TokenManager
	server    *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		auth:      new(MockAuthService),
		groups:    new(MockGroupService),
		debts:     new(MockDebtService),
		rotations: new(MockRotationService),
		savings:   new(MockSavingsService),
		notes:     new(MockNotificationService),
		admin:     new(MockAdminService),
		tokens:    security.NewTokenManager("test-secret", 60, 1440),
	}

	router := NewRouter(Handlers{
		Auth:         NewAuthHandler(env.auth),
		Groups:       NewGroupHandler(env.groups),
		Debts:        NewDebtHandler(env.debts),
		Rotations:    NewRotationHandler(env.rotations, 5),
		Savings:      NewSavingsHandler(env.savings),
		Notes:        NewNotificationHandler(env.notes),
		Admin:        NewAdminHandler(env.admin),
		TokenManager: env.tokens,
	})

	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) bearer(t *testing.T, userID int32, role string) string {
	t.Helper()
	token, err := e.tokens.GenerateAccessToken(userID, "user@example.com", role)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}
	return "Bearer " + token
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return res
}

func TestRouter_Authentication(t *testing.T) {
	env := newTestEnv(t)

	t.Run("MissingTokenRejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/groups", nil)
		res := env.do(t, req)
		defer res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("MalformedTokenRejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/groups", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		res := env.do(t, req)
		defer res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("RefreshTokenRejectedOnAPIRoutes", func(t *testing.T) {
		refresh, err := env.tokens.GenerateRefreshToken(1, "user@example.com")
		assert.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/groups", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		res := env.do(t, req)
		defer res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("HealthzIsPublic", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/healthz", nil)
		res := env.do(t, req)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})
}

func TestRouter_AdminOnly(t *testing.T) {
	env := newTestEnv(t)

	t.Run("RegularUserForbidden", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/admin/users", nil)
		req.Header.Set("Authorization", env.bearer(t, 1, "USER"))
		res := env.do(t, req)
		defer res.Body.Close()
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		env.admin.On("ListUsers", mock.Anything).Return([]domain.User{{ID: 1, Username: "root"}}, nil)

		req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/admin/users", nil)
		req.Header.Set("Authorization", env.bearer(t, 1, "ADMIN"))
		res := env.do(t, req)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})
}
