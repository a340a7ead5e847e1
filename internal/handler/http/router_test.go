package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/portalbd/employee-portal-go/internal/config"
	"github.com/portalbd/employee-portal-go/internal/pkg/rowstore"
	attendanceService "github.com/portalbd/employee-portal-go/internal/service/attendance"
	authService "github.com/portalbd/employee-portal-go/internal/service/auth"
	profileService "github.com/portalbd/employee-portal-go/internal/service/profile"
	sessionService "github.com/portalbd/employee-portal-go/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.FrontendURL = "http://localhost:3000"

	store := rowstore.NewMemoryStore()
	sessions := sessionService.NewManager(store, 24*time.Hour)
	auth := authService.NewAuthService(store, sessions)
	profiles := profileService.NewProfileService(store)
	attendance := attendanceService.NewAttendanceService(store, profiles)

	return NewRouter(cfg, sessions,
		NewAuthHandler(auth),
		NewProfileHandler(profiles),
		NewAttendanceHandler(attendance),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), "body: %s", rec.Body.String())
	return rec, payload
}

func registerTestUser(t *testing.T, router http.Handler) string {
	t.Helper()
	rec, payload := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"id": "emp-1", "name": "Rahim", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, payload["ok"])
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["ok"])
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, payload["ok"])
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)
	registerTestUser(t, router)

	// Duplicate registration conflicts.
	rec, payload := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"id": "emp-1", "name": "Other", "password": "secret456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, payload["ok"])

	// Wrong password is a business rejection, not an HTTP error.
	rec, payload = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"id": "emp-1", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["ok"])

	rec, payload = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"id": "emp-1", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, payload["ok"])
	token := payload["token"].(string)

	// Logout revokes the session.
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/profile", "/api/v1/attendance/stats", "/api/v1/attendance/months"} {
		rec, payload := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, false, payload["ok"], path)
	}
}

func TestProfileAndAttendanceFlow(t *testing.T) {
	router := newTestRouter(t)
	token := registerTestUser(t, router)

	// Fresh user: incomplete profile marker, no error.
	rec, payload := doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prof := payload["profile"].(map[string]any)
	assert.Equal(t, false, prof["profileComplete"])

	// Recording a day before profile setup is a 404.
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/attendance/present", token, map[string]any{
		"date": "2026-05-04",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/profile/setup", token, map[string]any{
		"name": "Rahim", "basicSalary": 9000, "houseRent": 3300,
		"medical": 750, "transport": 450, "food": 1500,
		"otRate": 60, "presentBonus": 700,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, payload = doJSON(t, router, http.MethodPost, "/api/v1/attendance/present", token, map[string]any{
		"date": "2026-05-04", "otHours": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	record := payload["record"].(map[string]any)
	assert.Equal(t, "present", record["status"])

	rec, payload = doJSON(t, router, http.MethodGet, "/api/v1/attendance/stats?month=2026-05", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := payload["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["presentDays"])
	assert.Equal(t, float64(5), stats["totalOTHours"])
	assert.Equal(t, float64(300), stats["totalOTAmount"])
	assert.Equal(t, float64(700), stats["presentBonus"])

	rec, payload = doJSON(t, router, http.MethodGet, "/api/v1/attendance/history?month=2026-05", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	records := payload["records"].([]any)
	assert.Len(t, records, 1)

	// Deleting a day that was never recorded is a 404.
	rec, _ = doJSON(t, router, http.MethodPost, "/api/v1/attendance/delete", token, map[string]any{
		"date": "2026-05-09",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, payload = doJSON(t, router, http.MethodPost, "/api/v1/attendance/delete", token, map[string]any{
		"date": "2026-05-04",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), payload["deleted"])
}

func TestInvalidDateIsBusinessRejection(t *testing.T) {
	router := newTestRouter(t)
	token := registerTestUser(t, router)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/v1/attendance/offday", token, map[string]any{
		"date": "04/05/2026",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["ok"])
}

func TestSalaryBreakdownEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := registerTestUser(t, router)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/v1/profile/salary-breakdown?gross=12950", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	breakdown := payload["breakdown"].(map[string]any)
	assert.Equal(t, float64(7000), breakdown["basicSalary"])
	assert.Equal(t, float64(3500), breakdown["houseRent"])
	assert.Equal(t, float64(12950), breakdown["totalSalary"])

	// Gross below the fixed allowances cannot be decomposed.
	rec, payload = doJSON(t, router, http.MethodGet, "/api/v1/profile/salary-breakdown?gross=2000", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["ok"])

	rec, payload = doJSON(t, router, http.MethodGet, "/api/v1/profile/salary-breakdown?gross=abc", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["ok"])
}
