package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-marketplace-backend/config"
	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Tokens map straight to users so role checks can be driven per request
type stubAuth struct {
	domain.AuthUsecase
}

func (stubAuth) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	switch token {
	case "worker":
		return &domain.User{ID: "w1", Email: "w@x.io", Role: domain.RoleWorker}, nil
	case "hirer":
		return &domain.User{ID: "h1", Email: "h@x.io", Role: domain.RoleHirer}, nil
	case "admin":
		return &domain.User{ID: "a1", Email: "a@x.io", Role: domain.RoleAdmin}, nil
	}
	return nil, apperror.Unauthorized("Invalid token")
}

type stubJobs struct {
	domain.JobUsecase
	created *domain.JobRequest
	owner   string
}

func (s *stubJobs) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	if id == 404 {
		return nil, apperror.NotFound("Job not found")
	}
	return &domain.Job{ID: id, Title: "Fix sink"}, nil
}

func (s *stubJobs) CreateJob(ctx context.Context, userID string, req domain.JobRequest) (*domain.Job, error) {
	s.created = &req
	s.owner = userID
	return &domain.Job{ID: 1, Title: req.Title}, nil
}

type stubApplications struct {
	domain.ApplicationUsecase
	applied bool
}

func (s *stubApplications) Apply(ctx context.Context, userID string, jobID int64, req domain.ApplyRequest) (*domain.Application, error) {
	s.applied = true
	return &domain.Application{ID: 7, JobID: jobID}, nil
}

type stubAdmin struct {
	domain.AdminUsecase
	disabled *bool
}

func (s *stubAdmin) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	return &domain.AdminStats{TotalUsers: 3}, nil
}

func (s *stubAdmin) DisableUser(ctx context.Context, userID string, disable bool) (*domain.AdminUser, error) {
	s.disabled = &disable
	return &domain.AdminUser{ID: userID, IsDisabled: disable}, nil
}

type stubHealth struct {
	status string
}

func (s stubHealth) Check(ctx context.Context) map[string]string {
	return map[string]string{"database": "up"}
}

func (s stubHealth) Status(ctx context.Context) string {
	return s.status
}

type fixture struct {
	router *gin.Engine
	jobs   *stubJobs
	apps   *stubApplications
	admin  *stubAdmin
}

func newFixture(health HealthChecker) *fixture {
	f := &fixture{
		jobs:  &stubJobs{},
		apps:  &stubApplications{},
		admin: &stubAdmin{},
	}
	f.router = NewRouter(RouterDeps{
		AuthUC:        stubAuth{},
		JobUC:         f.jobs,
		ApplicationUC: f.apps,
		AdminUC:       f.admin,
		Health:        health,
		Config: &config.Config{
			Environment:    "development",
			FrontendURL:    "http://localhost:3000",
			MaxUploadBytes: 1 << 20,
		},
	})
	return f
}

func (f *fixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	w := newFixture(stubHealth{status: "degraded"}).do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "degraded", data["status"])

	w = newFixture(stubHealth{status: "down"}).do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestPublicJobRoutes(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodGet, "/v1/jobs/12", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = f.do(http.MethodGet, "/v1/jobs/404", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/v1/jobs/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", decode(t, w)["message"])
}

func TestCreateJobRequiresHirer(t *testing.T) {
	f := newFixture(nil)
	body := map[string]interface{}{"title": "Paint fence", "description": "Two coats", "budget_min": 50, "budget_max": 80}

	w := f.do(http.MethodPost, "/v1/jobs", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/v1/jobs", "worker", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, f.jobs.created)

	w = f.do(http.MethodPost, "/v1/jobs", "hirer", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, f.jobs.created)
	assert.Equal(t, "Paint fence", f.jobs.created.Title)
	assert.Equal(t, "h1", f.jobs.owner)
}

func TestCreateJobValidation(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodPost, "/v1/jobs", "hirer", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decode(t, w)["message"])
	assert.Nil(t, f.jobs.created)
}

func TestHirerCannotApply(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodPost, "/v1/jobs/3/applications", "hirer", map[string]interface{}{"cover_letter": "hi"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, f.apps.applied)

	w = f.do(http.MethodPost, "/v1/jobs/3/applications", "worker", map[string]interface{}{"cover_letter": "hi"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, f.apps.applied)
}

func TestAdminRoutes(t *testing.T) {
	f := newFixture(nil)

	w := f.do(http.MethodGet, "/v1/admin/stats", "hirer", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodGet, "/v1/admin/stats", "admin", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// disabled is required, so an empty body never reaches the usecase
	w = f.do(http.MethodPatch, "/v1/admin/users/u9/disable", "admin", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, f.admin.disabled)

	w = f.do(http.MethodPatch, "/v1/admin/users/u9/disable", "admin", map[string]interface{}{"disabled": false})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.admin.disabled)
	assert.False(t, *f.admin.disabled)
	assert.Equal(t, "User enabled", decode(t, w)["message"])
}
