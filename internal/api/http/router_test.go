package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/fieldops-service/internal/api/http"
	"github.com/spec-kit/fieldops-service/internal/api/http/handlers"
	"github.com/spec-kit/fieldops-service/internal/auth"
	"github.com/spec-kit/fieldops-service/internal/domain"
	"github.com/spec-kit/fieldops-service/internal/events"
	"github.com/spec-kit/fieldops-service/internal/observability"
	"github.com/spec-kit/fieldops-service/internal/service"
)

type memStaffRepo struct {
	records map[string]domain.StaffMember
}

func (r *memStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	r.records[staff.ID] = *staff
	return nil
}

func (r *memStaffRepo) Update(_ context.Context, staff *domain.StaffMember) error {
	if _, ok := r.records[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.records[staff.ID] = *staff
	return nil
}

func (r *memStaffRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *memStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	staff, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &staff, nil
}

func (r *memStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	for _, staff := range r.records {
		if staff.Email == email {
			return &staff, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStaffRepo) List(_ context.Context) ([]domain.StaffMember, error) {
	var out []domain.StaffMember
	for _, staff := range r.records {
		out = append(out, staff)
	}
	return out, nil
}

type memTaskRepo struct {
	records map[string]domain.Task
	nextID  int
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) error {
	r.nextID++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	r.records[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.records[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.records[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &task, nil
}

func (r *memTaskRepo) ListByAssignee(_ context.Context, uid string) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range r.records {
		if task.AssignedTo == uid {
			out = append(out, task)
		}
	}
	return out, nil
}

type memSiteRepo struct {
	records map[string]domain.Site
	nextID  int
}

func (r *memSiteRepo) Create(_ context.Context, site *domain.Site) error {
	r.nextID++
	site.ID = fmt.Sprintf("site-%d", r.nextID)
	r.records[site.ID] = *site
	return nil
}

func (r *memSiteRepo) Update(_ context.Context, site *domain.Site) error {
	if _, ok := r.records[site.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.records[site.ID] = *site
	return nil
}

func (r *memSiteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.records, id)
	return nil
}

func (r *memSiteRepo) GetByID(_ context.Context, id string) (*domain.Site, error) {
	site, ok := r.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &site, nil
}

func (r *memSiteRepo) List(_ context.Context) ([]domain.Site, error) {
	var out []domain.Site
	for _, site := range r.records {
		out = append(out, site)
	}
	return out, nil
}

type testEnv struct {
	app    *fiber.App
	tokens *auth.TokenManager
	tasks  *memTaskRepo
	sites  *memSiteRepo
	staff  *memStaffRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	staffRepo := &memStaffRepo{records: map[string]domain.StaffMember{
		"admin-uid": {ID: "admin-uid", Name: "Admin", Email: "admin@example.com", Role: domain.StaffRoleAdmin},
		"user-uid":  {ID: "user-uid", Name: "Field Tech", Email: "tech@example.com", Role: domain.StaffRoleUser},
	}}
	taskRepo := &memTaskRepo{records: map[string]domain.Task{}}
	siteRepo := &memSiteRepo{records: map[string]domain.Site{}}

	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()
	tokens := auth.NewTokenManager("test-secret", 15)

	taskService := service.NewTaskService(taskRepo, dispatcher)
	siteService := service.NewSiteService(siteRepo, nil, time.Minute, dispatcher, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:           handlers.NewAuthHandler(nil),
		Staff:          handlers.NewStaffHandler(nil),
		Sites:          handlers.NewSitesHandler(siteService),
		Tasks:          handlers.NewTasksHandler(taskService),
		Reports:        handlers.NewReportsHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, staffRepo, ""),
	})

	return &testEnv{app: app, tokens: tokens, tasks: taskRepo, sites: siteRepo, staff: staffRepo}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) tokenFor(t *testing.T, uid, email string, role domain.StaffRole) string {
	t.Helper()
	token, _, err := e.tokens.GenerateToken(uid, email, role)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRequestWithoutTokenUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestTaskStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)
	env.tasks.records["task-1"] = domain.Task{ID: "task-1", AssignedTo: "user-uid", Title: "x", Status: domain.TaskStatusPending}
	token := env.tokenFor(t, "user-uid", "tech@example.com", domain.StaffRoleUser)

	resp := env.request(t, http.MethodPatch, "/tasks/task-1/status", token, map[string]string{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
	assert.Equal(t, domain.TaskStatusPending, env.tasks.records["task-1"].Status)
}

func TestTaskStatusCompletedReturnsCompletionStamp(t *testing.T) {
	env := newTestEnv(t)
	env.tasks.records["task-1"] = domain.Task{ID: "task-1", AssignedTo: "user-uid", Title: "x", Status: domain.TaskStatusPending}
	token := env.tokenFor(t, "user-uid", "tech@example.com", domain.StaffRoleUser)

	resp := env.request(t, http.MethodPatch, "/tasks/task-1/status", token, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "completed", data["status"])
	assert.NotNil(t, data["completedAt"])

	resp = env.request(t, http.MethodPatch, "/tasks/task-1/status", token, map[string]string{"status": "pending"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data = decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.Nil(t, data["completedAt"])
}

func TestTaskListScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	env.tasks.records["task-1"] = domain.Task{ID: "task-1", AssignedTo: "user-uid", Title: "mine", Status: domain.TaskStatusPending}
	env.tasks.records["task-2"] = domain.Task{ID: "task-2", AssignedTo: "other-uid", Title: "theirs", Status: domain.TaskStatusPending}
	token := env.tokenFor(t, "user-uid", "tech@example.com", domain.StaffRoleUser)

	resp := env.request(t, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "task-1", data[0].(map[string]any)["id"])
}

func TestTaskCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.tokenFor(t, "user-uid", "tech@example.com", domain.StaffRoleUser)
	payload := map[string]string{"assignedTo": "user-uid", "title": "replace fiber patch"}

	resp := env.request(t, http.MethodPost, "/tasks", userToken, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := env.tokenFor(t, "admin-uid", "admin@example.com", domain.StaffRoleAdmin)
	resp = env.request(t, http.MethodPost, "/tasks", adminToken, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "pending", data["status"])
}

func TestSiteDeleteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.sites.records["site-1"] = domain.Site{ID: "site-1", SiteID: "GT-0042", SiteName: "Hillcrest North"}

	userToken := env.tokenFor(t, "user-uid", "tech@example.com", domain.StaffRoleUser)
	resp := env.request(t, http.MethodDelete, "/sites/site-1", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, env.sites.records, "site-1")

	adminToken := env.tokenFor(t, "admin-uid", "admin@example.com", domain.StaffRoleAdmin)
	resp = env.request(t, http.MethodDelete, "/sites/site-1", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotContains(t, env.sites.records, "site-1")
}

func TestSiteGetVisibleToAnyAuthenticatedCaller(t *testing.T) {
	env := newTestEnv(t)
	env.sites.records["site-1"] = domain.Site{ID: "site-1", SiteID: "GT-0042", SiteName: "Hillcrest North"}
	token := env.tokenFor(t, "user-uid", "tech@example.com", domain.StaffRoleUser)

	resp := env.request(t, http.MethodGet, "/sites/site-1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "Hillcrest North", data["siteName"])
}

func TestUnknownSiteNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "user-uid", "tech@example.com", domain.StaffRoleUser)

	resp := env.request(t, http.MethodGet, "/sites/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}
