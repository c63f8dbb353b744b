package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-lite-go/internal/config"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/memory"
	attendanceservice "github.com/cmlabs-hris/hrms-lite-go/internal/service/attendance"
	employeeservice "github.com/cmlabs-hris/hrms-lite-go/internal/service/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type downPinger struct{}

func (downPinger) Ping(ctx context.Context) error { return errors.New("no reachable servers") }

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			BasePath:           "/api",
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}
}

func newTestServer(t *testing.T, pinger database.Pinger) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	if pinger == nil {
		pinger = store
	}
	employeeRepo := memory.NewEmployeeRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)

	router := NewRouter(
		testConfig(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewEmployeeHandler(employeeservice.NewEmployeeService(memory.NewTransactor(), employeeRepo, attendanceRepo)),
		NewAttendanceHandler(attendanceservice.NewAttendanceService(attendanceRepo, employeeRepo)),
		NewHealthHandler(pinger),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRouter_EndToEndAttendanceUpsert(t *testing.T) {
	srv := newTestServer(t, nil)

	var created employee.EmployeeResponse
	status := do(t, srv, http.MethodPost, "/api/employees", map[string]string{
		"employee_id": "E1",
		"full_name":   "Ann Lee",
		"email":       "ann@x.com",
		"department":  "Engineering",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "E1", created.EmployeeID)
	assert.NotEmpty(t, created.ID)

	var first, second attendance.AttendanceResponse
	status = do(t, srv, http.MethodPost, "/api/attendance", map[string]string{
		"employee_id": "E1", "date": "2024-01-05", "status": "Present",
	}, &first)
	require.Equal(t, http.StatusCreated, status)

	status = do(t, srv, http.MethodPost, "/api/attendance", map[string]string{
		"employee_id": "E1", "date": "2024-01-05", "status": "Absent",
	}, &second)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, first.ID, second.ID)

	var records []attendance.AttendanceResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/attendance/employee/E1", nil, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Absent", records[0].Status)

	var stats attendance.AttendanceStatsResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/attendance/stats/E1", nil, &stats))
	assert.EqualValues(t, 1, stats.TotalDays)
	assert.EqualValues(t, 0, stats.PresentDays)
	assert.EqualValues(t, 1, stats.AbsentDays)
}

func TestRouter_EmployeeErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	body := map[string]string{
		"employee_id": "E1",
		"full_name":   "Ann Lee",
		"email":       "ann@x.com",
		"department":  "Engineering",
	}
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/employees", body, nil))

	var errBody response.ErrorBody
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/employees", body, &errBody))
	assert.Equal(t, "CONFLICT", errBody.Code)
	assert.Equal(t, "Employee ID already exists", errBody.Detail)

	body["employee_id"] = "E2"
	errBody = response.ErrorBody{}
	assert.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/employees", body, &errBody))
	assert.Equal(t, "Email already registered", errBody.Detail)

	errBody = response.ErrorBody{}
	status := do(t, srv, http.MethodPost, "/api/employees", map[string]string{"employee_id": "E3", "email": "nope"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", errBody.Code)
	assert.Contains(t, errBody.Fields, "email")
	assert.Contains(t, errBody.Fields, "full_name")

	errBody = response.ErrorBody{}
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/employees/E9", nil, &errBody))
	assert.Equal(t, "NOT_FOUND", errBody.Code)

	var list []employee.EmployeeResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/employees", nil, &list))
	assert.Len(t, list, 1)
}

func TestRouter_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := srv.Client().Post(srv.URL+"/api/employees", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_UpdateAndDeleteEmployee(t *testing.T) {
	srv := newTestServer(t, nil)

	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/employees", map[string]string{
		"employee_id": "E1", "full_name": "Ann Lee", "email": "ann@x.com", "department": "Engineering",
	}, nil))
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/attendance", map[string]string{
		"employee_id": "E1", "date": "2024-01-05", "status": "Present",
	}, nil))

	var updated employee.EmployeeResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPatch, "/api/employees/E1", map[string]string{
		"department": "Finance",
	}, &updated))
	assert.Equal(t, "Finance", updated.Department)
	assert.Equal(t, "E1", updated.EmployeeID)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPatch, "/api/employees/E1", map[string]string{}, nil))

	var deleted employee.DeleteEmployeeResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, "/api/employees/E1", nil, &deleted))
	assert.Contains(t, deleted.Message, "E1")

	var records []attendance.AttendanceResponse
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/attendance?employee_id=E1", nil, &records))
	assert.Empty(t, records)

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/employees/E1", nil, nil))
}

func TestRouter_MarkAttendanceErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/employees", map[string]string{
		"employee_id": "E1", "full_name": "Ann Lee", "email": "ann@x.com", "department": "Engineering",
	}, nil))

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"unknown employee", map[string]string{"employee_id": "E9", "date": "2024-01-05", "status": "Present"}, http.StatusNotFound},
		{"impossible date", map[string]string{"employee_id": "E1", "date": "2024-02-30", "status": "Present"}, http.StatusBadRequest},
		{"bad status", map[string]string{"employee_id": "E1", "date": "2024-01-05", "status": "Late"}, http.StatusBadRequest},
		{"missing fields", map[string]string{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, do(t, srv, http.MethodPost, "/api/attendance", tt.body, nil))
		})
	}

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/attendance/employee/E9", nil, nil))
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/attendance/stats/E9", nil, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/attendance?from=2024-02-01&to=2024-01-01", nil, nil))
}

func TestRouter_Health(t *testing.T) {
	var ok HealthResponse
	assert.Equal(t, http.StatusOK, do(t, newTestServer(t, nil), http.MethodGet, "/api/health", nil, &ok))
	assert.Equal(t, "ok", ok.Status)

	var down HealthResponse
	assert.Equal(t, http.StatusServiceUnavailable, do(t, newTestServer(t, downPinger{}), http.MethodGet, "/api/health", nil, &down))
	assert.Equal(t, "unavailable", down.Status)
}

func TestRouter_TrailingSlashAndUnknownRoute(t *testing.T) {
	srv := newTestServer(t, nil)

	var list []employee.EmployeeResponse
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/api/employees/", nil, &list))
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/unknown", nil, nil))
}
