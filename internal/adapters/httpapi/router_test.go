package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/praxis/internal/adapters/filesystem"
	"github.com/example/praxis/internal/adapters/sqlite"
	"github.com/example/praxis/internal/app"
	"github.com/example/praxis/internal/db"
	"github.com/example/praxis/internal/metrics"
	"github.com/example/praxis/internal/validation"
	"github.com/example/praxis/internal/version"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

type testEnv struct {
	handler http.Handler
	tokens  *TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	dir := t.TempDir()
	filesDir := filepath.Join(dir, "files")
	storage, err := filesystem.NewFileStorage(filesDir, "/files")
	require.NoError(t, err)

	clients := sqlite.NewClientRepository(database)
	cases := sqlite.NewCaseRepository(database)
	tasks := sqlite.NewTaskRepository(database)
	processes := sqlite.NewJudicialProcessRepository(database)
	profiles := sqlite.NewProfileRepository(database)
	tracker := validation.NewTracker(nil)

	svc := Services{
		Clients:   app.NewClientService(clients, tracker),
		Cases:     app.NewCaseService(cases),
		Tasks:     app.NewTaskService(tasks),
		Processes: app.NewJudicialProcessService(processes, tracker),
		Templates: app.NewTemplateService(sqlite.NewTemplateRepository(database), storage),
		Profiles:  app.NewProfileService(profiles, sqlite.NewIconRepository(database), storage),
		Theme:     app.NewThemeService(profiles, filesystem.NewLocalStore(filepath.Join(dir, "local.json")), time.Minute),
		Billing:   app.NewBillingService(sqlite.NewPaymentRepository(database), profiles),
		Dashboard: app.NewDashboardService(clients, cases, tasks, processes),
		Account:   app.NewAccountService(sqlite.NewCountRepository(database)),
		Tracker:   tracker,
	}

	tokens, err := NewTokenIssuer("test-secret", "praxis", time.Hour)
	require.NoError(t, err)

	return &testEnv{
		handler: NewRouter(svc, Options{Tokens: tokens, Metrics: metrics.New(), FilesDir: filesDir}),
		tokens:  tokens,
	}
}

func (e *testEnv) token(t *testing.T, userID string, admin bool) string {
	t.Helper()
	tok, err := e.tokens.Issue(userID, userID+"@example.com", admin)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) upload(t *testing.T, path, token, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthzAndRequestID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	body := decodeBody[struct {
		Status  string       `json:"status"`
		Version version.Info `json:"version"`
	}](t, rec)
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Version.Commit)
	assert.NotEmpty(t, body.Version.GoVersion)
}

func TestAuthentication(t *testing.T) {
	env := newTestEnv(t)
	other, err := NewTokenIssuer("other-secret", "praxis", time.Hour)
	require.NoError(t, err)
	forged, err := other.Issue("user-1", "", false)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"wrong signature", forged, http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"valid", env.token(t, "user-1", false), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/clients", tt.token, nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestClientLifecycle(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", false)

	rec := env.do(t, http.MethodPost, "/api/clients", tok, map[string]any{
		"name": "Maria Souza", "cpf": "52998224725", "category": "social-security", "phone": "11999998888",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "CLIENT-001", created["id"])
	assert.Equal(t, "529.982.247-25", created["cpf"])
	assert.Equal(t, "(11) 99999-8888", created["phone"])

	rec = env.do(t, http.MethodPost, "/api/cases", tok, map[string]any{
		"clientId": "CLIENT-001", "category": "social-security",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/api/clients/CLIENT-001", tok, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/clients/CLIENT-001?force=true", tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/clients/CLIENT-001", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationErrorsAre422WithFields(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", false)

	rec := env.do(t, http.MethodPost, "/api/clients", tok, map[string]any{
		"name": "", "cpf": "11111111111", "category": "civil",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody[errorBody](t, rec)
	assert.Equal(t, "validation", body.Code)
	assert.Equal(t, validation.MsgCPFRepeated, body.Fields["cpf"])
	assert.Contains(t, body.Fields, "name")

	rec = env.do(t, http.MethodPost, "/api/processes", tok, map[string]any{
		"clientId": "CLIENT-404", "processNumber": "123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUnknownFieldsAreRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/tasks", env.token(t, "user-1", false), map[string]any{"titel": "typo"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsersCannotSeeEachOthersRecords(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/tasks", env.token(t, "user-1", false), map[string]any{"title": "Protocolar petição"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/tasks/TASK-001", env.token(t, "user-2", false), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTaskClearsDescription(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", false)
	rec := env.do(t, http.MethodPost, "/api/tasks", tok, map[string]any{"title": "Protocolar petição", "description": "urgente"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPatch, "/api/tasks/TASK-001", tok, map[string]any{"description": ""})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	task := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Protocolar petição", task["title"])
	assert.NotContains(t, task, "description")
}

func TestThemeRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", false)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/profile", tok, nil).Code)

	rec := env.do(t, http.MethodPut, "/api/theme/header-color", tok, map[string]string{"value": "#1f2937"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, res["synced"])

	rec = env.do(t, http.MethodGet, "/api/theme", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeBody[struct {
		Settings struct {
			HeaderColor string `json:"headerColor"`
			TextColor   string `json:"textColor"`
		} `json:"settings"`
		Source string `json:"source"`
	}](t, rec)
	assert.Equal(t, "#1F2937", state.Settings.HeaderColor)
	assert.Equal(t, "text-white", state.Settings.TextColor)
	assert.Equal(t, "remote", state.Source)

	rec = env.do(t, http.MethodPut, "/api/theme/button-color", tok, map[string]string{"value": "green"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestThemeIsIsolatedBetweenUsers(t *testing.T) {
	env := newTestEnv(t)
	alice := env.token(t, "alice", false)
	bob := env.token(t, "bob", false)

	rec := env.do(t, http.MethodPut, "/api/theme/header-color", alice, map[string]string{"value": "#112233"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/theme", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeBody[struct {
		Settings struct {
			HeaderColor string `json:"headerColor"`
		} `json:"settings"`
	}](t, rec)
	assert.Equal(t, "#8B9474", state.Settings.HeaderColor)
}

func TestTemplateUploadAndDownload(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "user-1", false)

	rec := env.upload(t, "/api/catalog/2.1/files", tok, "modelo.pdf", pdfBytes)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	file := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "application/pdf", file["mimeType"])

	rec = env.do(t, http.MethodGet, "/api/template-files/"+file["id"].(string), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pdfBytes, rec.Body.Bytes())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "modelo.pdf")

	rec = env.upload(t, "/api/catalog/2.1/files", tok, "notas.pdf", []byte("plain text"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/templates?search=transito", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, rec), 1)
}

func TestConfirmPaymentRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.token(t, "user-2", false)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/profile", user, nil).Code)
	rec := env.do(t, http.MethodPost, "/api/payments", user, map[string]any{"amountCents": 9900, "method": "pix"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/admin/users/user-2/confirm-payment", user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/admin/users/user-2/confirm-payment", env.token(t, "admin-1", true), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "confirmed", decodeBody[map[string]any](t, rec)["status"])

	rec = env.do(t, http.MethodGet, "/api/profile", user, nil)
	assert.Equal(t, true, decodeBody[map[string]any](t, rec)["subscriptionActive"])

	rec = env.do(t, http.MethodGet, "/api/invoices", user, nil)
	assert.Len(t, decodeBody[[]map[string]any](t, rec), 1)
}

func TestConfirmPaymentForUserWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.token(t, "user-3", false)
	admin := env.token(t, "admin-1", true)
	rec := env.do(t, http.MethodPost, "/api/payments", user, map[string]any{"amountCents": 9900, "method": "pix"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/admin/users/user-3/confirm-payment", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/profile", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody[map[string]any](t, rec)["subscriptionActive"])

	rec = env.do(t, http.MethodPost, "/api/admin/users/user-3/confirm-payment", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestValidateEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/validate", "", map[string]string{"kind": "cpf", "value": "52998224725"})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, res["isValid"])
	assert.Equal(t, "529.982.247-25", res["formatted"])

	rec = env.do(t, http.MethodPost, "/api/validate", "", map[string]string{"kind": "phone", "value": "1188888888"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, validation.MsgPhoneRepeated, decodeBody[map[string]any](t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/validate", "", map[string]string{"kind": "zip", "value": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDebugValidationShowsOnlyOwnRecords(t *testing.T) {
	env := newTestEnv(t)
	alice := env.token(t, "alice", false)
	bob := env.token(t, "bob", false)

	rec := env.do(t, http.MethodPost, "/api/clients", alice, map[string]any{
		"name": "Maria Souza", "cpf": "11111111111", "category": "civil",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/debug/validation", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "alice")
	bobView := decodeBody[struct {
		ValidationErrors []map[string]any `json:"validationErrors"`
	}](t, rec)
	assert.Empty(t, bobView.ValidationErrors)

	rec = env.do(t, http.MethodGet, "/api/debug/validation", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	aliceView := decodeBody[struct {
		ValidationErrors []map[string]any `json:"validationErrors"`
	}](t, rec)
	require.NotEmpty(t, aliceView.ValidationErrors)
	assert.Equal(t, "alice", aliceView.ValidationErrors[0]["userId"])
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/clients", "", nil)

	rec := env.do(t, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `praxis_api_errors_total{kind="unauthenticated"} 1`), body)
	assert.Contains(t, body, `praxis_http_requests_total{method="GET",route="/api/clients`)
}
