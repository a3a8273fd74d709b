package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resumelens/internal/catalog"
	"resumelens/internal/config"
	apperrors "resumelens/internal/errors"
	"resumelens/internal/observability"
	"resumelens/internal/store"
)

const sampleResume = `Jordan Reyes
jordan.reyes@example.com | +1 415 555 0134 | San Francisco, CA

Summary
Backend engineer with six years of experience building data platforms
and internal services. Comfortable owning systems end to end, from
schema design through deployment and monitoring in production.

Skills
- python, sql, go, linux, git
- postgresql, redis, terraform

Experience
Senior Software Engineer, Meridian Data (2021 - present)
- Built a reporting pipeline in python that processes 40 million rows daily
- Reduced query latency by 60% by rewriting the hottest sql paths
- Mentored 3 junior engineers and led the on-call rotation for a year
Software Engineer, Halcyon Labs (2018 - 2021)
- Developed internal billing services and maintained 99.9% uptime
- Migrated legacy reports to a new warehouse with zero data loss

Education
B.S. Computer Science, State University (2018)

Projects
- Open source contributor to a sql linting tool with 2,000 stars
- Built a personal finance tracker used by 500 people

Certifications
AWS Certified Solutions Architect (2022)

Achievements
- Engineering excellence award, Meridian Data, 2023
`

func testAppConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host: "localhost",
			Port: "0",
			StoreBreaker: config.BreakerConfig{
				Enabled:          true,
				MaxRequests:      3,
				Interval:         time.Minute,
				Timeout:          time.Minute,
				MinRequests:      3,
				FailureThreshold: 0.6,
			},
		},
		App: config.AppConfig{MaxFileSize: 1 << 20},
	}
}

// newTestServer builds a server with the embedded catalog, disabled
// observability and no rate limiting
func newTestServer(t *testing.T, apiKeys []string) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	appCfg := testAppConfig()
	srv := NewServer(appCfg, ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: appCfg.App.MaxFileSize,
	}, logger)

	provider, err := catalog.NewProvider("", logger)
	if err != nil {
		t.Fatalf("failed to load embedded catalog: %v", err)
	}
	srv.catalog = provider

	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false}, appCfg)
	if err != nil {
		t.Fatalf("failed to create observability manager: %v", err)
	}

	return srv, om
}

func analyzeBody(t *testing.T, text, category, role string) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(AnalyzeRequest{
		ResumeText: text,
		Category:   category,
		Role:       role,
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return bytes.NewReader(payload)
}

func TestAnalyzeHandler(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createAnalyzeHandler(om)

	req := httptest.NewRequest(http.MethodPost, "/analyze",
		analyzeBody(t, sampleResume, "tech", "Backend Developer"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ATSScore < 0 || resp.ATSScore > 100 {
		t.Errorf("ATS score %d out of range", resp.ATSScore)
	}
	if resp.Role != "Backend Developer" {
		t.Errorf("expected role Backend Developer, got %q", resp.Role)
	}
	if resp.HistoryID != 0 {
		t.Errorf("expected no history id without storage, got %d", resp.HistoryID)
	}
	if len(resp.KeywordMatch.MissingSkills) == 0 {
		t.Error("expected some missing skills for the backend profile")
	}
}

func TestAnalyzeHandlerErrors(t *testing.T) {
	srv, om := newTestServer(t, nil)
	handler := srv.createAnalyzeHandler(om)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        `{}`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{not json`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "empty resume text",
			contentType: "application/json",
			body:        `{"resumeText":"  ","category":"tech","role":"Backend Developer"}`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "missing role",
			contentType: "application/json",
			body:        `{"resumeText":"some text","category":"tech"}`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "unknown role",
			contentType: "application/json",
			body:        `{"resumeText":"some text","category":"tech","role":"Astronaut"}`,
			wantStatus:  http.StatusNotFound,
		},
		{
			name:        "not a resume",
			contentType: "application/json",
			body:        `{"resumeText":"grocery list: apples, bread, milk","category":"tech","role":"Backend Developer"}`,
			wantStatus:  http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAnalyzeHandlerPersistsHistory(t *testing.T) {
	srv, om := newTestServer(t, nil)

	history, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = history.Close() })
	srv.history = history
	srv.storeBreaker = NewStoreBreaker(srv.AppConfig.Server.StoreBreaker, srv.Logger)

	handler := srv.createAnalyzeHandler(om)
	req := httptest.NewRequest(http.MethodPost, "/analyze",
		analyzeBody(t, sampleResume, "data", "Data Analyst"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.HistoryID == 0 {
		t.Error("expected a history id when storage is enabled")
	}

	records, err := history.ListRecent(req.Context(), 10)
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Role != "Data Analyst" {
		t.Errorf("expected role Data Analyst, got %q", records[0].Role)
	}
}

func TestRolesHandler(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/roles", nil)
	rec := httptest.NewRecorder()
	srv.rolesHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Categories map[string][]map[string]any `json:"categories"`
		RoleCount  int                         `json:"roleCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Categories["tech"]) == 0 {
		t.Error("expected tech category in role listing")
	}
	if resp.RoleCount == 0 {
		t.Error("expected a non-zero role count")
	}
}

func TestHistoryHandlerDisabled(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	srv.historyHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without storage, got %d", rec.Code)
	}
}

func TestHistoryHandlerBadLimit(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	history, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = history.Close() })
	srv.history = history

	req := httptest.NewRequest(http.MethodGet, "/history?limit=zero", nil)
	rec := httptest.NewRecorder()
	srv.historyHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad limit, got %d", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.healthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", resp["status"])
	}
}

func TestStatsHandler(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	srv.statsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rate_limiting") {
		t.Error("expected rate limiting info in stats response")
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, _ := newTestServer(t, []string{"secret-key-12345"})

	called := false
	handler := srv.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
		wantCalled bool
	}{
		{"missing key", "", "", http.StatusUnauthorized, false},
		{"invalid key", "X-API-Key", "wrong", http.StatusUnauthorized, false},
		{"valid key", "X-API-Key", "secret-key-12345", http.StatusOK, true},
		{"bearer token", "Authorization", "Bearer secret-key-12345", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodGet, "/roles", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if called != tt.wantCalled {
				t.Errorf("expected handler called=%v, got %v", tt.wantCalled, called)
			}
		})
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "empty input",
			err:  apperrors.NewValidationError(apperrors.ErrCodeEmptyInput, "empty", nil),
			want: http.StatusBadRequest,
		},
		{
			name: "not a resume",
			err:  apperrors.NewAnalysisError(apperrors.ErrCodeNotAResume, "nope", nil),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown role",
			err:  apperrors.NewValidationError(apperrors.ErrCodeUnknownRole, "who", nil),
			want: http.StatusNotFound,
		},
		{
			name: "store failure",
			err:  apperrors.NewStoreError(apperrors.ErrCodeStoreFailed, "db", nil),
			want: http.StatusServiceUnavailable,
		},
		{
			name: "plain error",
			err:  http.ErrBodyNotAllowed,
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.in); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
