package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/cgpa-api/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:        config.EnvDevelopment,
		APIPrefix:  "/api/v1",
		Sessions:   config.SessionConfig{Store: config.SessionStoreMemory, TTL: time.Hour, SweepInterval: time.Minute},
		Scales:     config.ScaleConfig{DefaultCode: "DEFAULT"},
		RateLimit:  config.RateLimitConfig{Requests: 100, Window: time.Minute},
		GradeSheet: config.GradeSheetConfig{Enabled: true, Title: "Grades"},
	}
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBootstrapServesCalculator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := bootstrap(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, http.StatusOK, serve(app.router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(app.router, http.MethodGet, "/ready", "").Code)

	w := serve(app.router, http.MethodPost, "/api/v1/gpa/compute", `{"courses":[{"credits":3,"grade":"A"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gpa":8`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(app.router, http.MethodPost, "/api/v1/sessions", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(app.router, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), "gpa_computations_total")
}

func TestBootstrapLoadsScaleFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "scales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`scales:
  - code: passfail
    name: Pass or fail
    entries:
      - {symbol: P, points: 10}
      - {symbol: F, points: 0}
`), 0o600))

	cfg := testConfig()
	cfg.Scales.File = path
	cfg.Scales.DefaultCode = "PASSFAIL"
	app, err := bootstrap(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer app.Close()

	w := serve(app.router, http.MethodPost, "/api/v1/gpa/compute", `{"courses":[{"credits":1,"grade":"P"},{"credits":1,"grade":"F"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"scale_code":"PASSFAIL"`)
	assert.Contains(t, w.Body.String(), `"gpa":5`)
}

func TestBootstrapRejectsUnknownDefaultScale(t *testing.T) {
	cfg := testConfig()
	cfg.Scales.DefaultCode = "MISSING"
	_, err := bootstrap(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
