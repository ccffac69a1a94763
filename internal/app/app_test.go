package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vorobyoffn/Financial-Dashboard/internal/config"
	apierrors "github.com/vorobyoffn/Financial-Dashboard/internal/errors"
	"github.com/vorobyoffn/Financial-Dashboard/internal/middleware"
	"github.com/vorobyoffn/Financial-Dashboard/internal/shared/testutil"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Security.RateLimit.Enabled = false
	cfg.Processing.Workers = 2

	logger, _ := testutil.NewTestLogger(t)
	app, err := New(cfg, logger)
	require.NoError(t, err)
	return app
}

func do(t *testing.T, app *Application, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)

	var appErr *apierrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apierrors.ErrTypeConfig, appErr.Type)
}

func TestNew_CreatesDirectories(t *testing.T) {
	app := newTestApp(t)

	for _, dir := range []string{app.Paths.InputDir, app.Paths.OutputDir, app.Paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, app.Config.Address(), app.Server.Addr)
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)

	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_ResolvePackages(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/packages/resolve",
		strings.NewReader(`{"filenames":["Package_ISX_2024_03_15.xlsx","ISX_jan05.csv",""]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, app, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["count"])

	data := body["data"].([]interface{})
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Package_ISX_2024", first["package_name"])
	assert.Equal(t, "2024-03-15", first["date_info"].(map[string]interface{})["date"])
	second := data[1].(map[string]interface{})
	assert.Equal(t, "Package_ISX_jan", second["package_name"])
	assert.Empty(t, second["date_info"])
}

func TestRouter_UploadThenCatalog(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "Package_Idx_2024_05_06.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, "index_symbol,index_name,component,return_1d\nSPX,S&P 500,AAPL,1.5\nSPX,S&P 500,MSFT,1.5\n")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := do(t, app, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"package_name":"Package_Idx_2024"`)
	assert.Contains(t, rec.Body.String(), `"components":["AAPL","MSFT"]`)
	assert.FileExists(t, app.Paths.GetInputPath("Package_Idx_2024_05_06.csv"))

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/api/files/Package_Idx_2024_05_06.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"components":["AAPL","MSFT"]`)

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/api/files/missing.csv", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "missing.csv", decode(t, rec)["file"])

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"return_1d":1.5`)

	rec = do(t, app, httptest.NewRequest(http.MethodPost, "/api/catalog/export", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	files := decode(t, rec)["files"].(map[string]interface{})
	assert.Len(t, files, 4)
	assert.FileExists(t, app.Paths.GetOutputPath("indices.csv"))
	assert.FileExists(t, app.Paths.GetOutputPath("catalog.json"))

	rec = do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "package_resolutions_total")
	assert.Contains(t, rec.Body.String(), "entities_resolved_total")
}

func TestRouter_Errors(t *testing.T) {
	app := newTestApp(t)

	t.Run("not found", func(t *testing.T) {
		rec := do(t, app, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":404`)
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := do(t, app, httptest.NewRequest(http.MethodDelete, "/api/health", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/packages/resolve", strings.NewReader(`{"filenames":[]}`))
		req.Header.Set("Content-Type", "application/json")
		rec := do(t, app, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"VALIDATION_FAILED"`)
	})
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Security.RateLimit.RPS = 0.001
	cfg.Security.RateLimit.Burst = 1

	logger, _ := testutil.NewTestLogger(t)
	app, err := New(cfg, logger)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(t, app, httptest.NewRequest(http.MethodGet, "/api/health", nil)).Code)
	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestPerformStartupHealthCheck(t *testing.T) {
	app := newTestApp(t)
	assert.NoError(t, app.performStartupHealthCheck(context.Background()))

	app.Paths.OutputDir = app.Paths.GetOutputPath("missing/sub")
	err := app.performStartupHealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Output directory not writable")
}
