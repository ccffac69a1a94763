package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vorobyoffn/Financial-Dashboard/internal/exporter"
	"github.com/vorobyoffn/Financial-Dashboard/internal/services"
	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

func newCatalogRouter(svc *MockCatalogService, exp *MockExporter) http.Handler {
	logger, errorHandler := testErrorHandler()
	r := chi.NewRouter()
	NewCatalogHandler(svc, exp, logger, errorHandler).Register(r)
	return r
}

func TestCatalogHandler_ResolvePackages(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(*MockCatalogService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "resolves filenames",
			body:        `{"filenames":["Package_ISX_2024_03_15.xlsx","plain.csv"]}`,
			contentType: "application/json",
			setupMock: func(m *MockCatalogService) {
				m.On("ResolvePackages", []string{"Package_ISX_2024_03_15.xlsx", "plain.csv"}).Return([]domain.PackageInfo{
					{Filename: "Package_ISX_2024_03_15.xlsx", PackageName: "Package_ISX_2024",
						DateInfo: domain.DateInfo{Year: "2024", Month: "03", Day: "15", Date: "2024-03-15"}},
					{Filename: "plain.csv", PackageName: "plain"},
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"package_name":"Package_ISX_2024"`,
		},
		{
			name:           "missing filenames",
			body:           `{}`,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_FAILED"`,
		},
		{
			name:           "empty list",
			body:           `{"filenames":[]}`,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_FAILED"`,
		},
		{
			name:           "malformed json",
			body:           `{"filenames":`,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"INVALID_REQUEST"`,
		},
		{
			name:           "empty body",
			body:           ``,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Request body is empty`,
		},
		{
			name:           "wrong content type",
			body:           `filenames=a`,
			contentType:    "application/x-www-form-urlencoded",
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedBody:   `"UNSUPPORTED_MEDIA_TYPE"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			req := httptest.NewRequest(http.MethodPost, "/packages/resolve", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()

			newCatalogRouter(svc, new(MockExporter)).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestCatalogHandler_ListFiles(t *testing.T) {
	t.Run("lists inputs", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListInputs").Return([]domain.InputFile{
			{Name: "a.csv", Package: domain.PackageInfo{Filename: "a.csv", PackageName: "a"}},
		}, nil)

		rec := httptest.NewRecorder()
		newCatalogRouter(svc, new(MockExporter)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("unreadable directory", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListInputs").Return(nil, os.ErrNotExist)

		rec := httptest.NewRecorder()
		newCatalogRouter(svc, new(MockExporter)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "input directory is not readable")
	})
}

func TestCatalogHandler_GetFile(t *testing.T) {
	tests := []struct {
		name           string
		file           string
		result         domain.Catalog
		err            error
		expectedStatus int
		expectedBody   []string
	}{
		{
			name: "inspects file",
			file: "Package_ISX_2024_03_15.xlsx",
			result: domain.Catalog{
				Package:   domain.PackageInfo{Filename: "Package_ISX_2024_03_15.xlsx", PackageName: "Package_ISX_2024"},
				Companies: []domain.CompanyInfo{{Symbol: "BBOB", Name: "Bank of Baghdad"}},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"package_name":"Package_ISX_2024"`, `"BBOB"`},
		},
		{
			name:           "missing file",
			file:           "gone.csv",
			err:            fmt.Errorf("%w: gone.csv", services.ErrFileNotFound),
			expectedStatus: http.StatusNotFound,
			expectedBody:   []string{`"detail":"input file not found"`, `"file":"gone.csv"`},
		},
		{
			name:           "not an input extension",
			file:           "notes.txt",
			err:            fmt.Errorf("%w: notes.txt", services.ErrInvalidFileType),
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedBody:   []string{`"file":"notes.txt"`},
		},
		{
			name:           "bad name",
			file:           "..",
			err:            fmt.Errorf("%w: \"..\"", services.ErrInvalidInput),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{`"INVALID_REQUEST"`},
		},
		{
			name:           "unreadable workbook",
			file:           "broken.xlsx",
			err:            errors.New("failed to load broken.xlsx: zip: not a valid zip file"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   []string{`"file":"broken.xlsx"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogService)
			svc.On("InspectInput", tt.file).Return(tt.result, tt.err)

			rec := httptest.NewRecorder()
			newCatalogRouter(svc, new(MockExporter)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/"+tt.file, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			for _, want := range tt.expectedBody {
				assert.Contains(t, rec.Body.String(), want)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCatalogHandler_GetCatalog(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("ScanInputs").Return([]domain.Catalog{
		{Package: domain.PackageInfo{Filename: "ok.csv", PackageName: "ok"}, Indices: []domain.IndexEntry{}},
		{Package: domain.PackageInfo{Filename: "bad.xlsx", PackageName: "bad"}, Error: "failed to load bad.xlsx"},
	}, nil)

	rec := httptest.NewRecorder()
	newCatalogRouter(svc, new(MockExporter)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
	assert.Contains(t, rec.Body.String(), `"error":"failed to load bad.xlsx"`)
	svc.AssertExpectations(t)
}

func TestCatalogHandler_ExportCatalog(t *testing.T) {
	catalogs := []domain.Catalog{{Package: domain.PackageInfo{Filename: "a.csv", PackageName: "a"}}}

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*MockCatalogService, *MockExporter)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "all formats without body",
			setupMocks: func(s *MockCatalogService, e *MockExporter) {
				s.On("ScanInputs").Return(catalogs, nil)
				e.On("Export", catalogs, []string(nil)).Return(&exporter.ExportResult{
					Companies: "/out/companies.csv",
					Catalog:   "/out/catalog.json",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"catalog":"/out/catalog.json"`,
		},
		{
			name: "json only",
			body: `{"formats":["json"]}`,
			setupMocks: func(s *MockCatalogService, e *MockExporter) {
				s.On("ScanInputs").Return(catalogs, nil)
				e.On("Export", catalogs, []string{"json"}).Return(&exporter.ExportResult{Catalog: "/out/catalog.json"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"catalogs":1`,
		},
		{
			name:           "unknown format",
			body:           `{"formats":["xml"]}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"VALIDATION_FAILED"`,
		},
		{
			name: "export failure",
			setupMocks: func(s *MockCatalogService, e *MockExporter) {
				s.On("ScanInputs").Return(catalogs, nil)
				e.On("Export", catalogs, []string(nil)).Return(nil, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to write export`,
		},
		{
			name: "scan failure",
			setupMocks: func(s *MockCatalogService, e *MockExporter) {
				s.On("ScanInputs").Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to scan input directory`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, exp := new(MockCatalogService), new(MockExporter)
			if tt.setupMocks != nil {
				tt.setupMocks(svc, exp)
			}

			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(http.MethodPost, "/catalog/export", nil)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/catalog/export", strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()

			newCatalogRouter(svc, exp).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
			exp.AssertExpectations(t)
		})
	}
}

func TestCatalogHandler_Routes(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("ScanInputs").Return([]domain.Catalog{}, nil)

	logger, errorHandler := testErrorHandler()
	r := chi.NewRouter()
	r.Mount("/api", NewCatalogHandler(svc, new(MockExporter), logger, errorHandler).Routes())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}
