package http

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vorobyoffn/Financial-Dashboard/internal/files"
	"github.com/vorobyoffn/Financial-Dashboard/internal/services"
	"github.com/vorobyoffn/Financial-Dashboard/pkg/contracts/domain"
)

var testAllowed = []string{"xls", "xlsx", "csv"}

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_Upload(t *testing.T) {
	dir := t.TempDir()
	store := files.NewManager(dir, files.ManagerOptions{AllowedExtensions: testAllowed, MaxBytes: 64})

	tests := []struct {
		name           string
		request        func(t *testing.T) *http.Request
		setupMock      func(*MockCatalogService)
		expectedStatus int
		expectedBody   string
		stored         string
		removed        string
	}{
		{
			name: "stores and inspects",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, UploadFormField, "Package_ISX_2024_03_15.csv", "symbol\nBBOB\n")
			},
			setupMock: func(m *MockCatalogService) {
				m.On("InspectFile", filepath.Join(dir, "Package_ISX_2024_03_15.csv")).Return(domain.Catalog{
					Package:   domain.PackageInfo{Filename: "Package_ISX_2024_03_15.csv", PackageName: "Package_ISX_2024"},
					Companies: []domain.CompanyInfo{{Symbol: "BBOB", Name: "BBOB"}},
					Rows:      1,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"package_name":"Package_ISX_2024"`,
			stored:         "Package_ISX_2024_03_15.csv",
		},
		{
			name: "path components stripped",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, UploadFormField, `..\..\evil.csv`, "symbol\n")
			},
			setupMock: func(m *MockCatalogService) {
				m.On("InspectFile", filepath.Join(dir, "evil.csv")).Return(domain.Catalog{
					Package: domain.PackageInfo{Filename: "evil.csv", PackageName: "evil"},
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"filename":"evil.csv"`,
		},
		{
			name: "missing file field",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "", "", "")
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"MISSING_FILE"`,
		},
		{
			name: "not multipart",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("{}"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"INVALID_REQUEST"`,
		},
		{
			name: "unsupported extension",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, UploadFormField, "notes.txt", "hello")
			},
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedBody:   `"UNSUPPORTED_FILE"`,
		},
		{
			name: "too large",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, UploadFormField, "big.csv", strings.Repeat("x", 65))
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedBody:   `"FILE_TOO_LARGE"`,
		},
		{
			name: "unreadable table",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, UploadFormField, "broken.xlsx", "not a workbook")
			},
			setupMock: func(m *MockCatalogService) {
				m.On("InspectFile", filepath.Join(dir, "broken.xlsx")).
					Return(domain.Catalog{}, errors.New("zip: not a valid zip file"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `file could not be read as a table`,
			removed:        "broken.xlsx",
		},
		{
			name: "unsupported by loader",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, UploadFormField, "legacy.xls", "x")
			},
			setupMock: func(m *MockCatalogService) {
				m.On("InspectFile", filepath.Join(dir, "legacy.xls")).
					Return(domain.Catalog{}, services.ErrInvalidFileType)
			},
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedBody:   `file type is not supported`,
			removed:        "legacy.xls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}
			logger, errorHandler := testErrorHandler()
			handler := NewUploadHandler(store, svc, 64, testAllowed, logger, errorHandler)

			rec := httptest.NewRecorder()
			handler.Upload(rec, tt.request(t))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			if tt.stored != "" {
				assert.FileExists(t, filepath.Join(dir, tt.stored))
			}
			if tt.removed != "" {
				assert.NoFileExists(t, filepath.Join(dir, tt.removed))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestUploadHandler_StoreFailure(t *testing.T) {
	store := new(MockFileStore)
	store.On("Save", "a.csv").Return("", errors.New("disk full"))
	svc := new(MockCatalogService)

	logger, errorHandler := testErrorHandler()
	handler := NewUploadHandler(store, svc, 64, testAllowed, logger, errorHandler)

	rec := httptest.NewRecorder()
	handler.Upload(rec, multipartRequest(t, UploadFormField, "a.csv", "x"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	svc.AssertNotCalled(t, "InspectFile", mock.Anything)
	store.AssertNotCalled(t, "Remove", mock.Anything)
	store.AssertExpectations(t)
}

func TestUploadHandler_RemoveFailureStillReportsParseError(t *testing.T) {
	store := new(MockFileStore)
	store.On("Save", "bad.csv").Return("/input/bad.csv", nil)
	store.On("Remove", "bad.csv").Return(errors.New("permission denied"))
	svc := new(MockCatalogService)
	svc.On("InspectFile", "/input/bad.csv").Return(domain.Catalog{}, errors.New("no tabular data found"))

	logger, errorHandler := testErrorHandler()
	handler := NewUploadHandler(store, svc, 64, testAllowed, logger, errorHandler)

	rec := httptest.NewRecorder()
	handler.Upload(rec, multipartRequest(t, UploadFormField, "bad.csv", "x"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	store.AssertExpectations(t)
	svc.AssertExpectations(t)
}
