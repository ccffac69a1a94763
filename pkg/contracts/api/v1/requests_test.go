package api

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestResolvePackagesRequest_Validation(t *testing.T) {
	v := validator.New()

	tooMany := make([]string, MaxFilenames+1)
	for i := range tooMany {
		tooMany[i] = "f.csv"
	}

	tests := []struct {
		name    string
		req     ResolvePackagesRequest
		wantErr bool
	}{
		{name: "valid", req: ResolvePackagesRequest{Filenames: []string{"Package_A.xlsx"}}},
		{name: "blank entries allowed", req: ResolvePackagesRequest{Filenames: []string{""}}},
		{name: "missing", req: ResolvePackagesRequest{}, wantErr: true},
		{name: "empty", req: ResolvePackagesRequest{Filenames: []string{}}, wantErr: true},
		{name: "too many", req: ResolvePackagesRequest{Filenames: tooMany}, wantErr: true},
		{name: "too long", req: ResolvePackagesRequest{Filenames: []string{strings.Repeat("a", MaxFilenameLength+1)}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExportRequest_Validation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(ExportRequest{}))
	assert.NoError(t, v.Struct(ExportRequest{Formats: []string{"csv", "json"}}))
	assert.Error(t, v.Struct(ExportRequest{Formats: []string{"xml"}}))
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string{"a"}, 1)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 1, resp.Count)
}
