package serve

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "photos"), 0700))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "site"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photos", "cat.jpg"), []byte("meow"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site", "index.html"), []byte("<p>hi</p>"), 0600))

	tests := []struct {
		name         string
		allowListing bool
		path         string
		status       int
	}{
		{"file", false, "/photos/cat.jpg", http.StatusOK},
		{"missing file", false, "/photos/dog.jpg", http.StatusNotFound},
		{"listing disabled", false, "/photos/", http.StatusNotFound},
		{"index served", false, "/site/", http.StatusOK},
		{"listing enabled", true, "/photos/", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Handler(dir, tt.allowListing)(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
