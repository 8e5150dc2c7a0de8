package drive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"google.golang.org/api/option"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	source, err := New(context.Background(), config.Drive{FolderID: "folder-1"},
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"),
	)
	require.NoError(t, err)
	return source
}

func TestSource_ListFiles(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files", r.URL.Path)
		assert.Equal(t, "'folder-1' in parents and trashed = false", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			w.Write([]byte(`{"files":[{"id":"1","name":"G-P export.csv","mimeType":"text/csv"}],"nextPageToken":"p2"}`))
			return
		}
		w.Write([]byte(`{"files":[{"id":"2","name":"AO Historical","mimeType":"application/vnd.google-apps.spreadsheet"}]}`))
	})

	files, err := source.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.DriveFile{
		{ID: "1", Name: "G-P export.csv", MimeType: domain.MimeCSV},
		{ID: "2", Name: "AO Historical", MimeType: domain.MimeGoogleSheet},
	}, files)
}

func TestSource_Download(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/1":
			assert.Equal(t, "media", r.URL.Query().Get("alt"))
			w.Write([]byte("a,b\n1,2\n"))
		case "/files/2/export":
			assert.Equal(t, domain.MimeCSV, r.URL.Query().Get("mimeType"))
			w.Write([]byte("sheet,csv\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	content, err := source.Download(context.Background(), domain.DriveFile{ID: "1", Name: "a.csv", MimeType: domain.MimeCSV})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(content))

	content, err = source.Download(context.Background(), domain.DriveFile{ID: "2", Name: "Sheet", MimeType: domain.MimeGoogleSheet})
	require.NoError(t, err)
	assert.Equal(t, "sheet,csv\n", string(content))

	_, err = source.Download(context.Background(), domain.DriveFile{ID: "missing", Name: "gone.csv"})
	assert.Error(t, err)
}

func TestNew_RequiresFolder(t *testing.T) {
	_, err := New(context.Background(), config.Drive{})
	assert.Error(t, err)
}
