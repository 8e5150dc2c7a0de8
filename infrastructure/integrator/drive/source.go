package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const listFields = "nextPageToken, files(id, name, mimeType)"

// Source lists and downloads the files dropped in one Drive folder.
type Source struct {
	folderID string
	files    *drive.FilesService
}

// New builds a Drive-backed source. Extra options override the transport
// (tests point it at an httptest server).
func New(ctx context.Context, cfg config.Drive, opts ...option.ClientOption) (*Source, error) {
	if cfg.FolderID == "" {
		return nil, errors.New("drive: folder id is required")
	}

	if cfg.AccessToken != "" {
		tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
		opts = append([]option.ClientOption{option.WithTokenSource(tokens)}, opts...)
	}

	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "drive: create service")
	}

	return &Source{folderID: cfg.FolderID, files: service.Files}, nil
}

// ListFiles returns the non-trashed files of the folder.
func (s *Source) ListFiles(ctx context.Context) ([]domain.DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", strings.ReplaceAll(s.folderID, "'", `\'`))

	var files []domain.DriveFile
	err := s.files.List().
		Q(query).
		Fields(listFields).
		PageSize(1000).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(list *drive.FileList) error {
			for _, f := range list.Files {
				files = append(files, domain.DriveFile{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
			}
			return nil
		})
	if err != nil {
		return nil, errors.Wrap(err, "drive: list folder files")
	}

	logrus.WithField("total_files", len(files)).Debug("drive: listed folder")
	return files, nil
}

// Download returns the file content. Google Sheets are exported as CSV.
func (s *Source) Download(ctx context.Context, file domain.DriveFile) ([]byte, error) {
	var (
		body io.ReadCloser
		err  error
	)

	if file.IsSheet() {
		resp, exportErr := s.files.Export(file.ID, domain.MimeCSV).Context(ctx).Download()
		err = exportErr
		if resp != nil {
			body = resp.Body
		}
	} else {
		resp, getErr := s.files.Get(file.ID).SupportsAllDrives(true).Context(ctx).Download()
		err = getErr
		if resp != nil {
			body = resp.Body
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "drive: download %s", file.Name)
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(err, "drive: read %s", file.Name)
	}
	return content, nil
}
