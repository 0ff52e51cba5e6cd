package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"doc-ingest/internal/domain"
	apperrors "doc-ingest/pkg/errors"

	"github.com/dustin/go-humanize"
)

// LocalStorage keeps artifacts and previews as flat files in one directory:
//
//	<dir>/<id>.<ext>   original upload
//	<dir>/<id>.txt     extracted text preview
type LocalStorage struct {
	dir    string
	logger domain.Logger
}

// NewLocalStorage creates a storage rooted at dir. The directory is created
// lazily on the first Save.
func NewLocalStorage(dir string, logger domain.Logger) *LocalStorage {
	return &LocalStorage{
		dir:    dir,
		logger: logger,
	}
}

// Dir returns the storage directory
func (s *LocalStorage) Dir() string {
	return s.dir
}

// ArtifactPath returns where the original upload for id is kept.
func (s *LocalStorage) ArtifactPath(id string, format domain.Format) string {
	return filepath.Join(s.dir, id+format.Extension())
}

// PreviewPath returns where the text preview for id is kept.
func (s *LocalStorage) PreviewPath(id string) string {
	return filepath.Join(s.dir, id+".txt")
}

// Save writes r to <dir>/<id>.<ext>, where ext comes from originalName.
// The bytes go to a temp file first and are renamed into place, so the
// artifact path only ever holds a complete upload.
func (s *LocalStorage) Save(ctx context.Context, r io.Reader, id string, originalName string) (*domain.StoredFile, error) {
	format, ok := domain.ParseFormat(originalName)
	if !ok {
		return nil, apperrors.NewInvalidFormatError(
			fmt.Sprintf("Unsupported file extension: %s", filepath.Ext(originalName)),
		).WithCause(domain.ErrUnsupportedFormat)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("Failed to create upload directory", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+id+"-*.part")
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to create upload file", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return nil, apperrors.NewStorageError("Failed to write upload", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return nil, apperrors.NewStorageError("Failed to flush upload", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, apperrors.NewStorageError("Failed to close upload", err)
	}

	artifactPath := s.ArtifactPath(id, format)
	if err := os.Rename(tmpName, artifactPath); err != nil {
		return nil, apperrors.NewStorageError("Failed to store upload", err)
	}
	committed = true

	s.logger.Debug("Artifact stored", "file_id", id, "path", artifactPath, "size", humanize.Bytes(uint64(size)))

	return &domain.StoredFile{
		ID:           id,
		Format:       format,
		OriginalName: filepath.Base(originalName),
		ArtifactPath: artifactPath,
		PreviewPath:  s.PreviewPath(id),
		Size:         size,
	}, nil
}

// ReadPreview returns the preview text for id verbatim.
func (s *LocalStorage) ReadPreview(id string) (string, error) {
	data, err := os.ReadFile(s.PreviewPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrPreviewNotFound
		}
		return "", apperrors.NewStorageError("Failed to read text preview", err)
	}
	return string(data), nil
}

// Stat returns the size of the artifact for id.
func (s *LocalStorage) Stat(id string, format domain.Format) (int64, error) {
	info, err := os.Stat(s.ArtifactPath(id, format))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, domain.ErrArtifactNotFound
		}
		return 0, apperrors.NewStorageError("Failed to stat artifact", err)
	}
	return info.Size(), nil
}

// Remove deletes the artifact and preview for id. Missing files are ignored.
func (s *LocalStorage) Remove(id string, format domain.Format) error {
	var errs []error
	for _, p := range []string{s.ArtifactPath(id, format), s.PreviewPath(id)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return apperrors.NewStorageError("Failed to remove upload", errors.Join(errs...))
	}
	return nil
}
