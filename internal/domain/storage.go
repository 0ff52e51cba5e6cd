package domain

import (
	"context"
	"io"
)

// FileStorage persists artifacts and previews under a single directory.
type FileStorage interface {
	Save(ctx context.Context, r io.Reader, id string, originalName string) (*StoredFile, error)
	ArtifactPath(id string, format Format) string
	PreviewPath(id string) string
	ReadPreview(id string) (string, error)
	Stat(id string, format Format) (int64, error)
	Remove(id string, format Format) error
	Dir() string
}
