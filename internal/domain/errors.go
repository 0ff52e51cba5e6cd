package domain

import "errors"

// Domain errors
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrPreviewNotFound   = errors.New("preview not found")
	ErrContentMismatch   = errors.New("file content does not match its extension")
)
