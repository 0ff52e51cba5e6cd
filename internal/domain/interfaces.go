package domain

import (
	"context"
	"io"
	"time"
)

// Extractor pulls text out of a stored artifact and writes the preview.
type Extractor interface {
	Extract(ctx context.Context, artifactPath, previewPath string) (*ExtractionResult, error)
}

// ContentSniffer checks that an artifact's bytes match its declared format.
type ContentSniffer interface {
	Check(path string, format Format) error
}

// PDFInspector reads document information from a stored PDF.
type PDFInspector interface {
	Inspect(path string) (*PDFInfo, error)
}

// DiskStats reports free space on the volume holding a path.
type DiskStats interface {
	FreeBytes(path string) (uint64, error)
}

// UploadService defines the use-case operations for uploads and retrieval.
type UploadService interface {
	Upload(ctx context.Context, file io.Reader, filename string, allowed []Format) (*UploadResult, error)
	GetText(ctx context.Context, fileID string) (*PreviewText, error)
	GetMetadata(ctx context.Context, fileID string) (*DocumentMetadata, error)
}

// HealthService reports process liveness.
type HealthService interface {
	Check(ctx context.Context) *HealthReport
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadDir() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetDiskThresholdMB() uint64
	GetContentSniffing() bool
	GetAllowedOrigins() []string
	GetShutdownTimeout() time.Duration
	Validate() error
}
