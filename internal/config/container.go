package config

import (
	"fmt"
	"os"
	"time"

	"doc-ingest/internal/domain"
	"doc-ingest/internal/infra/disk"
	"doc-ingest/internal/service"
	"doc-ingest/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config        domain.Config
	Logger        domain.Logger
	Storage       domain.FileStorage
	UploadService domain.UploadService
	HealthService domain.HealthService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appLogger := logger.NewLogger(config.GetLogLevel(), config.GetLogFormat())

	uploadDir := config.GetUploadDir()
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", uploadDir, err)
	}

	storage := service.NewLocalStorage(uploadDir, appLogger)

	extractors := map[domain.Format]domain.Extractor{
		domain.FormatPDF:  service.NewPDFExtractor(appLogger),
		domain.FormatDOCX: service.NewDOCXExtractor(appLogger),
	}

	var sniffer domain.ContentSniffer
	if config.GetContentSniffing() {
		sniffer = service.NewMimeSniffer(appLogger)
	}

	return &Container{
		Config:        config,
		Logger:        appLogger,
		Storage:       storage,
		UploadService: service.NewUploadService(storage, extractors, sniffer, service.NewPDFCPUInspector(), appLogger),
		HealthService: service.NewHealthService(
			time.Now(),
			disk.NewStatfs(),
			uploadDir,
			config.GetDiskThresholdMB(),
			appLogger,
		),
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}
