// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"doc-ingest/internal/domain"
	apperrors "doc-ingest/pkg/errors"

	"github.com/gorilla/mux"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// UploadHandler handles document upload and text retrieval requests
type UploadHandler struct {
	uploadService domain.UploadService
	maxFileSize   int64
	logger        domain.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService domain.UploadService, maxFileSize int64, logger domain.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxFileSize:   maxFileSize,
		logger:        logger,
	}
}

// UploadPDF handles POST /api/upload-pdf. Only PDFs are accepted.
func (h *UploadHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, []domain.Format{domain.FormatPDF})
}

// Upload handles POST /api/upload for every supported format.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.SupportedFormats)
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request, allowed []domain.Format) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAppError(w, apperrors.NewTooLargeError("File too large", h.maxFileSize))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if originalName == "" || originalName == "." || originalName == string(filepath.Separator) {
		originalName = "document"
	}

	result, err := h.uploadService.Upload(r.Context(), file, originalName, allowed)
	if err != nil {
		if apperrors.GetStatusCode(err) >= http.StatusInternalServerError {
			h.logger.Error("Upload failed", err, "filename", originalName)
		}
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetText handles GET /api/pdf/{file_id}/text
func (h *UploadHandler) GetText(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["file_id"]

	text, err := h.uploadService.GetText(r.Context(), fileID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, text)
}

// GetMetadata handles GET /api/pdf/{file_id}
func (h *UploadHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["file_id"]

	meta, err := h.uploadService.GetMetadata(r.Context(), fileID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meta)
}
