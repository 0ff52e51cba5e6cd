package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "doc-ingest/pkg/errors"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusTeapot, "nope")

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type application/json, got %s", ct)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"detail":"nope"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteAppError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeAppError(rr, apperrors.NewNotFoundError("Text preview not found for this file"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"detail":"Text preview not found for this file"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	writeAppError(rr, errors.New("open /var/secret: permission denied"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if strings.Contains(rr.Body.String(), "/var/secret") {
		t.Fatalf("expected internal detail to be hidden, got %s", rr.Body.String())
	}
}
