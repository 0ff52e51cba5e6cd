package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-pdf/fpdf"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Count(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, line := range m.messages {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

// buildPDF renders one page per entry; an empty entry makes a blank page.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		pdf.AddPage()
		if text != "" {
			pdf.Cell(40, 10, text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("failed to build PDF fixture: %v", err)
	}
	return buf.Bytes()
}

// buildDOCX writes a minimal WordprocessingML package with one w:p per entry.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, html.EscapeString(p))
	}
	return buildDOCXBody(t, body.String())
}

// buildDOCXBody wraps raw body XML in a DOCX package.
func buildDOCXBody(t *testing.T, bodyXML string) []byte {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		bodyXML +
		`</w:body></w:document>`

	return buildZip(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/document.xml": document,
	})
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	// [Content_Types].xml first, as Word writes it.
	names := make([]string, 0, len(files))
	if _, ok := files["[Content_Types].xml"]; ok {
		names = append(names, "[Content_Types].xml")
	}
	for name := range files {
		if name != "[Content_Types].xml" {
			names = append(names, name)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func writeFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
