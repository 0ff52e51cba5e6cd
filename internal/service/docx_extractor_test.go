package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"doc-ingest/internal/domain"
	apperrors "doc-ingest/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOCXExtractor_DropsBlankParagraphs(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "doc.docx", buildDOCX(t, "", "Hello", "  ", "World"))

	text, err := NewDOCXExtractor(NewMockLogger()).ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld", text)
}

func TestDOCXExtractor_ExtractWritesPreview(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.docx", buildDOCX(t, "  Title  ", "", "Body & more <text>"))
	previewPath := filepath.Join(dir, "doc.txt")

	result, err := NewDOCXExtractor(NewMockLogger()).Extract(context.Background(), path, previewPath)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Units)
	assert.Equal(t, "Title\nBody & more <text>", result.Text)

	preview, err := os.ReadFile(previewPath)
	require.NoError(t, err)
	assert.Equal(t, result.Text, string(preview))
}

func TestDOCXExtractor_RunsTabsAndBreaks(t *testing.T) {
	body := `<w:p>` +
		`<w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
		`<w:r><w:t>Hel</w:t></w:r><w:r><w:t>lo</w:t></w:r>` +
		`<w:r><w:tab/><w:t>there</w:t><w:br/><w:t>next line</w:t></w:r>` +
		`<w:r><w:delText>deleted</w:delText></w:r>` +
		`</w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	path := writeFixture(t, t.TempDir(), "doc.docx", buildDOCXBody(t, body))

	text, err := NewDOCXExtractor(NewMockLogger()).ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello\tthere\nnext line\ncell", text)
}

func TestDOCXExtractor_EmptyDocumentUsesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "doc.docx", buildDOCX(t, "", "   "))

	result, err := NewDOCXExtractor(NewMockLogger()).Extract(context.Background(), path, filepath.Join(dir, "doc.txt"))
	require.NoError(t, err)

	assert.Equal(t, domain.NoTextDOCX, result.Text)
	assert.Equal(t, 2, result.Units)
	assert.True(t, result.Empty)
}

func TestDOCXExtractor_Failures(t *testing.T) {
	dir := t.TempDir()
	e := NewDOCXExtractor(NewMockLogger())

	t.Run("missing file", func(t *testing.T) {
		_, err := e.ExtractText(filepath.Join(dir, "missing.docx"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("not a zip", func(t *testing.T) {
		path := writeFixture(t, dir, "plain.docx", []byte("just some text"))
		_, err := e.ExtractText(path)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExtraction))
	})

	t.Run("zip without body", func(t *testing.T) {
		path := writeFixture(t, dir, "empty.docx", buildZip(t, map[string]string{"readme.txt": "hi"}))
		_, err := e.ExtractText(path)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExtraction))
		assert.Contains(t, err.Error(), "word/document.xml")
	})

	t.Run("malformed body", func(t *testing.T) {
		path := writeFixture(t, dir, "bad.docx", buildZip(t, map[string]string{"word/document.xml": "<w:document><w:body><w:p>"}))
		_, err := e.ExtractText(path)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExtraction))
	})
}

func TestDOCXExtractor_TruncatedBodyKeepsEarlierParagraphs(t *testing.T) {
	broken := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>survives</w:t></w:r></w:p><w:p><w:r><w:t>lost</w:r>`
	path := writeFixture(t, t.TempDir(), "doc.docx", buildZip(t, map[string]string{"word/document.xml": broken}))
	logger := NewMockLogger()

	text, err := NewDOCXExtractor(logger).ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "survives", text)
	assert.Equal(t, 1, logger.Count("WARN"))
}

func TestDOCXExtractor_TextBoxFallbackNotDuplicated(t *testing.T) {
	box := `<w:p><w:r>` +
		`<mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
		` xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"` +
		` xmlns:v="urn:schemas-microsoft-com:vml">` +
		`<mc:Choice Requires="wps"><w:drawing><wps:wsp><wps:txbx><w:txbxContent>` +
		`<w:p><w:r><w:t>Boxed</w:t></w:r></w:p>` +
		`</w:txbxContent></wps:txbx></wps:wsp></w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict><v:shape><v:textbox><w:txbxContent>` +
		`<w:p><w:r><w:t>Boxed</w:t></w:r></w:p>` +
		`</w:txbxContent></v:textbox></v:shape></w:pict></mc:Fallback>` +
		`</mc:AlternateContent>` +
		`</w:r></w:p>` +
		`<w:p><w:r><w:t>Body</w:t></w:r></w:p>`
	path := writeFixture(t, t.TempDir(), "doc.docx", buildDOCXBody(t, box))

	result, err := NewDOCXExtractor(NewMockLogger()).extract(path)
	require.NoError(t, err)

	assert.Equal(t, "Boxed\nBody", result.Text)
	assert.Equal(t, 3, result.Units)
}

func TestDOCXExtractor_IgnoresForeignNamespaces(t *testing.T) {
	body := `<w:p><w:r><w:t>kept</w:t></w:r></w:p>` +
		`<x:p xmlns:x="urn:example:other"><x:t>foreign</x:t></x:p>`
	path := writeFixture(t, t.TempDir(), "doc.docx", buildDOCXBody(t, body))

	result, err := NewDOCXExtractor(NewMockLogger()).extract(path)
	require.NoError(t, err)

	assert.Equal(t, "kept", result.Text)
	assert.Equal(t, 1, result.Units)
}
