package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/resume-intake/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
    <w:p><w:hyperlink r:id="rId5"><w:r><w:t>GitHub</w:t></w:r></w:hyperlink></w:p>
    <w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go, React</w:t></w:r></w:p>
  </w:body>
</w:document>`

const sampleRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
  <Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://github.com/janedoe" TargetMode="External"/>
</Relationships>`

const sampleContentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

func buildDOCX(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractContent_PlainTextPassthrough(t *testing.T) {
	input := "Jane   Doe\r\n\n\n\nEngineer  "

	content, err := ExtractContent(context.Background(), []byte(input), types.MIMETypeText)
	require.NoError(t, err)

	assert.Equal(t, input, content.Text)
	assert.Empty(t, content.AnnotationLinks)
}

func TestExtractContent_MIMEParameters(t *testing.T) {
	content, err := ExtractContent(context.Background(), []byte("hello world"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "hello world", content.Text)
}

func TestExtractContent_DOCX(t *testing.T) {
	data := buildDOCX(t, map[string]string{
		"[Content_Types].xml":          sampleContentTypesXML,
		"word/document.xml":            sampleDocumentXML,
		"word/_rels/document.xml.rels": sampleRelsXML,
	})

	content, err := ExtractContent(context.Background(), data, types.MIMETypeDOCX)
	require.NoError(t, err)

	assert.Contains(t, content.Text, "Jane Doe")
	assert.Contains(t, content.Text, "Senior Engineer")
	assert.Contains(t, content.Text, "Go, React")
	assert.Equal(t, []string{"https://github.com/janedoe"}, content.AnnotationLinks)
}

func TestExtractContent_DOCXWithoutRelationships(t *testing.T) {
	data := buildDOCX(t, map[string]string{
		"[Content_Types].xml": sampleContentTypesXML,
		"word/document.xml":   sampleDocumentXML,
	})

	content, err := ExtractContent(context.Background(), data, types.MIMETypeDOCX)
	require.NoError(t, err)
	assert.Empty(t, content.AnnotationLinks)
}

func TestExtractContent_DOCXMissingDocument(t *testing.T) {
	tests := map[string]map[string]string{
		"no document": {
			"[Content_Types].xml": sampleContentTypesXML,
			"word/styles.xml":     "<styles/>",
		},
		"no content types": {
			"word/document.xml": sampleDocumentXML,
		},
	}

	for name, parts := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractContent(context.Background(), buildDOCX(t, parts), types.MIMETypeDOCX)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParseFailure)
		})
	}
}

func TestExtractContent_DOCXExpansionLimit(t *testing.T) {
	limit := maxDOCXUncompressed
	maxDOCXUncompressed = 64 << 10
	t.Cleanup(func() { maxDOCXUncompressed = limit })

	body := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` +
		strings.Repeat("A", 1<<20) +
		`</w:t></w:r></w:p></w:body></w:document>`
	data := buildDOCX(t, map[string]string{
		"[Content_Types].xml": sampleContentTypesXML,
		"word/document.xml":   body,
	})
	require.Less(t, len(data), 64<<10)

	_, err := ExtractContent(context.Background(), data, types.MIMETypeDOCX)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseFailure)
	assert.Contains(t, err.Error(), "limit")
}

func TestExtractContent_DOCXNotAZip(t *testing.T) {
	_, err := ExtractContent(context.Background(), []byte("definitely not a zip archive"), types.MIMETypeDOCX)
	assert.ErrorIs(t, err, ErrParseFailure)
}

// buildPDF writes a one-page PDF showing lines in Helvetica, with a valid
// cross-reference table.
func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()

	var stream strings.Builder
	stream.WriteString("BT /F1 12 Tf 72 720 Td 14 TL")
	for _, line := range lines {
		fmt.Fprintf(&stream, " (%s) Tj T*", line)
	}
	stream.WriteString(" ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractFile_PDF(t *testing.T) {
	data := buildPDF(t, "Jane Doe", "Senior Engineer", "https://github.com/janedoe")

	content, err := ExtractFile(context.Background(), data, "cv.pdf", types.MIMETypePDF)
	require.NoError(t, err)

	assert.Equal(t, 1, content.Pages)
	assert.Contains(t, content.Text, "Jane Doe")
	assert.Contains(t, content.Text, "Senior Engineer")
	assert.Contains(t, content.Text, "https://github.com/janedoe")
	assert.GreaterOrEqual(t, len([]rune(content.Text)), MinContentLength)
}

func TestExtractContent_InvalidPDF(t *testing.T) {
	_, err := ExtractContent(context.Background(), []byte("%PDF-1.4 garbage"), types.MIMETypePDF)
	assert.ErrorIs(t, err, ErrParseFailure)

	_, err = ExtractContent(context.Background(), nil, types.MIMETypePDF)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestExtractContent_HTML(t *testing.T) {
	page := `<html><head><style>body { color: red; }</style></head>
<body>
<h1>Jane Doe</h1>
<p>Backend engineer. <a href="https://linkedin.com/in/janedoe">LinkedIn</a></p>
<p><a href="mailto:jane@example.com">Email</a> <a href="/relative">Relative</a></p>
<script>var tracking = true;</script>
</body></html>`

	content, err := ExtractContent(context.Background(), []byte(page), types.MIMETypeHTML)
	require.NoError(t, err)

	assert.Contains(t, content.Text, "Jane Doe")
	assert.Contains(t, content.Text, "Backend engineer.")
	assert.NotContains(t, content.Text, "color: red")
	assert.NotContains(t, content.Text, "tracking")
	assert.Equal(t, []string{"https://linkedin.com/in/janedoe"}, content.AnnotationLinks)
}

func TestExtractContent_UnsupportedFormats(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		contains string
	}{
		{name: "legacy doc", mimeType: types.MIMETypeDOC, contains: "legacy .doc"},
		{name: "image", mimeType: "image/png", contains: "image/png"},
		{name: "empty", mimeType: "", contains: "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractContent(context.Background(), []byte("some bytes"), tt.mimeType)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestExtractContent_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractContent(ctx, []byte("hello world"), types.MIMETypeText)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractFile_NormalizesText(t *testing.T) {
	content, err := ExtractFile(context.Background(), []byte("Jane   Doe\r\n\n\n\nSoftware Engineer  "), "resume.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSoftware Engineer", content.Text)
}

func TestExtractFile_EmptyContent(t *testing.T) {
	_, err := ExtractFile(context.Background(), []byte("  short \n\n "), "resume.txt", types.MIMETypeText)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestExtractFile_DOCXByExtension(t *testing.T) {
	data := buildDOCX(t, map[string]string{
		"[Content_Types].xml": sampleContentTypesXML,
		"word/document.xml":   sampleDocumentXML,
	})

	content, err := ExtractFile(context.Background(), data, "Resume.DOCX", types.MIMETypeOctet)
	require.NoError(t, err)
	assert.Contains(t, content.Text, "Senior Engineer")
}

func TestResolveMIMEType(t *testing.T) {
	tests := []struct {
		fileName string
		declared string
		want     string
	}{
		{"cv.pdf", "", types.MIMETypePDF},
		{"cv.PDF", types.MIMETypeOctet, types.MIMETypePDF},
		{"cv.docx", "", types.MIMETypeDOCX},
		{"cv.doc", "", types.MIMETypeDOC},
		{"cv.txt", "", types.MIMETypeText},
		{"cv.html", "", types.MIMETypeHTML},
		{"cv.pdf", types.MIMETypeText, types.MIMETypeText},
		{"cv.bin", "", types.MIMETypeOctet},
		{"cv", "Application/PDF", types.MIMETypePDF},
	}

	for _, tt := range tests {
		t.Run(tt.fileName+"_"+tt.declared, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMIMEType(tt.fileName, tt.declared))
		})
	}
}
