// Package extraction converts uploaded resume files into plain text.
package extraction

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-intake/internal/types"
)

// MinContentLength is the shortest normalized text accepted for parsing.
const MinContentLength = 10

// ExtractContent returns the text of data according to mimeType.
// Plain text is returned as is; no normalization is applied here.
func ExtractContent(ctx context.Context, data []byte, mimeType string) (*types.ExtractedContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch canonicalMIME(mimeType) {
	case types.MIMETypePDF:
		return extractPDF(data)
	case types.MIMETypeDOCX:
		return extractDOCX(data)
	case types.MIMETypeText:
		return &types.ExtractedContent{Text: string(data), AnnotationLinks: []string{}}, nil
	case types.MIMETypeHTML:
		return extractHTML(data)
	case types.MIMETypeDOC:
		return nil, fmt.Errorf("%w: legacy .doc files are not supported, convert the document to PDF or DOCX", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, mimeType)
	}
}

// ExtractFile extracts and normalizes a named upload. When mimeType is empty or
// generic the type is inferred from the file extension. The result is
// guaranteed to hold at least MinContentLength characters.
func ExtractFile(ctx context.Context, data []byte, fileName, mimeType string) (*types.ExtractedContent, error) {
	resolved := ResolveMIMEType(fileName, mimeType)

	content, err := ExtractContent(ctx, data, resolved)
	if err != nil {
		return nil, err
	}

	content.Text = NormalizeText(content.Text)
	if len([]rune(content.Text)) < MinContentLength {
		return nil, fmt.Errorf("%w: %s contains fewer than %d characters of text", ErrEmptyContent, fileName, MinContentLength)
	}
	return content, nil
}

// ResolveMIMEType returns the declared MIME type, or one inferred from the file
// extension when the declared type is missing or application/octet-stream.
func ResolveMIMEType(fileName, declared string) string {
	declared = canonicalMIME(declared)
	if declared != "" && declared != types.MIMETypeOctet {
		return declared
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return types.MIMETypePDF
	case ".docx":
		return types.MIMETypeDOCX
	case ".doc":
		return types.MIMETypeDOC
	case ".txt", ".text", ".md":
		return types.MIMETypeText
	case ".html", ".htm":
		return types.MIMETypeHTML
	}
	if declared == "" {
		return types.MIMETypeOctet
	}
	return declared
}

// canonicalMIME strips parameters such as "; charset=utf-8" and lowercases.
func canonicalMIME(mimeType string) string {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		return ""
	}
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}
	return strings.ToLower(mimeType)
}
