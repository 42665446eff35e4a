package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"code.sajari.com/docconv"

	"github.com/jonathan/resume-intake/internal/types"
)

const (
	docxContentTypesPart = "[Content_Types].xml"
	docxDocumentPart     = "word/document.xml"
	docxRelsPart         = "word/_rels/document.xml.rels"
	hyperlinkRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// maxDOCXUncompressed bounds the total decompressed size of a DOCX archive.
// archive/zip refuses to inflate an entry past its declared size, so checking
// the declared sizes bounds the work done by the converter.
var maxDOCXUncompressed uint64 = 32 << 20

func extractDOCX(data []byte) (*types.ExtractedContent, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening DOCX archive: %w", ErrParseFailure, err)
	}

	var (
		total                       uint64
		contentTypes, doc, relsPart *zip.File
	)
	for _, f := range zr.File {
		total += f.UncompressedSize64
		switch f.Name {
		case docxContentTypesPart:
			contentTypes = f
		case docxDocumentPart:
			doc = f
		case docxRelsPart:
			relsPart = f
		}
	}
	if total > maxDOCXUncompressed {
		return nil, fmt.Errorf("%w: DOCX expands to %d bytes, limit is %d", ErrParseFailure, total, maxDOCXUncompressed)
	}
	if doc == nil || contentTypes == nil {
		return nil, fmt.Errorf("%w: %s not found in DOCX archive", ErrParseFailure, docxDocumentPart)
	}

	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: reading DOCX body: %w", ErrParseFailure, err)
	}

	links := []string{}
	if relsPart != nil {
		links, err = readHyperlinkTargets(relsPart)
		if err != nil {
			return nil, fmt.Errorf("%w: reading DOCX relationships: %w", ErrParseFailure, err)
		}
	}

	return &types.ExtractedContent{Text: text, AnnotationLinks: links}, nil
}

type docxRelationships struct {
	Relationships []struct {
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

// readHyperlinkTargets returns external hyperlink targets in document order.
// docconv does not report relationship targets.
func readHyperlinkTargets(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var rels docxRelationships
	if err := xml.NewDecoder(io.LimitReader(rc, int64(maxDOCXUncompressed))).Decode(&rels); err != nil {
		return nil, err
	}

	links := []string{}
	for _, rel := range rels.Relationships {
		if rel.Type != hyperlinkRelType || !strings.EqualFold(rel.TargetMode, "External") {
			continue
		}
		if target := strings.TrimSpace(rel.Target); target != "" {
			links = append(links, target)
		}
	}
	return links, nil
}
