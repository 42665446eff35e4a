package extraction

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jonathan/resume-intake/internal/types"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func extractPDF(data []byte) (content *types.ExtractedContent, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty PDF", ErrParseFailure)
	}

	// pdfcpu validates the cross-reference structure before text extraction.
	pages, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid PDF: %w", ErrParseFailure, err)
	}

	// ledongthuc/pdf panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("%w: reading PDF text: %v", ErrParseFailure, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %w", ErrParseFailure, err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF text: %w", ErrParseFailure, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, fmt.Errorf("%w: reading PDF text: %w", ErrParseFailure, err)
	}

	return &types.ExtractedContent{
		Text:            buf.String(),
		AnnotationLinks: []string{},
		Pages:           pages,
	}, nil
}
