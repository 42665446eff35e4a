package extraction

import "errors"

var (
	// ErrUnsupportedFormat is returned for MIME types the extractor cannot read.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyContent is returned when a document yields too little text to parse.
	ErrEmptyContent = errors.New("empty content")

	// ErrParseFailure is returned when a format parser fails on the input bytes.
	ErrParseFailure = errors.New("parse failure")
)
