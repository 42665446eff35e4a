package types

// MIME types accepted by the extraction pipeline.
const (
	MIMETypePDF   = "application/pdf"
	MIMETypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypeDOC   = "application/msword"
	MIMETypeText  = "text/plain"
	MIMETypeHTML  = "text/html"
	MIMETypeOctet = "application/octet-stream"
)

// RawDocument is an uploaded file as received. It is consumed once by extraction.
type RawDocument struct {
	Data     []byte
	MIMEType string
	FileName string
}

// ExtractedContent is the plain text of a document plus any hyperlink targets
// that were stored as document annotations rather than literal text.
type ExtractedContent struct {
	Text            string   `json:"text"`
	AnnotationLinks []string `json:"annotationLinks"`
	Pages           int      `json:"pages,omitempty"`
}
