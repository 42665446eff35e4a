package parsing

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeBase64 decodes uploaded file content. It accepts the standard and
// URL-safe alphabets, with or without padding, and an optional data: URL prefix.
func DecodeBase64(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "data:") {
		idx := strings.Index(content, ",")
		if idx < 0 {
			return nil, fmt.Errorf("%w: malformed data URL", ErrInvalidEncoding)
		}
		content = content[idx+1:]
	}
	content = strings.Join(strings.Fields(content), "")
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrInvalidEncoding)
	}

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	for _, enc := range encodings {
		if data, err := enc.DecodeString(content); err == nil {
			return data, nil
		}
	}
	return nil, ErrInvalidEncoding
}
