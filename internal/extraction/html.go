package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-intake/internal/types"
)

// blockElements end a line of extracted text.
const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, tr, br, section, article, header, footer"

func extractHTML(data []byte) (*types.ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %w", ErrParseFailure, err)
	}

	doc.Find("script, style, noscript, template").Remove()

	links := []string{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			links = append(links, href)
		}
	})

	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return &types.ExtractedContent{
		Text:            doc.Find("body").Text(),
		AnnotationLinks: links,
	}, nil
}
