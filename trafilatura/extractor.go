// Package trafilatura narrows a page to its main content before conversion.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webcrawler"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ webcrawler.Extractor = (*Extractor)(nil)

// Extractor drops navigation, footers and comment threads with go-trafilatura
// so that only the page's main text reaches the converter. The readability
// fallback is enabled for pages trafilatura cannot score on its own.
type Extractor struct{}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main-content HTML of rawHTML.
// Whitespace-only bodies carry no document, so they fail with EINVALID
// instead of reaching the parser.
func (e *Extractor) Extract(rawHTML string) (*webcrawler.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webcrawler.Errorf(webcrawler.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, webcrawler.Errorf(webcrawler.EINTERNAL, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, webcrawler.Errorf(webcrawler.EINTERNAL, "render content: %v", err)
		}
	}

	return &webcrawler.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode serializes the extracted subtree back to HTML for the converter.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
