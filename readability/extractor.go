// Package readability narrows a page to its main article with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/webcrawler"
	"github.com/go-shiori/go-readability"
)

var _ webcrawler.Extractor = (*Extractor)(nil)

// Extractor picks the article body out of a page using Mozilla's Readability
// scoring. Pages without a clear article, such as link listings, come back
// with little or no content and the fetcher converts the full page instead.
type Extractor struct{}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and article HTML of rawHTML.
// A body holding only whitespace, like the lone newline some servers send
// for an empty page, is rejected as EINVALID before parsing.
func (e *Extractor) Extract(rawHTML string) (*webcrawler.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webcrawler.Errorf(webcrawler.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, webcrawler.Errorf(webcrawler.EINTERNAL, "readability: %v", err)
	}

	return &webcrawler.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
