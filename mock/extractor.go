package mock

import "github.com/fwojciec/webcrawler"

var _ webcrawler.Extractor = (*Extractor)(nil)

// Extractor stands in for main-content extraction. Returning an error or an
// empty ContentHTML drives the fetcher onto its full-page path.
type Extractor struct {
	ExtractFn func(html string) (*webcrawler.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*webcrawler.ExtractResult, error) {
	return e.ExtractFn(html)
}
