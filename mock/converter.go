package mock

import "github.com/fwojciec/webcrawler"

var _ webcrawler.Converter = (*Converter)(nil)

// Converter stands in for the page-to-text step so fetcher tests can pin
// the content or force a conversion failure.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
