// Package htmltomarkdown renders fetched HTML as Markdown instead of flat text.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/webcrawler"
)

var _ webcrawler.Converter = (*Converter)(nil)

// Converter renders a page as Markdown for the --format=markdown mode.
// Headings, links, lists and tables keep their structure as Markdown syntax.
type Converter struct {
	conv *converter.Converter
}

// NewConverter returns a Converter with the base, CommonMark and table plugins.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert renders html as Markdown. A body of only whitespace yields "".
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", webcrawler.Errorf(webcrawler.EINTERNAL, "failed to convert HTML: %v", err)
	}

	return strings.TrimSpace(result), nil
}
