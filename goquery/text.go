package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webcrawler"
	"golang.org/x/net/html"
)

// Ensure TextConverter implements webcrawler.Converter at compile time.
var _ webcrawler.Converter = (*TextConverter)(nil)

// strippedSelector matches elements removed together with their content.
const strippedSelector = "script, style, noscript, template, svg, iframe, object"

// blockElements start and end a line of text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "caption": true, "dd": true, "details": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "summary": true, "table": true, "tbody": true,
	"tfoot": true, "thead": true, "title": true, "tr": true, "ul": true,
}

// cellElements are separated from their neighbours by a space.
var cellElements = map[string]bool{
	"td": true, "th": true,
}

// TextConverter strips HTML down to readable plain text.
// Tags and comments are removed, entities are decoded by the parser, and
// whitespace is collapsed so that each block element yields one line.
// Decoded text that would read as a tag is escaped with webcrawler.EscapeTags.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert transforms HTML content into plain text.
func (c *TextConverter) Convert(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", webcrawler.Errorf(webcrawler.EINTERNAL, "failed to parse HTML: %v", err)
	}

	doc.Find(strippedSelector).Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		writeText(&sb, n)
	}

	return webcrawler.EscapeTags(normalize(sb.String())), nil
}

// writeText appends the text of n and its descendants to sb, marking
// block boundaries with newlines.
func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	cell := n.Type == html.ElementNode && cellElements[n.Data]
	if block {
		sb.WriteByte('\n')
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeText(sb, child)
	}

	if block {
		sb.WriteByte('\n')
	} else if cell {
		sb.WriteByte(' ')
	}
}

// normalize collapses whitespace within lines and drops empty lines.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
