package webcrawler

import (
	"strconv"
	"strings"
)

// FormatResult renders a result as the three-line text handed to agents:
// URL, status, and content, in that order.
func FormatResult(r *FetchResult) string {
	return strings.Join([]string{
		"URL: " + r.URL,
		"STATUS: " + strconv.Itoa(r.StatusCode) + " (" + r.StatusText + ")",
		"CONTENT: " + r.Content,
	}, "\n")
}
