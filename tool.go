package webcrawler

import "context"

// Tool binds the WebCrawler capability to a ContentFetcher.
type Tool struct {
	Fetcher ContentFetcher
}

// NewTool creates a new Tool.
func NewTool(fetcher ContentFetcher) *Tool {
	return &Tool{Fetcher: fetcher}
}

// Call validates the input, fetches the URL, and returns the result
// rendered by FormatResult.
func (t *Tool) Call(ctx context.Context, in Input) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	result, err := t.Fetcher.Fetch(ctx, in.URL)
	if err != nil {
		return "", err
	}

	return FormatResult(result), nil
}
