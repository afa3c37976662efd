package webcrawler

import "regexp"

// Converter converts an HTML document into a markup-free representation.
type Converter interface {
	// Convert transforms HTML content into text.
	// It must be deterministic: the same input always yields the same output.
	// Empty input yields empty output.
	// Returns EINTERNAL if the document cannot be converted.
	Convert(html string) (string, error)
}

// tagOpen matches a "<" that starts something a reader would take for a tag,
// comment, declaration or processing instruction.
var tagOpen = regexp.MustCompile(`<([A-Za-z/!?])`)

// EscapeTags re-encodes each tag-opening "<" in converted text as "&lt;".
// Entity-encoded markup such as "&lt;b&gt;" decodes to "<b>"; after
// escaping it reads "&lt;b>" and cannot be mistaken for a tag.
// A "<" not followed by a tag name, as in "1 < 2", is kept. Idempotent.
func EscapeTags(text string) string {
	return tagOpen.ReplaceAllString(text, "&lt;$1")
}
