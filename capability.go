package webcrawler

// Capability metadata advertised to agents.
const (
	CapabilityName        = "WebCrawler"
	CapabilityDescription = "Retrieves content from a given URL"
)

// Capability is the name, description and input schema an agent uses to
// decide when and how to invoke a tool.
type Capability struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Input holds the arguments an agent passes to the WebCrawler capability.
type Input struct {
	URL string `json:"url" jsonschema:"required,format=uri,description=Website URL"`
}

// Validate returns an error if the input contains invalid fields.
func (in *Input) Validate() error {
	return ValidateURL(in.URL)
}
