// Package gemini implements webcrawler.Agent using Google Gemini function calling.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/webcrawler"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Agent implements webcrawler.Agent at compile time.
var _ webcrawler.Agent = (*Agent)(nil)

// Agent answers prompts with Gemini, executing WebCrawler calls the model
// requests through a webcrawler.Tool.
type Agent struct {
	client       *genai.Client
	model        string
	tool         *webcrawler.Tool
	capability   webcrawler.Capability
	instructions string
}

// Option configures an Agent.
type Option func(*Agent)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(a *Agent) {
		if model != "" {
			a.model = model
		}
	}
}

// WithSystemInstruction sets the system instruction sent with every request.
func WithSystemInstruction(text string) Option {
	return func(a *Agent) {
		a.instructions = text
	}
}

// NewAgent creates a new Agent advertising capability and executing calls
// with fetcher.
func NewAgent(client *genai.Client, fetcher webcrawler.ContentFetcher, capability webcrawler.Capability, opts ...Option) *Agent {
	a := &Agent{
		client:     client,
		model:      DefaultModel,
		tool:       webcrawler.NewTool(fetcher),
		capability: capability,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run sends prompt to the model and loops until it answers with text.
func (a *Agent) Run(ctx context.Context, prompt string, opts webcrawler.RunOptions) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", webcrawler.Errorf(webcrawler.EINVALID, "prompt required")
	}

	config := BuildConfig(a.capability, a.instructions)
	contents := []*genai.Content{genai.NewContentFromText(prompt, "user")}

	maxIterations := opts.MaxIterationsOrDefault()
	for range maxIterations {
		result, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
		if err != nil {
			return "", webcrawler.Errorf(webcrawler.EINTERNAL, "gemini request failed: %v", err)
		}
		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return "", webcrawler.Errorf(webcrawler.EINTERNAL, "gemini returned no candidates")
		}

		calls := result.FunctionCalls()
		if len(calls) == 0 {
			return result.Text(), nil
		}

		contents = append(contents, result.Candidates[0].Content)
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, &genai.Part{FunctionResponse: a.CallFunction(ctx, call)})
		}
		contents = append(contents, &genai.Content{Role: "user", Parts: parts})
	}

	return "", webcrawler.Errorf(webcrawler.EINTERNAL, "no answer after %d iterations", maxIterations)
}

// CallFunction executes a model-requested function call. Failures are
// reported to the model under the "error" key rather than returned.
func (a *Agent) CallFunction(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: call.ID, Name: call.Name}

	if call.Name != a.capability.Name {
		resp.Response = map[string]any{"error": "unknown function " + call.Name}
		return resp
	}

	url, _ := call.Args["url"].(string)
	out, err := a.tool.Call(ctx, webcrawler.Input{URL: url})
	if err != nil {
		resp.Response = map[string]any{"error": webcrawler.ErrorMessage(err)}
		return resp
	}

	resp.Response = map[string]any{"output": out}
	return resp
}

// BuildConfig returns the GenerateContentConfig declaring capability as
// the only available function.
func BuildConfig(capability webcrawler.Capability, instructions string) *genai.GenerateContentConfig {
	temp := float32(0)
	topP := float32(1)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
		TopP:        &topP,
		Tools: []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        capability.Name,
				Description: capability.Description,
				Parameters:  ConvertSchema(capability.Parameters),
			}},
		}},
	}
	if instructions != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: instructions}},
		}
	}
	return config
}

// ConvertSchema converts a JSON schema map to a genai.Schema.
func ConvertSchema(m map[string]any) *genai.Schema {
	if m == nil {
		return nil
	}

	s := &genai.Schema{}
	if t, ok := m["type"].(string); ok {
		s.Type = genai.Type(strings.ToUpper(t))
	}
	if d, ok := m["description"].(string); ok {
		s.Description = d
	}
	if f, ok := m["format"].(string); ok {
		s.Format = f
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, p := range props {
			if pm, ok := p.(map[string]any); ok {
				s.Properties[name] = ConvertSchema(pm)
			}
		}
	}
	switch req := m["required"].(type) {
	case []string:
		s.Required = req
	case []any:
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	if items, ok := m["items"].(map[string]any); ok {
		s.Items = ConvertSchema(items)
	}
	return s
}
