// Package openai implements webcrawler.Agent on top of any
// OpenAI-compatible chat completions API (OpenAI, Groq, local servers).
package openai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/webcrawler"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// DefaultBaseURL is the endpoint of a locally hosted model server.
const DefaultBaseURL = "http://localhost:8080/v1"

// Ensure Agent implements webcrawler.Agent at compile time.
var _ webcrawler.Agent = (*Agent)(nil)

// NewClient creates a chat completions client. maxRetries applies to
// requests made to the model, not to web fetches.
func NewClient(apiKey, baseURL string, maxRetries int, opts ...option.RequestOption) openai.Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	all := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(max(maxRetries, 0)),
	}
	return openai.NewClient(append(all, opts...)...)
}

// Agent answers prompts through a chat completions tool loop.
type Agent struct {
	client       openai.Client
	model        string
	tool         *webcrawler.Tool
	capability   webcrawler.Capability
	instructions string
}

// Option configures an Agent.
type Option func(*Agent)

// WithSystemInstruction sets the system message prepended to every run.
func WithSystemInstruction(text string) Option {
	return func(a *Agent) {
		a.instructions = text
	}
}

// NewAgent creates a new Agent using model, advertising capability and
// executing calls with fetcher.
func NewAgent(client openai.Client, model string, fetcher webcrawler.ContentFetcher, capability webcrawler.Capability, opts ...Option) *Agent {
	a := &Agent{
		client:     client,
		model:      model,
		tool:       webcrawler.NewTool(fetcher),
		capability: capability,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run sends prompt to the model and loops until it answers without
// requesting a tool call.
func (a *Agent) Run(ctx context.Context, prompt string, opts webcrawler.RunOptions) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", webcrawler.Errorf(webcrawler.EINVALID, "prompt required")
	}
	if a.model == "" {
		return "", webcrawler.Errorf(webcrawler.EINVALID, "model required")
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if a.instructions != "" {
		messages = append(messages, openai.SystemMessage(a.instructions))
	}
	messages = append(messages, openai.UserMessage(prompt))

	tools := []openai.ChatCompletionToolUnionParam{BuildTool(a.capability)}

	maxIterations := opts.MaxIterationsOrDefault()
	for range maxIterations {
		req := openai.ChatCompletionNewParams{
			Model:       a.model,
			Messages:    messages,
			Tools:       tools,
			Temperature: openai.Float(0),
			TopP:        openai.Float(1),
		}
		resp, err := a.client.Chat.Completions.New(ctx, req)
		if err != nil {
			return "", webcrawler.Errorf(webcrawler.EINTERNAL, "chat completion failed: %v", err)
		}
		if len(resp.Choices) == 0 {
			return "", webcrawler.Errorf(webcrawler.EINTERNAL, "chat completion returned no choices")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		assistantParam := msg.ToAssistantMessageParam()
		messages = append(messages, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistantParam})
		for _, call := range msg.ToolCalls {
			result := a.CallTool(ctx, call.Function.Name, call.Function.Arguments)
			messages = append(messages, openai.ToolMessage(result, call.ID))
		}
	}

	return "", webcrawler.Errorf(webcrawler.EINTERNAL, "no answer after %d iterations", maxIterations)
}

// CallTool executes a tool call with JSON-encoded arguments and returns
// the text handed back to the model. Failures are returned as text
// prefixed with "Error: ".
func (a *Agent) CallTool(ctx context.Context, name, arguments string) string {
	name = strings.TrimSpace(name)
	if name != a.capability.Name {
		return "Error: unknown tool " + name
	}

	var in webcrawler.Input
	if err := json.Unmarshal([]byte(arguments), &in); err != nil {
		return "Error: invalid arguments: " + err.Error()
	}

	out, err := a.tool.Call(ctx, in)
	if err != nil {
		return "Error: " + webcrawler.ErrorMessage(err)
	}
	return out
}

// BuildTool returns the function tool declaration for capability.
func BuildTool(capability webcrawler.Capability) openai.ChatCompletionToolUnionParam {
	function := openai.FunctionDefinitionParam{
		Name:       capability.Name,
		Parameters: capability.Parameters,
	}
	if capability.Description != "" {
		function.Description = openai.String(capability.Description)
	}
	return openai.ChatCompletionToolUnionParam{
		OfFunction: &openai.ChatCompletionFunctionToolParam{
			Function: function,
			Type:     constant.ValueOf[constant.Function](),
		},
	}
}
