package webcrawler

import "context"

// DefaultMaxIterations bounds the model/tool round trips of a single run.
const DefaultMaxIterations = 5

// RunOptions configures a single agent run.
type RunOptions struct {
	// MaxIterations is the maximum number of model calls.
	// Zero means DefaultMaxIterations.
	MaxIterations int
}

// Agent answers a prompt with an LLM that may invoke the WebCrawler capability.
type Agent interface {
	// Run sends the prompt to the model, executes the tool calls it requests,
	// and returns the model's final text answer.
	// Returns EINVALID if prompt is empty.
	// Returns EINTERNAL if the model does not answer within MaxIterations.
	Run(ctx context.Context, prompt string, opts RunOptions) (string, error)
}

// MaxIterationsOrDefault returns the effective iteration limit.
func (o RunOptions) MaxIterationsOrDefault() int {
	if o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}
