package mock

import (
	"context"

	"github.com/fwojciec/webcrawler"
)

var _ webcrawler.Agent = (*Agent)(nil)

// Agent is a mock implementation of webcrawler.Agent.
type Agent struct {
	RunFn func(ctx context.Context, prompt string, opts webcrawler.RunOptions) (string, error)
}

func (a *Agent) Run(ctx context.Context, prompt string, opts webcrawler.RunOptions) (string, error) {
	return a.RunFn(ctx, prompt, opts)
}
