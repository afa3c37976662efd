package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webcrawler"
	"github.com/google/uuid"
)

// Ensure LoggingAgent implements webcrawler.Agent.
var _ webcrawler.Agent = (*LoggingAgent)(nil)

// LoggingAgent wraps an Agent with logging. Each run is tagged with a
// fresh run id so that interleaved tool calls can be correlated.
type LoggingAgent struct {
	next   webcrawler.Agent
	logger *slog.Logger
}

// NewLoggingAgent creates a new LoggingAgent.
func NewLoggingAgent(next webcrawler.Agent, logger *slog.Logger) *LoggingAgent {
	return &LoggingAgent{next: next, logger: logger}
}

// Run delegates to the wrapped agent and logs the run.
func (a *LoggingAgent) Run(ctx context.Context, prompt string, opts webcrawler.RunOptions) (answer string, err error) {
	runID := uuid.NewString()
	a.logger.Debug("agent run started",
		"run_id", runID,
		"max_iterations", opts.MaxIterationsOrDefault(),
	)
	defer func(begin time.Time) {
		a.logger.Info("agent run",
			"run_id", runID,
			"prompt_chars", len(prompt),
			"answer_chars", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Run(ctx, prompt, opts)
}
