package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/webcrawler"
	"go.opentelemetry.io/otel/trace"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Transport      http.RoundTripper
	TracerProvider trace.TracerProvider
	RetryDelays    []time.Duration

	// Agent and TokenCounter replace the configured provider when set.
	Agent        webcrawler.Agent
	TokenCounter webcrawler.TokenCounter

	Version string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose      bool   `short:"v" help:"Log fetches and agent runs to stderr"`
	OTLPEndpoint string `name:"otlp-endpoint" env:"WEBCRAWLER_OTLP_ENDPOINT" help:"Export traces over OTLP/HTTP to host:port"`

	Fetch     FetchCmd     `cmd:"" help:"Fetch URLs and print their text content"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize the top story of a news page with an LLM agent"`
	Serve     ServeCmd     `cmd:"" help:"Serve the WebCrawler tool over MCP on stdio"`
	Schema    SchemaCmd    `cmd:"" help:"Print the WebCrawler capability and input schema as JSON"`
}

// FetchFlags configures how pages are fetched and converted.
type FetchFlags struct {
	Timeout   time.Duration `default:"30s" help:"Request timeout including the body"`
	Format    string        `enum:"text,markdown" default:"text" help:"Content format (text, markdown)"`
	Extract   string        `enum:"none,trafilatura,readability" default:"none" help:"Main-content extraction before conversion"`
	UserAgent string        `name:"user-agent" default:"webcrawler/1.0" help:"User-Agent header"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	FetchFlags `embed:""`

	URLs           []string `arg:"" name:"url" help:"URLs to fetch"`
	MaxRetries     int      `name:"max-retries" default:"0" help:"Retries after a transport failure"`
	Concurrency    int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	JSON           bool     `help:"Print results as JSON lines"`
	CountTokens    bool     `name:"count-tokens" help:"Report the token count of each result on stderr"`
	TokenizerModel string   `name:"tokenizer-model" default:"gemini-2.5-flash" help:"Model whose tokenizer counts tokens"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	FetchFlags `embed:""`

	URL               string `default:"https://news.ycombinator.com/" help:"News page to read"`
	Provider          string `enum:"openai,gemini" default:"openai" env:"LLM_PROVIDER" help:"LLM provider (openai, gemini)"`
	Model             string `env:"LLM_MODEL_ID" help:"Model name"`
	BaseURL           string `name:"base-url" env:"LLM_BASE_URL" default:"http://localhost:8080/v1" help:"OpenAI-compatible API base URL"`
	APIKey            string `name:"api-key" env:"LLM_API_KEY" default:"sk-key" help:"OpenAI-compatible API key"`
	GeminiAPIKey      string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	MaxRetries        int    `name:"max-retries" default:"3" help:"Retries after a transport failure"`
	LLMMaxRetries     int    `name:"llm-max-retries" default:"3" help:"Retries for LLM requests"`
	MaxIterations     int    `name:"max-iterations" default:"5" help:"Model calls allowed to find the top story"`
	SummaryIterations int    `name:"summary-iterations" default:"3" help:"Model calls allowed to write the summary"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	FetchFlags `embed:""`

	MaxRetries int `name:"max-retries" default:"0" help:"Retries after a transport failure"`
}

// SchemaCmd is the "schema" subcommand.
type SchemaCmd struct{}
