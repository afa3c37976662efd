package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webcrawler"
	crawlotel "github.com/fwojciec/webcrawler/otel"
	"github.com/joho/godotenv"
)

// Version is reported by the MCP server.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, webcrawler.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by the MCP server.
	Stdin io.Reader

	// Transport is used for web fetches. Nil means http.DefaultTransport.
	Transport http.RoundTripper

	// RetryDelays overrides the backoff between fetch retries.
	RetryDelays []time.Duration

	// Services for end-to-end testing.
	Agent        webcrawler.Agent
	TokenCounter webcrawler.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:          ctx,
		Stdin:        m.Stdin,
		Stdout:       stdout,
		Stderr:       stderr,
		Transport:    m.Transport,
		RetryDelays:  m.RetryDelays,
		Agent:        m.Agent,
		TokenCounter: m.TokenCounter,
		Version:      Version,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webcrawler"),
		kong.Description("Fetch web pages as plain text for LLM agents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return webcrawler.Errorf(webcrawler.EINVALID, "no command specified. Run 'webcrawler --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.OTLPEndpoint != "" {
		tp, err := crawlotel.NewTracerProvider(ctx, cli.OTLPEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				deps.Logger.Warn("trace shutdown", "err", err)
			}
		}()
		deps.TracerProvider = tp
	}

	return kongCtx.Run(deps)
}
