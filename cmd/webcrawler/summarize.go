package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/webcrawler"
	"github.com/fwojciec/webcrawler/gemini"
	"github.com/fwojciec/webcrawler/jsonschema"
	crawlopenai "github.com/fwojciec/webcrawler/openai"
	crawlslog "github.com/fwojciec/webcrawler/slog"
	"google.golang.org/genai"
)

// systemInstruction describes the agent to the model.
const systemInstruction = "You are HackerNewsSummary, an agent that retrieves and summarizes top news from Hacker News. " +
	"Use the WebCrawler tool to read web pages."

// TopStoryPrompt asks the agent to find the first story on the page at url.
func TopStoryPrompt(url string) string {
	return fmt.Sprintf("Go to %s and get me the content of the top news item (the first item in the list). "+
		"Format it clearly with the title, URL, and points/comments info.", url)
}

// SummaryPrompt asks the agent to summarize a story it found earlier.
func SummaryPrompt(story string) string {
	return fmt.Sprintf("Here's the top Hacker News story: \"%s\". "+
		"Give me a clear, concise summary of this submission's title, metadata, content, and some comments. "+
		"Format it nicely.", story)
}

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	agent, err := c.agent(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcrawler.ErrorMessage(err))
		return err
	}
	if deps.Logger != nil {
		agent = crawlslog.NewLoggingAgent(agent, deps.Logger)
	}

	story, err := agent.Run(deps.Ctx, TopStoryPrompt(c.URL), webcrawler.RunOptions{MaxIterations: c.MaxIterations})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcrawler.ErrorMessage(err))
		return err
	}
	if strings.TrimSpace(story) == "" {
		err := webcrawler.Errorf(webcrawler.EINTERNAL, "failed to fetch front page")
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcrawler.ErrorMessage(err))
		return err
	}

	summary, err := agent.Run(deps.Ctx, SummaryPrompt(story), webcrawler.RunOptions{MaxIterations: c.SummaryIterations})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcrawler.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "\nSummary:")
	fmt.Fprintln(deps.Stdout, summary)
	return nil
}

// agent returns the injected agent or builds one for the configured provider.
func (c *SummarizeCmd) agent(deps *Dependencies) (webcrawler.Agent, error) {
	if deps.Agent != nil {
		return deps.Agent, nil
	}

	capability, err := jsonschema.Capability()
	if err != nil {
		return nil, err
	}
	fetcher := deps.NewFetcher(c.FetchFlags, c.MaxRetries)

	switch c.Provider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return nil, webcrawler.Errorf(webcrawler.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
			APIKey:  c.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, webcrawler.Errorf(webcrawler.EINTERNAL, "failed to connect to Gemini API: %v", err)
		}
		return gemini.NewAgent(client, fetcher, capability,
			gemini.WithModel(c.Model),
			gemini.WithSystemInstruction(systemInstruction),
		), nil
	default:
		if c.Model == "" {
			return nil, webcrawler.Errorf(webcrawler.EINVALID, "LLM_MODEL_ID not set")
		}
		client := crawlopenai.NewClient(c.APIKey, c.BaseURL, c.LLMMaxRetries)
		return crawlopenai.NewAgent(client, c.Model, fetcher, capability,
			crawlopenai.WithSystemInstruction(systemInstruction),
		), nil
	}
}
