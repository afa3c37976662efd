package openai_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fwojciec/webcrawler"
	"github.com/fwojciec/webcrawler/jsonschema"
	"github.com/fwojciec/webcrawler/mock"
	crawlopenai "github.com/fwojciec/webcrawler/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	toolCallResponse = `{"id":"chatcmpl-1","object":"chat.completion","created":0,"model":"test-model",
"choices":[{"index":0,"finish_reason":"tool_calls","message":{"role":"assistant","content":null,
"tool_calls":[{"id":"call_1","type":"function","function":{"name":"WebCrawler","arguments":"{\"url\":\"https://news.ycombinator.com/\"}"}}]}}]}`
	answerResponse = `{"id":"chatcmpl-2","object":"chat.completion","created":0,"model":"test-model",
"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Top story: Example"}}]}`
)

// fakeCompletions serves canned chat completion responses in order and
// records the request bodies it received.
type fakeCompletions struct {
	mu        sync.Mutex
	responses []string
	bodies    []string
}

func (f *fakeCompletions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, string(body))
	resp := f.responses[len(f.responses)-1]
	if len(f.bodies) <= len(f.responses) {
		resp = f.responses[len(f.bodies)-1]
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(resp))
}

func capability(t *testing.T) webcrawler.Capability {
	t.Helper()

	c, err := jsonschema.Capability()
	require.NoError(t, err)
	return c
}

func hnFetcher() *mock.ContentFetcher {
	return &mock.ContentFetcher{
		FetchFn: func(_ context.Context, url string) (*webcrawler.FetchResult, error) {
			return &webcrawler.FetchResult{
				URL:         url,
				StatusCode:  200,
				StatusText:  "OK",
				ContentType: "text/html",
				Content:     "1. Example story",
			}, nil
		},
	}
}

func newAgent(t *testing.T, baseURL string, fetcher webcrawler.ContentFetcher, opts ...crawlopenai.Option) *crawlopenai.Agent {
	t.Helper()

	client := crawlopenai.NewClient("sk-key", baseURL, 0)
	return crawlopenai.NewAgent(client, "test-model", fetcher, capability(t), opts...)
}

func TestAgent_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns answer without tool calls", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCompletions{responses: []string{answerResponse}}
		server := httptest.NewServer(fake)
		defer server.Close()

		agent := newAgent(t, server.URL+"/v1", hnFetcher())

		answer, err := agent.Run(context.Background(), "What is the top story?", webcrawler.RunOptions{})

		require.NoError(t, err)
		assert.Equal(t, "Top story: Example", answer)
		require.Len(t, fake.bodies, 1)
		assert.Contains(t, fake.bodies[0], `"name":"WebCrawler"`)
		assert.Contains(t, fake.bodies[0], `"temperature":0`)
		assert.Contains(t, fake.bodies[0], `"top_p":1`)
	})

	t.Run("executes requested fetch and sends the result back", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCompletions{responses: []string{toolCallResponse, answerResponse}}
		server := httptest.NewServer(fake)
		defer server.Close()

		var fetched []string
		fetcher := &mock.ContentFetcher{
			FetchFn: func(ctx context.Context, url string) (*webcrawler.FetchResult, error) {
				fetched = append(fetched, url)
				return hnFetcher().Fetch(ctx, url)
			},
		}
		agent := newAgent(t, server.URL+"/v1", fetcher,
			crawlopenai.WithSystemInstruction("You summarize Hacker News."),
		)

		answer, err := agent.Run(context.Background(), "What is the top story?", webcrawler.RunOptions{})

		require.NoError(t, err)
		assert.Equal(t, "Top story: Example", answer)
		assert.Equal(t, []string{"https://news.ycombinator.com/"}, fetched)
		require.Len(t, fake.bodies, 2)
		assert.Contains(t, fake.bodies[0], "You summarize Hacker News.")
		assert.Contains(t, fake.bodies[1], `"tool_call_id":"call_1"`)
		assert.Contains(t, fake.bodies[1], `STATUS: 200 (OK)`)
	})

	t.Run("fails after max iterations of tool calls", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCompletions{responses: []string{toolCallResponse}}
		server := httptest.NewServer(fake)
		defer server.Close()

		agent := newAgent(t, server.URL+"/v1", hnFetcher())

		_, err := agent.Run(context.Background(), "loop", webcrawler.RunOptions{MaxIterations: 3})

		require.Error(t, err)
		assert.Equal(t, webcrawler.EINTERNAL, webcrawler.ErrorCode(err))
		assert.Len(t, fake.bodies, 3)
	})

	t.Run("wraps api errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
		}))
		defer server.Close()

		agent := newAgent(t, server.URL+"/v1", hnFetcher())

		_, err := agent.Run(context.Background(), "hello", webcrawler.RunOptions{})

		require.Error(t, err)
		assert.Equal(t, webcrawler.EINTERNAL, webcrawler.ErrorCode(err))
	})

	t.Run("returns error when prompt empty", func(t *testing.T) {
		t.Parallel()

		agent := newAgent(t, "http://127.0.0.1:1/v1", hnFetcher())

		_, err := agent.Run(context.Background(), "", webcrawler.RunOptions{})

		require.Error(t, err)
		assert.Equal(t, webcrawler.EINVALID, webcrawler.ErrorCode(err))
	})
}

func TestAgent_CallTool(t *testing.T) {
	t.Parallel()

	t.Run("returns rendered result", func(t *testing.T) {
		t.Parallel()

		agent := newAgent(t, "", hnFetcher())

		out := agent.CallTool(context.Background(), "WebCrawler", `{"url":"https://example.com"}`)

		assert.Equal(t, "URL: https://example.com\nSTATUS: 200 (OK)\nCONTENT: 1. Example story", out)
	})

	t.Run("rejects unknown tool", func(t *testing.T) {
		t.Parallel()

		agent := newAgent(t, "", hnFetcher())

		out := agent.CallTool(context.Background(), "Shell", `{}`)

		assert.Equal(t, "Error: unknown tool Shell", out)
	})

	t.Run("reports malformed arguments", func(t *testing.T) {
		t.Parallel()

		agent := newAgent(t, "", hnFetcher())

		out := agent.CallTool(context.Background(), "WebCrawler", `{"url":`)

		assert.Contains(t, out, "Error: invalid arguments")
	})

	t.Run("reports validation failure without fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ContentFetcher{
			FetchFn: func(context.Context, string) (*webcrawler.FetchResult, error) {
				t.Fatal("fetch should not be called")
				return nil, nil
			},
		}
		agent := newAgent(t, "", fetcher)

		out := agent.CallTool(context.Background(), "WebCrawler", `{"url":""}`)

		assert.Equal(t, "Error: url required", out)
	})

	t.Run("reports transport failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ContentFetcher{
			FetchFn: func(context.Context, string) (*webcrawler.FetchResult, error) {
				return nil, webcrawler.WrapError(webcrawler.ETRANSPORT, errors.New("connection refused"))
			},
		}
		agent := newAgent(t, "", fetcher)

		out := agent.CallTool(context.Background(), "WebCrawler", `{"url":"https://example.com"}`)

		assert.Equal(t, "Error: connection refused", out)
	})
}

func TestBuildTool(t *testing.T) {
	t.Parallel()

	tool := crawlopenai.BuildTool(capability(t))

	require.NotNil(t, tool.OfFunction)
	assert.Equal(t, "WebCrawler", tool.OfFunction.Function.Name)
	assert.Equal(t, "Retrieves content from a given URL", tool.OfFunction.Function.Description.Value)
	assert.Equal(t, "object", tool.OfFunction.Function.Parameters["type"])
}
