package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/webcrawler"
	main "github.com/fwojciec/webcrawler/cmd/webcrawler"
	"github.com/fwojciec/webcrawler/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("finds the top story then summarizes it", func(t *testing.T) {
		t.Parallel()

		var prompts []string
		var iterations []int
		m := main.NewMain()
		m.Agent = &mock.Agent{
			RunFn: func(_ context.Context, prompt string, opts webcrawler.RunOptions) (string, error) {
				prompts = append(prompts, prompt)
				iterations = append(iterations, opts.MaxIterations)
				if len(prompts) == 1 {
					return "Example story (42 points)", nil
				}
				return "A concise summary.", nil
			},
		}

		stdout, _, err := run(t, m, "summarize")

		require.NoError(t, err)
		assert.Equal(t, "\nSummary:\nA concise summary.\n", stdout)
		require.Len(t, prompts, 2)
		assert.Equal(t, main.TopStoryPrompt("https://news.ycombinator.com/"), prompts[0])
		assert.Equal(t, main.SummaryPrompt("Example story (42 points)"), prompts[1])
		assert.Equal(t, []int{5, 3}, iterations)
	})

	t.Run("passes custom url and iteration limits", func(t *testing.T) {
		t.Parallel()

		var prompts []string
		var iterations []int
		m := main.NewMain()
		m.Agent = &mock.Agent{
			RunFn: func(_ context.Context, prompt string, opts webcrawler.RunOptions) (string, error) {
				prompts = append(prompts, prompt)
				iterations = append(iterations, opts.MaxIterations)
				return "story", nil
			},
		}

		_, _, err := run(t, m, "summarize", "--url", "https://lobste.rs/", "--max-iterations", "7", "--summary-iterations", "2")

		require.NoError(t, err)
		assert.Contains(t, prompts[0], "Go to https://lobste.rs/ and get me")
		assert.Equal(t, []int{7, 2}, iterations)
	})

	t.Run("fails when the first answer is empty", func(t *testing.T) {
		t.Parallel()

		calls := 0
		m := main.NewMain()
		m.Agent = &mock.Agent{
			RunFn: func(context.Context, string, webcrawler.RunOptions) (string, error) {
				calls++
				return "  ", nil
			},
		}

		stdout, stderr, err := run(t, m, "summarize")

		require.Error(t, err)
		assert.Equal(t, "failed to fetch front page", webcrawler.ErrorMessage(err))
		assert.Contains(t, stderr, "failed to fetch front page")
		assert.Empty(t, stdout)
		assert.Equal(t, 1, calls)
	})

	t.Run("propagates agent errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Agent = &mock.Agent{
			RunFn: func(context.Context, string, webcrawler.RunOptions) (string, error) {
				return "", webcrawler.Errorf(webcrawler.EINTERNAL, "no answer after 5 iterations")
			},
		}

		_, stderr, err := run(t, m, "summarize")

		require.Error(t, err)
		assert.Contains(t, stderr, "no answer after 5 iterations")
	})

	t.Run("propagates summary errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		m := main.NewMain()
		m.Agent = &mock.Agent{
			RunFn: func(context.Context, string, webcrawler.RunOptions) (string, error) {
				calls++
				if calls == 2 {
					return "", errors.New("rate limited")
				}
				return "story", nil
			},
		}

		stdout, _, err := run(t, m, "summarize")

		require.Error(t, err)
		assert.Empty(t, stdout)
	})

	t.Run("requires a gemini api key for the gemini provider", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, main.NewMain(), "summarize", "--provider", "gemini", "--gemini-api-key", "")

		require.Error(t, err)
		assert.Equal(t, webcrawler.EINVALID, webcrawler.ErrorCode(err))
	})
}

func TestPrompts(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"Go to https://news.ycombinator.com/ and get me the content of the top news item (the first item in the list). Format it clearly with the title, URL, and points/comments info.",
		main.TopStoryPrompt("https://news.ycombinator.com/"),
	)
	assert.Contains(t, main.SummaryPrompt("Story"), `Here's the top Hacker News story: "Story".`)
}
