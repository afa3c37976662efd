package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/webcrawler"
	"github.com/fwojciec/webcrawler/gemini"
	"golang.org/x/sync/errgroup"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	fetcher := deps.NewFetcher(c.FetchFlags, c.MaxRetries)

	var counter webcrawler.TokenCounter
	if c.CountTokens {
		var err error
		if counter, err = c.tokenCounter(deps); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webcrawler.ErrorMessage(err))
			return err
		}
	}

	results := make([]*webcrawler.FetchResult, len(c.URLs))
	errs := make([]error, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(max(c.Concurrency, 1))
	for i, url := range c.URLs {
		g.Go(func() error {
			results[i], errs[i] = fetcher.Fetch(deps.Ctx, url)
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(deps.Stdout)
	var firstErr error
	printed := 0
	for i, url := range c.URLs {
		if errs[i] != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", url, webcrawler.ErrorMessage(errs[i]))
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}

		if c.JSON {
			if err := enc.Encode(results[i]); err != nil {
				return err
			}
		} else {
			if printed > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintln(deps.Stdout, webcrawler.FormatResult(results[i]))
		}
		printed++

		if counter != nil {
			n, err := counter.CountTokens(deps.Ctx, results[i].Content)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: counting tokens for %s: %s\n", url, webcrawler.ErrorMessage(err))
				continue
			}
			fmt.Fprintf(deps.Stderr, "%s: %d tokens\n", url, n)
		}
	}

	return firstErr
}

func (c *FetchCmd) tokenCounter(deps *Dependencies) (webcrawler.TokenCounter, error) {
	if deps.TokenCounter != nil {
		return deps.TokenCounter, nil
	}
	return gemini.NewTokenCounter(c.TokenizerModel)
}
