package main

import (
	"fmt"

	"github.com/fwojciec/webcrawler"
	"github.com/fwojciec/webcrawler/jsonschema"
	crawlmcp "github.com/fwojciec/webcrawler/mcp"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	capability, err := jsonschema.Capability()
	if err != nil {
		return err
	}
	server, err := crawlmcp.NewServer(deps.NewFetcher(c.FetchFlags, c.MaxRetries), capability, deps.Version)
	if err != nil {
		return err
	}

	if err := server.Serve(deps.Ctx, deps.Stdin, deps.Stdout); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcrawler.ErrorMessage(err))
		return err
	}
	return nil
}
