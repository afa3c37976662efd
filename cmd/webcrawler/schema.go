package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/webcrawler"
	"github.com/fwojciec/webcrawler/jsonschema"
)

// Run executes the schema command.
func (c *SchemaCmd) Run(deps *Dependencies) error {
	capability, err := jsonschema.Capability()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcrawler.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(capability)
}
