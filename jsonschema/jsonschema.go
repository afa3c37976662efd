// Package jsonschema derives tool input schemas from Go types using
// struct tags.
package jsonschema

import (
	"encoding/json"

	"github.com/fwojciec/webcrawler"
	"github.com/invopop/jsonschema"
)

// Reflect builds the JSON schema of T as a map suitable for LLM tool
// declarations. Schemas are inlined and carry no $schema or $id.
//
// Supported tags:
//   - jsonschema:"required" marks a field as required
//   - jsonschema:"description=..." describes a field
//   - jsonschema:"format=uri" sets the string format
func Reflect[T any]() (map[string]any, error) {
	reflector := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}

	data, err := json.Marshal(reflector.Reflect(new(T)))
	if err != nil {
		return nil, webcrawler.Errorf(webcrawler.EINTERNAL, "failed to marshal schema: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, webcrawler.Errorf(webcrawler.EINTERNAL, "failed to unmarshal schema: %v", err)
	}

	delete(m, "$schema")
	delete(m, "$id")
	return m, nil
}

// Parameters returns the input schema of the WebCrawler capability.
func Parameters() (map[string]any, error) {
	return Reflect[webcrawler.Input]()
}

// Capability returns the WebCrawler capability record with its input schema.
func Capability() (webcrawler.Capability, error) {
	params, err := Parameters()
	if err != nil {
		return webcrawler.Capability{}, err
	}
	return webcrawler.Capability{
		Name:        webcrawler.CapabilityName,
		Description: webcrawler.CapabilityDescription,
		Parameters:  params,
	}, nil
}
