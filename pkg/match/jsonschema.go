package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type jsonSchemaMatcher struct {
	name   string
	schema *jsonschema.Schema
}

// NewJSONSchema matches JSON bodies that validate against the given JSON
// Schema document. The name identifies the schema in descriptions and
// error messages.
func NewJSONSchema(name string, schema []byte) (Matcher, error) {
	compiler := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid JSON schema %q: %w", name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("compiling JSON schema %q: %w", name, err)
	}
	return jsonSchemaMatcher{name: name, schema: compiled}, nil
}

func (m jsonSchemaMatcher) Matches(_ *http.Request, body []byte) bool {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return false
	}
	return m.schema.Validate(data) == nil
}

func (m jsonSchemaMatcher) String() string {
	return fmt.Sprintf("body validating against schema %q", m.name)
}
