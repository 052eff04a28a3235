package fixture

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the parsed content of one stub file. A file holds either a
// single stub document or a YAML sequence of stubs.
type File struct {
	Stubs []Stub
}

// UnmarshalYAML accepts both the single-stub and the list-of-stubs file
// layouts.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&f.Stubs)
	}
	var s Stub
	if err := node.Decode(&s); err != nil {
		return err
	}
	f.Stubs = []Stub{s}
	return nil
}

// Stub declares one setup: the conditions a request must meet, the
// response to serve, and the verification flags.
type Stub struct {
	Name       string    `yaml:"name,omitempty"`
	Request    Request   `yaml:"request"`
	Response   *Response `yaml:"response,omitempty"`
	Verifiable bool      `yaml:"verifiable,omitempty"`
	Times      int       `yaml:"times,omitempty"`
}

// Request declares the match conditions of a stub. Empty fields add no
// condition; a request block with no conditions matches everything.
type Request struct {
	Method       string            `yaml:"method,omitempty"`
	Path         string            `yaml:"path,omitempty"`
	PathRegexp   string            `yaml:"pathRegexp,omitempty"`
	URL          string            `yaml:"url,omitempty"`
	Host         string            `yaml:"host,omitempty"`
	Headers      map[string]string `yaml:"headers,omitempty"`
	Query        map[string]string `yaml:"query,omitempty"`
	ContentType  string            `yaml:"contentType,omitempty"`
	BodyEquals   string            `yaml:"bodyEquals,omitempty"`
	BodyContains string            `yaml:"bodyContains,omitempty"`
	BodyRegexp   string            `yaml:"bodyRegexp,omitempty"`
	JSONPath     map[string]any    `yaml:"jsonPath,omitempty"`
}

// Response declares the response a stub serves. Body and BodyFile are
// mutually exclusive; a zero Status means 200.
type Response struct {
	Status   int               `yaml:"status,omitempty"`
	Headers  map[string]string `yaml:"headers,omitempty"`
	Body     string            `yaml:"body,omitempty"`
	BodyFile string            `yaml:"bodyFile,omitempty"`
	DelayMs  int               `yaml:"delayMs,omitempty"`
}

// UnmarshalYAML lets the body field hold a YAML mapping or sequence in
// addition to a plain string. Structured bodies are re-encoded as JSON,
// so a stub can say `body: {id: 1}` instead of `body: '{"id": 1}'`.
func (r *Response) UnmarshalYAML(node *yaml.Node) error {
	var proxy struct {
		Status   int               `yaml:"status"`
		Headers  map[string]string `yaml:"headers"`
		Body     yaml.Node         `yaml:"body"`
		BodyFile string            `yaml:"bodyFile"`
		DelayMs  int               `yaml:"delayMs"`
	}
	if err := node.Decode(&proxy); err != nil {
		return err
	}
	r.Status = proxy.Status
	r.Headers = proxy.Headers
	r.BodyFile = proxy.BodyFile
	r.DelayMs = proxy.DelayMs

	switch proxy.Body.Kind {
	case 0:
		// no body field
	case yaml.ScalarNode:
		r.Body = proxy.Body.Value
	default:
		var body any
		if err := proxy.Body.Decode(&body); err != nil {
			return fmt.Errorf("decoding body: %w", err)
		}
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding body as JSON: %w", err)
		}
		r.Body = string(data)
	}
	return nil
}
