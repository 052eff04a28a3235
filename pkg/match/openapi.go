package match

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

type openapiMatcher struct {
	name   string
	router routers.Router
}

// NewOpenAPI matches requests that are valid against the given OpenAPI
// document: the request must route to an operation and pass parameter and
// body validation. The name identifies the document in descriptions.
func NewOpenAPI(name string, data []byte) (Matcher, error) {
	loader := newLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("loading OpenAPI document %q: %w", name, err)
	}
	return newOpenAPIMatcher(name, doc)
}

// NewOpenAPIFile is NewOpenAPI for a document on disk. External $refs are
// resolved relative to the file.
func NewOpenAPIFile(path string) (Matcher, error) {
	loader := newLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading OpenAPI document %q: %w", path, err)
	}
	return newOpenAPIMatcher(filepath.Base(path), doc)
}

func newLoader() *openapi3.Loader {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	return loader
}

func newOpenAPIMatcher(name string, doc *openapi3.T) (Matcher, error) {
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document %q: %w", name, err)
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("routing OpenAPI document %q: %w", name, err)
	}
	return openapiMatcher{name: name, router: router}, nil
}

func (m openapiMatcher) Matches(r *http.Request, body []byte) bool {
	// The router and filter consume the body, so validate a clone.
	clone := r.Clone(r.Context())
	clone.Body = io.NopCloser(bytes.NewReader(body))

	route, pathParams, err := m.router.FindRoute(clone)
	if err != nil {
		return false
	}
	input := &openapi3filter.RequestValidationInput{
		Request:    clone,
		PathParams: pathParams,
		Route:      route,
	}
	return openapi3filter.ValidateRequest(r.Context(), input) == nil
}

func (m openapiMatcher) String() string {
	return fmt.Sprintf("request valid against OpenAPI document %q", m.name)
}
