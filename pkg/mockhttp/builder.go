package mockhttp

import (
	"github.com/getmockd/mockhttp/pkg/match"
)

// RequestSpec accumulates match conditions for a setup or a verification
// filter. Every method adds one condition and returns the spec for
// chaining; a request satisfies the spec only when all conditions hold.
// A spec with no conditions matches every request.
//
// Constructors that take a pattern or document panic on invalid input:
// misconfiguration surfaces at the registration site, not at dispatch.
type RequestSpec struct {
	matchers []match.Matcher
}

func (s *RequestSpec) add(m match.Matcher) *RequestSpec {
	s.matchers = append(s.matchers, m)
	return s
}

func (s *RequestSpec) group() match.Group {
	return match.AllOf(s.matchers...)
}

// Method requires the given HTTP method, case-insensitively.
func (s *RequestSpec) Method(method string) *RequestSpec {
	return s.add(match.Method(method))
}

// Path requires the URL path to match pattern. Patterns support exact
// paths, "{name}" single-segment parameters, and "*" wildcards.
func (s *RequestSpec) Path(pattern string) *RequestSpec {
	return s.add(match.Path(pattern))
}

// PathRegexp requires the URL path to match an RE2 expression.
func (s *RequestSpec) PathRegexp(expr string) *RequestSpec {
	return s.add(mustMatcher(match.NewPathRegexp(expr)))
}

// URL requires the full request URL to match a wildcard pattern.
func (s *RequestSpec) URL(pattern string) *RequestSpec {
	return s.add(match.URL(pattern))
}

// Host requires the request host to match a wildcard pattern.
func (s *RequestSpec) Host(pattern string) *RequestSpec {
	return s.add(match.Host(pattern))
}

// Scheme requires the URL scheme ("http", "https").
func (s *RequestSpec) Scheme(scheme string) *RequestSpec {
	return s.add(match.Scheme(scheme))
}

// Header requires a header value to match a wildcard pattern. A request
// without the header never matches.
func (s *RequestSpec) Header(key, pattern string) *RequestSpec {
	return s.add(match.Header(key, pattern))
}

// Query requires a query parameter to match a wildcard pattern.
func (s *RequestSpec) Query(key, pattern string) *RequestSpec {
	return s.add(match.Query(key, pattern))
}

// ContentType requires the Content-Type media type, ignoring parameters
// such as charset.
func (s *RequestSpec) ContentType(mediaType string) *RequestSpec {
	return s.add(match.ContentType(mediaType))
}

// Body requires the request body to equal body exactly.
func (s *RequestSpec) Body(body string) *RequestSpec {
	return s.add(match.BodyEquals(body))
}

// BodyContains requires the request body to contain substr.
func (s *RequestSpec) BodyContains(substr string) *RequestSpec {
	return s.add(match.BodyContains(substr))
}

// BodyRegexp requires the request body to match an RE2 expression.
func (s *RequestSpec) BodyRegexp(expr string) *RequestSpec {
	return s.add(mustMatcher(match.NewBodyRegexp(expr)))
}

// FormField requires a form field, urlencoded or multipart, to match a
// wildcard pattern.
func (s *RequestSpec) FormField(key, pattern string) *RequestSpec {
	return s.add(match.FormField(key, pattern))
}

// JSONPath requires a JSONPath expression over the body to yield want.
// A nil want only requires the path to yield a result.
func (s *RequestSpec) JSONPath(path string, want any) *RequestSpec {
	return s.add(mustMatcher(match.NewJSONPath(path, want)))
}

// JSONSchema requires the body to validate against a JSON Schema.
func (s *RequestSpec) JSONSchema(name string, schema []byte) *RequestSpec {
	return s.add(mustMatcher(match.NewJSONSchema(name, schema)))
}

// XPath requires an XML element path over the body to select an element
// with the given text. An empty want only requires the element to exist.
func (s *RequestSpec) XPath(path, want string) *RequestSpec {
	return s.add(mustMatcher(match.NewXPath(path, want)))
}

// GraphQLOperation requires the body to be a GraphQL envelope invoking
// the named operation.
func (s *RequestSpec) GraphQLOperation(name string) *RequestSpec {
	return s.add(match.GraphQLOperation(name))
}

// BearerClaim requires a bearer token whose named claim equals want.
func (s *RequestSpec) BearerClaim(claim string, want any) *RequestSpec {
	return s.add(match.BearerClaim(claim, want))
}

// Expression requires a boolean expr-lang expression over the request to
// evaluate to true.
func (s *RequestSpec) Expression(src string) *RequestSpec {
	return s.add(mustMatcher(match.NewExpression(src)))
}

// OpenAPI requires the request to be valid against an OpenAPI document.
func (s *RequestSpec) OpenAPI(name string, doc []byte) *RequestSpec {
	return s.add(mustMatcher(match.NewOpenAPI(name, doc)))
}

// OpenAPIFile is OpenAPI for a document on disk.
func (s *RequestSpec) OpenAPIFile(path string) *RequestSpec {
	return s.add(mustMatcher(match.NewOpenAPIFile(path)))
}

// Match adds a custom matcher, including match.Func predicates and
// match.AnyOf alternatives.
func (s *RequestSpec) Match(m match.Matcher) *RequestSpec {
	if m == nil {
		panic("mockhttp: Match requires a non-nil matcher")
	}
	return s.add(m)
}

func mustMatcher(m match.Matcher, err error) match.Matcher {
	if err != nil {
		panic("mockhttp: " + err.Error())
	}
	return m
}
