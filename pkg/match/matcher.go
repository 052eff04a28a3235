// Package match provides the request predicates that decide whether a setup
// applies to an outgoing HTTP request.
//
// A Matcher is a pure function from a request to a boolean, plus a
// human-readable description used in failure reports. Matchers compose with
// AllOf and AnyOf; the combinators are themselves matchers, so arbitrary
// trees can be built.
//
// Matchers receive the request body as a separate byte slice. Request.Body is
// a one-shot reader; the dispatcher snapshots it once per request so every
// matcher reads the same bytes. Implementations must not touch r.Body.
package match

import (
	"net/http"
	"strings"

	"github.com/getmockd/mockhttp/pkg/util"
)

// Matcher decides whether a single request satisfies one condition.
//
// Implementations must be pure and idempotent: evaluating a matcher twice
// against the same request must return the same verdict with no observable
// side effects. The diagnostic pass (BreakdownOf) relies on this.
type Matcher interface {
	// Matches reports whether the request satisfies the condition.
	Matches(r *http.Request, body []byte) bool

	// String renders a description of the condition for failure reports.
	String() string
}

// Group is an ordered set of matchers with all-of semantics: a request
// matches the group iff it matches every member. The empty group matches
// every request; it is the matcher of the unconditional fallback setup.
type Group []Matcher

// Matches reports whether every member matches. Evaluation stops at the
// first failing member; members must not rely on being called.
func (g Group) Matches(r *http.Request, body []byte) bool {
	for _, m := range g {
		if !m.Matches(r, body) {
			return false
		}
	}
	return true
}

// String renders the members as prose, e.g.
// `method "GET", path "/users/*", and header "Accept" = "*json*"`.
func (g Group) String() string {
	if len(g) == 0 {
		return "any request"
	}
	return util.JoinWithAnd(describeAll(g))
}

// AllOf groups matchers with all-of semantics. An empty AllOf matches every
// request.
func AllOf(matchers ...Matcher) Group {
	return Group(matchers)
}

type anyOf []Matcher

// AnyOf composes matchers so a request matches iff at least one member
// matches. An empty AnyOf matches nothing: it is the logical zero, not the
// identity that an empty AllOf is.
func AnyOf(matchers ...Matcher) Matcher {
	return anyOf(matchers)
}

func (a anyOf) Matches(r *http.Request, body []byte) bool {
	for _, m := range a {
		if m.Matches(r, body) {
			return true
		}
	}
	return false
}

func (a anyOf) String() string {
	if len(a) == 0 {
		return "no request"
	}
	return "(" + strings.Join(describeAll(a), " or ") + ")"
}

type funcMatcher struct {
	desc string
	fn   func(r *http.Request, body []byte) bool
}

// Func adapts an arbitrary predicate into a Matcher. A nil fn matches
// nothing. desc appears in failure reports; when empty, "custom predicate"
// is used.
func Func(desc string, fn func(r *http.Request, body []byte) bool) Matcher {
	return funcMatcher{desc: desc, fn: fn}
}

func (f funcMatcher) Matches(r *http.Request, body []byte) bool {
	return f.fn != nil && f.fn(r, body)
}

func (f funcMatcher) String() string {
	if f.desc == "" {
		return "custom predicate"
	}
	return f.desc
}

// Verdict records one matcher's individual result from a diagnostic pass.
type Verdict struct {
	Description string
	Matched     bool
}

// BreakdownOf re-evaluates m against the request and reports a per-member
// verdict for diagnostics. Groups are flattened recursively; every other
// matcher (AnyOf included) is reported as a single verdict. Matchers are
// required to be pure, so this second pass is indistinguishable from the
// dispatch-path evaluation.
func BreakdownOf(m Matcher, r *http.Request, body []byte) []Verdict {
	if g, ok := m.(Group); ok {
		verdicts := make([]Verdict, 0, len(g))
		for _, child := range g {
			verdicts = append(verdicts, BreakdownOf(child, r, body)...)
		}
		return verdicts
	}
	return []Verdict{{Description: m.String(), Matched: m.Matches(r, body)}}
}

func describeAll(matchers []Matcher) []string {
	descs := make([]string, len(matchers))
	for i, m := range matchers {
		descs[i] = m.String()
	}
	return descs
}
