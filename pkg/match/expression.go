package match

import (
	"fmt"
	"net/http"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type expressionMatcher struct {
	src     string
	program *vm.Program
}

// NewExpression matches requests by evaluating a boolean expr-lang
// expression. The environment exposes method, path, host and body as
// strings plus header and query maps holding the first value per key;
// header keys are in canonical form.
//
//	match.NewExpression(`method == "POST" && query.page != ""`)
func NewExpression(src string) (Matcher, error) {
	program, err := expr.Compile(src, expr.Env(exprEnv(nil, nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", src, err)
	}
	return expressionMatcher{src: src, program: program}, nil
}

func (m expressionMatcher) Matches(r *http.Request, body []byte) bool {
	out, err := expr.Run(m.program, exprEnv(r, body))
	if err != nil {
		return false
	}
	matched, ok := out.(bool)
	return ok && matched
}

func (m expressionMatcher) String() string {
	return fmt.Sprintf("expression %q", m.src)
}

func exprEnv(r *http.Request, body []byte) map[string]any {
	env := map[string]any{
		"method": "",
		"path":   "",
		"host":   "",
		"body":   "",
		"header": map[string]string{},
		"query":  map[string]string{},
	}
	if r == nil {
		return env
	}
	env["method"] = r.Method
	env["path"] = r.URL.Path
	env["host"] = requestHost(r)
	env["body"] = string(body)

	header := make(map[string]string, len(r.Header))
	for k, vs := range r.Header {
		if len(vs) > 0 {
			header[k] = vs[0]
		}
	}
	env["header"] = header

	query := map[string]string{}
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			query[k] = vs[0]
		}
	}
	env["query"] = query
	return env
}
