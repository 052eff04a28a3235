package match

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ohler55/ojg/jp"
)

type jsonPathMatcher struct {
	path string
	expr jp.Expr
	want any
}

// NewJSONPath matches JSON bodies by evaluating a JSONPath expression.
// With want == nil the matcher only requires the path to yield a result;
// otherwise at least one yielded value must equal want. Numbers compare
// by value, so an expected int matches a decoded float64.
func NewJSONPath(path string, want any) (Matcher, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}
	return jsonPathMatcher{path: path, expr: expr, want: want}, nil
}

func (m jsonPathMatcher) Matches(_ *http.Request, body []byte) bool {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return false
	}
	results := m.expr.Get(data)
	if len(results) == 0 {
		return false
	}
	if m.want == nil {
		return true
	}
	for _, got := range results {
		if valuesEqual(got, m.want) {
			return true
		}
	}
	return false
}

func (m jsonPathMatcher) String() string {
	if m.want == nil {
		return fmt.Sprintf("json path %q exists", m.path)
	}
	return fmt.Sprintf("json path %q = %v", m.path, m.want)
}

// valuesEqual compares a decoded JSON value with an expected Go value,
// coercing numeric types so callers can write plain int literals.
func valuesEqual(got, want any) bool {
	if gf, ok := toFloat64(got); ok {
		if wf, ok := toFloat64(want); ok {
			return gf == wf
		}
		return false
	}
	return fmt.Sprintf("%v", got) == fmt.Sprintf("%v", want)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
