package match

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpression(t *testing.T) {
	req := newRequest(t, http.MethodPost, "https://api.test/api/orders?page=2")
	req.Header.Set("Accept", "application/json")
	body := []byte(`{"total": 99}`)

	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{"method", `method == "POST"`, true},
		{"method mismatch", `method == "GET"`, false},
		{"path prefix", `path startsWith "/api/"`, true},
		{"host", `host == "api.test"`, true},
		{"query parameter", `query.page == "2"`, true},
		{"header by canonical key", `header["Accept"] == "application/json"`, true},
		{"body substring", `body contains "total"`, true},
		{"conjunction", `method == "POST" && query.page == "2"`, true},
		{"negation", `!(path == "/api/orders")`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewExpression(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, m.Matches(req, body))
		})
	}
}

func TestNewExpressionRejectsInvalidSource(t *testing.T) {
	_, err := NewExpression(`method ==`)
	assert.Error(t, err)

	// The expression must produce a boolean.
	_, err = NewExpression(`1 + 2`)
	assert.Error(t, err)
}

func TestExpressionDescription(t *testing.T) {
	m, err := NewExpression(`method == "POST"`)
	require.NoError(t, err)
	assert.Equal(t, `expression "method == \"POST\""`, m.String())
}
