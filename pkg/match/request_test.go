package match

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	tests := []struct {
		name    string
		matcher string
		request string
		want    bool
	}{
		{"exact", http.MethodGet, http.MethodGet, true},
		{"case insensitive", "get", http.MethodGet, true},
		{"mismatch", http.MethodPost, http.MethodGet, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, tt.request, "https://api.test/")
			assert.Equal(t, tt.want, Method(tt.matcher).Matches(req, nil))
		})
	}

	assert.Equal(t, `method "DELETE"`, Method(http.MethodDelete).String())
}

func TestPath(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"exact match", "/users", "/users", true},
		{"exact mismatch", "/users", "/orders", false},
		{"exact is not a prefix", "/users", "/users/42", false},
		{"named param", "/users/{id}", "/users/42", true},
		{"named param does not span segments", "/users/{id}", "/users/42/orders", false},
		{"two named params", "/users/{id}/orders/{oid}", "/users/42/orders/7", true},
		{"named param segment count must agree", "/users/{id}/orders", "/users/42", false},
		{"trailing slash-star matches descendants", "/api/*", "/api/users/42", true},
		{"trailing slash-star matches bare prefix", "/api/*", "/api", true},
		{"trailing slash-star rejects siblings", "/api/*", "/apiv2/users", false},
		{"embedded wildcard", "/users/*/orders", "/users/42/orders", true},
		{"embedded wildcard mismatch", "/users/*/orders", "/users/42/carts", false},
		{"star alone matches everything", "*", "/anything/at/all", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodGet, "https://api.test"+tt.path)
			assert.Equal(t, tt.want, Path(tt.pattern).Matches(req, nil))
		})
	}

	assert.Equal(t, `path "/users/{id}"`, Path("/users/{id}").String())
}

func TestNewPathRegexp(t *testing.T) {
	m, err := NewPathRegexp(`^/users/\d+$`)
	require.NoError(t, err)

	assert.True(t, m.Matches(newRequest(t, http.MethodGet, "https://api.test/users/42"), nil))
	assert.False(t, m.Matches(newRequest(t, http.MethodGet, "https://api.test/users/alice"), nil))
	assert.Equal(t, `path matching "^/users/\d+$"`, m.String())

	_, err = NewPathRegexp(`[broken`)
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  string
		want    bool
	}{
		{"exact", "https://api.test/users?page=2", "https://api.test/users?page=2", true},
		{"wildcard host", "https://*.test/users", "https://api.test/users", true},
		{"wildcard tail", "https://api.test/users*", "https://api.test/users?page=2", true},
		{"scheme mismatch", "http://api.test/users", "https://api.test/users", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodGet, tt.target)
			assert.Equal(t, tt.want, URL(tt.pattern).Matches(req, nil))
		})
	}
}

func TestHost(t *testing.T) {
	req := newRequest(t, http.MethodGet, "https://api.example.com/users")

	assert.True(t, Host("api.example.com").Matches(req, nil))
	assert.True(t, Host("*.example.com").Matches(req, nil))
	assert.False(t, Host("example.com").Matches(req, nil))

	// Server-style requests carry the host outside the URL.
	relative := &http.Request{Method: http.MethodGet, Host: "api.example.com"}
	relative.URL = mustParseURL(t, "/users")
	assert.True(t, Host("api.example.com").Matches(relative, nil))

	assert.Equal(t, `host "*.example.com"`, Host("*.example.com").String())
}

func TestScheme(t *testing.T) {
	req := newRequest(t, http.MethodGet, "https://api.test/users")

	assert.True(t, Scheme("https").Matches(req, nil))
	assert.True(t, Scheme("HTTPS").Matches(req, nil))
	assert.False(t, Scheme("http").Matches(req, nil))
	assert.Equal(t, `scheme "https"`, Scheme("https").String())
}

func TestHeader(t *testing.T) {
	req := newRequest(t, http.MethodGet, "https://api.test/users")
	req.Header.Set("Accept", "application/json")
	req.Header.Add("X-Tag", "alpha")
	req.Header.Add("X-Tag", "beta")

	tests := []struct {
		name    string
		key     string
		pattern string
		want    bool
	}{
		{"exact", "Accept", "application/json", true},
		{"non-canonical key", "accept", "application/json", true},
		{"wildcard", "Accept", "*json*", true},
		{"any later value may match", "X-Tag", "beta", true},
		{"value mismatch", "Accept", "text/html", false},
		{"absent header never matches", "X-Missing", "*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Header(tt.key, tt.pattern).Matches(req, nil))
		})
	}

	assert.Equal(t, `header "Accept" = "*json*"`, Header("accept", "*json*").String())
}

func TestQuery(t *testing.T) {
	req := newRequest(t, http.MethodGet, "https://api.test/users?page=2&tag=a&tag=b")

	tests := []struct {
		name    string
		key     string
		pattern string
		want    bool
	}{
		{"exact", "page", "2", true},
		{"wildcard", "page", "*", true},
		{"any repeated value may match", "tag", "b", true},
		{"value mismatch", "page", "3", false},
		{"absent key never matches", "limit", "*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Query(tt.key, tt.pattern).Matches(req, nil))
		})
	}

	assert.Equal(t, `query "page" = "2"`, Query("page", "2").String())
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name   string
		header string
		media  string
		want   bool
	}{
		{"exact", "application/json", "application/json", true},
		{"parameters ignored", "application/json; charset=utf-8", "application/json", true},
		{"case insensitive", "Application/JSON", "application/json", true},
		{"mismatch", "text/html", "application/json", false},
		{"absent never matches", "", "application/json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodPost, "https://api.test/users")
			if tt.header != "" {
				req.Header.Set("Content-Type", tt.header)
			}
			assert.Equal(t, tt.want, ContentType(tt.media).Matches(req, nil))
		})
	}

	assert.Equal(t, `content type "application/json"`, ContentType("application/json").String())
}
