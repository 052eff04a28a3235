package match

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderXML = `<?xml version="1.0"?>
<order>
	<id>42</id>
	<customer>
		<name> Alice </name>
	</customer>
	<items>
		<item sku="A-1"/>
		<item sku="B-2"/>
	</items>
</order>`

func TestNewXPath(t *testing.T) {
	req := newRequest(t, http.MethodPost, "https://api.test/orders")

	tests := []struct {
		name string
		path string
		want string
		body string
		ok   bool
	}{
		{"value match", "//id", "42", orderXML, true},
		{"value mismatch", "//id", "99", orderXML, false},
		{"text is trimmed", "/order/customer/name", "Alice", orderXML, true},
		{"existence only", "//customer", "", orderXML, true},
		{"existence fails on missing element", "//refund", "", orderXML, false},
		{"attribute selector", "//item[@sku='B-2']", "", orderXML, true},
		{"malformed XML never matches", "//id", "42", "<order><id>42</order>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewXPath(tt.path, tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, m.Matches(req, []byte(tt.body)))
		})
	}
}

func TestNewXPathInvalidPath(t *testing.T) {
	_, err := NewXPath("//id[", "42")
	assert.Error(t, err)
}

func TestXPathDescriptions(t *testing.T) {
	m, err := NewXPath("//id", "42")
	require.NoError(t, err)
	assert.Equal(t, `xml path "//id" = "42"`, m.String())

	m, err = NewXPath("//customer", "")
	require.NoError(t, err)
	assert.Equal(t, `xml path "//customer" exists`, m.String())
}
