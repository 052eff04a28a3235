package match

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFieldURLEncoded(t *testing.T) {
	req := newRequest(t, http.MethodPost, "https://api.test/login")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	body := []byte("user=alice&role=admin&role=editor")

	tests := []struct {
		name    string
		key     string
		pattern string
		want    bool
	}{
		{"exact", "user", "alice", true},
		{"wildcard", "user", "al*", true},
		{"any repeated value may match", "role", "editor", true},
		{"value mismatch", "user", "bob", false},
		{"absent field never matches", "token", "*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormField(tt.key, tt.pattern).Matches(req, body))
		})
	}

	assert.Equal(t, `form field "user" = "al*"`, FormField("user", "al*").String())
}

func TestFormFieldMultipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("user", "alice"))
	require.NoError(t, w.WriteField("tag", "alpha"))
	require.NoError(t, w.WriteField("tag", "beta"))
	file, err := w.CreateFormFile("upload", "notes.txt")
	require.NoError(t, err)
	_, err = file.Write([]byte("alice"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := newRequest(t, http.MethodPost, "https://api.test/upload")
	req.Header.Set("Content-Type", w.FormDataContentType())
	body := buf.Bytes()

	assert.True(t, FormField("user", "alice").Matches(req, body))
	assert.True(t, FormField("tag", "beta").Matches(req, body))
	assert.False(t, FormField("user", "bob").Matches(req, body))
	// File parts are not form fields even when the content matches.
	assert.False(t, FormField("upload", "alice").Matches(req, body))
}

func TestFormFieldRequiresFormContentType(t *testing.T) {
	req := newRequest(t, http.MethodPost, "https://api.test/login")
	req.Header.Set("Content-Type", "application/json")

	assert.False(t, FormField("user", "alice").Matches(req, []byte("user=alice")))

	bare := newRequest(t, http.MethodPost, "https://api.test/login")
	assert.False(t, FormField("user", "alice").Matches(bare, []byte("user=alice")))
}
