package match

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/getmockd/mockhttp/internal/wildcard"
)

// maxFormFieldSize bounds how much of a single multipart field is read.
const maxFormFieldSize = 1 << 20

type formFieldMatcher struct {
	key      string
	pattern  string
	compiled wildcard.Pattern
}

// FormField matches a form field against a wildcard pattern. Both
// application/x-www-form-urlencoded and multipart/form-data bodies are
// understood; any other content type never matches. A field that appears
// multiple times matches if any value does.
func FormField(key, pattern string) Matcher {
	return formFieldMatcher{key: key, pattern: pattern, compiled: wildcard.Compile(pattern)}
}

func (m formFieldMatcher) Matches(r *http.Request, body []byte) bool {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/x-www-form-urlencoded":
		return m.matchURLEncoded(body)
	case "multipart/form-data":
		return m.matchMultipart(body, params["boundary"])
	default:
		return false
	}
}

func (m formFieldMatcher) matchURLEncoded(body []byte) bool {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return false
	}
	vs, ok := values[m.key]
	if !ok {
		return false
	}
	for _, v := range vs {
		if m.compiled.Match(v) {
			return true
		}
	}
	return false
}

func (m formFieldMatcher) matchMultipart(body []byte, boundary string) bool {
	if boundary == "" {
		return false
	}
	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			return false
		}
		if part.FormName() != m.key || part.FileName() != "" {
			continue
		}
		value, err := io.ReadAll(io.LimitReader(part, maxFormFieldSize))
		if err != nil {
			continue
		}
		// Keep scanning: the field may repeat with different values.
		if m.compiled.Match(string(value)) {
			return true
		}
	}
}

func (m formFieldMatcher) String() string {
	return fmt.Sprintf("form field %q = %q", m.key, m.pattern)
}
