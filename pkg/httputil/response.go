// Package httputil builds the *http.Response values handed back by response
// strategies and the fallback. Every constructor returns a response that an
// http.Client accepts as-is: proto fields set, Content-Length consistent with
// the body, and a non-nil Body.
package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// NewResponse builds a response with the given status, headers, and body.
// A nil header is allowed; a nil body yields an empty http.NoBody response.
func NewResponse(status int, header http.Header, body []byte) *http.Response {
	resp := &http.Response{
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode: status,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     header,
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	if body == nil {
		resp.Body = http.NoBody
		return resp
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp
}

// NewTextResponse builds a text/plain response.
func NewTextResponse(status int, body string) *http.Response {
	resp := NewResponse(status, nil, []byte(body))
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// NewJSONResponse builds an application/json response from data. Marshal
// errors surface in the returned error, not in the response.
func NewJSONResponse(status int, data any) (*http.Response, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode response body: %w", err)
	}
	resp := NewResponse(status, nil, b)
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

// NewErrorResponse builds a JSON error response with an error code and a
// human-readable message.
func NewErrorResponse(status int, errCode, message string) *http.Response {
	// The body shape is stable: {"error": code, "message": text}.
	resp, _ := NewJSONResponse(status, map[string]string{
		"error":   errCode,
		"message": message,
	})
	return resp
}

// DetectContentType guesses a Content-Type for body when none was configured.
func DetectContentType(body []byte) string {
	s := string(body)
	switch {
	case looksLikeJSON(s):
		return "application/json"
	case looksLikeXML(s):
		return "application/xml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// looksLikeJSON returns true if the string appears to be JSON content.
func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}

// looksLikeXML returns true if the string appears to be XML content.
func looksLikeXML(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "<?xml") || strings.HasPrefix(s, "<")
}
