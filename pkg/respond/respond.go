// Package respond provides response strategies for stubbed HTTP calls.
//
// A Strategy produces the response for a dispatched request. Strategies are
// invoked concurrently when the code under test issues parallel requests,
// so implementations must be safe for concurrent use. Returning a nil
// response with a nil error means the strategy has no response to give;
// the transport reports that to the caller as a missing-response error.
package respond

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getmockd/mockhttp/pkg/httputil"
)

// Strategy produces the response for a matched request.
type Strategy interface {
	Respond(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Func adapts a plain function to a Strategy. A nil Func responds with no
// response at all.
type Func func(ctx context.Context, req *http.Request) (*http.Response, error)

func (f Func) Respond(ctx context.Context, req *http.Request) (*http.Response, error) {
	if f == nil {
		return nil, nil
	}
	return f(ctx, req)
}

// Option adjusts a built response before it is served.
type Option func(*http.Response)

// WithHeader adds a header to every served response.
func WithHeader(key, value string) Option {
	return func(resp *http.Response) {
		resp.Header.Add(key, value)
	}
}

// WithContentType overrides the Content-Type of every served response.
func WithContentType(contentType string) Option {
	return func(resp *http.Response) {
		resp.Header.Set("Content-Type", contentType)
	}
}

func apply(resp *http.Response, opts []Option) *http.Response {
	for _, opt := range opts {
		opt(resp)
	}
	return resp
}

// Status responds with a bodyless status code.
func Status(status int, opts ...Option) Strategy {
	return Func(func(context.Context, *http.Request) (*http.Response, error) {
		return apply(httputil.NewResponse(status, nil, nil), opts), nil
	})
}

// Text responds with a text/plain body.
func Text(status int, body string, opts ...Option) Strategy {
	return Func(func(context.Context, *http.Request) (*http.Response, error) {
		return apply(httputil.NewTextResponse(status, body), opts), nil
	})
}

// Bytes responds with a fixed body and content type.
func Bytes(status int, contentType string, body []byte, opts ...Option) Strategy {
	return Func(func(context.Context, *http.Request) (*http.Response, error) {
		header := http.Header{}
		if contentType != "" {
			header.Set("Content-Type", contentType)
		}
		return apply(httputil.NewResponse(status, header, body), opts), nil
	})
}

// JSON responds with data marshaled as a JSON body. Marshaling happens per
// invocation; a value that cannot be marshaled turns into a strategy error.
func JSON(status int, data any, opts ...Option) Strategy {
	return Func(func(context.Context, *http.Request) (*http.Response, error) {
		resp, err := httputil.NewJSONResponse(status, data)
		if err != nil {
			return nil, fmt.Errorf("building JSON response: %w", err)
		}
		return apply(resp, opts), nil
	})
}
