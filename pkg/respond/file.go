package respond

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/getmockd/mockhttp/pkg/httputil"
	"github.com/getmockd/mockhttp/pkg/util"
)

// File responds with the contents of a file, read on every invocation so
// the fixture can change between calls. The path is cleaned and rejected
// if it climbs out of its root. The content type is sniffed from the file
// contents unless an option overrides it.
func File(status int, path string, opts ...Option) Strategy {
	safe, ok := util.SafeFilePathAllowAbsolute(path)
	return Func(func(context.Context, *http.Request) (*http.Response, error) {
		if !ok {
			return nil, fmt.Errorf("unsafe response file path %q", path)
		}
		body, err := os.ReadFile(safe)
		if err != nil {
			return nil, fmt.Errorf("reading response file: %w", err)
		}
		header := http.Header{}
		header.Set("Content-Type", httputil.DetectContentType(body))
		return apply(httputil.NewResponse(status, header, body), opts), nil
	})
}
