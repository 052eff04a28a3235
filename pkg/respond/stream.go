package respond

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/getmockd/mockhttp/pkg/httputil"
)

type streamStrategy struct {
	status int
	opts   []Option

	mu sync.Mutex

	// Random-access path: re-read from start on every invocation.
	seeker io.ReadSeeker
	start  int64

	// Forward-only path: drain into body exactly once.
	source  io.Reader
	drained bool
	body    []byte
	err     error
}

// Stream responds with the contents of r. A source with random access is
// rewound to its original position and re-read on every invocation. A
// forward-only source is drained exactly once, on first use; every
// invocation, including concurrent ones, serves the same buffered bytes,
// and a drain failure is reported by every invocation. The content type
// is sniffed from the bytes unless an option overrides it.
func Stream(status int, r io.Reader, opts ...Option) Strategy {
	s := &streamStrategy{status: status, opts: opts}
	if seeker, ok := r.(io.ReadSeeker); ok {
		if start, err := seeker.Seek(0, io.SeekCurrent); err == nil {
			s.seeker = seeker
			s.start = start
			return s
		}
	}
	s.source = r
	return s
}

func (s *streamStrategy) Respond(context.Context, *http.Request) (*http.Response, error) {
	body, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("reading response stream: %w", err)
	}
	header := http.Header{}
	header.Set("Content-Type", httputil.DetectContentType(body))
	return apply(httputil.NewResponse(s.status, header, body), s.opts), nil
}

func (s *streamStrategy) read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeker != nil {
		if _, err := s.seeker.Seek(s.start, io.SeekStart); err != nil {
			return nil, err
		}
		return io.ReadAll(s.seeker)
	}
	if !s.drained {
		s.drained = true
		if s.source != nil {
			s.body, s.err = io.ReadAll(s.source)
		}
	}
	return s.body, s.err
}
