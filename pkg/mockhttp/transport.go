package mockhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/getmockd/mockhttp/pkg/logging"
	"github.com/getmockd/mockhttp/pkg/match"
	"github.com/getmockd/mockhttp/pkg/respond"
)

// DefaultBodyLimit caps how many request body bytes are snapshotted for
// matching and recording. Bodies beyond the limit are truncated.
const DefaultBodyLimit = 10 << 20

// Transport is an http.RoundTripper test double. Each request is routed
// to the first registered setup whose conditions all match, in
// registration order, or to the fallback when none do; the winning
// setup's strategy produces the response and the exchange is recorded
// for later verification.
//
// Dispatch is safe for concurrent use. Registration and Reset belong in
// test setup and teardown; overlapping them with in-flight requests
// leaves the routing of those requests unspecified.
type Transport struct {
	mu       sync.RWMutex
	setups   []*Setup
	fallback *Setup

	ledger           *ledger
	log              *slog.Logger
	bodyLimit        int64
	fallbackStrategy respond.Strategy
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger routes the transport's dispatch and registration logs to
// log. The default logger discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(t *Transport) {
		if log != nil {
			t.log = log
		}
	}
}

// WithBodyLimit overrides DefaultBodyLimit. Panics if n is not positive.
func WithBodyLimit(n int64) Option {
	if n < 1 {
		panic(fmt.Sprintf("mockhttp: body limit must be positive, got %d", n))
	}
	return func(t *Transport) {
		t.bodyLimit = n
	}
}

// WithFallback answers unmatched requests with strategy instead of the
// built-in not-found response. Reset restores this strategy along with
// the rest of the initial state.
func WithFallback(strategy respond.Strategy) Option {
	return func(t *Transport) {
		t.fallbackStrategy = strategy
	}
}

// New creates a Transport with no setups and the default fallback, which
// answers unmatched requests with a not-found response describing the
// closest non-matching setups.
func New(opts ...Option) *Transport {
	t := &Transport{
		ledger:    &ledger{},
		log:       logging.Nop(),
		bodyLimit: DefaultBodyLimit,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.fallback = t.newFallback()
	return t
}

// newFallback builds the unconditional setup dispatch falls back to. Its
// empty matcher group matches every request; a nil strategy stands for
// the built-in not-found response.
func (t *Transport) newFallback() *Setup {
	s := newSetup(match.AllOf()).Named("fallback")
	if t.fallbackStrategy != nil {
		s.Respond(t.fallbackStrategy)
	}
	return s
}

// When registers a setup whose match conditions are populated by
// configure, and returns it for response and flag configuration. Setups
// are consulted in registration order: when two overlap, the earlier one
// wins. Panics if configure is nil.
func (t *Transport) When(configure func(*RequestSpec)) *Setup {
	if configure == nil {
		panic("mockhttp: When requires a configure callback")
	}
	spec := &RequestSpec{}
	configure(spec)
	s := newSetup(spec.group())

	t.mu.Lock()
	t.setups = append(t.setups, s)
	t.mu.Unlock()

	t.log.Debug("setup registered",
		slog.String("setup", s.ID()),
		slog.String("matches", s.matchers.String()),
	)
	return s
}

// Fallback returns the setup that answers unmatched requests, so a test
// can replace its response. A fallback without an explicit strategy
// serves the built-in not-found response.
func (t *Transport) Fallback() *Setup {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fallback
}

// Handle dispatches one request: it selects the winning setup, records
// the exchange, and returns the response the setup's strategy produced.
// Exactly one setup is invoked and exactly one ledger entry is appended
// per call. A nil response with a nil error is a valid outcome meaning
// the setup had no response to give. Strategy failures propagate
// unmodified; the exchange is recorded either way.
func (t *Transport) Handle(ctx context.Context, req *http.Request) (*http.Response, error) {
	body, err := t.snapshotBody(req)
	if err != nil {
		return nil, fmt.Errorf("mockhttp: reading request body: %w", err)
	}

	winner, isFallback := t.selectSetup(req, body)
	t.ledger.record(winner, req, body)

	t.log.Debug("request dispatched",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("setup", winner.ID()),
		slog.Bool("fallback", isFallback),
	)

	if isFallback && winner.currentStrategy() == nil {
		return t.noMatchResponse(req, body), nil
	}
	return winner.respond(ctx, req)
}

// RoundTrip implements http.RoundTripper. A setup that produced no
// response surfaces as ErrNoResponse, since net/http requires a round
// trip to yield either a response or an error.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.Handle(req.Context(), req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrNoResponse
	}
	if resp.Request == nil {
		resp.Request = req
	}
	return resp, nil
}

// Client returns an http.Client that sends every request through t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// Requests returns a snapshot of every recorded exchange in dispatch
// order. Exchanges recorded after the call are not included.
func (t *Transport) Requests() []*InvokedRequest {
	return t.ledger.snapshot()
}

// Reset clears the ledger and all setups and restores the default
// fallback. Setup handles from before the reset are orphaned: they keep
// their state but dispatch no longer routes to them.
func (t *Transport) Reset() {
	t.mu.Lock()
	t.setups = nil
	t.fallback = t.newFallback()
	t.mu.Unlock()

	t.ledger.clear()
	t.log.Debug("transport reset")
}

// selectSetup picks the first matching setup in registration order, or
// the fallback. The winner's invocation slot is claimed before the read
// lock is released, so a Times limit cannot be overshot by concurrent
// dispatches.
func (t *Transport) selectSetup(req *http.Request, body []byte) (winner *Setup, isFallback bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, s := range t.setups {
		if s.exhausted() {
			continue
		}
		if s.matches(req, body) && s.claim() {
			return s, false
		}
	}
	t.fallback.claim()
	return t.fallback, true
}

// snapshotSetups copies the registered setups for lock-free iteration.
func (t *Transport) snapshotSetups() []*Setup {
	t.mu.RLock()
	defer t.mu.RUnlock()
	setups := make([]*Setup, len(t.setups))
	copy(setups, t.setups)
	return setups
}

// snapshotBody captures the request body so matchers and the ledger can
// see it while the strategy still receives a readable request. The
// original body is replaced with a replayable reader.
func (t *Transport) snapshotBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(req.Body, t.bodyLimit))
	if err != nil {
		return nil, err
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return data, nil
}
