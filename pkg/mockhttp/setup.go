package mockhttp

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/getmockd/mockhttp/internal/id"
	"github.com/getmockd/mockhttp/pkg/match"
	"github.com/getmockd/mockhttp/pkg/respond"
)

// Setup is a registered expectation: a frozen set of match conditions, a
// response strategy, and the invocation state the transport maintains for
// it. Matchers are fixed at registration; the response strategy and the
// flags may be reconfigured afterwards, with the last write winning.
//
// A Setup handle stays usable after Reset orphans it, but dispatch no
// longer routes to it.
type Setup struct {
	id       string
	matchers match.Group

	mu       sync.Mutex
	name     string
	strategy respond.Strategy

	verifiable atomic.Bool
	verified   atomic.Bool
	count      atomic.Int64
	limit      atomic.Int64
}

func newSetup(matchers match.Group) *Setup {
	return &Setup{id: id.Setup(), matchers: matchers}
}

// ID returns the generated setup identifier.
func (s *Setup) ID() string { return s.id }

// Named gives the setup a label used in logs and verification failures
// instead of its generated identifier.
func (s *Setup) Named(name string) *Setup {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	return s
}

// Name returns the label set by Named, or "" when unset.
func (s *Setup) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Respond sets the response strategy. Reconfiguring replaces the prior
// strategy; no history is kept.
func (s *Setup) Respond(strategy respond.Strategy) *Setup {
	s.mu.Lock()
	s.strategy = strategy
	s.mu.Unlock()
	return s
}

// RespondStatus responds with a bodyless status code.
func (s *Setup) RespondStatus(status int) *Setup {
	return s.Respond(respond.Status(status))
}

// RespondText responds with a text/plain body.
func (s *Setup) RespondText(status int, body string) *Setup {
	return s.Respond(respond.Text(status, body))
}

// RespondJSON responds with data marshaled as a JSON body.
func (s *Setup) RespondJSON(status int, data any) *Setup {
	return s.Respond(respond.JSON(status, data))
}

// RespondFile responds with the contents of a file, re-read per request.
func (s *Setup) RespondFile(status int, path string) *Setup {
	return s.Respond(respond.File(status, path))
}

// RespondError fails every matched exchange with err, simulating a
// transport fault.
func (s *Setup) RespondError(err error) *Setup {
	return s.Respond(respond.Error(err))
}

// Verifiable flags the setup so that VerifyExpectations requires it to
// have been invoked.
func (s *Setup) Verifiable() *Setup {
	s.verifiable.Store(true)
	return s
}

// Times limits how many requests the setup answers. Once n requests have
// been routed to it, dispatch skips it and later setups or the fallback
// take over. Panics if n is not positive.
func (s *Setup) Times(n int) *Setup {
	if n < 1 {
		panic(fmt.Sprintf("mockhttp: Times requires a positive count, got %d", n))
	}
	s.limit.Store(int64(n))
	return s
}

// Invocations returns how many requests were routed to this setup.
func (s *Setup) Invocations() int64 { return s.count.Load() }

// WasInvoked reports whether at least one request was routed here.
func (s *Setup) WasInvoked() bool { return s.count.Load() > 0 }

// Verified reports whether a verification call has checked this setup.
func (s *Setup) Verified() bool { return s.verified.Load() }

// String renders the setup's label and match conditions.
func (s *Setup) String() string {
	label := s.Name()
	if label == "" {
		label = s.id
	}
	return label + ": " + s.matchers.String()
}

func (s *Setup) matches(r *http.Request, body []byte) bool {
	return s.matchers.Matches(r, body)
}

// exhausted reports whether a Times limit has been used up. It is a
// cheap pre-check; claim is the authoritative gate.
func (s *Setup) exhausted() bool {
	limit := s.limit.Load()
	return limit > 0 && s.count.Load() >= limit
}

// claim reserves one invocation slot. It fails only when a Times limit
// is exhausted; the count advances atomically so concurrent dispatches
// cannot overshoot the limit.
func (s *Setup) claim() bool {
	for {
		n := s.count.Load()
		if limit := s.limit.Load(); limit > 0 && n >= limit {
			return false
		}
		if s.count.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (s *Setup) currentStrategy() respond.Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy
}

// respond produces the response via the current strategy. No strategy
// means no response, which is a valid outcome.
func (s *Setup) respond(ctx context.Context, req *http.Request) (*http.Response, error) {
	strategy := s.currentStrategy()
	if strategy == nil {
		return nil, nil
	}
	return strategy.Respond(ctx, req)
}

// verifyIfInvoked marks the setup verified and reports whether blanket
// verification considers it fulfilled: either it is not verifiable, or it
// was invoked at least once.
func (s *Setup) verifyIfInvoked() bool {
	s.verified.Store(true)
	return !s.verifiable.Load() || s.count.Load() > 0
}

func (s *Setup) markVerified() { s.verified.Store(true) }
