package mockhttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getmockd/mockhttp/internal/id"
)

// InvokedRequest is an immutable snapshot of one dispatched request,
// pairing the setup that handled it with a clone of the request taken at
// dispatch time. Entries stay valid after the original request is reused
// or its body consumed.
type InvokedRequest struct {
	id    string
	setup *Setup
	req   *http.Request
	body  []byte
	at    time.Time
}

// ID returns the ledger-assigned identifier, ordered by dispatch.
func (ir *InvokedRequest) ID() string { return ir.id }

// Setup returns the setup that handled the request. For unmatched
// requests this is the fallback.
func (ir *InvokedRequest) Setup() *Setup { return ir.setup }

// Request returns the snapshotted request. Its body reads the captured
// bytes from the start.
func (ir *InvokedRequest) Request() *http.Request { return ir.req }

// Body returns the captured request body. Callers must not modify it.
func (ir *InvokedRequest) Body() []byte { return ir.body }

// At returns the dispatch time.
func (ir *InvokedRequest) At() time.Time { return ir.at }

// ledger is the append-only record of dispatched requests. Appends and
// snapshots may run concurrently; a snapshot reflects exactly the appends
// that completed before it was taken.
type ledger struct {
	mu      sync.RWMutex
	entries []*InvokedRequest
	seq     atomic.Int64
}

func (l *ledger) record(s *Setup, req *http.Request, body []byte) *InvokedRequest {
	entry := &InvokedRequest{
		id:    id.Request(l.seq.Add(1) - 1),
		setup: s,
		req:   snapshotRequest(req, body),
		body:  body,
		at:    time.Now(),
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	return entry
}

// snapshot returns a copy of the entries recorded so far. Later appends
// are invisible to the returned slice.
func (l *ledger) snapshot() []*InvokedRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]*InvokedRequest, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func (l *ledger) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *ledger) clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}

// snapshotRequest clones req with its body replaced by the captured
// bytes, detached from the caller's context.
func snapshotRequest(req *http.Request, body []byte) *http.Request {
	clone := req.Clone(context.Background())
	if body == nil {
		clone.Body = http.NoBody
		return clone
	}
	clone.Body = io.NopCloser(bytes.NewReader(body))
	clone.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return clone
}
