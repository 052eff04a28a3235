package respond

import (
	"context"
	"net/http"
	"time"
)

// Error responds by failing the exchange with err, simulating a transport
// failure such as a refused connection or a reset.
func Error(err error) Strategy {
	return Func(func(context.Context, *http.Request) (*http.Response, error) {
		return nil, err
	})
}

// Delay responds with next after waiting d. Cancelling the request context
// during the wait fails the exchange with the context's error. A nil next
// produces no response once the delay has elapsed.
func Delay(d time.Duration, next Strategy) Strategy {
	return Func(func(ctx context.Context, req *http.Request) (*http.Response, error) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
		if next == nil {
			return nil, nil
		}
		return next.Respond(ctx, req)
	})
}

// Timeout never responds: it blocks until the request context is done and
// fails the exchange with the context's error. Use it with a client
// timeout or a per-request deadline.
func Timeout() Strategy {
	return Func(func(ctx context.Context, _ *http.Request) (*http.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
}
