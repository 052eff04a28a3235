package mockhttp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoResponse is returned by RoundTrip when the winning setup produced
// no response. An absent response is a valid outcome at the Handle level,
// but net/http requires a round trip to yield a response or an error.
var ErrNoResponse = errors.New("mockhttp: matched setup produced no response")

// VerificationError reports every expectation a verification call found
// violated, aggregated into one error instead of failing on the first.
type VerificationError struct {
	Failures []string
}

func (e *VerificationError) Error() string {
	if len(e.Failures) == 1 {
		return "mockhttp: " + e.Failures[0]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "mockhttp: %d expectations failed:", len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("\n  - ")
		b.WriteString(f)
	}
	return b.String()
}
