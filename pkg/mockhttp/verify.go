package mockhttp

import (
	"fmt"
	"strings"

	"github.com/getmockd/mockhttp/pkg/util"
)

// Verify counts the recorded requests satisfying the filter built by
// configure and checks that count against sent. A nil configure, or one
// adding no conditions, counts every recorded request, including those
// answered by the fallback. The because string is woven into the failure
// message; pass "" for none.
//
//	err := transport.Verify(func(r *mockhttp.RequestSpec) {
//		r.Method("POST").Path("/orders")
//	}, mockhttp.Exactly(2), "the retry policy stops after two attempts")
func (t *Transport) Verify(configure func(*RequestSpec), sent IsSent, because string) error {
	spec := &RequestSpec{}
	if configure != nil {
		configure(spec)
	}
	group := spec.group()

	var n int64
	for _, entry := range t.ledger.snapshot() {
		if group.Matches(entry.req, entry.body) {
			n++
		}
	}
	if !sent.verify(n) {
		return &VerificationError{Failures: []string{sent.failureMessage(n, because)}}
	}
	return nil
}

// VerifyExpectations checks that every setup flagged Verifiable was
// invoked at least once. Every registered setup it examines is marked
// verified, fulfilled or not. All unfulfilled setups are reported in a
// single error.
func (t *Transport) VerifyExpectations() error {
	var failures []string
	for _, s := range t.snapshotSetups() {
		if !s.verifyIfInvoked() {
			failures = append(failures, fmt.Sprintf("%s was never invoked", s))
		}
	}
	return verificationResult(failures)
}

// VerifyAll is VerifyExpectations without the opt-in: every registered
// setup must have been invoked at least once, Verifiable or not.
func (t *Transport) VerifyAll() error {
	var failures []string
	for _, s := range t.snapshotSetups() {
		s.markVerified()
		if !s.WasInvoked() {
			failures = append(failures, fmt.Sprintf("%s was never invoked", s))
		}
	}
	return verificationResult(failures)
}

// VerifyNoOtherCalls checks that no setup outside the already verified
// ones received a request. The fallback counts, so unmatched requests
// fail this check. Nothing is marked verified; the check is repeatable.
func (t *Transport) VerifyNoOtherCalls() error {
	setups := append(t.snapshotSetups(), t.Fallback())

	var failures []string
	for _, s := range setups {
		if s.Verified() {
			continue
		}
		if n := s.Invocations(); n > 0 {
			failures = append(failures,
				fmt.Sprintf("%s was invoked %s but never verified", s, util.Times(int(n))))
		}
	}
	return verificationResult(failures)
}

func verificationResult(failures []string) error {
	if len(failures) == 0 {
		return nil
	}
	return &VerificationError{Failures: failures}
}

// becauseClause turns a caller-supplied reason into the clause appended
// to an assertion failure. A reason already leading with "because" is
// used verbatim.
func becauseClause(reason string) string {
	if reason == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(reason), "because") {
		return " " + reason
	}
	return " because " + reason
}
