package mockhttp

import (
	"fmt"

	"github.com/getmockd/mockhttp/pkg/util"
)

// IsSent is a call-count predicate: it takes the number of recorded
// requests that satisfied a filter and decides whether the expectation
// holds. Predicates are stateless and reusable across verifications.
// The zero value is not valid; use one of the constructors.
type IsSent struct {
	expectation string
	check       func(n int64) bool
}

// AtLeast expects a request to have been sent at least n times.
func AtLeast(n int) IsSent {
	requireCount(n)
	return IsSent{
		expectation: "to have been sent at least " + util.Times(n),
		check:       func(got int64) bool { return got >= int64(n) },
	}
}

// AtLeastOnce expects a request to have been sent one or more times.
func AtLeastOnce() IsSent {
	return IsSent{
		expectation: "to have been sent at least once",
		check:       func(got int64) bool { return got >= 1 },
	}
}

// AtMost expects a request to have been sent no more than n times.
func AtMost(n int) IsSent {
	requireCount(n)
	return IsSent{
		expectation: "to have been sent at most " + util.Times(n),
		check:       func(got int64) bool { return got <= int64(n) },
	}
}

// AtMostOnce expects a request to have been sent no more than one time.
func AtMostOnce() IsSent {
	return IsSent{
		expectation: "to have been sent at most once",
		check:       func(got int64) bool { return got <= 1 },
	}
}

// Exactly expects a request to have been sent exactly n times.
func Exactly(n int) IsSent {
	requireCount(n)
	return IsSent{
		expectation: "to have been sent exactly " + util.Times(n),
		check:       func(got int64) bool { return got == int64(n) },
	}
}

// Once expects a request to have been sent exactly one time.
func Once() IsSent {
	return IsSent{
		expectation: "to have been sent exactly once",
		check:       func(got int64) bool { return got == 1 },
	}
}

// Never expects a request not to have been sent at all.
func Never() IsSent {
	return IsSent{
		expectation: "to never have been sent",
		check:       func(got int64) bool { return got == 0 },
	}
}

func requireCount(n int) {
	if n < 0 {
		panic(fmt.Sprintf("mockhttp: call count must not be negative, got %d", n))
	}
}

func (s IsSent) verify(got int64) bool {
	if s.check == nil {
		panic("mockhttp: IsSent predicate must be built with one of its constructors")
	}
	return s.check(got)
}

// failureMessage renders the assertion failure, placing the optional
// reason clause after the expectation.
func (s IsSent) failureMessage(got int64, because string) string {
	return fmt.Sprintf("expected the request %s%s, but it was actually sent %s",
		s.expectation, becauseClause(because), util.Times(int(got)))
}
