package respond

import (
	"context"
	"net/http"
	"sync/atomic"
)

type seqStrategy struct {
	strategies []Strategy
	next       atomic.Int64
}

// Seq responds with each strategy in turn, one per invocation. Once the
// sequence is exhausted the last strategy keeps answering. Seq with no
// strategies responds with no response.
func Seq(strategies ...Strategy) Strategy {
	return &seqStrategy{strategies: strategies}
}

func (s *seqStrategy) Respond(ctx context.Context, req *http.Request) (*http.Response, error) {
	if len(s.strategies) == 0 {
		return nil, nil
	}
	i := s.next.Add(1) - 1
	if i >= int64(len(s.strategies)) {
		i = int64(len(s.strategies)) - 1
	}
	return s.strategies[i].Respond(ctx, req)
}
