package respond

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeq(t *testing.T) {
	strategy := Seq(
		Status(http.StatusAccepted),
		Status(http.StatusAccepted),
		Status(http.StatusOK),
	)

	wantStatuses := []int{
		http.StatusAccepted,
		http.StatusAccepted,
		http.StatusOK,
		http.StatusOK, // sticks on the last strategy
		http.StatusOK,
	}
	for i, want := range wantStatuses {
		resp, err := strategy.Respond(context.Background(), newRequest(t))
		require.NoError(t, err, "invocation %d", i)
		assert.Equal(t, want, resp.StatusCode, "invocation %d", i)
	}
}

func TestSeqEmpty(t *testing.T) {
	resp, err := Seq().Respond(context.Background(), newRequest(t))
	assert.Nil(t, resp)
	assert.NoError(t, err)
}

func TestSeqMixesStrategies(t *testing.T) {
	strategy := Seq(
		Text(http.StatusOK, "first"),
		Error(assert.AnError),
	)

	resp, err := strategy.Respond(context.Background(), newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "first", readBody(t, resp))

	_, err = strategy.Respond(context.Background(), newRequest(t))
	assert.ErrorIs(t, err, assert.AnError)
}
