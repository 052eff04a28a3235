// Package id generates the identifiers attached to setups and ledger entries.
package id

import (
	"strconv"

	"github.com/google/uuid"
)

// Setup returns a unique identifier for a registered setup.
func Setup() string {
	return "setup-" + uuid.NewString()
}

// Request returns the identifier for the seq-th ledger entry. Sequence
// numbers are base36-encoded to keep log lines short.
func Request(seq int64) string {
	return "req-" + strconv.FormatInt(seq, 36)
}
