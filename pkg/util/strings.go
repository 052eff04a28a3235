package util

import (
	"fmt"
	"strings"
)

// MaxShownBodySize is the default cap on body bytes reproduced in logs and
// diagnostic output (10KB).
const MaxShownBodySize = 10 * 1024

// TruncateBody truncates data to maxSize bytes, appending "...(truncated)" if
// anything was cut. If maxSize <= 0, MaxShownBodySize is used.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxShownBodySize
	}
	if len(data) > maxSize {
		return data[:maxSize] + "...(truncated)"
	}
	return data
}

// Times renders a call count for assertion messages: "1 time", "3 times".
func Times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}

// JoinWithAnd joins items into prose: "a", "a and b", "a, b, and c".
func JoinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
