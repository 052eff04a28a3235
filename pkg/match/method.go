package match

import (
	"fmt"
	"net/http"
	"strings"
)

type methodMatcher string

// Method matches requests by HTTP method, case-insensitively.
func Method(method string) Matcher {
	return methodMatcher(method)
}

func (m methodMatcher) Matches(r *http.Request, _ []byte) bool {
	return strings.EqualFold(r.Method, string(m))
}

func (m methodMatcher) String() string {
	return fmt.Sprintf("method %q", strings.ToUpper(string(m)))
}
