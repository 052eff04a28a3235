package match

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type bearerClaimMatcher struct {
	claim string
	want  any
}

// BearerClaim matches requests carrying a bearer token whose named claim
// equals want. The token is decoded without signature verification; a
// test double has no business holding signing keys.
func BearerClaim(claim string, want any) Matcher {
	return bearerClaimMatcher{claim: claim, want: want}
}

func (m bearerClaimMatcher) Matches(r *http.Request, _ []byte) bool {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), claims); err != nil {
		return false
	}
	got, ok := claims[m.claim]
	if !ok {
		return false
	}
	return valuesEqual(got, m.want)
}

func (m bearerClaimMatcher) String() string {
	return fmt.Sprintf("bearer token claim %q = %v", m.claim, m.want)
}
