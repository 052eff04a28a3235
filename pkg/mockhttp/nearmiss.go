package mockhttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/getmockd/mockhttp/pkg/httputil"
	"github.com/getmockd/mockhttp/pkg/match"
)

// maxNearMisses caps how many almost-matching setups the not-found
// response reports.
const maxNearMisses = 3

// NearMiss describes a setup that matched some, but not all, of its
// conditions against an unmatched request. The default fallback response
// lists near misses to point at the condition that broke, which is
// usually a typo in a path or header pattern.
type NearMiss struct {
	Setup     string   `json:"setup"`
	Matched   []string `json:"matched,omitempty"`
	Unmatched []string `json:"unmatched,omitempty"`
	Score     float64  `json:"score"`
}

// rankNearMisses scores every setup against the request and returns the
// closest partial matches, best first. Setups with no matching condition
// are dropped. A fully matching setup can appear here when its Times
// limit kept it from winning.
func rankNearMisses(setups []*Setup, req *http.Request, body []byte) []NearMiss {
	var misses []NearMiss
	for _, s := range setups {
		verdicts := match.BreakdownOf(s.matchers, req, body)
		if len(verdicts) == 0 {
			continue
		}
		var matched, unmatched []string
		for _, v := range verdicts {
			if v.Matched {
				matched = append(matched, v.Description)
			} else {
				unmatched = append(unmatched, v.Description)
			}
		}
		if len(matched) == 0 {
			continue
		}
		label := s.Name()
		if label == "" {
			label = s.id
		}
		misses = append(misses, NearMiss{
			Setup:     label,
			Matched:   matched,
			Unmatched: unmatched,
			Score:     float64(len(matched)) / float64(len(verdicts)),
		})
	}
	sort.SliceStable(misses, func(i, j int) bool {
		return misses[i].Score > misses[j].Score
	})
	if len(misses) > maxNearMisses {
		misses = misses[:maxNearMisses]
	}
	return misses
}

// noMatchResponse builds the default fallback response: a 404 naming the
// unmatched request and the closest setups.
func (t *Transport) noMatchResponse(req *http.Request, body []byte) *http.Response {
	misses := rankNearMisses(t.snapshotSetups(), req, body)

	payload := map[string]any{
		"error":   "no_match",
		"message": fmt.Sprintf("no setup matched %s %s", req.Method, req.URL),
	}
	if len(misses) > 0 {
		payload["nearMisses"] = misses
	}
	resp, err := httputil.NewJSONResponse(http.StatusNotFound, payload)
	if err != nil {
		resp = httputil.NewErrorResponse(http.StatusNotFound, "no_match", "no setup matched the request")
	}
	resp.Header.Set("X-Mockhttp-Near-Misses", strconv.Itoa(len(misses)))

	t.log.Debug("no setup matched",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("near_misses", len(misses)),
	)
	return resp
}
