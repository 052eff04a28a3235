// Package mockhttp stubs outbound HTTP at the http.RoundTripper seam.
//
// A Transport holds an ordered list of setups, each pairing match
// conditions with a response. The first setup matching a request, in
// registration order, answers it; requests matching nothing get the
// fallback's response, by default a 404 listing the setups that almost
// matched. Every exchange is recorded for later verification:
//
//	transport := mockhttp.New()
//	transport.When(func(r *mockhttp.RequestSpec) {
//		r.Method("GET").Path("/users/{id}")
//	}).RespondJSON(200, map[string]any{"id": 42}).Verifiable()
//
//	client := transport.Client()
//	resp, err := client.Get("https://api.test/users/42")
//	// ...
//
//	if err := transport.VerifyExpectations(); err != nil {
//		t.Fatal(err)
//	}
//
// Call-count assertions filter the recorded requests and check them
// against an IsSent predicate:
//
//	err := transport.Verify(func(r *mockhttp.RequestSpec) {
//		r.Method("POST").Path("/orders")
//	}, mockhttp.Exactly(2), "the retry policy stops after two attempts")
//
// Dispatch is safe for concurrent use. Register setups and call Reset
// between requests, not while they are in flight.
package mockhttp
