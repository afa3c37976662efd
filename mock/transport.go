package mock

import (
	"net/http"
	"sync/atomic"
)

var _ http.RoundTripper = (*RoundTripper)(nil)

// RoundTripper is a mock http.RoundTripper that counts its invocations.
type RoundTripper struct {
	RoundTripFn func(req *http.Request) (*http.Response, error)

	calls atomic.Int64
}

func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.calls.Add(1)
	return rt.RoundTripFn(req)
}

// Calls returns the number of RoundTrip invocations.
func (rt *RoundTripper) Calls() int {
	return int(rt.calls.Load())
}
