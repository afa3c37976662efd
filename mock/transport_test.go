package mock_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/fwojciec/webcrawler/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripper_CountsCalls(t *testing.T) {
	t.Parallel()

	rt := &mock.RoundTripper{
		RoundTripFn: func(*http.Request) (*http.Response, error) {
			return nil, errors.New("refused")
		},
	}
	req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
	require.NoError(t, err)

	assert.Zero(t, rt.Calls())
	_, _ = rt.RoundTrip(req)
	_, _ = rt.RoundTrip(req)
	assert.Equal(t, 2, rt.Calls())
}
