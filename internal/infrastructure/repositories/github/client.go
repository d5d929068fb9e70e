package github

import (
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// loggingRoundTripper emits one debug line per request and response, including latency.
type loggingRoundTripper struct {
	base http.RoundTripper
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger.Debugf("github api: %s %s", req.Method, req.URL.String())
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start).Truncate(time.Millisecond)
	if err != nil {
		logger.Debugf("github api: error after %s: %v", dur, err)
		return resp, err
	}
	logger.Debugf("github api: %d %s (%s)", resp.StatusCode, http.StatusText(resp.StatusCode), dur)
	return resp, err
}

// throttledRoundTripper spaces requests at least minInterval apart.
type throttledRoundTripper struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func newThrottledRoundTripper(base http.RoundTripper, minInterval time.Duration) *throttledRoundTripper {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &throttledRoundTripper{base: base, limiter: rate.NewLimiter(limit, 1)}
}

func (t *throttledRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// newHTTPClient builds the transport chain: oauth2 token -> throttle -> debug logging -> default transport.
func newHTTPClient(token string, minInterval time.Duration) *http.Client {
	var transport http.RoundTripper = &loggingRoundTripper{base: http.DefaultTransport}
	transport = newThrottledRoundTripper(transport, minInterval)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	return &http.Client{Transport: transport}
}
