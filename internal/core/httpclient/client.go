package httpclient

import (
	"net/http"
	"time"

	"ecodeli/internal/core/logger"

	"go.uber.org/zap"
)

// DefaultUserAgent is sent on outbound requests unless the caller sets one.
const DefaultUserAgent = "ecodeli-notifier/1.0"

// LoggingRoundTripper logs outbound requests and stamps the user agent.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// UserAgent is set when the request has none.
	UserAgent string
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	log := logger.Named("httpclient")
	start := time.Now()

	if lrt.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		// RoundTrippers must not mutate the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", lrt.UserAgent)
	}

	log.Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Warn("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	log.Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware and the default user agent.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied:   http.DefaultTransport,
			UserAgent: DefaultUserAgent,
		},
		Timeout: timeout,
	}
}
