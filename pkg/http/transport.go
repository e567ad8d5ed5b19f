package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type payloadContextKey struct{}

// WithAuthToken adds a Bearer token to every outgoing request.
func WithAuthToken(token string) HttpOpts {
	return func(config *httpConfig) {
		if token == "" {
			return
		}
		config.transports = append(config.transports, func(next http.RoundTripper) http.RoundTripper {
			return roundTripFunc(func(req *http.Request) (*http.Response, error) {
				req.Header.Set("Authorization", "Bearer "+token)
				return next.RoundTrip(req)
			})
		})
	}
}

// WithRequestLogging logs each request with its duration and status.
func WithRequestLogging(logger *zap.Logger) HttpOpts {
	return func(config *httpConfig) {
		if logger == nil {
			return
		}
		config.transports = append(config.transports, func(next http.RoundTripper) http.RoundTripper {
			return roundTripFunc(func(req *http.Request) (*http.Response, error) {
				start := time.Now()

				fields := []zap.Field{
					zap.String("method", req.Method),
					zap.String("url", req.URL.String()),
				}
				if payload, ok := req.Context().Value(payloadContextKey{}).([]byte); ok {
					fields = append(fields, zap.ByteString("payload", payload))
				}

				resp, err := next.RoundTrip(req)
				duration := time.Since(start)
				fields = append(fields, zap.Duration("duration", duration))

				if err != nil {
					logger.Error("outgoing request failed", append(fields, zap.Error(err))...)
					return resp, err
				}

				logger.Debug("outgoing request", append(fields, zap.Int("status", resp.StatusCode))...)
				return resp, nil
			})
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
