package metrics

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"
)

// External services this API calls out to
const (
	TargetS3           = "s3"
	TargetNotification = "notification"
)

// RecordExternalCall records one outbound call to target. statusCode is 0
// when no response was received.
func (m *Metrics) RecordExternalCall(target, operation string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalCall", func() {
		status := strconv.Itoa(statusCode)

		m.ExternalCallsTotal.WithLabelValues(target, operation, status).Inc()
		m.ExternalCallDuration.WithLabelValues(target, operation).Observe(duration.Seconds())

		if err != nil || statusCode >= 400 {
			m.ExternalCallErrors.WithLabelValues(target, classifyExternalError(statusCode, err)).Inc()
		}
	})
}

// classifyExternalError buckets a failed call by status code first and then
// by the transport error.
func classifyExternalError(statusCode int, err error) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "auth"
	case statusCode == 404:
		return "not_found"
	case statusCode == 429:
		return "throttled"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	}

	if err == nil {
		return "unknown"
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &dnsErr):
		return "dns_error"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return "connection_refused"
	}
	return "network_error"
}
