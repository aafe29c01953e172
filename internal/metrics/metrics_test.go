package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestMetricsInitialization tests that all metrics are properly initialized
func TestMetricsInitialization(t *testing.T) {
	m := getTestMetrics()

	collectors := map[string]interface{}{
		"HTTPRequestsTotal":        m.HTTPRequestsTotal,
		"HTTPRequestDuration":      m.HTTPRequestDuration,
		"DBConnectionsOpen":        m.DBConnectionsOpen,
		"DBConnectionsInUse":       m.DBConnectionsInUse,
		"DBConnectionsIdle":        m.DBConnectionsIdle,
		"DBConnectionsMax":         m.DBConnectionsMax,
		"DBConnectionWaitTotal":    m.DBConnectionWaitTotal,
		"DBConnectionWaitDuration": m.DBConnectionWaitDuration,
		"DBQueryDuration":          m.DBQueryDuration,
		"DBQueryErrors":            m.DBQueryErrors,
		"ExternalCallsTotal":       m.ExternalCallsTotal,
		"ExternalCallDuration":     m.ExternalCallDuration,
		"ExternalCallErrors":       m.ExternalCallErrors,
		"BoardsTotal":              m.BoardsTotal,
		"CardsTotal":               m.CardsTotal,
		"EventsByStatus":           m.EventsByStatus,
		"BoardCreatedTotal":        m.BoardCreatedTotal,
		"CardCreatedTotal":         m.CardCreatedTotal,
		"EventCreatedTotal":        m.EventCreatedTotal,
		"ActionsRecordedTotal":     m.ActionsRecordedTotal,
		"ActionRecordFailures":     m.ActionRecordFailures,
		"EventStatusTransitions":   m.EventStatusTransitions,
		"AuthAttemptsTotal":        m.AuthAttemptsTotal,
		"FeedSubscribers":          m.FeedSubscribers,
		"FeedDroppedMessages":      m.FeedDroppedMessages,
	}
	for name, c := range collectors {
		assert.NotNil(t, c, "%s should not be nil", name)
	}
}

func TestMetricNamesAreSnakeCaseAndNamespaced(t *testing.T) {
	snake := regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, zap.NewNop())
	touchAll(m)

	families, err := registry.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		name := mf.GetName()
		assert.True(t, snake.MatchString(name), "metric %q is not snake_case", name)
		assert.True(t, strings.HasPrefix(name, namespace+"_"), "metric %q lacks namespace", name)
	}
}

func TestRegisteringTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewWithRegistry(registry, nil)

	assert.Panics(t, func() {
		NewWithRegistry(registry, nil)
	})
}

func TestShouldSkipEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/metrics", true},
		{"/health", true},
		{"/api/health", true},
		{"/swagger/index.html", true},
		{"/api/tasks/boards/{id}", false},
		{"/api/auth/login", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldSkipEndpoint(tt.path))
		})
	}
}

func TestQueryTable(t *testing.T) {
	assert.Equal(t, "cards", queryTable("cards"))
	assert.Equal(t, "board_members", queryTable(`"BOARD_MEMBERS"`))
	assert.Equal(t, "other", queryTable("pg_catalog.pg_tables"))
	assert.Equal(t, "other", queryTable(""))
}

func TestClassifyExternalError(t *testing.T) {
	dial := &url.Error{Op: "Post", URL: "http://127.0.0.1:1", Err: &net.OpError{Op: "dial", Net: "tcp", Err: staticErr("connection refused")}}
	dns := &url.Error{Op: "Post", URL: "http://nowhere", Err: &net.DNSError{Err: "no such host", Name: "nowhere"}}

	tests := []struct {
		name   string
		status int
		err    error
		want   string
	}{
		{"403", 403, nil, "auth"},
		{"404", 404, nil, "not_found"},
		{"429", 429, nil, "throttled"},
		{"422", 422, nil, "client_error"},
		{"503", 503, nil, "server_error"},
		{"deadline", 0, fmt.Errorf("presign: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", 0, context.Canceled, "canceled"},
		{"dial", 0, dial, "connection_refused"},
		{"dns", 0, dns, "dns_error"},
		{"other", 0, staticErr("weird"), "network_error"},
		{"no error", 200, nil, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyExternalError(tt.status, tt.err))
		})
	}
}

func TestUpdateDBStats_WaitCountersGrowByDelta(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	m.UpdateDBStats(sql.DBStats{WaitCount: 4, WaitDuration: 2 * time.Second})
	m.UpdateDBStats(sql.DBStats{WaitCount: 4, WaitDuration: 2 * time.Second})
	m.UpdateDBStats(sql.DBStats{WaitCount: 7, WaitDuration: 3 * time.Second})

	assert.Equal(t, float64(7), testutil.ToFloat64(m.DBConnectionWaitTotal))
	assert.InDelta(t, 3.0, testutil.ToFloat64(m.DBConnectionWaitDuration), 1e-9)

	// a fresh pool reports from zero again
	m.UpdateDBStats(sql.DBStats{WaitCount: 1, WaitDuration: time.Second})
	assert.Equal(t, float64(8), testutil.ToFloat64(m.DBConnectionWaitTotal))
}

func TestRecordExternalCall(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	m.RecordExternalCall(TargetS3, "presign_put", 200, 10*time.Millisecond, nil)
	m.RecordExternalCall(TargetNotification, "send", 502, 10*time.Millisecond, nil)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExternalCallsTotal.WithLabelValues("s3", "presign_put", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ExternalCallErrors.WithLabelValues("s3", "server_error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExternalCallErrors.WithLabelValues("notification", "server_error")))
}
