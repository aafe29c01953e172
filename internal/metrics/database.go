package metrics

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// trackedTables bounds the table label to the schema this service owns.
// Anything else (raw queries, migrations) is reported as "other".
var trackedTables = map[string]bool{
	"users":             true,
	"workspaces":        true,
	"workspace_members": true,
	"boards":            true,
	"board_members":     true,
	"lists":             true,
	"cards":             true,
	"card_assignees":    true,
	"card_watchers":     true,
	"card_comments":     true,
	"calendar_events":   true,
	"actions":           true,
}

// poolWaitState remembers the last cumulative wait figures reported by
// database/sql so the counters only grow by the difference.
type poolWaitState struct {
	mu       sync.Mutex
	count    int64
	duration time.Duration
}

func (p *poolWaitState) delta(stats sql.DBStats) (int64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	dc, dd := stats.WaitCount-p.count, stats.WaitDuration-p.duration
	p.count, p.duration = stats.WaitCount, stats.WaitDuration
	// a reopened pool starts counting from zero again
	if dc < 0 || dd < 0 {
		return stats.WaitCount, stats.WaitDuration
	}
	return dc, dd
}

// UpdateDBStats copies a sql.DBStats snapshot into the pool gauges
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := statsInterface.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		waits, waited := m.poolWait.delta(stats)
		m.DBConnectionWaitTotal.Add(float64(waits))
		m.DBConnectionWaitDuration.Add(waited.Seconds())
	})
}

func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		table = queryTable(table)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}

func queryTable(table string) string {
	table = strings.Trim(strings.ToLower(table), `"`)
	if trackedTables[table] {
		return table
	}
	return "other"
}
