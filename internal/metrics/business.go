package metrics

import "strings"

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementCardCreated increments card creation counter
func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardCreatedTotal.Inc()
	})
}

// IncrementEventCreated increments calendar event creation counter
func (m *Metrics) IncrementEventCreated() {
	m.safeExecute("IncrementEventCreated", func() {
		m.EventCreatedTotal.Inc()
	})
}

// RecordActionRecorded counts a persisted audit log entry by its type
func (m *Metrics) RecordActionRecorded(actionType string) {
	m.safeExecute("RecordActionRecorded", func() {
		m.ActionsRecordedTotal.WithLabelValues(strings.ToLower(actionType)).Inc()
	})
}

func (m *Metrics) IncrementActionRecordFailure() {
	m.safeExecute("IncrementActionRecordFailure", func() {
		m.ActionRecordFailures.Inc()
	})
}

// RecordEventStatusTransitions adds count transitions into status
func (m *Metrics) RecordEventStatusTransitions(status string, count int) {
	if count <= 0 {
		return
	}
	m.safeExecute("RecordEventStatusTransitions", func() {
		m.EventStatusTransitions.WithLabelValues(status).Add(float64(count))
	})
}

// RecordAuthAttempt records a register/login attempt with result success or failure
func (m *Metrics) RecordAuthAttempt(operation string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.safeExecute("RecordAuthAttempt", func() {
		m.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetCardsTotal sets total cards gauge
func (m *Metrics) SetCardsTotal(count int64) {
	m.safeExecute("SetCardsTotal", func() {
		m.CardsTotal.Set(float64(count))
	})
}

// SetEventsByStatus replaces the per-status event gauges
func (m *Metrics) SetEventsByStatus(counts map[string]int64) {
	m.safeExecute("SetEventsByStatus", func() {
		m.EventsByStatus.Reset()
		for status, n := range counts {
			m.EventsByStatus.WithLabelValues(status).Set(float64(n))
		}
	})
}

func (m *Metrics) SetFeedSubscribers(count int) {
	m.safeExecute("SetFeedSubscribers", func() {
		m.FeedSubscribers.Set(float64(count))
	})
}

func (m *Metrics) IncrementFeedDropped() {
	m.safeExecute("IncrementFeedDropped", func() {
		m.FeedDroppedMessages.Inc()
	})
}
