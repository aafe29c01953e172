package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/metrics"
)

// SendBuffer is the number of messages queued per subscriber before new
// messages for it are dropped.
const SendBuffer = 64

// Message is the envelope written to feed subscribers
type Message struct {
	Type    string      `json:"type"`
	BoardID uuid.UUID   `json:"boardId"`
	SentAt  time.Time   `json:"sentAt"`
	Data    interface{} `json:"data"`
}

// Subscriber receives the feed of one board
type Subscriber struct {
	BoardID uuid.UUID
	UserID  uuid.UUID
	send    chan []byte
}

// Messages is closed when the subscriber is removed from the hub
func (s *Subscriber) Messages() <-chan []byte {
	return s.send
}

// Hub fans out board activity to websocket subscribers
type Hub struct {
	mu     sync.RWMutex
	boards map[uuid.UUID]map[*Subscriber]struct{}
	total  int

	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewHub(m *metrics.Metrics, logger *zap.Logger) *Hub {
	return &Hub{
		boards:  make(map[uuid.UUID]map[*Subscriber]struct{}),
		metrics: m,
		logger:  logger,
	}
}

func (h *Hub) Subscribe(boardID, userID uuid.UUID) *Subscriber {
	sub := &Subscriber{
		BoardID: boardID,
		UserID:  userID,
		send:    make(chan []byte, SendBuffer),
	}

	h.mu.Lock()
	subs := h.boards[boardID]
	if subs == nil {
		subs = make(map[*Subscriber]struct{})
		h.boards[boardID] = subs
	}
	subs[sub] = struct{}{}
	h.total++
	total := h.total
	h.mu.Unlock()

	h.reportSubscribers(total)
	h.logger.Debug("Feed subscriber added",
		zap.String("board_id", boardID.String()),
		zap.String("user_id", userID.String()))
	return sub
}

// Unsubscribe removes sub and closes its channel. Calling it twice is safe.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	subs, ok := h.boards[sub.BoardID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := subs[sub]; !ok {
		h.mu.Unlock()
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.boards, sub.BoardID)
	}
	close(sub.send)
	h.total--
	total := h.total
	h.mu.Unlock()

	h.reportSubscribers(total)
}

// Publish encodes message and queues it for every subscriber of boardID.
// It never blocks: a subscriber whose buffer is full misses the message.
func (h *Hub) Publish(boardID uuid.UUID, message interface{}) {
	payload, err := json.Marshal(Message{
		Type:    "action",
		BoardID: boardID,
		SentAt:  time.Now().UTC(),
		Data:    message,
	})
	if err != nil {
		h.logger.Error("Failed to encode feed message",
			zap.String("board_id", boardID.String()),
			zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.boards[boardID] {
		select {
		case sub.send <- payload:
		default:
			if h.metrics != nil {
				h.metrics.IncrementFeedDropped()
			}
			h.logger.Warn("Feed subscriber too slow, message dropped",
				zap.String("board_id", boardID.String()),
				zap.String("user_id", sub.UserID.String()))
		}
	}
}

// Subscribers returns the number of subscribers of boardID
func (h *Hub) Subscribers(boardID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.boards[boardID])
}

// Close removes every subscriber, which ends their connections
func (h *Hub) Close() {
	h.mu.Lock()
	for boardID, subs := range h.boards {
		for sub := range subs {
			close(sub.send)
		}
		delete(h.boards, boardID)
	}
	h.total = 0
	h.mu.Unlock()

	h.reportSubscribers(0)
}

func (h *Hub) reportSubscribers(total int) {
	if h.metrics != nil {
		h.metrics.SetFeedSubscribers(total)
	}
}
