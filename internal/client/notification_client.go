package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/metrics"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationCardAssigned         NotificationType = "CARD_ASSIGNED"
	NotificationCardUnassigned       NotificationType = "CARD_UNASSIGNED"
	NotificationCommentAdded         NotificationType = "COMMENT_ADDED"
	NotificationBoardMemberAdded     NotificationType = "BOARD_MEMBER_ADDED"
	NotificationWorkspaceMemberAdded NotificationType = "WORKSPACE_MEMBER_ADDED"
)

// NotificationEvent represents a notification to be delivered to one user
type NotificationEvent struct {
	Type         NotificationType       `json:"type"`
	ActorID      uuid.UUID              `json:"actorId"`
	TargetUserID uuid.UUID              `json:"targetUserId"`
	WorkspaceID  *uuid.UUID             `json:"workspaceId,omitempty"`
	BoardID      *uuid.UUID             `json:"boardId,omitempty"`
	ResourceType string                 `json:"resourceType"`
	ResourceID   uuid.UUID              `json:"resourceId"`
	ResourceName string                 `json:"resourceName,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt   string                 `json:"occurredAt,omitempty"`
}

// BulkNotificationRequest represents a bulk notification request
type BulkNotificationRequest struct {
	Notifications []NotificationEvent `json:"notifications"`
}

// NotificationClient posts notification events to an external delivery service.
// Delivery failures are logged and never returned to the caller.
type NotificationClient interface {
	SendNotification(ctx context.Context, event NotificationEvent) error
	SendBulkNotifications(ctx context.Context, events []NotificationEvent) error
}

type notificationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a client for baseURL, or a no-op client when baseURL is empty.
func NewNotificationClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	if strings.TrimSpace(baseURL) == "" {
		return NewNoOpNotificationClient()
	}
	return &notificationClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

func (c *notificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	return c.post(ctx, "send", c.baseURL+"/notifications", event, 1)
}

func (c *notificationClient) SendBulkNotifications(ctx context.Context, events []NotificationEvent) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range events {
		if events[i].OccurredAt == "" {
			events[i].OccurredAt = now
		}
	}
	return c.post(ctx, "send_bulk", c.baseURL+"/notifications/bulk", BulkNotificationRequest{Notifications: events}, len(events))
}

func (c *notificationClient) post(ctx context.Context, operation, url string, body interface{}, count int) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalCall(metrics.TargetNotification, operation, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Warn("Failed to send notification",
			zap.Error(err),
			zap.Int("count", count),
			zap.Duration("duration", duration),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Notification service returned non-success status",
			zap.Int("status_code", resp.StatusCode),
			zap.Int("count", count),
		)
		return nil
	}

	c.logger.Debug("Notifications sent",
		zap.Int("count", count),
		zap.Duration("duration", duration),
	)
	return nil
}

// NoOpNotificationClient is used when no notification endpoint is configured
type NoOpNotificationClient struct{}

func NewNoOpNotificationClient() NotificationClient {
	return &NoOpNotificationClient{}
}

func (c *NoOpNotificationClient) SendNotification(ctx context.Context, event NotificationEvent) error {
	return nil
}

func (c *NoOpNotificationClient) SendBulkNotifications(ctx context.Context, events []NotificationEvent) error {
	return nil
}
