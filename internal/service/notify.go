package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/client"
)

// notifier hands events to the notification client off the request path.
type notifier struct {
	client client.NotificationClient
	logger *zap.Logger
}

func newNotifier(c client.NotificationClient, logger *zap.Logger) *notifier {
	if c == nil {
		c = client.NewNoOpNotificationClient()
	}
	return &notifier{client: c, logger: logger}
}

// notify drops events addressed to the actor and sends the rest asynchronously.
func (n *notifier) notify(ctx context.Context, actorID uuid.UUID, events ...client.NotificationEvent) {
	pending := make([]client.NotificationEvent, 0, len(events))
	for _, e := range events {
		if e.TargetUserID == actorID {
			continue
		}
		e.ActorID = actorID
		pending = append(pending, e)
	}
	if len(pending) == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		var err error
		if len(pending) == 1 {
			err = n.client.SendNotification(ctx, pending[0])
		} else {
			err = n.client.SendBulkNotifications(ctx, pending)
		}
		if err != nil {
			n.logger.Warn("Failed to dispatch notifications", zap.Int("count", len(pending)), zap.Error(err))
		}
	}()
}
