package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const publishTimeout = 5 * time.Second

// publish never fails the caller; delivery errors are logged.
func publish(ctx context.Context, pub events.Publisher, topic, key string, env events.Envelope) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.Publish(ctx, topic, key, env); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "topic", topic, "type", env.Type, "key", key, "error", err)
	}
}
