package notifier

import (
	"context"

	"fulfillment/internal/core/ports"

	"github.com/rs/zerolog"
)

// LogDispatcher writes notifications to a structured log. It never fails.
type LogDispatcher struct {
	logger zerolog.Logger
}

func NewLogDispatcher(logger zerolog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.With().Str("component", "notifier").Logger()}
}

func (d *LogDispatcher) Dispatch(_ context.Context, n ports.Notification) error {
	d.logger.Info().
		Str("event_id", n.ID.String()).
		Str("event_type", n.Kind.String()).
		Str("aggregate_id", n.AggregateID.String()).
		Time("occurred_at", n.OccurredAt).
		RawJSON("payload", n.Payload).
		Msg("notification")
	return nil
}
