package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/rs/zerolog/log"
)

// RelayResult counts the outcome of one relay run.
type RelayResult struct {
	Published int
	Failed    int
}

// RelayNotificationsCommandHandler drains the outbox into the notification
// dispatcher. Delivery is at-least-once: events whose dispatch fails stay
// unpublished and are retried by the next run.
type RelayNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	dispatcher ports.NotificationDispatcher
}

func NewRelayNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	dispatcher ports.NotificationDispatcher,
) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher}
}

// Handle returns an error only when the outbox itself cannot be read or
// updated; dispatch failures are logged and counted.
func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (RelayResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return RelayResult{}, err
	}
	if len(pending) == 0 {
		return RelayResult{}, nil
	}

	var result RelayResult
	published := make([]kernel.UUID, 0, len(pending))
	for _, n := range pending {
		if err := h.dispatcher.Dispatch(ctx, n); err != nil {
			result.Failed++
			log.Ctx(ctx).Warn().Err(err).
				Str("notification_id", n.ID.String()).
				Str("kind", n.Kind.String()).
				Msg("notification dispatch failed")
			continue
		}
		published = append(published, n.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published, now()); err != nil {
			return RelayResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayResult{}, err
	}

	result.Published = len(published)
	return result, nil
}
