package jobs

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const NotificationRelayJobName = "notification_relay"

// RelayHandler is the command handler the relay job drives.
type RelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayNotificationsCommand) (commands.RelayResult, error)
}

// NotificationRelayJob moves committed outbox events to the notification
// dispatcher on a cron schedule (seconds field included).
type NotificationRelayJob struct {
	handler   RelayHandler
	schedule  string
	batchSize int
	metrics   *metrics.JobMetrics
	cron      *cron.Cron
	logger    zerolog.Logger
}

func NewNotificationRelayJob(
	handler RelayHandler,
	schedule string,
	batchSize int,
	jobMetrics *metrics.JobMetrics,
	logger zerolog.Logger,
) *NotificationRelayJob {
	return &NotificationRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		metrics:   jobMetrics,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With().Str("component", NotificationRelayJobName).Logger(),
	}
}

// Start validates the schedule and starts the cron scheduler.
func (j *NotificationRelayJob) Start() error {
	cmd, err := commands.NewRelayNotificationsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.Run(context.Background(), cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Int("batch_size", j.batchSize).Msg("notification relay job started")
	return nil
}

// Run executes a single relay pass.
func (j *NotificationRelayJob) Run(ctx context.Context, cmd commands.RelayNotificationsCommand) {
	ctx = j.logger.WithContext(ctx)
	started := time.Now()

	result, err := j.handler.Handle(ctx, cmd)
	j.metrics.ObserveDuration(NotificationRelayJobName, time.Since(started))
	if err != nil {
		j.metrics.IncFailure(NotificationRelayJobName)
		j.logger.Error().Err(err).Msg("notification relay failed")
		return
	}

	j.metrics.IncSuccess(NotificationRelayJobName)
	j.metrics.AddNotifications(result.Published, result.Failed)
	if result.Published > 0 || result.Failed > 0 {
		j.logger.Debug().Int("published", result.Published).Int("failed", result.Failed).Msg("notifications relayed")
	}
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("notification relay job stopped")
}
