package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Failure reasons used for the notifications_failed_total metric.
const (
	reasonPermission = "permission"
	reasonFireTime   = "fire_time"
	reasonHost       = "host"
)

// Scheduler is the only component that talks to the Host. None of its
// methods return errors, failures are logged and counted instead.
type Scheduler struct {
	host    Host
	config  Config
	now     func() time.Time
	metrics metrics
}

// NewScheduler creates a Scheduler that presents all notifications
// according to config.
func NewScheduler(host Host, config Config) *Scheduler {
	return &Scheduler{
		host:    host,
		config:  config,
		now:     time.Now,
		metrics: newMetrics(),
	}
}

// Config returns the presentation configuration of the scheduler.
func (s *Scheduler) Config() Config {
	return s.config
}

// RequestPermissions asks the host for permission to show notifications.
func (s *Scheduler) RequestPermissions(ctx context.Context) bool {
	granted, err := s.host.RequestPermission(ctx)
	if err != nil {
		log.Error().Err(err).Msg("requesting notification permission failed")
		return false
	}

	if !granted {
		log.Warn().Msg("notification permission not granted, reminders are disabled")
		return false
	}

	log.Debug().Str("channel", s.config.Channel).Msg("notification permission granted")
	return true
}

// Schedule schedules the notification and returns the confirmation ID of the
// host. ok is false when the notification was not scheduled.
func (s *Scheduler) Schedule(ctx context.Context, req Request) (id string, ok bool) {
	logger := log.With().Str("key", req.Key).Time("fireAt", req.FireAt).Logger()

	if !req.FireAt.After(s.now()) {
		logger.Warn().Msg("not scheduling notification, fire time is not in the future")
		s.metrics.failed.WithLabelValues(reasonFireTime).Inc()
		return "", false
	}

	id, err := s.host.Schedule(ctx, req, s.config)
	if err != nil {
		reason := reasonHost
		switch {
		case errors.Is(err, ErrPermissionDenied):
			reason = reasonPermission
		case errors.Is(err, ErrFireTimeNotFuture):
			reason = reasonFireTime
		}

		logger.Error().Err(err).Str("reason", reason).Msg("scheduling notification failed")
		s.metrics.failed.WithLabelValues(reason).Inc()
		return "", false
	}

	logger.Debug().Str("id", id).Msg("notification scheduled")
	s.metrics.scheduled.Inc()
	return id, true
}

// Cancel removes the pending notification for the key. Unknown keys are
// not an error.
func (s *Scheduler) Cancel(ctx context.Context, key string) {
	s.metrics.cancelled.Inc()

	err := s.host.Cancel(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("cancelling notification failed")
		return
	}

	log.Debug().Str("key", key).Msg("notification cancelled")
}

// CancelAll removes all pending notifications.
func (s *Scheduler) CancelAll(ctx context.Context) {
	err := s.host.CancelAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cancelling all notifications failed")
		return
	}

	log.Info().Msg("all notifications cancelled")
}

// List returns all pending notifications ordered by key.
func (s *Scheduler) List(ctx context.Context) []Pending {
	pending, err := s.host.Scheduled(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing scheduled notifications failed")
		return []Pending{}
	}

	slices.SortFunc(pending, func(a, b Pending) int {
		return strings.Compare(a.Key, b.Key)
	})

	return pending
}

// Listen passes every delivered notification to handle until the context
// is done or the host closes its delivery channel.
func (s *Scheduler) Listen(ctx context.Context, handle func(Delivery)) {
	deliveries := s.host.Delivered()

	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}

			s.metrics.delivered.Inc()
			log.Info().Str("key", d.Key).Str("id", d.ID).Msg("notification delivered")

			if handle != nil {
				handle(d)
			}
		}
	}
}
