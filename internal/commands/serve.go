package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pocket-ledger/backend/internal/config"
	v1 "github.com/pocket-ledger/backend/internal/controllers/v1"
	"github.com/pocket-ledger/backend/internal/notifications"
	"github.com/pocket-ledger/backend/internal/notifications/telegram"
	"github.com/pocket-ledger/backend/internal/reminders"
	"github.com/pocket-ledger/backend/internal/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// shutdownTimeout is how long open requests get to finish on shutdown.
const shutdownTimeout = 10 * time.Second

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, *configPath)
		},
	}
}

func serve(cmd *cobra.Command, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.run(ctx, fmt.Sprintf(":%d", cfg.Port))
}

// app is the wired backend: database, reminders and HTTP handler.
type app struct {
	handler    http.Handler
	host       *notifications.LocalHost
	scheduler  *notifications.Scheduler
	reminders  *reminders.Service
	forwarder  *telegram.Forwarder
	collectors []prometheus.Collector
	teardown   func()
}

// newApp connects the database and wires the reminder subsystem and the
// router. If notifications are permitted, the reminders are resynced with
// the database before the app is returned.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	url, err := cfg.URL()
	if err != nil {
		return nil, err
	}

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	formatter, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}

	var forwarder *telegram.Forwarder
	if cfg.Notifications.Telegram.Enabled() {
		forwarder, err = telegram.New(cfg.Notifications.Telegram)
		if err != nil {
			return nil, err
		}
	}

	if err := connect(cfg); err != nil {
		return nil, err
	}

	a := &app{
		host:      notifications.NewLocalHost(cfg.Notifications.Enabled, cfg.Notifications.Buffer),
		forwarder: forwarder,
	}
	a.scheduler = notifications.NewScheduler(a.host, cfg.Notifications.Config)
	a.reminders = reminders.NewService(a.scheduler, reminders.DBStore{}, policy, reminders.WithFormatter(formatter))

	for _, c := range a.scheduler.Collectors() {
		if err := prometheus.Register(c); err != nil {
			a.Close()
			return nil, fmt.Errorf("registering notification metrics: %w", err)
		}
		a.collectors = append(a.collectors, c)
	}

	opts := router.Options{
		AllowOrigins: cfg.CORSAllowOrigins,
		EnablePprof:  cfg.EnablePprof,
	}

	r, teardown, err := router.Config(url, opts)
	a.teardown = teardown
	if err != nil {
		a.Close()
		return nil, err
	}
	router.AttachRoutes(v1.Controller{Reminders: a.reminders}, r.Group("/"), opts)
	a.handler = r

	if a.scheduler.RequestPermissions(ctx) {
		a.reminders.Resync(ctx)
	} else {
		log.Warn().Msg("notifications are not permitted, payment reminders are disabled")
	}

	return a, nil
}

// run serves HTTP on addr and delivers reminders until ctx is done.
func (a *app) run(ctx context.Context, addr string) error {
	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.scheduler.Listen(listenCtx, a.deliver)

	server := &http.Server{
		Addr:              addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("address", addr).Str("version", router.Version()).Msg("serving API")
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	return server.Shutdown(shutdownCtx)
}

// Close releases the database, the notification host and all registered metrics.
func (a *app) Close() {
	if a.teardown != nil {
		a.teardown()
	}

	for _, c := range a.collectors {
		prometheus.Unregister(c)
	}

	a.host.Close()

	if err := closeDB(); err != nil {
		log.Error().Err(err).Msg("closing the database failed")
	}
}

// deliver shows a delivered reminder in the log and forwards it to
// Telegram if that is configured.
func (a *app) deliver(d notifications.Delivery) {
	log.Info().
		Str("key", d.Key).
		Str("title", d.Title).
		Str("body", d.Body).
		Time("fireAt", d.FireAt).
		Msg("payment reminder shown")

	if a.forwarder == nil {
		return
	}

	if err := a.forwarder.Send(d); err != nil {
		log.Error().Err(err).Str("key", d.Key).Msg("forwarding reminder failed")
	}
}
