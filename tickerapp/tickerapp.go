// Package tickerapp launches the headless monitoring application which
// writes all alerts to stdout and runs until interrupted. This is the mode
// for running under systemd or piping into other programs, in contrast to
// the TUI app, which works more like htop.
package tickerapp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/kurthamm/flighttrak-enhanced/internal"
	"github.com/kurthamm/flighttrak-enhanced/internal/store"
)

func Run(appName string, cfg internal.Config, watchlist *internal.Watchlist, logger *slog.Logger) error {
	fmt.Printf("%s monitoring at Lat: %.3f, Lon: %.3f (%d watched aircraft)\n",
		appName, cfg.Home.Lat, cfg.Home.Lon, watchlist.Len())

	stdout := io.Writer(os.Stdout)

	sinks := internal.FanoutSink{internal.NewConsoleSink(stdout)}

	if cfg.Alerts.Desktop {
		sinks = append(sinks, internal.NewDesktopSink(appName, logger))
	}

	var mailer *internal.Mailer
	if cfg.Email.Enabled() {
		mailer = internal.NewMailer(cfg.Email, logger)
		sinks = append(sinks, mailer)
	}

	var history *store.Store
	if cfg.Database.Enabled() {
		var err error
		history, err = store.Connect(
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Hostname,
			cfg.Database.Port,
			cfg.Database.Database,
			logger)
		if err != nil {
			return fmt.Errorf("tickerapp: %w", err)
		}
		defer history.Close()
		sinks = append(sinks, history)
	}

	clock := internal.SystemClock()

	proximity := internal.NewProximityTracker(
		cfg.HomeCoordinates(),
		watchlist,
		sinks,
		clock,
		cfg.ProximityTimeout(),
		cfg.ProximityCooldown(),
		logger)

	emergency := internal.NewEmergencyVerifier(
		sinks,
		clock,
		cfg.Monitoring.EmergencySustainPolls,
		cfg.EmergencyStaleTimeout(),
		cfg.PollInterval(),
		cfg.SuppressionThresholds(),
		logger)

	source := internal.NewHTTPSource(cfg.Monitoring.PlanesURL, clock)
	monitor := internal.NewMonitor(source, proximity, emergency, clock, cfg.PollInterval(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()
	scheduleJobs(scheduler, mailer, history, cfg, logger)
	scheduler.Start()
	defer scheduler.Stop()

	if mailer != nil {
		mailer.ServiceNotice(appName+" started", fmt.Sprintf("Monitoring started at %s.", time.Now().Format(time.RFC1123)))
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return monitor.Run(ctx)
	})

	err := group.Wait()

	logger.Info("shutdown complete", "polls", monitor.PollCount())
	if mailer != nil {
		mailer.ServiceNotice(appName+" stopped", fmt.Sprintf("Monitoring stopped at %s.", time.Now().Format(time.RFC1123)))
	}

	return err
}

/// scheduleJobs wires the daily housekeeping: an alive notice so a silent
// failure is noticed within a day, and history retention when the store is
// configured.
func scheduleJobs(scheduler *cron.Cron, mailer *internal.Mailer, history *store.Store, cfg internal.Config, logger *slog.Logger) {
	if mailer != nil {
		_, err := scheduler.AddFunc("0 9 * * *", func() {
			mailer.ServiceNotice("FlightTrak daily check-in", "The monitor is alive and polling.")
		})
		if err != nil {
			logger.Error("failed to schedule daily check-in", "error", err)
		}
	}

	if history != nil && cfg.Alerts.RetentionDays > 0 {
		_, err := scheduler.AddFunc("30 3 * * *", func() {
			cutoff := time.Now().AddDate(0, 0, -cfg.Alerts.RetentionDays)
			removed, cullErr := history.CullOlderThan(cutoff)
			if cullErr != nil {
				logger.Error("alert history cull failed", "error", cullErr)
				return
			}
			logger.Info("alert history culled", "removed", removed, "cutoff", cutoff)
		})
		if err != nil {
			logger.Error("failed to schedule alert history cull", "error", err)
		}
	}
}
