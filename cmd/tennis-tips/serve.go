package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yourusername/tennis-tips/internal/health"
	"github.com/yourusername/tennis-tips/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingestion scheduler with health and metrics endpoints",
	Long: `Starts the periodic archive sync on the configured cron schedule
and serves /health, /ready, /live and the Prometheus metrics endpoint
until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		p, err := buildPipeline(db)
		if err != nil {
			return err
		}

		sched := scheduler.NewScheduler(p.ingestion, appLog)
		cronExpr := cfg.Schedule.HistoricalSync
		if cronExpr == "" {
			cronExpr = "0 4 * * *"
		}
		if err := sched.ScheduleHistoricalSync(cronExpr); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		var pinger health.DatabasePinger
		if db != nil {
			pinger = db
		}
		srv := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        strconv.Itoa(cfg.Metrics.Port),
			MetricsPath: cfg.Metrics.Path,
			Logger:      appLog,
			DB:          pinger,
		})
		srv.RegisterCheck("scheduler", func(context.Context) error {
			if !sched.IsRunning() {
				return errors.New("historical sync scheduler stopped")
			}
			return nil
		})
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
		srv.SetReady(true)

		appLog.WithField("next_run", sched.GetNextRun()).Info("Serving")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		sig := <-sigChan
		appLog.WithField("signal", sig).Info("Shutdown signal received")

		cancel()
		return nil
	},
}
