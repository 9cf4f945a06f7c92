// Package main is the entry point for the check-ssd monitoring plugin.
//
// It prints one Nagios status line with the remaining endurance of every SSD it can
// find and exits with the plugin status code.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nuclearlighters/check-ssd/internal/config"
	"github.com/nuclearlighters/check-ssd/internal/controllers"
	"github.com/nuclearlighters/check-ssd/internal/report"
	"github.com/nuclearlighters/check-ssd/internal/system"
	"github.com/nuclearlighters/check-ssd/internal/toolexec"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Defaults()
	}

	setupLogging(cfg.LogLevel)
	if err != nil {
		log.Warn().Err(err).Msg("Invalid configuration - using defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	runner := toolexec.NewExec(cfg.CommandTimeout, cfg.BreakerThreshold)
	status := run(ctx, cfg, runner, os.Stdout)

	stop()
	os.Exit(status.ExitCode())
}

// run performs one check and writes the status line to out.
func run(ctx context.Context, cfg *config.Settings, runner toolexec.Runner, out io.Writer) report.Status {
	if cfg.DescribeHost {
		describeHost(ctx)
	}

	disks := controllers.Discover(ctx, runner, controllers.Options{
		BoundByVolumeCount: cfg.BoundByVolumeCount(),
	})

	r := report.Collect(ctx, disks)

	if cfg.DescribeHost {
		logSerials(ctx, disks.Drives())
	}

	fmt.Fprintln(out, r.String())
	return r.Status
}

// describeHost logs where the check runs. Virtual disks report no wear data.
func describeHost(ctx context.Context) {
	h, err := system.Describe(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to describe host")
		return
	}

	log.Info().
		Str("hostname", h.Hostname).
		Str("platform", h.Platform).
		Str("kernel", h.Kernel).
		Msg("Checking SSD wear levels")

	if h.IsGuest() {
		log.Warn().
			Str("virtualization", h.Virtualization).
			Msg("Running inside a guest - drives may not expose wear data")
	}
}

func logSerials(ctx context.Context, drives []string) {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}
	for _, drive := range drives {
		serial, err := system.DriveSerial(ctx, drive)
		if err != nil {
			log.Debug().Err(err).Str("drive", drive).Msg("No serial number")
			continue
		}
		log.Debug().Str("drive", drive).Str("serial", serial).Msg("Drive serial")
	}
}

// setupLogging configures zerolog based on log level.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
