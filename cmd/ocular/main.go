// Package main is the entry point for the ocular capture tool: it
// launches one browser session against the configured grid, opens a
// page, runs the two-phase capture and writes the image to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ocular-go/application/session"
	"ocular-go/core/config"
	"ocular-go/core/event"
	"ocular-go/infrastructure/logging"
	"ocular-go/infrastructure/transport/grid"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		url        = flag.String("url", "", "page to open")
		selector   = flag.String("selector", "body", "capture element selector")
		out        = flag.String("out", "screenshot.png", "output image path")
		id         = flag.String("id", "default", "session identifier")
	)
	flag.Parse()

	logger, closeLog, err := logging.Setup(nil)
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "usage: ocular -url <page> [-config file] [-selector css] [-out file]")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			logger.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, *id, *url, *selector, *out); err != nil {
		logger.Error("Capture failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Capture complete", "out", *out)
}

func run(cfg *config.Config, id, url, selector, out string) error {
	ctx := context.Background()

	events := event.NewDispatcher()
	ctrl := session.New(&session.Options{
		ID:        id,
		Config:    cfg,
		Transport: grid.New(cfg.GridURL, events),
		Events:    events,
		Logger:    logging.L(),
	})

	if err := ctrl.Launch(ctx); err != nil {
		return err
	}
	defer ctrl.Quit(ctx)

	if err := ctrl.Open(ctx, url); err != nil {
		return err
	}

	if _, err := ctrl.PrepareScreenshot(ctx, []string{selector}, nil); err != nil {
		return err
	}
	img, err := ctrl.CaptureFullscreenImage(ctx)
	if err != nil {
		return err
	}
	return img.Save(out)
}
