package main

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	log "github.com/pixil98/go-log"
	service "github.com/pixil98/go-service"

	"github.com/jademud/jademud/cmd/jademud/command"
)

func main() {
	logger := log.NewLogger()
	logger.WithField("version", buildVersion()).Info("starting jademud")

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		logger.WithError(err).Fatal("creating application")
	}

	// Interrupt and terminate both drain sessions through context
	// cancellation rather than killing the process mid-save.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.WithError(err).Fatal("running application")
	}

	logger.Info("exiting")
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}
