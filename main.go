package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"politix/app/client/console"
	"politix/app/config"
	"politix/app/service/capability"
	"politix/app/service/conversation"
	"politix/app/service/engine"
	"politix/app/service/metrics"
	"politix/app/service/qa"
	"politix/app/service/queue"
	"politix/app/service/responses"
	"politix/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	os.Exit(run())
}

func run() int {
	di := do.New()
	defer func() {
		if err := di.Shutdown(); err != nil {
			slog.Warn("Shutdown finished with errors", "error", err)
		}
	}()

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, metrics.New)
	do.Provide(di, capability.New)
	do.Provide(di, responses.New)
	do.Provide(di, qa.New)
	do.Provide(di, conversation.New)
	do.Provide(di, queue.New)
	do.Provide(di, console.NewClient)
	do.Provide(di, engine.New)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		slog.Info("Shutting down...")

		cancel()
	}()

	engineSvc, err := do.Invoke[*engine.Service](di)
	if err != nil {
		slog.Error("Startup failed", "error", err)
		return 1
	}

	slog.Info("Service started")

	go func() {
		if err := do.MustInvoke[*console.Client](di).Run(appCtx); err != nil {
			slog.Warn("Input reader stopped", "error", err)
		}
	}()

	if err = engineSvc.Run(appCtx); err != nil {
		slog.Info("Conversation did not end with a farewell", "error", err)
		return 1
	}

	return 0
}
