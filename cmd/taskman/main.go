// Package main is the entry point for the taskman CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"taskman/internal/backend/taskapi"
	"taskman/internal/cli"
	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config, needsTasks bool) (*commands.Env, error) {
		level := log.WarnLevel
		if cfg.Debug {
			level = log.DebugLevel
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{
			Level:  level,
			Prefix: "taskman",
		})

		store := session.NewFileStore(cfg.SessionPath())
		env := &commands.Env{
			Session: store,
			Auth:    taskapi.NewAuth(cfg, logger),
		}
		if needsTasks {
			env.Tasks = taskapi.New(ctx, cfg, store, logger)
		}
		return env, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
