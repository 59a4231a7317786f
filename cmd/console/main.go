package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"world-sync/infrastructure/bus"
	"world-sync/infrastructure/console"
	"world-sync/internal"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run keeps every defer on the exit path, main only turns the error into a status code.
// Server events and intents come in on stdin, commands go out on stdout, people read stderr.
func run() error {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	var dictionaries fs.FS
	if config.CensoredDir != "" {
		dictionaries = os.DirFS(config.CensoredDir)
	}

	session, err := internal.NewSession(config, log, internal.Outputs{
		Commands:     os.Stdout,
		Notifier:     console.NewNotifier(os.Stderr, config.Colours),
		Sound:        console.NewSpeaker(os.Stderr, config.Bell),
		Dictionaries: dictionaries,
	})
	if err != nil {
		return fmt.Errorf("session setup failed: %w", err)
	}
	defer func() {
		log.Info("Closing session...")
		_ = session.Close()
	}()

	if config.RenderState {
		internal.NewStateView(session, os.Stderr).Subscribe("console")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		session.Run(ctx)
	}()

	commands := internal.NewCommands(session, os.Stderr)
	reader := bus.NewReader(os.Stdin, log, session.Orchestrator.Dispatch, commands.Handle)
	err = reader.Run(ctx)

	// End of input is a normal shutdown, what was already read still gets applied
	if drainErr := session.Shutdown(ctx); drainErr != nil && !errors.Is(drainErr, context.Canceled) {
		log.Warn("Session not fully drained", "error", drainErr)
	}
	stop()
	<-done
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("input error: %w", err)
	}
	log.Info("Session stopped cleanly")
	return nil
}
